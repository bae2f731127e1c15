package layout

import (
	"sort"

	"github.com/matzehuels/placemat/pkg/geom"
)

// Manager runs the greedy placement pass. It owns the occupied-space set
// for the pass; create one Manager per pass and do not share it between
// goroutines.
//
// Resolve may be called more than once on the same Manager: later calls
// place their elements against the space committed by earlier calls. This
// is how staged resolution works (arrow routes first, labels after) and
// how a previous result replays as fixed obstacles.
type Manager struct {
	cfg      Config
	occupied *occupiedSet

	// takenDirs records, per anchor reference, the compass directions
	// consumed by accepted point-anchored placements.
	takenDirs map[string]uint8
}

// NewManager validates the configuration and returns a Manager with an
// empty occupied set.
func NewManager(cfg Config) (*Manager, error) {
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return &Manager{
		cfg:       cfg,
		occupied:  newOccupiedSet(),
		takenDirs: make(map[string]uint8),
	}, nil
}

// AddObstacle commits a fixed box to the occupied set before resolution.
// Obstacles block candidates but never appear in blocker diagnostics.
func (m *Manager) AddObstacle(r geom.Rect) {
	m.occupied.add(occupiedBox{rect: r.Pad(m.cfg.Padding)})
}

// OccupiedCount returns the number of committed boxes, obstacles
// included.
func (m *Manager) OccupiedCount() int { return m.occupied.size() }

// Blocked reports whether a box intersects space committed so far. The
// box is padded like any candidate before the test. Route resolution
// probes with this before feeding accepted arrow boxes back in as
// obstacles.
func (m *Manager) Blocked(r geom.Rect) bool {
	hit, _, _ := m.occupied.probe(r.Pad(m.cfg.Padding), "")
	return hit
}

// Resolve places every element and returns the completed result. The
// pass is deterministic: elements sort by priority tier ascending with
// input order breaking ties, each element's candidates are tried in
// their generated order, and the first overlap-free candidate wins. When
// none is free the element's per-kind fallback policy applies. Resolve
// never fails; every element receives exactly one status.
func (m *Manager) Resolve(elements []Element) *Result {
	order := make([]int, len(elements))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return elements[order[a]].Priority < elements[order[b]].Priority
	})

	placed := make(map[int][]Placement, len(elements))
	for _, idx := range order {
		placed[idx] = m.resolveOne(&elements[idx])
	}

	// Emit in input order so serialized results diff cleanly; companion
	// placements follow their host.
	result := newResult()
	for i := range elements {
		for _, p := range placed[i] {
			result.add(p)
		}
	}
	return result
}

// resolveOne places a single element and returns its placement followed
// by any companion placements.
func (m *Manager) resolveOne(el *Element) []Placement {
	cands := candidatesFor(el, &m.cfg, m.takenDirs[el.AnchorRef])
	if len(cands) == 0 {
		return m.suppress(el, "no candidates")
	}

	blocked := make(map[string]struct{})
	bestIdx := -1
	bestArea := 0.0

	for i := range cands {
		hit, area, owners := m.probeCandidate(&cands[i], el.Group)
		if !hit {
			return m.accept(el, &cands[i], StatusPlaced, 0, sortedKeys(blocked))
		}
		for _, o := range owners {
			blocked[o] = struct{}{}
		}
		if bestIdx < 0 || area < bestArea {
			bestIdx, bestArea = i, area
		}
	}

	switch m.cfg.Fallback[el.Kind] {
	case FallbackForce:
		return m.accept(el, &cands[bestIdx], StatusForced, bestArea, sortedKeys(blocked))
	default:
		return m.suppressBlocked(el, "no overlap-free candidate", sortedKeys(blocked))
	}
}

// probeCandidate tests every box of a candidate against the occupied set.
func (m *Manager) probeCandidate(c *Candidate, group string) (hit bool, area float64, owners []string) {
	for _, box := range c.boxes() {
		h, a, o := m.occupied.probe(box.Pad(m.cfg.Padding), group)
		if h {
			hit = true
			area += a
			owners = append(owners, o...)
		}
	}
	return hit, area, owners
}

// accept commits a candidate's boxes and builds the placements.
func (m *Manager) accept(el *Element, c *Candidate, status Status, overlap float64, blockedBy []string) []Placement {
	m.occupied.add(occupiedBox{
		rect:  c.Box.Pad(m.cfg.Padding),
		owner: el.ID,
		group: el.Group,
	})
	for _, comp := range c.companions {
		m.occupied.add(occupiedBox{
			rect:  comp.box.Pad(m.cfg.Padding),
			owner: comp.id,
			group: el.Group,
		})
	}

	if c.HasDir && el.AnchorRef != "" {
		m.takenDirs[el.AnchorRef] |= 1 << uint(c.Dir)
	}

	out := []Placement{{
		ElementID: el.ID,
		Kind:      el.Kind,
		Status:    status,
		Center:    c.Center,
		Rotation:  c.Rotation,
		Box:       c.Box,
		Rank:      c.Rank,
		Dir:       c.Dir,
		HasDir:    c.HasDir,
		Overlap:   overlap,
		BlockedBy: blockedBy,
	}}
	for _, comp := range c.companions {
		out = append(out, Placement{
			ElementID: comp.id,
			Kind:      KindEventMarker,
			Status:    status,
			Center:    comp.center,
			Box:       comp.box,
			Rank:      c.Rank,
		})
	}
	return out
}

// suppress marks an element (and its companion) suppressed.
func (m *Manager) suppress(el *Element, reason string) []Placement {
	return m.suppressBlocked(el, reason, nil)
}

func (m *Manager) suppressBlocked(el *Element, reason string, blockedBy []string) []Placement {
	out := []Placement{{
		ElementID: el.ID,
		Kind:      el.Kind,
		Status:    StatusSuppressed,
		Reason:    reason,
		BlockedBy: blockedBy,
	}}
	if el.Companion != nil {
		out = append(out, Placement{
			ElementID: el.Companion.ID,
			Kind:      KindEventMarker,
			Status:    StatusSuppressed,
			Reason:    "paired label suppressed",
		})
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package layout

import (
	"github.com/matzehuels/placemat/pkg/anchor"
	"github.com/matzehuels/placemat/pkg/geom"
)

// companionBox is a secondary placement committed atomically with its
// host candidate.
type companionBox struct {
	id     string
	center geom.Point
	box    geom.Rect
}

// Candidate is one proposed placement for an element: the primary box
// plus any companion boxes. Candidates are ephemeral; only the accepted
// one survives into the result.
type Candidate struct {
	// Rank is the candidate's ordinal in the element's list.
	Rank int

	// Dir is the producing compass direction for point-anchored
	// candidates; HasDir marks it valid.
	Dir    anchor.Direction
	HasDir bool

	// SegmentIndex is the originating polyline segment for path labels.
	SegmentIndex int

	Center   geom.Point
	Rotation float64
	Box      geom.Rect

	companions []companionBox
}

// boxes returns the primary box followed by companion boxes.
func (c *Candidate) boxes() []geom.Rect {
	if len(c.companions) == 0 {
		return []geom.Rect{c.Box}
	}
	out := make([]geom.Rect, 0, 1+len(c.companions))
	out = append(out, c.Box)
	for _, cb := range c.companions {
		out = append(out, cb.box)
	}
	return out
}

// candidatesFor dispatches to the generator for the element's kind.
// takenDirs carries the compass directions already consumed at the
// element's anchor, for arrow-endpoint filtering.
func candidatesFor(el *Element, cfg *Config, takenDirs uint8) []Candidate {
	if el.Override != nil {
		return overrideCandidate(el)
	}

	switch el.Kind {
	case KindPointLabel:
		if el.Companion != nil {
			return pairedCandidates(el, cfg)
		}
		return pointLabelCandidates(el, cfg)
	case KindPathLabel:
		return pathLabelCandidates(el, cfg)
	case KindEventMarker:
		return eventMarkerCandidates(el, cfg)
	case KindArrowEndpoint:
		return arrowEndpointCandidates(el, cfg, takenDirs)
	}
	return nil
}

// overrideCandidate produces the single pinned candidate for an element
// with an explicit placement override.
func overrideCandidate(el *Element) []Candidate {
	base := el.Point
	if el.Kind == KindPathLabel && len(el.Path) > 0 {
		base = el.Path[0]
	}
	center := base.Add(el.Override.Offset)
	return []Candidate{{
		Center:   center,
		Rotation: el.Override.Rotation,
		Box:      geom.RotatedAABB(center, el.W, el.H, el.Override.Rotation),
	}}
}

// pointLabelCandidates walks the clearance rings outward; each ring
// yields the eight Imhof positions in preference order.
func pointLabelCandidates(el *Element, cfg *Config) []Candidate {
	clearance := cfg.clearanceFor(el)
	out := make([]Candidate, 0, len(cfg.RingSteps)*8)
	for _, step := range cfg.RingSteps {
		for _, pc := range anchor.PointCandidates(el.Point, clearance*step, el.W, el.H) {
			out = append(out, Candidate{
				Rank:   len(out),
				Dir:    pc.Dir,
				HasDir: true,
				Center: pc.Center,
				Box:    pc.Box,
			})
		}
	}
	return out
}

// eventMarkerCandidates places the marker icon on a single ring. A marker
// drifting far from its event reads as a different event, so markers
// never widen.
func eventMarkerCandidates(el *Element, cfg *Config) []Candidate {
	out := make([]Candidate, 0, 8)
	for _, pc := range anchor.PointCandidates(el.Point, cfg.clearanceFor(el), el.W, el.H) {
		out = append(out, Candidate{
			Rank:   len(out),
			Dir:    pc.Dir,
			HasDir: true,
			Center: pc.Center,
			Box:    pc.Box,
		})
	}
	return out
}

// pathLabelCandidates delegates to the path-anchor rule: one candidate
// per segment, longest first.
func pathLabelCandidates(el *Element, cfg *Config) []Candidate {
	pcs := anchor.PathCandidates(el.Path, el.PathOffset+cfg.clearanceFor(el), el.W, el.H)
	out := make([]Candidate, 0, len(pcs))
	for i, pc := range pcs {
		out = append(out, Candidate{
			Rank:         i,
			SegmentIndex: pc.SegmentIndex,
			Center:       pc.Center,
			Rotation:     pc.Rotation,
			Box:          pc.Box,
		})
	}
	return out
}

// arrowEndpointCandidates produces the compass positions for an arrowhead
// decoration, skipping directions the anchor's label already consumed.
func arrowEndpointCandidates(el *Element, cfg *Config, takenDirs uint8) []Candidate {
	out := make([]Candidate, 0, 8)
	for _, pc := range anchor.PointCandidates(el.Point, cfg.clearanceFor(el), el.W, el.H) {
		if cfg.ExcludeLabelDirections && takenDirs&(1<<uint(pc.Dir)) != 0 {
			continue
		}
		out = append(out, Candidate{
			Rank:   len(out),
			Dir:    pc.Dir,
			HasDir: true,
			Center: pc.Center,
			Box:    pc.Box,
		})
	}
	return out
}

// pairedCandidates builds joint candidates for a label and its companion
// marker: every combination of label ring × marker ring × label position
// × marker position, in that lexicographic order, keeping only
// combinations whose two boxes do not collide with each other.
func pairedCandidates(el *Element, cfg *Config) []Candidate {
	comp := el.Companion
	labelClearance := cfg.clearanceFor(el)
	markerClearance := comp.Clearance
	if markerClearance <= 0 {
		markerClearance = cfg.Clearance[KindEventMarker]
	}

	var out []Candidate
	for _, ls := range cfg.RingSteps {
		labelCands := anchor.PointCandidates(el.Point, labelClearance*ls, el.W, el.H)
		for _, ms := range cfg.PairSteps {
			markerCands := anchor.PointCandidates(comp.Anchor, markerClearance*ms, comp.W, comp.H)
			for _, lc := range labelCands {
				for _, mc := range markerCands {
					if lc.Box.Intersects(mc.Box) {
						continue
					}
					out = append(out, Candidate{
						Rank:   len(out),
						Dir:    lc.Dir,
						HasDir: true,
						Center: lc.Center,
						Box:    lc.Box,
						companions: []companionBox{{
							id:     comp.ID,
							center: mc.Center,
							box:    mc.Box,
						}},
					})
				}
			}
		}
	}
	return out
}

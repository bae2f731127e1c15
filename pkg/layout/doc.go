// Package layout implements the label decluttering engine: a
// deterministic, priority-ordered greedy placement pass over geometrically
// generated candidate positions.
//
// Automatic label placement is NP-hard in general. This engine solves the
// restricted instance that static map rendering needs: each element has a
// small ordered candidate set (eight Imhof positions per clearance ring
// for point anchors, one candidate per segment for path anchors), and a
// single greedy pass in priority order accepts the first candidate that
// does not collide with anything already placed. Determinism and
// debuggability are prioritized over optimality; there is no backtracking
// and no randomness anywhere.
//
// # Elements
//
// An [Element] is one unit of placement: a point label, a path label, an
// event marker, or an arrow-endpoint decoration. Elements carry their
// anchor geometry, a priority tier (lower tier places earlier), and a
// pre-measured footprint. The engine never measures text itself; see
// package footprint.
//
// # Resolution
//
//	m, err := layout.NewManager(layout.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	m.AddObstacle(reservedBox)       // optional pre-occupied space
//	result := m.Resolve(elements)    // one deterministic pass
//
//	for _, p := range result.Placements {
//	    switch p.Status {
//	    case layout.StatusPlaced:
//	        draw(p.Center, p.Rotation)
//	    case layout.StatusForced:
//	        draw(p.Center, p.Rotation) // overlaps recorded in p.Overlap
//	    case layout.StatusSuppressed:
//	        // deliberately omitted
//	    }
//	}
//
// Resolution never fails: every element receives exactly one status, and
// the result carries aggregate forced/suppressed counts plus the blocker
// identities behind every rejected candidate for diagnostics.
//
// # Conflict model
//
// Accepted boxes live in an occupied-space set backed by a uniform grid.
// Boxes are padded by the configured margin before testing, and intervals
// are closed, so visually touching labels count as colliding. Elements
// sharing a non-empty group never conflict with each other (a campaign
// arrow and its own label, for example). Rotated labels are approximated
// by their enclosing axis-aligned box.
//
// # Fallback
//
// When an element exhausts its candidate list, the per-kind fallback
// policy decides: force the candidate with the least total overlap
// (recorded as [StatusForced] with the overlap area) or suppress the
// element entirely. Both outcomes are first-class results, not errors.
//
// # Concurrency
//
// A Manager owns its occupied set and must not be shared between
// goroutines. Passes over independent scenes run concurrently by giving
// each its own Manager; there is no package-level mutable state.
package layout

// Package anchor converts anchor geometry into ordered placement
// candidates following cartographic convention.
//
// # Point anchors
//
// A point anchor (a city dot, an event marker) yields exactly eight
// candidate positions at the compass directions around it, ranked by the
// Imhof preference order:
//
//	NE, E, NW, W, SE, SW, N, S
//
// Top-right is most legible for ascender-heavy typography, right beats
// left for left-to-right reading, and top beats bottom. The order is a
// content contract: downstream layouts depend on it byte-for-byte.
//
// [PointCandidates] places the label box so its edge (or corner, for the
// diagonal directions) clears the anchor by the requested radius.
//
// # Path anchors
//
// A polyline anchor (a river, a campaign route) yields one candidate per
// segment, longest segment first, ties broken by segment order. The label
// sits on the upward side of the segment, rotated to its bearing and kept
// upright (rotation stays within (-90°, 90°]).
//
// # Anchor circles
//
// [Circle] models the clearance disc around a point anchor. It resolves
// compass bearings (0° = north, clockwise) and distributes multiple
// incident arrow attachments around the circle so arrowheads do not pile
// onto the same approach: a single arrow keeps its preferred bearing, two
// arrows sit opposite each other, three or more take evenly spaced slots
// claimed in priority order.
package anchor

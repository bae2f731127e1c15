// Package route turns campaign waypoints into drawn arrow curves and
// routes them around space that labels and other arrows already claim.
//
// A campaign is declared as a start point, optional via points, and a
// target city. The drawn curve depends on the waypoint count: two
// waypoints give a straight segment, or a quadratic Bézier bend when a
// curvature is set; three or more waypoints are interpolated with a
// Catmull-Rom spline. Curves are sampled to polylines; everything
// downstream (conflict boxes, label anchors, renderers) works on the
// sampled points.
//
// Arrows stop short of their target's anchor circle by a retreat gap, a
// multiple of the circle radius. [Resolve] tries the gap scales smallest
// first and accepts the first variant whose swept boxes clear the
// occupied space, falling back to the largest gap when none does. Each
// accepted arrow commits its boxes before the next arrow routes, so
// arrows avoid each other in priority order.
package route

package scene

import (
	"github.com/matzehuels/placemat/pkg/geom"
)

// Scene is one declarative map description.
type Scene struct {
	// Name titles the map and keys cached layouts and archived runs.
	Name string `json:"name"`

	// Extent is the drawable area in output pixel space.
	Extent Extent `json:"extent"`

	Cities    []City     `json:"cities,omitempty"`
	Rivers    []River    `json:"rivers,omitempty"`
	Regions   []Region   `json:"regions,omitempty"`
	Events    []Event    `json:"events,omitempty"`
	Campaigns []Campaign `json:"campaigns,omitempty"`
}

// Extent is an axis-aligned area in output pixel space.
type Extent struct {
	MinX float64 `json:"min_x" bson:"min_x"`
	MinY float64 `json:"min_y" bson:"min_y"`
	MaxX float64 `json:"max_x" bson:"max_x"`
	MaxY float64 `json:"max_y" bson:"max_y"`
}

// Width returns the horizontal span of the extent.
func (e Extent) Width() float64 { return e.MaxX - e.MinX }

// Height returns the vertical span of the extent.
func (e Extent) Height() float64 { return e.MaxY - e.MinY }

// City is a point settlement with a labeled anchor. Level grades the
// city's importance from 1 (capital) to 4 (minor town) and drives its
// priority tier, clearance radius, and font size.
type City struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Level int     `json:"level"`
}

// Position returns the city's anchor point.
func (c City) Position() geom.Point { return geom.Point{X: c.X, Y: c.Y} }

// River is a polyline feature labeled along its course.
type River struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Points []geom.Point `json:"points"`
}

// Region is a wide-tracked area name placed at a representative point.
type Region struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Position returns the region's anchor point.
func (r Region) Position() geom.Point { return geom.Point{X: r.X, Y: r.Y} }

// Event is a dated happening: a marker icon plus its own label. Events
// co-located with a city are placed cooperatively with that city's
// label.
type Event struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Position returns the event's anchor point.
func (e Event) Position() geom.Point { return geom.Point{X: e.X, Y: e.Y} }

// Campaign is a military movement drawn as an arrow from a start toward
// a target city, with a label along the drawn route.
type Campaign struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// From is the arrow tail: a city reference or an explicit point.
	From Waypoint `json:"from"`

	// To references the target city; the arrowhead stops short of its
	// anchor circle.
	To string `json:"to"`

	// Via are optional intermediate waypoints bending the route.
	Via []geom.Point `json:"via,omitempty"`

	// Curvature bends a direct route sideways; ignored with via points.
	Curvature float64 `json:"curvature,omitempty"`

	// Style selects the drawn stroke, e.g. "solid" or "dashed".
	Style string `json:"style,omitempty"`
}

// Waypoint is a campaign endpoint: either a city reference or an
// explicit coordinate.
type Waypoint struct {
	City string  `json:"city,omitempty"`
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`
}

// Point returns the waypoint coordinate for explicit waypoints.
func (w Waypoint) Point() geom.Point { return geom.Point{X: w.X, Y: w.Y} }

// CityByID returns a lookup map over the scene's cities.
func (s *Scene) CityByID() map[string]City {
	out := make(map[string]City, len(s.Cities))
	for _, c := range s.Cities {
		out[c.ID] = c
	}
	return out
}

// ElementCount returns the number of placeable features: one per city,
// river, and region label, one marker and one label per event, and one
// endpoint plus one path label per campaign.
func (s *Scene) ElementCount() int {
	return len(s.Cities) + len(s.Rivers) + len(s.Regions) + 2*len(s.Events) + 2*len(s.Campaigns)
}

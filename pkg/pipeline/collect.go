package pipeline

import (
	"github.com/matzehuels/placemat/pkg/anchor"
	"github.com/matzehuels/placemat/pkg/footprint"
	"github.com/matzehuels/placemat/pkg/geom"
	"github.com/matzehuels/placemat/pkg/layout"
	"github.com/matzehuels/placemat/pkg/route"
	"github.com/matzehuels/placemat/pkg/scene"
)

// collection is the output of the collect stage: the placement elements
// derived from scene features and the label text per element ID.
type collection struct {
	elements []layout.Element
	texts    map[string]string
}

// markerID names the marker element of an event.
func markerID(eventID string) string { return eventID + ".marker" }

// endpointID names the endpoint decoration of a campaign arrow.
func endpointID(campaignID string) string { return campaignID + ".endpoint" }

// collect turns scene features into placement elements. Campaign
// elements are not collected here; they depend on routed polylines and
// are derived by the route stage.
//
// An event whose anchor lies within PairDistance of a city pairs its
// marker with that city's label, so both boxes resolve atomically. Each
// event keeps its own separate title label either way.
func collect(s *scene.Scene, est footprint.Estimator, rules *Rules) *collection {
	col := &collection{
		texts: make(map[string]string, s.ElementCount()),
	}

	cityIdx := make(map[string]int, len(s.Cities))
	for _, c := range s.Cities {
		w, h := est.Estimate(c.Name, footprint.Style{Size: rules.cityFont(c.Level)})
		cityIdx[c.ID] = len(col.elements)
		col.add(layout.Element{
			ID:        c.ID,
			Kind:      layout.KindPointLabel,
			Point:     c.Position(),
			Priority:  cityTier(c.Level),
			W:         w,
			H:         h,
			Clearance: rules.cityRadius(c.Level),
			AnchorRef: c.ID,
		}, c.Name)
	}

	for _, ev := range s.Events {
		host := nearestCity(s, ev.Position(), rules.PairDistance)
		if host != "" {
			el := &col.elements[cityIdx[host]]
			el.Companion = &layout.Companion{
				ID:        markerID(ev.ID),
				Anchor:    ev.Position(),
				W:         rules.Sizes.Marker,
				H:         rules.Sizes.Marker,
				Clearance: rules.Clearance.Marker,
			}
		} else {
			col.add(layout.Element{
				ID:       markerID(ev.ID),
				Kind:     layout.KindEventMarker,
				Point:    ev.Position(),
				Priority: layout.TierEventMarker,
				W:        rules.Sizes.Marker,
				H:        rules.Sizes.Marker,
			}, "")
		}

		w, h := est.Estimate(ev.Title, footprint.Style{Size: rules.Fonts.Event})
		col.add(layout.Element{
			ID:        ev.ID,
			Kind:      layout.KindPointLabel,
			Point:     ev.Position(),
			Priority:  layout.TierEventLabel,
			W:         w,
			H:         h,
			AnchorRef: ev.ID,
		}, ev.Title)
	}

	for _, riv := range s.Rivers {
		w, h := est.Estimate(riv.Name, footprint.Style{Size: rules.Fonts.River})
		col.add(layout.Element{
			ID:       riv.ID,
			Kind:     layout.KindPathLabel,
			Path:     riv.Points,
			Priority: layout.TierRiver,
			W:        w,
			H:        h,
		}, riv.Name)
	}

	for _, reg := range s.Regions {
		w, h := est.Estimate(reg.Name, footprint.Style{
			Size:     rules.Fonts.Region,
			Tracking: rules.Fonts.RegionTracking,
		})
		col.add(layout.Element{
			ID:       reg.ID,
			Kind:     layout.KindPointLabel,
			Point:    reg.Position(),
			Priority: layout.TierRegion,
			W:        w,
			H:        h,
		}, reg.Name)
	}

	return col
}

func (c *collection) add(el layout.Element, text string) {
	c.elements = append(c.elements, el)
	if text != "" {
		c.texts[el.ID] = text
	}
}

// nearestCity returns the ID of the closest city within maxDist of p, or
// empty when none qualifies. Equidistant cities resolve to the first in
// scene order.
func nearestCity(s *scene.Scene, p geom.Point, maxDist float64) string {
	best := ""
	bestDist := maxDist
	for _, c := range s.Cities {
		if d := c.Position().Distance(p); d <= bestDist && (best == "" || d < bestDist) {
			best, bestDist = c.ID, d
		}
	}
	return best
}

// arrowsFrom builds routing inputs from the scene's campaigns. Arrows
// sharing a target city spread around its anchor circle; the approach
// bearing each arrow would prefer is the bearing from the target toward
// the arrow's last waypoint.
func arrowsFrom(s *scene.Scene, rules *Rules) []route.Arrow {
	if len(s.Campaigns) == 0 {
		return nil
	}
	cities := s.CityByID()

	arrows := make([]route.Arrow, len(s.Campaigns))
	byTarget := make(map[string][]int)
	for i, c := range s.Campaigns {
		target := cities[c.To]
		from := c.From.Point()
		if c.From.City != "" {
			from = cities[c.From.City].Position()
		}

		tail := from
		if len(c.Via) > 0 {
			tail = c.Via[len(c.Via)-1]
		}
		circle := anchor.Circle{
			Center: target.Position(),
			Radius: rules.cityRadius(target.Level),
		}

		arrows[i] = route.Arrow{
			ID:        c.ID,
			From:      from,
			Via:       c.Via,
			Target:    circle,
			Bearing:   anchor.Bearing(circle.Center, tail),
			Curvature: c.Curvature,
			Priority:  i,
		}
		byTarget[c.To] = append(byTarget[c.To], i)
	}

	// Distribute contested anchor circles.
	for _, idxs := range byTarget {
		if len(idxs) < 2 {
			continue
		}
		atts := make([]anchor.Attachment, len(idxs))
		for j, i := range idxs {
			atts[j] = anchor.Attachment{
				ID:       arrows[i].ID,
				Bearing:  arrows[i].Bearing,
				Priority: arrows[i].Priority,
			}
		}
		assigned := arrows[idxs[0]].Target.Distribute(atts)
		for j, i := range idxs {
			arrows[i].Bearing = assigned[j].Bearing
		}
	}

	return arrows
}

// campaignElements derives the per-arrow placement elements from routed
// polylines: a path label along the drawn route and an endpoint
// decoration near the tip. The endpoint shares the target city's anchor
// reference so its candidates skip the directions taken by the city
// label.
func campaignElements(s *scene.Scene, routed []route.Resolved, est footprint.Estimator, rules *Rules, col *collection) {
	for i, c := range s.Campaigns {
		res := routed[i]

		w, h := est.Estimate(c.Name, footprint.Style{Size: rules.Fonts.Campaign})
		col.add(layout.Element{
			ID:         c.ID,
			Kind:       layout.KindPathLabel,
			Path:       res.Points,
			Priority:   layout.TierCampaignLabel,
			W:          w,
			H:          h,
			PathOffset: rules.Route.Thickness / 2,
			Group:      c.ID,
		}, c.Name)

		col.add(layout.Element{
			ID:        endpointID(c.ID),
			Kind:      layout.KindArrowEndpoint,
			Point:     res.Tip,
			Priority:  layout.TierArrowEndpoint,
			W:         rules.Sizes.Endpoint,
			H:         rules.Sizes.Endpoint,
			AnchorRef: c.To,
			Group:     c.ID,
		}, "")
	}
}

package scene

import (
	"math"

	"github.com/matzehuels/placemat/pkg/errors"
)

// Validate checks the scene for the malformed input the placement
// engine assumes away: duplicate or unsafe identifiers, degenerate
// extents and polylines, out-of-range city levels, and campaign
// references to cities that do not exist. The first violation found is
// returned as a structured error.
func (s *Scene) Validate() error {
	if err := errors.ValidateName(s.Name); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScene, err, "scene name")
	}

	if s.Extent.Width() <= 0 || s.Extent.Height() <= 0 {
		return errors.New(errors.ErrCodeInvalidScene, "extent must have positive width and height")
	}

	seen := make(map[string]struct{}, s.ElementCount())
	claim := func(id string) error {
		if err := errors.ValidateID(id); err != nil {
			return err
		}
		if _, dup := seen[id]; dup {
			return errors.New(errors.ErrCodeInvalidScene, "duplicate id: %s", id)
		}
		seen[id] = struct{}{}
		return nil
	}

	cities := make(map[string]struct{}, len(s.Cities))
	for _, c := range s.Cities {
		if err := claim(c.ID); err != nil {
			return err
		}
		if err := errors.ValidateName(c.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidCity, err, "city %s", c.ID)
		}
		if c.Level < 1 || c.Level > 4 {
			return errors.New(errors.ErrCodeInvalidCity, "city %s: level must be 1..4, got %d", c.ID, c.Level)
		}
		cities[c.ID] = struct{}{}
	}

	for _, r := range s.Rivers {
		if err := claim(r.ID); err != nil {
			return err
		}
		if err := errors.ValidateName(r.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "river %s", r.ID)
		}
		if len(r.Points) < 2 {
			return errors.New(errors.ErrCodeInvalidPath, "river %s: needs at least 2 points, got %d", r.ID, len(r.Points))
		}
		if polylineDegenerate(r) {
			return errors.New(errors.ErrCodeInvalidPath, "river %s: polyline has zero length", r.ID)
		}
	}

	for _, rg := range s.Regions {
		if err := claim(rg.ID); err != nil {
			return err
		}
		if err := errors.ValidateName(rg.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "region %s", rg.ID)
		}
	}

	for _, e := range s.Events {
		if err := claim(e.ID); err != nil {
			return err
		}
		if err := errors.ValidateName(e.Title); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "event %s", e.ID)
		}
	}

	for _, c := range s.Campaigns {
		if err := claim(c.ID); err != nil {
			return err
		}
		if err := errors.ValidateName(c.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidCampaign, err, "campaign %s", c.ID)
		}
		if c.To == "" {
			return errors.New(errors.ErrCodeInvalidCampaign, "campaign %s: missing target city", c.ID)
		}
		if _, ok := cities[c.To]; !ok {
			return errors.New(errors.ErrCodeInvalidCampaign, "campaign %s: unknown target city %q", c.ID, c.To)
		}
		if c.From.City != "" {
			if _, ok := cities[c.From.City]; !ok {
				return errors.New(errors.ErrCodeInvalidCampaign, "campaign %s: unknown start city %q", c.ID, c.From.City)
			}
		}
		if math.Abs(c.Curvature) > 1 {
			return errors.New(errors.ErrCodeInvalidCampaign, "campaign %s: curvature must be within [-1, 1], got %v", c.ID, c.Curvature)
		}
	}

	return nil
}

func polylineDegenerate(r River) bool {
	for i := 1; i < len(r.Points); i++ {
		if r.Points[i] != r.Points[0] {
			return false
		}
	}
	return true
}

package deck

import (
	"errors"
	"fmt"
)

// ErrUnresolvedGeometry is returned when a placeholder's geometry
// cannot be found anywhere along the inheritance chain and no
// built-in default exists for its type. Well-formed decks never hit
// this; it marks a data-integrity problem in the input.
var ErrUnresolvedGeometry = errors.New("deck: cannot resolve effective geometry")

// builtinGeometry holds the schema-level fallback boxes for the
// standard placeholder types, in EMU on a 4:3 slide. They apply only
// when neither the layout nor the master defines the slot.
var builtinGeometry = map[PlaceholderType]Geometry{
	PhTitle:       {OffsetX: 457200, OffsetY: 274638, Width: 8229600, Height: 1143000},
	PhCenterTitle: {OffsetX: 685800, OffsetY: 2130425, Width: 7772400, Height: 1470025},
	PhSubtitle:    {OffsetX: 1371600, OffsetY: 3886200, Width: 6400800, Height: 1752600},
	PhBody:        {OffsetX: 457200, OffsetY: 1600200, Width: 8229600, Height: 4525963},
	PhDateTime:    {OffsetX: 457200, OffsetY: 6356350, Width: 2133600, Height: 365125},
	PhFooter:      {OffsetX: 3124200, OffsetY: 6356350, Width: 2895600, Height: 365125},
	PhSlideNumber: {OffsetX: 6553200, OffsetY: 6356350, Width: 2133600, Height: 365125},
	PhPicture:     {OffsetX: 457200, OffsetY: 1600200, Width: 8229600, Height: 4525963},
	PhTable:       {OffsetX: 457200, OffsetY: 1600200, Width: 8229600, Height: 4525963},
	PhChart:       {OffsetX: 457200, OffsetY: 1600200, Width: 8229600, Height: 4525963},
}

// ResolveGeometry returns the shape's effective geometry: the shape's
// own geometry when concrete, otherwise the first concrete geometry
// found walking the placeholder chain slide -> layout -> master, and
// finally the built-in default for the placeholder type. At each
// level an exact placeholder type+index match beats a type-only
// match. The result is a pure function of current document state.
func (s *Slide) ResolveGeometry(sh Shape) (Geometry, error) {
	b := sh.base()
	if b.geom != nil && b.geom.concrete() {
		return *b.geom, nil
	}
	if b.ph == nil {
		// An ordinary shape either has geometry or sits at the
		// origin with no extent; there is nothing to inherit.
		if b.geom != nil {
			return *b.geom, nil
		}
		return Geometry{}, nil
	}

	ref := *b.ph
	if s.layout != nil {
		if g := s.layout.lookupGeom(ref); g != nil {
			return withRotation(*g, b.geom), nil
		}
		if s.layout.master != nil {
			if g := s.layout.master.lookupGeom(ref); g != nil {
				return withRotation(*g, b.geom), nil
			}
		}
	}

	if g, ok := builtinGeometry[ref.Type]; ok {
		return withRotation(g, b.geom), nil
	}
	return Geometry{}, fmt.Errorf("%w: placeholder type %q idx %d", ErrUnresolvedGeometry, ref.Type, ref.Idx)
}

// withRotation carries the shape's own rotation onto an inherited box.
func withRotation(g Geometry, own *Geometry) Geometry {
	if own != nil {
		g.Rotation = own.Rotation
	}
	return g
}

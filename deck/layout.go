package deck

import "github.com/tsawler/lectern/opc"

// placeholderDef is a placeholder slot declared on a layout or
// master: the slot identity plus the geometry slides inherit.
type placeholderDef struct {
	ref  PlaceholderRef
	geom *Geometry
}

// SlideLayout is a slide template. Slides reference exactly one
// layout; placeholder shapes without explicit geometry inherit it
// from the layout's matching slot, then from the master.
type SlideLayout struct {
	partName     string
	name         string
	master       *SlideMaster
	placeholders []placeholderDef

	part *opc.Part
}

// Name returns the layout's display name ("Title Slide", "Blank").
func (l *SlideLayout) Name() string { return l.name }

// Master returns the layout's slide master.
func (l *SlideLayout) Master() *SlideMaster { return l.master }

// PartName returns the layout part's package name.
func (l *SlideLayout) PartName() string { return l.partName }

// lookupGeom finds the geometry for a placeholder reference. An exact
// type+index match wins over a type-only match.
func (l *SlideLayout) lookupGeom(ref PlaceholderRef) *Geometry {
	return lookupGeom(l.placeholders, ref)
}

// SlideMaster is the root template: layouts reference it, and it is
// the last stop of the placeholder inheritance chain before the
// built-in defaults.
type SlideMaster struct {
	partName     string
	placeholders []placeholderDef
	layouts      []*SlideLayout

	part *opc.Part
}

// Layouts returns the master's layouts in declaration order.
func (m *SlideMaster) Layouts() []*SlideLayout {
	out := make([]*SlideLayout, len(m.layouts))
	copy(out, m.layouts)
	return out
}

// PartName returns the master part's package name.
func (m *SlideMaster) PartName() string { return m.partName }

func (m *SlideMaster) lookupGeom(ref PlaceholderRef) *Geometry {
	return lookupGeom(m.placeholders, ref)
}

func lookupGeom(defs []placeholderDef, ref PlaceholderRef) *Geometry {
	// Exact type+index match first.
	for i := range defs {
		d := &defs[i]
		if d.ref.Type == ref.Type && d.ref.HasIdx == ref.HasIdx && d.ref.Idx == ref.Idx {
			if d.geom != nil && d.geom.concrete() {
				return d.geom
			}
		}
	}
	// Then type-only.
	for i := range defs {
		d := &defs[i]
		if d.ref.Type == ref.Type {
			if d.geom != nil && d.geom.concrete() {
				return d.geom
			}
		}
	}
	// A body slot can also satisfy an index-only reference: slides
	// frequently reference layout body placeholders by idx alone.
	if ref.Type == "" && ref.HasIdx {
		for i := range defs {
			d := &defs[i]
			if d.ref.HasIdx && d.ref.Idx == ref.Idx {
				if d.geom != nil && d.geom.concrete() {
					return d.geom
				}
			}
		}
	}
	return nil
}

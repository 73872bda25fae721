package deck

import (
	"errors"
	"testing"
)

func titleSlide(t *testing.T) (*Presentation, *Slide) {
	t.Helper()
	prs := New()
	layout, ok := prs.LayoutByName("Title Slide")
	if !ok {
		t.Fatal("Title Slide layout missing")
	}
	slide, err := prs.AddSlide(layout)
	if err != nil {
		t.Fatalf("Failed to add slide: %v", err)
	}
	return prs, slide
}

func TestExplicitGeometryWins(t *testing.T) {
	_, slide := titleSlide(t)
	box := slide.AddTextBox(Inches(1), Inches(2), Inches(3), Inches(1))
	got, err := slide.ResolveGeometry(box)
	if err != nil {
		t.Fatalf("ResolveGeometry failed: %v", err)
	}
	want := Geometry{OffsetX: Inches(1), OffsetY: Inches(2), Width: Inches(3), Height: Inches(1)}
	if got != want {
		t.Errorf("Geometry = %+v, want %+v", got, want)
	}
}

func TestPlaceholderInheritsLayoutGeometry(t *testing.T) {
	_, slide := titleSlide(t)
	var title Shape
	for _, sh := range slide.Shapes() {
		if ph, ok := sh.(*Placeholder); ok && ph.Type() == PhCenterTitle {
			title = sh
		}
	}
	if title == nil {
		t.Fatal("Cloned title placeholder missing")
	}
	if title.Geometry() != nil {
		t.Fatal("Cloned placeholder should have no explicit geometry")
	}
	got, err := slide.ResolveGeometry(title)
	if err != nil {
		t.Fatalf("ResolveGeometry failed: %v", err)
	}
	want := Geometry{OffsetX: 685800, OffsetY: 2130425, Width: 7772400, Height: 1470025}
	if got != want {
		t.Errorf("Inherited geometry = %+v, want %+v", got, want)
	}
}

func TestExactIndexMatchBeatsTypeMatch(t *testing.T) {
	defs := []placeholderDef{
		{ref: PlaceholderRef{Type: PhBody}, geom: &Geometry{OffsetX: 1, Width: 10, Height: 10}},
		{ref: PlaceholderRef{Type: PhBody, Idx: 1, HasIdx: true}, geom: &Geometry{OffsetX: 2, Width: 20, Height: 20}},
	}
	got := lookupGeom(defs, PlaceholderRef{Type: PhBody, Idx: 1, HasIdx: true})
	if got == nil || got.OffsetX != 2 {
		t.Errorf("lookupGeom = %+v, want the exact idx match", got)
	}
	got = lookupGeom(defs, PlaceholderRef{Type: PhBody, Idx: 9, HasIdx: true})
	if got == nil || got.OffsetX != 1 {
		t.Errorf("lookupGeom fallback = %+v, want the type-only match", got)
	}
}

func TestBuiltinGeometryFallback(t *testing.T) {
	_, slide := titleSlide(t)
	// A footer slot exists on the master but not the layout; a chart
	// slot exists on neither, so only the builtin box remains.
	ph := &Placeholder{Body: NewTextBody()}
	ph.ph = &PlaceholderRef{Type: PhChart}
	ph.slide = slide

	got, err := slide.ResolveGeometry(ph)
	if err != nil {
		t.Fatalf("ResolveGeometry failed: %v", err)
	}
	if got != builtinGeometry[PhChart] {
		t.Errorf("Fallback geometry = %+v, want builtin chart box", got)
	}
}

func TestUnresolvableGeometry(t *testing.T) {
	_, slide := titleSlide(t)
	ph := &Placeholder{Body: NewTextBody()}
	ph.ph = &PlaceholderRef{Type: PlaceholderType("mystery")}
	ph.slide = slide

	_, err := slide.ResolveGeometry(ph)
	if !errors.Is(err, ErrUnresolvedGeometry) {
		t.Errorf("Expected ErrUnresolvedGeometry, got %v", err)
	}
}

func TestRotationCarriesOntoInheritedBox(t *testing.T) {
	_, slide := titleSlide(t)
	var title *Placeholder
	for _, sh := range slide.Shapes() {
		if ph, ok := sh.(*Placeholder); ok && ph.Type() == PhCenterTitle {
			title = ph
		}
	}
	if title == nil {
		t.Fatal("Cloned title placeholder missing")
	}
	title.SetRotation(45)

	got, err := slide.ResolveGeometry(title)
	if err != nil {
		t.Fatalf("ResolveGeometry failed: %v", err)
	}
	if got.Rotation != 45 {
		t.Errorf("Rotation = %d, want 45", got.Rotation)
	}
	if got.Width != 7772400 {
		t.Errorf("Rotation should not disturb the inherited extent, got width %v", got.Width)
	}
}

func TestOrdinaryShapeWithoutGeometry(t *testing.T) {
	_, slide := titleSlide(t)
	box := slide.AddTextBox(0, 0, 0, 0)
	got, err := slide.ResolveGeometry(box)
	if err != nil {
		t.Fatalf("ResolveGeometry failed: %v", err)
	}
	if got != (Geometry{}) {
		t.Errorf("Expected zero geometry, got %+v", got)
	}
}

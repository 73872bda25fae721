package opc

import (
	"errors"
	"testing"
)

func TestAddPartDuplicate(t *testing.T) {
	pkg := NewPackage()
	if _, err := pkg.AddPart("/ppt/slides/slide1.xml", ContentTypeSlide, nil); err != nil {
		t.Fatalf("Failed to add part: %v", err)
	}
	_, err := pkg.AddPart("ppt/slides/slide1.xml", ContentTypeSlide, nil)
	if !errors.Is(err, ErrDuplicatePart) {
		t.Errorf("Expected ErrDuplicatePart, got %v", err)
	}
}

func TestAddPartRequiresContentType(t *testing.T) {
	pkg := NewPackage()
	_, err := pkg.AddPart("/ppt/slides/slide1.xml", "", nil)
	if !errors.Is(err, ErrUnknownContentType) {
		t.Errorf("Expected ErrUnknownContentType, got %v", err)
	}
}

func TestPartNameNormalization(t *testing.T) {
	pkg := NewPackage()
	if _, err := pkg.AddPart("ppt/presentation.xml", ContentTypePresentation, nil); err != nil {
		t.Fatalf("Failed to add part: %v", err)
	}
	if !pkg.HasPart("/ppt/presentation.xml") {
		t.Error("Part not found under normalized name")
	}
	part, err := pkg.Part("/ppt/presentation.xml")
	if err != nil {
		t.Fatalf("Part lookup failed: %v", err)
	}
	if part.Name() != "/ppt/presentation.xml" {
		t.Errorf("Part name = %q, want /ppt/presentation.xml", part.Name())
	}
}

func TestRemovePart(t *testing.T) {
	pkg := NewPackage()
	if _, err := pkg.AddPart("/ppt/media/image1.bin", "application/octet-stream", nil); err != nil {
		t.Fatalf("Failed to add part: %v", err)
	}
	pkg.RemovePart("/ppt/media/image1.bin")
	if pkg.HasPart("/ppt/media/image1.bin") {
		t.Error("Part still present after removal")
	}
	if _, ok := pkg.ContentTypes().TypeOf("/ppt/media/image1.bin"); ok {
		t.Error("Content-type override survived part removal")
	}
	if _, err := pkg.Part("/ppt/media/image1.bin"); !errors.Is(err, ErrNoSuchPart) {
		t.Errorf("Expected ErrNoSuchPart, got %v", err)
	}
}

func TestPartsOrder(t *testing.T) {
	pkg := NewPackage()
	names := []string{
		"/ppt/slides/slide10.xml",
		"/ppt/media/image1.png",
		"/ppt/slides/slide2.xml",
		"/ppt/presentation.xml",
		"/docProps/core.xml",
		"/ppt/charts/chart1.xml",
	}
	for _, name := range names {
		if _, err := pkg.AddPart(name, ContentTypeXML, nil); err != nil {
			t.Fatalf("Failed to add %s: %v", name, err)
		}
	}
	want := []string{
		"/docProps/core.xml",
		"/ppt/presentation.xml",
		"/ppt/slides/slide2.xml",
		"/ppt/slides/slide10.xml",
		"/ppt/charts/chart1.xml",
		"/ppt/media/image1.png",
	}
	parts := pkg.Parts()
	if len(parts) != len(want) {
		t.Fatalf("Parts() returned %d parts, want %d", len(parts), len(want))
	}
	for i, part := range parts {
		if part.Name() != want[i] {
			t.Errorf("Parts()[%d] = %s, want %s", i, part.Name(), want[i])
		}
	}
}

func TestResolve(t *testing.T) {
	pkg := NewPackage()
	pres, _ := pkg.AddPart("/ppt/presentation.xml", ContentTypePresentation, nil)
	if _, err := pkg.AddPart("/ppt/slides/slide1.xml", ContentTypeSlide, nil); err != nil {
		t.Fatalf("Failed to add slide: %v", err)
	}
	rel := pres.Relationships().Add(RelTypeSlide, "slides/slide1.xml")

	part, err := pkg.Resolve(pres, rel.ID)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if part.Name() != "/ppt/slides/slide1.xml" {
		t.Errorf("Resolved %s, want /ppt/slides/slide1.xml", part.Name())
	}

	if _, err := pkg.Resolve(pres, "rId99"); !errors.Is(err, ErrDanglingRelationship) {
		t.Errorf("Expected ErrDanglingRelationship for unknown id, got %v", err)
	}

	ext := pres.Relationships().AddExternal(RelTypeHyperlink, "https://example.com/")
	if _, err := pkg.Resolve(pres, ext.ID); !errors.Is(err, ErrDanglingRelationship) {
		t.Errorf("Expected ErrDanglingRelationship for external rel, got %v", err)
	}

	pkg.RemovePart("/ppt/slides/slide1.xml")
	if _, err := pkg.Resolve(pres, rel.ID); !errors.Is(err, ErrDanglingRelationship) {
		t.Errorf("Expected ErrDanglingRelationship after target removal, got %v", err)
	}
}

func TestValidateDetectsCycle(t *testing.T) {
	pkg := NewPackage()
	a, _ := pkg.AddPart("/a.xml", ContentTypeXML, nil)
	b, _ := pkg.AddPart("/b.xml", ContentTypeXML, nil)
	pkg.Relationships().Add(RelTypeOfficeDocument, "a.xml")
	a.Relationships().Add("http://example.com/rel/next", "b.xml")
	b.Relationships().Add("http://example.com/rel/next", "a.xml")

	if err := pkg.Validate(); !errors.Is(err, ErrCyclicReference) {
		t.Errorf("Expected ErrCyclicReference, got %v", err)
	}
}

func TestValidateAllowsPairedBackReferences(t *testing.T) {
	// Layouts and masters reference each other in every real
	// document; that loop must not read as a cycle.
	pkg := NewPackage()
	pres, _ := pkg.AddPart("/ppt/presentation.xml", ContentTypePresentation, nil)
	master, _ := pkg.AddPart("/ppt/slideMasters/slideMaster1.xml", ContentTypeSlideMaster, nil)
	layout, _ := pkg.AddPart("/ppt/slideLayouts/slideLayout1.xml", ContentTypeSlideLayout, nil)

	pkg.Relationships().Add(RelTypeOfficeDocument, "ppt/presentation.xml")
	pres.Relationships().Add(RelTypeSlideMaster, "slideMasters/slideMaster1.xml")
	master.Relationships().Add(RelTypeSlideLayout, "../slideLayouts/slideLayout1.xml")
	layout.Relationships().Add(RelTypeSlideMaster, "../slideMasters/slideMaster1.xml")

	if err := pkg.Validate(); err != nil {
		t.Errorf("Validate rejected layout/master pairing: %v", err)
	}
}

func TestReachable(t *testing.T) {
	pkg := NewPackage()
	pres, _ := pkg.AddPart("/ppt/presentation.xml", ContentTypePresentation, nil)
	slide, _ := pkg.AddPart("/ppt/slides/slide1.xml", ContentTypeSlide, nil)
	if _, err := pkg.AddPart("/ppt/media/image1.png", "image/png", nil); err != nil {
		t.Fatalf("Failed to add media: %v", err)
	}
	if _, err := pkg.AddPart("/ppt/media/image2.png", "image/png", nil); err != nil {
		t.Fatalf("Failed to add media: %v", err)
	}

	pkg.Relationships().Add(RelTypeOfficeDocument, "ppt/presentation.xml")
	pres.Relationships().Add(RelTypeSlide, "slides/slide1.xml")
	slide.Relationships().Add(RelTypeImage, "../media/image1.png")

	reachable := pkg.Reachable()
	for _, name := range []string{"/ppt/presentation.xml", "/ppt/slides/slide1.xml", "/ppt/media/image1.png"} {
		if !reachable[name] {
			t.Errorf("Expected %s to be reachable", name)
		}
	}
	if reachable["/ppt/media/image2.png"] {
		t.Error("Unreferenced media should not be reachable")
	}
}

func TestContentTypesDefaultsAndOverrides(t *testing.T) {
	ct := NewContentTypes()
	ct.SetDefault("png", "image/png")
	ct.register("/ppt/media/image1.png", "image/png")
	ct.register("/ppt/presentation.xml", ContentTypePresentation)

	if got, _ := ct.TypeOf("/ppt/media/image1.png"); got != "image/png" {
		t.Errorf("TypeOf media = %q, want image/png", got)
	}
	if got, _ := ct.TypeOf("/ppt/presentation.xml"); got != ContentTypePresentation {
		t.Errorf("TypeOf presentation = %q, want presentation main", got)
	}
	// The media part matched the extension default, so no override
	// should have been recorded for it.
	if _, ok := ct.overrides["/ppt/media/image1.png"]; ok {
		t.Error("Override recorded where the extension default sufficed")
	}
	if _, ok := ct.overrides["/ppt/presentation.xml"]; !ok {
		t.Error("Expected an override for the presentation part")
	}
}

func TestCompareNumericAware(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"/ppt/slides/slide2.xml", "/ppt/slides/slide10.xml", -1},
		{"/ppt/slides/slide10.xml", "/ppt/slides/slide2.xml", 1},
		{"/ppt/slides/slide3.xml", "/ppt/slides/slide3.xml", 0},
		{"/a", "/b", -1},
		{"/a", "/a10", -1},
	}
	for _, tt := range tests {
		if got := compareNumericAware(tt.a, tt.b); got != tt.want {
			t.Errorf("compareNumericAware(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

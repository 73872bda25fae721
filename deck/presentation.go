package deck

import (
	"crypto/sha1"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tsawler/lectern/opc"
)

// CoreProperties is the Dublin Core metadata block (docProps/core.xml).
type CoreProperties struct {
	Title          string
	Subject        string
	Creator        string
	Keywords       string
	Description    string
	LastModifiedBy string
}

// AppProperties is the application metadata block (docProps/app.xml).
type AppProperties struct {
	Application string
	Company     string
}

// Presentation is the singleton root of the document model. It owns
// the slide sequence (order is presentation order), the master/layout
// templates, shared media, and the underlying opc package.
//
// A Presentation is not safe for concurrent mutation; callers
// generating decks in parallel must use independent instances.
type Presentation struct {
	pkg      *opc.Package
	presPart *opc.Part

	slideWidth  EMU
	slideHeight EMU
	slides      []*Slide
	masters     []*SlideMaster
	media       map[[sha1.Size]byte]*MediaItem

	Core CoreProperties
	App  AppProperties

	// Metadata as loaded, compared at save time so edits to the
	// exported Core/App fields are picked up without explicit
	// dirty-marking.
	loadedCore CoreProperties
	loadedApp  AppProperties

	dirty bool   // presentation.xml or docProps need re-serialization
	extra []byte // unrecognized presentation.xml content, kept verbatim
}

// New creates an empty presentation with the default 4:3 slide size,
// one slide master, and the three stock layouts ("Title Slide",
// "Title and Content", "Blank").
func New() *Presentation {
	prs := &Presentation{
		pkg:         opc.NewPackage(),
		slideWidth:  SlideWidth4x3,
		slideHeight: SlideHeight4x3,
		media:       make(map[[sha1.Size]byte]*MediaItem),
		App:         AppProperties{Application: "lectern"},
		dirty:       true,
	}
	prs.scaffold()
	return prs
}

// Package exposes the underlying container. Most callers never need
// it; it is the escape hatch for part-level inspection.
func (prs *Presentation) Package() *opc.Package { return prs.pkg }

// SlideSize returns the slide width and height.
func (prs *Presentation) SlideSize() (EMU, EMU) {
	return prs.slideWidth, prs.slideHeight
}

// SetSlideSize sets the slide dimensions for the whole deck.
func (prs *Presentation) SetSlideSize(width, height EMU) {
	prs.slideWidth = width
	prs.slideHeight = height
	prs.markDirty()
}

// Slides returns the slides in presentation order. The slice is a
// copy; the slides themselves are shared.
func (prs *Presentation) Slides() []*Slide {
	out := make([]*Slide, len(prs.slides))
	copy(out, prs.slides)
	return out
}

// Masters returns the slide masters.
func (prs *Presentation) Masters() []*SlideMaster {
	out := make([]*SlideMaster, len(prs.masters))
	copy(out, prs.masters)
	return out
}

// Layouts returns every layout of every master, in declaration order.
func (prs *Presentation) Layouts() []*SlideLayout {
	var out []*SlideLayout
	for _, m := range prs.masters {
		out = append(out, m.layouts...)
	}
	return out
}

// LayoutByName returns the first layout with the given display name.
func (prs *Presentation) LayoutByName(name string) (*SlideLayout, bool) {
	for _, l := range prs.Layouts() {
		if l.name == name {
			return l, true
		}
	}
	return nil, false
}

func (prs *Presentation) markDirty() { prs.dirty = true }

// AddSlide appends a slide using the given layout. A nil layout uses
// the first available one. Content placeholders declared on the
// layout are cloned onto the slide (empty, inheriting geometry).
func (prs *Presentation) AddSlide(layout *SlideLayout) (*Slide, error) {
	if layout == nil {
		layouts := prs.Layouts()
		if len(layouts) == 0 {
			return nil, fmt.Errorf("deck: presentation has no slide layouts")
		}
		layout = layouts[0]
	}

	partName := prs.nextPartName("/ppt/slides/slide", ".xml")
	part, err := prs.pkg.AddPart(partName, opc.ContentTypeSlide, nil)
	if err != nil {
		return nil, err
	}
	part.Relationships().Add(opc.RelTypeSlideLayout, relTarget(partName, layout.partName))

	s := &Slide{
		prs:         prs,
		part:        part,
		layout:      layout,
		creationID:  strings.ToUpper("{" + uuid.NewString() + "}"),
		nextShapeID: 2,
		dirty:       true,
	}
	s.clonePlaceholders()
	prs.slides = append(prs.slides, s)
	prs.markDirty()
	return s, nil
}

// clonePlaceholders copies the layout's content placeholders onto a
// new slide, the way presentation software does when a slide is
// created from a layout. Date, footer, and slide-number slots are
// not cloned.
func (s *Slide) clonePlaceholders() {
	if s.layout == nil {
		return
	}
	for _, def := range s.layout.placeholders {
		switch def.ref.Type {
		case PhDateTime, PhFooter, PhSlideNumber:
			continue
		}
		ref := def.ref
		ph := &Placeholder{Body: NewTextBody()}
		ph.ph = &ref
		ph.id = s.allocShapeID()
		ph.name = placeholderName(ref.Type, ph.id)
		ph.slide = s
		ph.Body.attach(s)
		s.shapes = append(s.shapes, ph)
	}
}

func placeholderName(t PlaceholderType, id int) string {
	switch t {
	case PhTitle, PhCenterTitle:
		return fmt.Sprintf("Title %d", id)
	case PhSubtitle:
		return fmt.Sprintf("Subtitle %d", id)
	default:
		return fmt.Sprintf("Content Placeholder %d", id)
	}
}

// RemoveSlide removes the slide at index, cascading to its owned
// parts. Media shared with other slides survives; exclusively owned
// charts, workbook caches, and media are swept at save time.
func (prs *Presentation) RemoveSlide(index int) error {
	if index < 0 || index >= len(prs.slides) {
		return fmt.Errorf("%w: slide %d of %d", ErrOutOfRange, index, len(prs.slides))
	}
	s := prs.slides[index]
	prs.pkg.RemovePart(s.part.Name())
	if rel, ok := prs.presPart.Relationships().ByTarget(relTarget(prs.presPart.Name(), s.part.Name())); ok {
		prs.presPart.Relationships().Remove(rel.ID)
	}
	prs.slides = append(prs.slides[:index], prs.slides[index+1:]...)
	prs.markDirty()
	return nil
}

// MoveSlide moves the slide at from to position to, shifting the
// slides in between.
func (prs *Presentation) MoveSlide(from, to int) error {
	if from < 0 || from >= len(prs.slides) || to < 0 || to >= len(prs.slides) {
		return fmt.Errorf("%w: move %d -> %d of %d", ErrOutOfRange, from, to, len(prs.slides))
	}
	if from == to {
		return nil
	}
	s := prs.slides[from]
	prs.slides = append(prs.slides[:from], prs.slides[from+1:]...)
	prs.slides = append(prs.slides[:to], append([]*Slide{s}, prs.slides[to:]...)...)
	prs.markDirty()
	return nil
}

// nextPartName allocates the lowest-numbered free part name with the
// given prefix and suffix.
func (prs *Presentation) nextPartName(prefix, suffix string) string {
	for n := 1; ; n++ {
		name := fmt.Sprintf("%s%d%s", prefix, n, suffix)
		if !prs.pkg.HasPart(name) {
			return name
		}
	}
}

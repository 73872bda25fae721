package deck

import (
	"fmt"

	"github.com/tsawler/lectern/opc"
)

// Slide is one slide: an ordered sequence of shapes (order is
// z-order, later shapes draw on top) and a reference to the layout it
// was created from.
type Slide struct {
	prs    *Presentation
	part   *opc.Part
	layout *SlideLayout

	shapes      []Shape
	notes       string
	hasNotes    bool
	creationID  string
	nextShapeID int

	dirty bool
	extra []byte // unrecognized slide-level XML, kept verbatim
}

// PartName returns the slide part's package name.
func (s *Slide) PartName() string { return s.part.Name() }

// Layout returns the slide's layout.
func (s *Slide) Layout() *SlideLayout { return s.layout }

func (s *Slide) markDirty() {
	s.dirty = true
	if s.part != nil {
		s.part.MarkDirty()
	}
}

func (s *Slide) allocShapeID() int {
	id := s.nextShapeID
	s.nextShapeID++
	return id
}

// Shapes returns the slide's shapes in z-order. The slice is a copy;
// mutating the slide while iterating a previously obtained view is
// undefined.
func (s *Slide) Shapes() []Shape {
	out := make([]Shape, len(s.shapes))
	copy(out, s.shapes)
	return out
}

// AddTextBox adds an empty text box with the given geometry and
// returns it.
func (s *Slide) AddTextBox(x, y, w, h EMU) *TextBox {
	tb := &TextBox{Body: NewTextBody()}
	tb.id = s.allocShapeID()
	tb.name = fmt.Sprintf("TextBox %d", tb.id)
	tb.geom = &Geometry{OffsetX: x, OffsetY: y, Width: w, Height: h}
	tb.slide = s
	tb.Body.attach(s)
	s.shapes = append(s.shapes, tb)
	s.markDirty()
	return tb
}

// AddAutoShape adds a preset-geometry shape ("rect", "roundRect",
// "ellipse", "rightArrow", ...) and returns it.
func (s *Slide) AddAutoShape(preset string, x, y, w, h EMU) *AutoShape {
	a := &AutoShape{Preset: preset, Body: NewTextBody()}
	a.id = s.allocShapeID()
	a.name = fmt.Sprintf("Shape %d", a.id)
	a.geom = &Geometry{OffsetX: x, OffsetY: y, Width: w, Height: h}
	a.slide = s
	a.Body.attach(s)
	s.shapes = append(s.shapes, a)
	s.markDirty()
	return a
}

// AddPicture adds a picture from raw image bytes. Identical bytes
// added twice share one media part. When w or h is zero both are
// taken from the image's natural size; if only one is zero it is
// scaled to preserve the aspect ratio.
func (s *Slide) AddPicture(img []byte, x, y, w, h EMU) (*Picture, error) {
	m, err := s.prs.addMedia(img)
	if err != nil {
		return nil, err
	}
	if w == 0 && h == 0 {
		w, h = m.NativeWidth, m.NativeHeight
	} else if w == 0 && m.NativeHeight > 0 {
		w = EMU(int64(h) * int64(m.NativeWidth) / int64(m.NativeHeight))
	} else if h == 0 && m.NativeWidth > 0 {
		h = EMU(int64(w) * int64(m.NativeHeight) / int64(m.NativeWidth))
	}

	p := &Picture{media: m}
	p.id = s.allocShapeID()
	p.name = fmt.Sprintf("Picture %d", p.id)
	p.geom = &Geometry{OffsetX: x, OffsetY: y, Width: w, Height: h}
	p.slide = s
	s.shapes = append(s.shapes, p)
	s.markDirty()
	return p, nil
}

// AddTable adds a rows x cols table with uniform cell sizes derived
// from the overall extent.
func (s *Slide) AddTable(rows, cols int, x, y, w, h EMU) (*Table, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: table must have at least 1 row and 1 column", ErrOutOfRange)
	}
	t := newTable(rows, cols, w, h)
	t.id = s.allocShapeID()
	t.name = fmt.Sprintf("Table %d", t.id)
	t.geom = &Geometry{OffsetX: x, OffsetY: y, Width: w, Height: h}
	t.attach(s)
	s.shapes = append(s.shapes, t)
	s.markDirty()
	return t, nil
}

// AddChart adds an empty chart of the given kind. Categories and
// series are populated afterwards via SetCategories and AddSeries;
// the chart part and its workbook cache exist from this point on and
// are regenerated on every mutation.
func (s *Slide) AddChart(kind ChartKind, x, y, w, h EMU) (*Chart, error) {
	chartName := s.prs.nextPartName("/ppt/charts/chart", ".xml")
	chartPart, err := s.prs.pkg.AddPart(chartName, opc.ContentTypeChart, nil)
	if err != nil {
		return nil, err
	}
	wbName := s.prs.nextPartName("/ppt/embeddings/Microsoft_Excel_Worksheet", ".xlsx")
	wbPart, err := s.prs.pkg.AddPart(wbName, opc.ContentTypeWorkbook, nil)
	if err != nil {
		s.prs.pkg.RemovePart(chartName)
		return nil, err
	}
	chartPart.Relationships().Add(opc.RelTypePackage, relTarget(chartName, wbName))

	c := &Chart{kind: kind, part: chartPart, wbPart: wbPart}
	c.id = s.allocShapeID()
	c.name = fmt.Sprintf("Chart %d", c.id)
	c.geom = &Geometry{OffsetX: x, OffsetY: y, Width: w, Height: h}
	c.slide = s
	s.shapes = append(s.shapes, c)
	c.sync()
	s.markDirty()
	return c, nil
}

// RemoveShape removes the shape from the slide and reports whether it
// was present. Shared media referenced by other pictures is kept;
// parts no longer referenced by anything are swept at save time.
func (s *Slide) RemoveShape(sh Shape) bool {
	for i, existing := range s.shapes {
		if existing == sh {
			s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
			s.markDirty()
			return true
		}
	}
	return false
}

// Title returns the text of the slide's title placeholder, or "".
func (s *Slide) Title() string {
	if ph := s.findTitle(); ph != nil {
		return ph.Body.Text()
	}
	return ""
}

// SetTitle sets the text of the slide's title placeholder. It reports
// whether a title placeholder was found.
func (s *Slide) SetTitle(title string) bool {
	if ph := s.findTitle(); ph != nil {
		ph.Body.SetText(title)
		return true
	}
	return false
}

func (s *Slide) findTitle() *Placeholder {
	for _, sh := range s.shapes {
		ph, ok := sh.(*Placeholder)
		if !ok {
			continue
		}
		switch ph.Type() {
		case PhTitle, PhCenterTitle:
			return ph
		}
	}
	return nil
}

// Notes returns the slide's speaker notes.
func (s *Slide) Notes() string { return s.notes }

// SetNotes sets the slide's speaker notes.
func (s *Slide) SetNotes(text string) {
	s.notes = text
	s.hasNotes = true
	s.markDirty()
}

package deck

// ShapeKind discriminates the concrete shape variants.
type ShapeKind int

// Shape kinds.
const (
	KindTextBox ShapeKind = iota
	KindAutoShape
	KindPicture
	KindTable
	KindChart
	KindPlaceholder
	KindRaw
)

func (k ShapeKind) String() string {
	switch k {
	case KindTextBox:
		return "text box"
	case KindAutoShape:
		return "auto shape"
	case KindPicture:
		return "picture"
	case KindTable:
		return "table"
	case KindChart:
		return "chart"
	case KindPlaceholder:
		return "placeholder"
	case KindRaw:
		return "preserved shape"
	}
	return "unknown"
}

// PlaceholderType identifies a placeholder slot on a layout or master.
type PlaceholderType string

// Placeholder types from the presentation schema.
const (
	PhTitle       PlaceholderType = "title"
	PhCenterTitle PlaceholderType = "ctrTitle"
	PhSubtitle    PlaceholderType = "subTitle"
	PhBody        PlaceholderType = "body"
	PhDateTime    PlaceholderType = "dt"
	PhFooter      PlaceholderType = "ftr"
	PhSlideNumber PlaceholderType = "sldNum"
	PhPicture     PlaceholderType = "pic"
	PhTable       PlaceholderType = "tbl"
	PhChart       PlaceholderType = "chart"
)

// PlaceholderRef links a shape to a placeholder slot by type and
// index. HasIdx distinguishes an explicit idx="0" from no index.
type PlaceholderRef struct {
	Type   PlaceholderType
	Idx    int
	HasIdx bool
}

// Shape is the interface all slide content implements. Iteration
// order of a slide's shapes is z-order: later shapes draw on top.
type Shape interface {
	Kind() ShapeKind
	// Name returns the shape's display name ("Title 1", "Table 3").
	Name() string
	// Geometry returns the shape's explicit geometry, or nil when the
	// shape inherits it through the placeholder chain.
	Geometry() *Geometry
	// Placeholder returns the placeholder reference, or nil for
	// ordinary shapes.
	Placeholder() *PlaceholderRef

	base() *baseShape
}

// baseShape carries the properties common to every shape variant.
type baseShape struct {
	id        int // drawing object id, unique per slide
	name      string
	geom      *Geometry
	ph        *PlaceholderRef
	extra     []byte // unrecognized children preceding the text body, re-emitted verbatim
	extraTail []byte // unrecognized children following the text body (extLst)

	slide *Slide
}

func (b *baseShape) Name() string { return b.name }

func (b *baseShape) Geometry() *Geometry { return b.geom }

func (b *baseShape) Placeholder() *PlaceholderRef { return b.ph }

func (b *baseShape) base() *baseShape { return b }

func (b *baseShape) touch() {
	if b.slide != nil {
		b.slide.markDirty()
	}
}

// SetGeometry gives the shape explicit geometry, overriding any
// inherited placeholder geometry.
func (b *baseShape) SetGeometry(g Geometry) {
	b.geom = &g
	b.touch()
}

// SetName sets the shape's display name.
func (b *baseShape) SetName(name string) {
	b.name = name
	b.touch()
}

// TextBox is a free-form text frame.
type TextBox struct {
	baseShape
	Body *TextBody
}

// Kind returns KindTextBox.
func (t *TextBox) Kind() ShapeKind { return KindTextBox }

// AutoShape is a preset-geometry shape (rectangle, ellipse, arrow...)
// with optional text content and solid fill/line colors.
type AutoShape struct {
	baseShape
	Preset    string // preset geometry name: "rect", "roundRect", "ellipse", "rightArrow", ...
	FillColor string // "RRGGBB" hex, empty for no explicit fill
	LineColor string // "RRGGBB" hex, empty for no explicit line
	Body      *TextBody
}

// Kind returns KindAutoShape.
func (a *AutoShape) Kind() ShapeKind { return KindAutoShape }

// SetFill sets a solid fill color as "RRGGBB" hex.
func (a *AutoShape) SetFill(hex string) *AutoShape {
	a.FillColor = hex
	a.touch()
	return a
}

// SetLine sets a solid line color as "RRGGBB" hex.
func (a *AutoShape) SetLine(hex string) *AutoShape {
	a.LineColor = hex
	a.touch()
	return a
}

// SetRotation sets the shape rotation in clockwise degrees,
// normalized to 0-359. A shape without explicit geometry gains one
// with zero offsets and extents.
func (b *baseShape) SetRotation(degrees int) {
	if b.geom == nil {
		b.geom = &Geometry{}
	}
	b.geom.Rotation = ((degrees % 360) + 360) % 360
	b.touch()
}

// Placeholder is a shape occupying a layout-defined slot. Its
// geometry, when unset, resolves through the slide's layout and
// master; see [Slide.ResolveGeometry].
type Placeholder struct {
	baseShape
	Body *TextBody
}

// Kind returns KindPlaceholder.
func (p *Placeholder) Kind() ShapeKind { return KindPlaceholder }

// Type returns the placeholder's slot type.
func (p *Placeholder) Type() PlaceholderType {
	if p.ph == nil {
		return ""
	}
	return p.ph.Type
}

// rawShape holds an unmodeled shape-tree child (connector, group,
// ink) verbatim. It keeps its slot in the shape order, so editing the
// slide does not change where the content stacks.
type rawShape struct {
	baseShape
	raw []byte
}

// Kind returns KindRaw.
func (r *rawShape) Kind() ShapeKind { return KindRaw }

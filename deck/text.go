package deck

import "strings"

// Alignment is a paragraph's horizontal alignment.
type Alignment string

// Paragraph alignments. The zero value inherits from the placeholder
// or the defaults.
const (
	AlignDefault Alignment = ""
	AlignLeft    Alignment = "l"
	AlignCenter  Alignment = "ctr"
	AlignRight   Alignment = "r"
	AlignJustify Alignment = "just"
)

// Anchor is a text body's vertical anchoring within its shape.
type Anchor string

// Text anchors.
const (
	AnchorDefault Anchor = ""
	AnchorTop     Anchor = "t"
	AnchorMiddle  Anchor = "ctr"
	AnchorBottom  Anchor = "b"
)

// Bullet describes a paragraph's bullet treatment.
type Bullet struct {
	// None suppresses bullets even at indented levels.
	None bool
	// Char renders a character bullet ("•", "-", ...).
	Char string
	// AutoNum renders an automatic number; the value is the scheme
	// ("arabicPeriod", "alphaLcParenR", ...).
	AutoNum string
}

// TextBody is the text content of a shape or table cell: an ordered
// sequence of paragraphs.
type TextBody struct {
	Paragraphs []*Paragraph
	Anchor     Anchor
	WordWrap   *bool

	owner *Slide
}

// NewTextBody returns a text body with a single empty paragraph.
func NewTextBody() *TextBody {
	tb := &TextBody{}
	tb.Paragraphs = []*Paragraph{{body: tb}}
	return tb
}

func (tb *TextBody) touch() {
	if tb.owner != nil {
		tb.owner.markDirty()
	}
}

// attach wires the body (and its paragraphs) to the slide that owns
// the enclosing shape, for dirty tracking.
func (tb *TextBody) attach(s *Slide) {
	tb.owner = s
	for _, p := range tb.Paragraphs {
		p.body = tb
		for _, r := range p.Runs {
			r.para = p
		}
	}
}

// SetText replaces the body's content with plain text. Newlines start
// new paragraphs.
func (tb *TextBody) SetText(text string) {
	lines := strings.Split(text, "\n")
	tb.Paragraphs = make([]*Paragraph, 0, len(lines))
	for _, line := range lines {
		p := &Paragraph{body: tb}
		if line != "" {
			p.Runs = []*Run{{Text: line, para: p}}
		}
		tb.Paragraphs = append(tb.Paragraphs, p)
	}
	tb.touch()
}

// Text returns the body's plain text with paragraphs joined by
// newlines.
func (tb *TextBody) Text() string {
	var sb strings.Builder
	for i, p := range tb.Paragraphs {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(p.Text())
	}
	return sb.String()
}

// AddParagraph appends an empty paragraph and returns it.
func (tb *TextBody) AddParagraph() *Paragraph {
	p := &Paragraph{body: tb}
	tb.Paragraphs = append(tb.Paragraphs, p)
	tb.touch()
	return p
}

// SetAnchor sets the vertical anchor of the body.
func (tb *TextBody) SetAnchor(a Anchor) *TextBody {
	tb.Anchor = a
	tb.touch()
	return tb
}

// SetWordWrap controls word wrapping inside the shape.
func (tb *TextBody) SetWordWrap(wrap bool) *TextBody {
	tb.WordWrap = &wrap
	tb.touch()
	return tb
}

// Paragraph is one paragraph of a text body: an ordered sequence of
// runs plus paragraph-level formatting.
type Paragraph struct {
	Runs      []*Run
	Alignment Alignment
	Level     int
	Bullet    Bullet

	body *TextBody
}

func (p *Paragraph) touch() {
	if p.body != nil {
		p.body.touch()
	}
}

// Text returns the concatenated run text.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// AddRun appends a run with the given text and returns it.
func (p *Paragraph) AddRun(text string) *Run {
	r := &Run{Text: text, para: p}
	p.Runs = append(p.Runs, r)
	p.touch()
	return r
}

// SetAlignment sets the paragraph's horizontal alignment.
func (p *Paragraph) SetAlignment(a Alignment) *Paragraph {
	p.Alignment = a
	p.touch()
	return p
}

// SetLevel sets the indent level (0-8).
func (p *Paragraph) SetLevel(level int) *Paragraph {
	p.Level = level
	p.touch()
	return p
}

// SetBulletChar gives the paragraph a character bullet.
func (p *Paragraph) SetBulletChar(char string) *Paragraph {
	p.Bullet = Bullet{Char: char}
	p.touch()
	return p
}

// SetAutoNumber gives the paragraph an automatic number with the given
// scheme, e.g. "arabicPeriod".
func (p *Paragraph) SetAutoNumber(scheme string) *Paragraph {
	p.Bullet = Bullet{AutoNum: scheme}
	p.touch()
	return p
}

// SetNoBullet suppresses bullets for the paragraph.
func (p *Paragraph) SetNoBullet() *Paragraph {
	p.Bullet = Bullet{None: true}
	p.touch()
	return p
}

// Run is a span of text sharing one set of character properties.
// Zero-valued properties inherit from the placeholder chain.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
	SizePts   float64 // font size in points, 0 inherits
	Color     string  // "RRGGBB" hex, empty inherits
	Font      string  // typeface name, empty inherits

	para *Paragraph
}

func (r *Run) touch() {
	if r.para != nil {
		r.para.touch()
	}
}

// SetText replaces the run's text.
func (r *Run) SetText(text string) *Run { r.Text = text; r.touch(); return r }

// SetBold sets bold.
func (r *Run) SetBold(b bool) *Run { r.Bold = b; r.touch(); return r }

// SetItalic sets italic.
func (r *Run) SetItalic(i bool) *Run { r.Italic = i; r.touch(); return r }

// SetUnderline sets single underline.
func (r *Run) SetUnderline(u bool) *Run { r.Underline = u; r.touch(); return r }

// SetSize sets the font size in points.
func (r *Run) SetSize(points float64) *Run { r.SizePts = points; r.touch(); return r }

// SetColor sets the font color as "RRGGBB" hex.
func (r *Run) SetColor(hex string) *Run { r.Color = hex; r.touch(); return r }

// SetFont sets the typeface.
func (r *Run) SetFont(name string) *Run { r.Font = name; r.touch(); return r }

package deck

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ParagraphsFromHTML converts a small HTML fragment into paragraphs.
// Supported markup: <p>, <br>, <ul> and <ol> with <li>, and the
// inline styles <b>/<strong>, <i>/<em>, <u>. Nested lists indent one
// level per nesting. Unknown tags are ignored; their text content is
// kept.
func ParagraphsFromHTML(fragment string) ([]*Paragraph, error) {
	z := html.NewTokenizer(strings.NewReader(fragment))

	var (
		paras     []*Paragraph
		current   *Paragraph
		bold      int
		italic    int
		underline int
		lists     []string // "ul" / "ol" nesting
		// Collapsed whitespace at a run boundary still separates
		// words; it is re-attached to the next run's text.
		pendingSpace bool
	)

	ensure := func() *Paragraph {
		if current == nil {
			current = &Paragraph{}
			paras = append(paras, current)
		}
		return current
	}

	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, fmt.Errorf("deck: parsing html fragment: %w", err)
			}
			return paras, nil

		case html.TextToken:
			raw := string(z.Text())
			text := collapseSpace(raw)
			if text == "" {
				if raw != "" && current != nil && len(current.Runs) > 0 {
					pendingSpace = true
				}
				continue
			}
			p := ensure()
			if len(p.Runs) > 0 && (pendingSpace || startsWithSpace(raw)) {
				text = " " + text
			}
			pendingSpace = endsWithSpace(raw)
			r := p.AddRun(text)
			r.Bold = bold > 0
			r.Italic = italic > 0
			r.Underline = underline > 0

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "p", "br":
				current = &Paragraph{}
				paras = append(paras, current)
				pendingSpace = false
			case "ul", "ol":
				lists = append(lists, string(name))
			case "li":
				current = &Paragraph{Level: len(lists) - 1}
				pendingSpace = false
				if len(lists) > 0 && lists[len(lists)-1] == "ol" {
					current.Bullet = Bullet{AutoNum: "arabicPeriod"}
				} else {
					current.Bullet = Bullet{Char: "•"}
				}
				paras = append(paras, current)
			case "b", "strong":
				bold++
			case "i", "em":
				italic++
			case "u":
				underline++
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "p", "li":
				current = nil
				pendingSpace = false
			case "ul", "ol":
				if len(lists) > 0 {
					lists = lists[:len(lists)-1]
				}
				current = nil
				pendingSpace = false
			case "b", "strong":
				if bold > 0 {
					bold--
				}
			case "i", "em":
				if italic > 0 {
					italic--
				}
			case "u":
				if underline > 0 {
					underline--
				}
			}
		}
	}
}

// SetHTML replaces the body's content with paragraphs converted from
// an HTML fragment; see [ParagraphsFromHTML].
func (tb *TextBody) SetHTML(fragment string) error {
	paras, err := ParagraphsFromHTML(fragment)
	if err != nil {
		return err
	}
	if len(paras) == 0 {
		paras = []*Paragraph{{}}
	}
	tb.Paragraphs = paras
	for _, p := range paras {
		p.body = tb
		for _, r := range p.Runs {
			r.para = p
		}
	}
	tb.touch()
	return nil
}

// collapseSpace trims and squeezes runs of whitespace to single
// spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func startsWithSpace(s string) bool {
	return s != "" && strings.TrimLeft(s, " \t\n\r") != s
}

func endsWithSpace(s string) bool {
	return s != "" && strings.TrimRight(s, " \t\n\r") != s
}

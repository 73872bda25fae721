package deck

import "testing"

func TestParagraphsFromHTML(t *testing.T) {
	paras, err := ParagraphsFromHTML(`<p>Hello <b>world</b></p><p>Second</p>`)
	if err != nil {
		t.Fatalf("ParagraphsFromHTML failed: %v", err)
	}
	if len(paras) != 2 {
		t.Fatalf("Got %d paragraphs, want 2", len(paras))
	}
	if got := paras[0].Text(); got != "Hello world" {
		t.Errorf("First paragraph = %q", got)
	}
	if len(paras[0].Runs) != 2 {
		t.Fatalf("First paragraph has %d runs, want 2", len(paras[0].Runs))
	}
	if paras[0].Runs[0].Bold {
		t.Error("Plain run marked bold")
	}
	if !paras[0].Runs[1].Bold {
		t.Error("Bold run not marked bold")
	}
	if got := paras[1].Text(); got != "Second" {
		t.Errorf("Second paragraph = %q", got)
	}
}

func TestHTMLInlineStyles(t *testing.T) {
	paras, err := ParagraphsFromHTML(`<p><em>a</em><strong><u>b</u></strong></p>`)
	if err != nil {
		t.Fatalf("ParagraphsFromHTML failed: %v", err)
	}
	runs := paras[0].Runs
	if len(runs) != 2 {
		t.Fatalf("Got %d runs, want 2", len(runs))
	}
	if !runs[0].Italic || runs[0].Bold {
		t.Errorf("First run styles: bold=%v italic=%v", runs[0].Bold, runs[0].Italic)
	}
	if !runs[1].Bold || !runs[1].Underline || runs[1].Italic {
		t.Errorf("Second run styles: bold=%v italic=%v underline=%v", runs[1].Bold, runs[1].Italic, runs[1].Underline)
	}
}

func TestHTMLLists(t *testing.T) {
	paras, err := ParagraphsFromHTML(`<ul><li>one</li><li>two<ol><li>nested</li></ol></li></ul>`)
	if err != nil {
		t.Fatalf("ParagraphsFromHTML failed: %v", err)
	}
	if len(paras) != 3 {
		t.Fatalf("Got %d paragraphs, want 3", len(paras))
	}
	if paras[0].Level != 0 || paras[0].Bullet.Char != "•" {
		t.Errorf("First item: level=%d bullet=%+v", paras[0].Level, paras[0].Bullet)
	}
	if paras[2].Level != 1 {
		t.Errorf("Nested item level = %d, want 1", paras[2].Level)
	}
	if paras[2].Bullet.AutoNum != "arabicPeriod" {
		t.Errorf("Nested ordered item bullet = %+v", paras[2].Bullet)
	}
}

func TestHTMLLineBreaks(t *testing.T) {
	paras, err := ParagraphsFromHTML(`first<br>second`)
	if err != nil {
		t.Fatalf("ParagraphsFromHTML failed: %v", err)
	}
	if len(paras) != 2 {
		t.Fatalf("Got %d paragraphs, want 2", len(paras))
	}
	if paras[0].Text() != "first" || paras[1].Text() != "second" {
		t.Errorf("Paragraphs = %q, %q", paras[0].Text(), paras[1].Text())
	}
}

func TestHTMLWhitespaceCollapse(t *testing.T) {
	paras, err := ParagraphsFromHTML("<p>  spaced \n\t out  </p>")
	if err != nil {
		t.Fatalf("ParagraphsFromHTML failed: %v", err)
	}
	if got := paras[0].Text(); got != "spaced out" {
		t.Errorf("Collapsed text = %q", got)
	}
}

func TestHTMLUnknownTagsKeepText(t *testing.T) {
	paras, err := ParagraphsFromHTML(`<p><span class="x">kept</span></p>`)
	if err != nil {
		t.Fatalf("ParagraphsFromHTML failed: %v", err)
	}
	if got := paras[0].Text(); got != "kept" {
		t.Errorf("Text = %q", got)
	}
}

func TestSetHTML(t *testing.T) {
	tb := NewTextBody()
	if err := tb.SetHTML(`<p>alpha</p><p><i>beta</i></p>`); err != nil {
		t.Fatalf("SetHTML failed: %v", err)
	}
	if len(tb.Paragraphs) != 2 {
		t.Fatalf("Body has %d paragraphs, want 2", len(tb.Paragraphs))
	}
	if !tb.Paragraphs[1].Runs[0].Italic {
		t.Error("Italic style lost")
	}
	if got := tb.Text(); got != "alpha\nbeta" {
		t.Errorf("Text = %q", got)
	}

	// An empty fragment leaves a body with one empty paragraph, the
	// same shape NewTextBody produces.
	if err := tb.SetHTML(""); err != nil {
		t.Fatalf("SetHTML failed: %v", err)
	}
	if len(tb.Paragraphs) != 1 || tb.Paragraphs[0].Text() != "" {
		t.Error("Empty fragment should reset to one empty paragraph")
	}
}

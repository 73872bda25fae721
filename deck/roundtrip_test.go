package deck

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tsawler/lectern/opc"
)

func buildDeck(t *testing.T) *Presentation {
	t.Helper()
	prs := New()
	prs.Core.Title = "Round Trip"
	prs.Core.Creator = "tester"

	layout, _ := prs.LayoutByName("Title Slide")
	s1, err := prs.AddSlide(layout)
	if err != nil {
		t.Fatalf("Failed to add slide: %v", err)
	}
	s1.SetTitle("Quarterly Review")
	s1.SetNotes("Open with the summary.")

	box := s1.AddTextBox(Inches(1), Inches(4), Inches(4), Inches(1))
	box.Body.SetText("Prepared by the data team")
	box.Body.Paragraphs[0].Runs[0].SetItalic(true).SetSize(14)

	blank, _ := prs.LayoutByName("Blank")
	s2, err := prs.AddSlide(blank)
	if err != nil {
		t.Fatalf("Failed to add slide: %v", err)
	}
	tbl, err := s2.AddTable(2, 3, Inches(1), Inches(1), Inches(6), Inches(2))
	if err != nil {
		t.Fatalf("Failed to add table: %v", err)
	}
	tbl.FirstRowHeader = true
	for c, text := range []string{"Region", "Q1", "Q2"} {
		cell, _ := tbl.Cell(0, c)
		cell.SetText(text)
	}
	if err := tbl.MergeCells(1, 1, 1, 2); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	chart, err := s2.AddChart(ColumnClustered, Inches(1), Inches(3.5), Inches(6), Inches(3))
	if err != nil {
		t.Fatalf("Failed to add chart: %v", err)
	}
	if err := chart.SetCategories([]string{"Q1", "Q2"}); err != nil {
		t.Fatalf("SetCategories failed: %v", err)
	}
	if _, err := chart.AddSeries("North", []float64{12, 34.5}); err != nil {
		t.Fatalf("AddSeries failed: %v", err)
	}
	chart.SetTitle("Sales")

	return prs
}

func reload(t *testing.T, data []byte) *Presentation {
	t.Helper()
	pkg, err := opc.ReadPackageBytes(data)
	if err != nil {
		t.Fatalf("Failed to read archive: %v", err)
	}
	prs, err := Load(pkg)
	if err != nil {
		t.Fatalf("Failed to load presentation: %v", err)
	}
	return prs
}

func TestRoundTripContent(t *testing.T) {
	data, err := buildDeck(t).Bytes()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	prs := reload(t, data)

	if prs.Core.Title != "Round Trip" || prs.Core.Creator != "tester" {
		t.Errorf("Core properties = %+v", prs.Core)
	}

	slides := prs.Slides()
	if len(slides) != 2 {
		t.Fatalf("Loaded %d slides, want 2", len(slides))
	}

	s1 := slides[0]
	if got := s1.Title(); got != "Quarterly Review" {
		t.Errorf("Title = %q", got)
	}
	if got := s1.Notes(); got != "Open with the summary." {
		t.Errorf("Notes = %q", got)
	}
	if s1.Layout() == nil || s1.Layout().Name() != "Title Slide" {
		t.Error("Slide lost its layout association")
	}
	var box *TextBox
	for _, sh := range s1.Shapes() {
		if tb, ok := sh.(*TextBox); ok {
			box = tb
		}
	}
	if box == nil {
		t.Fatal("Text box missing after round trip")
	}
	if got := box.Body.Text(); got != "Prepared by the data team" {
		t.Errorf("Text box content = %q", got)
	}
	run := box.Body.Paragraphs[0].Runs[0]
	if !run.Italic || run.SizePts != 14 {
		t.Errorf("Run formatting lost: italic=%v size=%v", run.Italic, run.SizePts)
	}

	s2 := slides[1]
	var (
		tbl   *Table
		chart *Chart
	)
	for _, sh := range s2.Shapes() {
		switch v := sh.(type) {
		case *Table:
			tbl = v
		case *Chart:
			chart = v
		}
	}
	if tbl == nil {
		t.Fatal("Table missing after round trip")
	}
	if tbl.Rows() != 2 || tbl.Cols() != 3 {
		t.Fatalf("Table is %dx%d", tbl.Rows(), tbl.Cols())
	}
	if !tbl.FirstRowHeader {
		t.Error("FirstRowHeader flag lost")
	}
	header, _ := tbl.Cell(0, 0)
	if got := header.Text(); got != "Region" {
		t.Errorf("Header cell = %q", got)
	}
	origin, _ := tbl.Cell(1, 1)
	if origin.ColSpan != 2 {
		t.Errorf("Merge span = %d, want 2", origin.ColSpan)
	}
	covered, _ := tbl.Cell(1, 2)
	if !covered.HMerge {
		t.Error("Merge continuation flag lost")
	}

	if chart == nil {
		t.Fatal("Chart missing after round trip")
	}
	if chart.Type() != ColumnClustered {
		t.Errorf("Chart kind = %v", chart.Type())
	}
	if got := chart.Title(); got != "Sales" {
		t.Errorf("Chart title = %q", got)
	}
	if got := chart.Categories(); len(got) != 2 || got[1] != "Q2" {
		t.Errorf("Categories = %v", got)
	}
	series := chart.Series()
	if len(series) != 1 || series[0].Name != "North" {
		t.Fatalf("Series = %v", series)
	}
	if series[0].Values[1] != 34.5 {
		t.Errorf("Series values = %v", series[0].Values)
	}
}

func TestSaveIsIdempotent(t *testing.T) {
	prs := buildDeck(t)
	first, err := prs.Bytes()
	if err != nil {
		t.Fatalf("First save failed: %v", err)
	}
	second, err := prs.Bytes()
	if err != nil {
		t.Fatalf("Second save failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("Saving twice without changes produced different archives")
	}
}

func TestLoadSaveStable(t *testing.T) {
	original, err := buildDeck(t).Bytes()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	resaved, err := reload(t, original).Bytes()
	if err != nil {
		t.Fatalf("Resave failed: %v", err)
	}
	// An untouched document survives a load/save cycle byte for byte.
	if !bytes.Equal(original, resaved) {
		t.Error("Load/save cycle changed the archive")
	}
}

func TestEditAfterLoad(t *testing.T) {
	original, err := buildDeck(t).Bytes()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	prs := reload(t, original)
	prs.Slides()[0].SetTitle("Updated Title")

	edited, err := prs.Bytes()
	if err != nil {
		t.Fatalf("Resave failed: %v", err)
	}
	final := reload(t, edited)
	if got := final.Slides()[0].Title(); got != "Updated Title" {
		t.Errorf("Title after edit = %q", got)
	}
	// The second slide was untouched; its content survives.
	var tbl *Table
	for _, sh := range final.Slides()[1].Shapes() {
		if v, ok := sh.(*Table); ok {
			tbl = v
		}
	}
	if tbl == nil {
		t.Fatal("Table lost after editing another slide")
	}
}

func TestRemovedChartIsSwept(t *testing.T) {
	prs := New()
	slide, _ := prs.AddSlide(nil)
	chart, err := slide.AddChart(Pie, 0, 0, Inches(4), Inches(3))
	if err != nil {
		t.Fatalf("AddChart failed: %v", err)
	}
	if err := chart.SetCategories([]string{"A"}); err != nil {
		t.Fatalf("SetCategories failed: %v", err)
	}
	if _, err := chart.AddSeries("s", []float64{1}); err != nil {
		t.Fatalf("AddSeries failed: %v", err)
	}
	if !slide.RemoveShape(chart) {
		t.Fatal("RemoveShape failed")
	}

	data, err := prs.Bytes()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	pkg, err := opc.ReadPackageBytes(data)
	if err != nil {
		t.Fatalf("Failed to read archive: %v", err)
	}
	if pkg.HasPart("/ppt/charts/chart1.xml") {
		t.Error("Orphaned chart part survived the save")
	}
	if pkg.HasPart("/ppt/embeddings/Microsoft_Excel_Worksheet1.xlsx") {
		t.Error("Orphaned workbook part survived the save")
	}
}

func TestRemovedPictureMediaSharing(t *testing.T) {
	prs := New()
	slide, _ := prs.AddSlide(nil)
	img := pngBytes(t)
	p1, err := slide.AddPicture(img, 0, 0, Inches(1), Inches(1))
	if err != nil {
		t.Fatalf("AddPicture failed: %v", err)
	}
	if _, err := slide.AddPicture(img, Inches(2), 0, Inches(1), Inches(1)); err != nil {
		t.Fatalf("AddPicture failed: %v", err)
	}
	slide.RemoveShape(p1)

	data, err := prs.Bytes()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	pkg, err := opc.ReadPackageBytes(data)
	if err != nil {
		t.Fatalf("Failed to read archive: %v", err)
	}
	// The second picture still uses the media part.
	if !pkg.HasPart("/ppt/media/image1.png") {
		t.Error("Shared media part swept while still referenced")
	}
}

// spliceSlideXML rewrites the first slide part of a saved archive and
// returns the reassembled archive.
func spliceSlideXML(t *testing.T, data []byte, rewrite func(string) string) []byte {
	t.Helper()
	pkg, err := opc.ReadPackageBytes(data)
	if err != nil {
		t.Fatalf("Failed to read archive: %v", err)
	}
	part, err := pkg.Part("/ppt/slides/slide1.xml")
	if err != nil {
		t.Fatalf("Missing slide part: %v", err)
	}
	part.SetData([]byte(rewrite(string(part.Data()))))
	out, err := pkg.Bytes()
	if err != nil {
		t.Fatalf("Failed to rewrite archive: %v", err)
	}
	return out
}

func slidePartXML(t *testing.T, data []byte) string {
	t.Helper()
	pkg, err := opc.ReadPackageBytes(data)
	if err != nil {
		t.Fatalf("Failed to read archive: %v", err)
	}
	part, err := pkg.Part("/ppt/slides/slide1.xml")
	if err != nil {
		t.Fatalf("Missing slide part: %v", err)
	}
	return string(part.Data())
}

func TestEditPreservesConnectorStacking(t *testing.T) {
	prs := New()
	blank, _ := prs.LayoutByName("Blank")
	slide, err := prs.AddSlide(blank)
	if err != nil {
		t.Fatalf("Failed to add slide: %v", err)
	}
	slide.AddTextBox(Inches(1), Inches(1), Inches(2), Inches(1)).Body.SetText("lower")
	slide.AddTextBox(Inches(1), Inches(3), Inches(2), Inches(1)).Body.SetText("upper")
	data, err := prs.Bytes()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	connector := `<p:cxnSp><p:nvCxnSpPr><p:cNvPr id="9" name="Straight Connector 9"></p:cNvPr>` +
		`<p:cNvCxnSpPr></p:cNvCxnSpPr><p:nvPr></p:nvPr></p:nvCxnSpPr>` +
		`<p:spPr><a:xfrm><a:off x="0" y="0"></a:off><a:ext cx="914400" cy="0"></a:ext></a:xfrm>` +
		`<a:prstGeom prst="line"><a:avLst></a:avLst></a:prstGeom></p:spPr></p:cxnSp>`
	data = spliceSlideXML(t, data, func(x string) string {
		at := strings.LastIndex(x, "<p:sp>")
		if at < 0 {
			t.Fatal("No shape element in slide XML")
		}
		return x[:at] + connector + x[at:]
	})

	prs2 := reload(t, data)
	shapes := prs2.Slides()[0].Shapes()
	if len(shapes) != 3 {
		t.Fatalf("Shapes = %d, want 3", len(shapes))
	}
	if shapes[1].Kind() != KindRaw {
		t.Fatalf("Middle shape kind = %v, want %v", shapes[1].Kind(), KindRaw)
	}

	// Editing re-serializes the shape tree; the connector must keep
	// its slot between the two boxes.
	shapes[0].(*TextBox).Body.SetText("lower edited")
	out, err := prs2.Bytes()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	slideXML := slidePartXML(t, out)
	iLower := strings.Index(slideXML, "lower edited")
	iCxn := strings.Index(slideXML, "<p:cxnSp>")
	iUpper := strings.Index(slideXML, "upper")
	if iLower < 0 || iCxn < 0 || iUpper < 0 {
		t.Fatalf("Missing content: lower=%d cxn=%d upper=%d", iLower, iCxn, iUpper)
	}
	if !(iLower < iCxn && iCxn < iUpper) {
		t.Errorf("Connector out of order: lower=%d cxn=%d upper=%d", iLower, iCxn, iUpper)
	}
}

func TestEditKeepsShapeChildSequence(t *testing.T) {
	prs := New()
	blank, _ := prs.LayoutByName("Blank")
	slide, err := prs.AddSlide(blank)
	if err != nil {
		t.Fatalf("Failed to add slide: %v", err)
	}
	slide.AddTextBox(Inches(1), Inches(1), Inches(2), Inches(1)).Body.SetText("styled")
	data, err := prs.Bytes()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	style := `<p:style><a:lnRef idx="2"><a:schemeClr val="accent1"></a:schemeClr></a:lnRef>` +
		`<a:fillRef idx="1"><a:schemeClr val="accent1"></a:schemeClr></a:fillRef>` +
		`<a:effectRef idx="0"><a:schemeClr val="accent1"></a:schemeClr></a:effectRef>` +
		`<a:fontRef idx="minor"></a:fontRef></p:style>`
	ext := `<p:extLst><p:ext uri="{FF2B5EF4-FFF2-40B4-BE49-F238E27FC236}"></p:ext></p:extLst>`
	data = spliceSlideXML(t, data, func(x string) string {
		x = strings.Replace(x, "</p:spPr>", "</p:spPr>"+style, 1)
		x = strings.Replace(x, "</p:txBody>", "</p:txBody>"+ext, 1)
		return x
	})

	prs2 := reload(t, data)
	box, ok := prs2.Slides()[0].Shapes()[0].(*TextBox)
	if !ok {
		t.Fatalf("Shape is %T, want text box", prs2.Slides()[0].Shapes()[0])
	}
	box.Body.SetText("styled edited")
	out, err := prs2.Bytes()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	slideXML := slidePartXML(t, out)
	spStart := strings.Index(slideXML, "<p:sp>")
	spEnd := strings.Index(slideXML, "</p:sp>")
	if spStart < 0 || spEnd < 0 {
		t.Fatal("No shape element in saved slide")
	}
	sp := slideXML[spStart:spEnd]

	// CT_Shape sequence: style before txBody, extLst after.
	iStyle := strings.Index(sp, "<p:style>")
	iBody := strings.Index(sp, "<p:txBody>")
	iBodyEnd := strings.Index(sp, "</p:txBody>")
	iExt := strings.Index(sp, "<p:extLst>")
	if iStyle < 0 || iBody < 0 || iExt < 0 {
		t.Fatalf("Missing children: style=%d txBody=%d extLst=%d", iStyle, iBody, iExt)
	}
	if iStyle > iBody {
		t.Errorf("Style serialized after the text body: style=%d txBody=%d", iStyle, iBody)
	}
	if iExt < iBodyEnd {
		t.Errorf("Extension list serialized before the text body end: extLst=%d txBody end=%d", iExt, iBodyEnd)
	}
}

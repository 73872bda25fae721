package deck

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"strconv"

	"github.com/tsawler/lectern/internal/xmlutil"
	"github.com/tsawler/lectern/opc"
)

// ErrSchemaViolation is returned when a package is a well-formed
// container but its presentation parts deviate from the document
// schema: unparseable XML, a missing presentation part, or a table
// grid that is not rectangular.
var ErrSchemaViolation = errors.New("deck: document violates the presentation schema")

// Load builds the document model from an opened package. Parts are
// not copied; the presentation owns the package from here on.
//
// Loading is strict: a schema violation anywhere aborts the load.
// Content the model does not represent (transitions, animations,
// group shapes) survives untouched and is written back verbatim.
func Load(pkg *opc.Package) (*Presentation, error) {
	rel, ok := pkg.Relationships().FirstOfType(opc.RelTypeOfficeDocument)
	if !ok {
		return nil, fmt.Errorf("%w: package has no office document relationship", ErrSchemaViolation)
	}
	presPart, err := pkg.Resolve(nil, rel.ID)
	if err != nil {
		return nil, err
	}
	if presPart.ContentType() != opc.ContentTypePresentation {
		return nil, fmt.Errorf("%w: office document part %s has content type %q",
			ErrSchemaViolation, presPart.Name(), presPart.ContentType())
	}

	var doc presentationXML
	if err := opc.UnmarshalXML(presPart.Data(), &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrSchemaViolation, presPart.Name(), err)
	}

	prs := &Presentation{
		pkg:         pkg,
		presPart:    presPart,
		slideWidth:  SlideWidth4x3,
		slideHeight: SlideHeight4x3,
		media:       make(map[[sha1.Size]byte]*MediaItem),
		extra:       xmlutil.Join(doc.Extra),
	}
	if doc.SldSz != nil {
		prs.slideWidth = EMU(doc.SldSz.Cx)
		prs.slideHeight = EMU(doc.SldSz.Cy)
	}

	ld := &loader{prs: prs, layouts: make(map[string]*SlideLayout)}

	if doc.SldMasterIdLst != nil {
		for _, id := range doc.SldMasterIdLst.SldMasterId {
			part, err := pkg.Resolve(presPart, id.RID)
			if err != nil {
				return nil, err
			}
			m, err := ld.loadMaster(part)
			if err != nil {
				return nil, err
			}
			prs.masters = append(prs.masters, m)
		}
	}

	if doc.SldIdLst != nil {
		for _, id := range doc.SldIdLst.SldId {
			part, err := pkg.Resolve(presPart, id.RID)
			if err != nil {
				return nil, err
			}
			s, err := ld.loadSlide(part)
			if err != nil {
				return nil, err
			}
			prs.slides = append(prs.slides, s)
		}
	}

	if err := ld.loadProps(); err != nil {
		return nil, err
	}
	prs.loadedCore = prs.Core
	prs.loadedApp = prs.App
	return prs, nil
}

// loader carries per-load state: layouts are shared across slides and
// masters, media parts dedup by content hash.
type loader struct {
	prs     *Presentation
	layouts map[string]*SlideLayout
}

func (ld *loader) loadMaster(part *opc.Part) (*SlideMaster, error) {
	var doc slideXML
	if err := opc.UnmarshalXML(part.Data(), &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrSchemaViolation, part.Name(), err)
	}
	m := &SlideMaster{
		partName:     part.Name(),
		part:         part,
		placeholders: placeholderDefs(doc.CSld.SpTree),
	}
	for _, rel := range part.Relationships().All() {
		if rel.Type != opc.RelTypeSlideLayout {
			continue
		}
		lp, err := ld.prs.pkg.Resolve(part, rel.ID)
		if err != nil {
			return nil, err
		}
		l, err := ld.loadLayout(lp, m)
		if err != nil {
			return nil, err
		}
		m.layouts = append(m.layouts, l)
	}
	return m, nil
}

func (ld *loader) loadLayout(part *opc.Part, m *SlideMaster) (*SlideLayout, error) {
	if l, ok := ld.layouts[part.Name()]; ok {
		return l, nil
	}
	var doc slideXML
	if err := opc.UnmarshalXML(part.Data(), &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrSchemaViolation, part.Name(), err)
	}
	l := &SlideLayout{
		partName:     part.Name(),
		name:         doc.CSld.Name,
		master:       m,
		part:         part,
		placeholders: placeholderDefs(doc.CSld.SpTree),
	}
	ld.layouts[part.Name()] = l
	return l, nil
}

// layoutFor resolves a slide's layout, loading it (and its master) on
// demand when the master was not reachable from the presentation part.
func (ld *loader) layoutFor(slidePart *opc.Part) (*SlideLayout, error) {
	rel, ok := slidePart.Relationships().FirstOfType(opc.RelTypeSlideLayout)
	if !ok {
		return nil, nil
	}
	part, err := ld.prs.pkg.Resolve(slidePart, rel.ID)
	if err != nil {
		return nil, err
	}
	if l, ok := ld.layouts[part.Name()]; ok {
		return l, nil
	}
	var m *SlideMaster
	if mrel, ok := part.Relationships().FirstOfType(opc.RelTypeSlideMaster); ok {
		if mp, err := ld.prs.pkg.Resolve(part, mrel.ID); err == nil {
			for _, known := range ld.prs.masters {
				if known.partName == mp.Name() {
					m = known
				}
			}
		}
	}
	return ld.loadLayout(part, m)
}

func placeholderDefs(tree spTreeXML) []placeholderDef {
	var defs []placeholderDef
	for _, child := range tree.Children {
		if child.Sp == nil || child.Sp.NvSpPr.NvPr.Ph == nil {
			continue
		}
		defs = append(defs, placeholderDef{
			ref:  convertRef(child.Sp.NvSpPr.NvPr.Ph),
			geom: convertGeometry(child.Sp.SpPr.Xfrm),
		})
	}
	return defs
}

func convertRef(ph *phXML) PlaceholderRef {
	ref := PlaceholderRef{Type: PlaceholderType(ph.Type)}
	if ph.Idx != nil {
		ref.Idx = *ph.Idx
		ref.HasIdx = true
	}
	return ref
}

func convertGeometry(x *xfrmXML) *Geometry {
	if x == nil {
		return nil
	}
	return &Geometry{
		OffsetX:  EMU(x.Off.X),
		OffsetY:  EMU(x.Off.Y),
		Width:    EMU(x.Ext.Cx),
		Height:   EMU(x.Ext.Cy),
		Rotation: x.Rot / 60000,
	}
}

func (ld *loader) loadSlide(part *opc.Part) (*Slide, error) {
	var doc slideXML
	if err := opc.UnmarshalXML(part.Data(), &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrSchemaViolation, part.Name(), err)
	}

	s := &Slide{prs: ld.prs, part: part, extra: xmlutil.Join(doc.Extra)}

	layout, err := ld.layoutFor(part)
	if err != nil {
		return nil, err
	}
	s.layout = layout

	maxID := 1
	for _, child := range doc.CSld.SpTree.Children {
		var sh Shape
		switch {
		case child.Sp != nil:
			sh = convertSp(s, child.Sp)
		case child.Pic != nil:
			sh, err = ld.convertPic(s, part, child.Pic)
			if err != nil {
				return nil, err
			}
		case child.Frame != nil:
			sh, err = ld.convertFrame(s, part, child.Frame)
			if err != nil {
				return nil, err
			}
		case child.Raw != nil:
			rs := &rawShape{raw: child.Raw.Data}
			rs.slide = s
			sh = rs
		}
		if sh != nil {
			if id := sh.base().id; id > maxID {
				maxID = id
			}
			s.shapes = append(s.shapes, sh)
		}
	}
	s.nextShapeID = maxID + 1

	if rel, ok := part.Relationships().FirstOfType(opc.RelTypeNotesSlide); ok {
		np, err := ld.prs.pkg.Resolve(part, rel.ID)
		if err != nil {
			return nil, err
		}
		if err := loadNotes(s, np); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// convertSp maps a plain shape element. A placeholder reference makes
// it a Placeholder; preset geometry makes it an AutoShape; anything
// else is treated as a text box.
func convertSp(s *Slide, x *spXML) Shape {
	extra, tail := splitSpExtra(x.Extra)
	base := baseShape{
		id:        x.NvSpPr.CNvPr.ID,
		name:      x.NvSpPr.CNvPr.Name,
		geom:      convertGeometry(x.SpPr.Xfrm),
		extra:     extra,
		extraTail: tail,
		slide:     s,
	}
	body := convertBody(x.TxBody, s)

	if x.NvSpPr.NvPr.Ph != nil {
		ref := convertRef(x.NvSpPr.NvPr.Ph)
		ph := &Placeholder{baseShape: base, Body: body}
		ph.ph = &ref
		return ph
	}
	if x.SpPr.PrstGeom != nil {
		a := &AutoShape{baseShape: base, Preset: x.SpPr.PrstGeom.Prst, Body: body}
		if f := x.SpPr.SolidFill; f != nil && f.SrgbClr != nil {
			a.FillColor = f.SrgbClr.Val
		}
		if ln := x.SpPr.Ln; ln != nil && ln.SolidFill != nil && ln.SolidFill.SrgbClr != nil {
			a.LineColor = ln.SolidFill.SrgbClr.Val
		}
		return a
	}
	return &TextBox{baseShape: base, Body: body}
}

// splitSpExtra partitions a shape's unrecognized children around the
// text body. In the shape element sequence extLst follows txBody;
// the other preserved children (style, fill variants) precede it.
func splitSpExtra(raw []xmlutil.RawXML) (extra, tail []byte) {
	var pre, post []xmlutil.RawXML
	for _, r := range raw {
		if xmlutil.LocalName(r.Data) == "extLst" {
			post = append(post, r)
		} else {
			pre = append(pre, r)
		}
	}
	return xmlutil.Join(pre), xmlutil.Join(post)
}

func (ld *loader) convertPic(s *Slide, slidePart *opc.Part, x *picXML) (Shape, error) {
	mp, err := ld.prs.pkg.Resolve(slidePart, x.BlipFill.Blip.Embed)
	if err != nil {
		return nil, err
	}
	m, err := ld.mediaFor(mp)
	if err != nil {
		return nil, err
	}
	p := &Picture{media: m}
	p.id = x.NvPicPr.CNvPr.ID
	p.name = x.NvPicPr.CNvPr.Name
	p.geom = convertGeometry(x.SpPr.Xfrm)
	p.extra = xmlutil.Join(x.Extra)
	p.slide = s
	return p, nil
}

// mediaFor wraps a media part as a MediaItem, deduplicating by
// content so a later AddPicture with the same bytes reuses the part.
func (ld *loader) mediaFor(part *opc.Part) (*MediaItem, error) {
	m, err := newMediaItem(part.Data())
	if err != nil {
		// Keep exotic media referenceable even when unclassifiable.
		m = &MediaItem{
			contentType: part.ContentType(),
			data:        part.Data(),
			hash:        sha1.Sum(part.Data()),
		}
	}
	if known, ok := ld.prs.media[m.hash]; ok {
		return known, nil
	}
	m.partName = part.Name()
	ld.prs.media[m.hash] = m
	return m, nil
}

func (ld *loader) convertFrame(s *Slide, slidePart *opc.Part, x *graphicFrameXML) (Shape, error) {
	base := baseShape{
		id:    x.NvGraphicFramePr.CNvPr.ID,
		name:  x.NvGraphicFramePr.CNvPr.Name,
		geom:  convertGeometry(x.Xfrm),
		slide: s,
	}
	switch {
	case x.Graphic.GraphicData.Tbl != nil:
		t, err := convertTable(x.Graphic.GraphicData.Tbl)
		if err != nil {
			return nil, err
		}
		t.baseShape = base
		t.attach(s)
		return t, nil
	case x.Graphic.GraphicData.Chart != nil:
		part, err := ld.prs.pkg.Resolve(slidePart, x.Graphic.GraphicData.Chart.RID)
		if err != nil {
			return nil, err
		}
		c, err := loadChart(ld.prs, part)
		if err != nil {
			return nil, err
		}
		c.baseShape = base
		return c, nil
	}
	return nil, fmt.Errorf("%w: graphic frame %q carries no table or chart",
		ErrSchemaViolation, base.name)
}

func convertTable(x *tblXML) (*Table, error) {
	t := &Table{}
	if x.TblPr != nil && x.TblPr.FirstRow == 1 {
		t.FirstRowHeader = true
	}
	for _, col := range x.TblGrid.GridCol {
		t.colWidths = append(t.colWidths, EMU(col.W))
	}
	for _, tr := range x.Tr {
		t.rowHeights = append(t.rowHeights, EMU(tr.H))
		var row []*Cell
		for _, tc := range tr.Tc {
			cell := &Cell{
				Body:    convertBody(tc.TxBody, nil),
				RowSpan: 1,
				ColSpan: 1,
				HMerge:  tc.HMerge == 1,
				VMerge:  tc.VMerge == 1,
				table:   t,
			}
			if tc.RowSpan > 1 {
				cell.RowSpan = tc.RowSpan
			}
			if tc.GridSpan > 1 {
				cell.ColSpan = tc.GridSpan
			}
			if tc.TcPr != nil && tc.TcPr.SolidFill != nil && tc.TcPr.SolidFill.SrgbClr != nil {
				cell.FillColor = tc.TcPr.SolidFill.SrgbClr.Val
			}
			row = append(row, cell)
		}
		t.rows = append(t.rows, row)
	}
	if err := t.validateGrid(); err != nil {
		return nil, err
	}
	return t, nil
}

func loadChart(prs *Presentation, part *opc.Part) (*Chart, error) {
	var cs chartSpaceXML
	if err := opc.UnmarshalXML(part.Data(), &cs); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrSchemaViolation, part.Name(), err)
	}

	c := &Chart{part: part}
	if rel, ok := part.Relationships().FirstOfType(opc.RelTypePackage); ok {
		if wb, err := prs.pkg.Resolve(part, rel.ID); err == nil {
			c.wbPart = wb
		}
	}

	if t := cs.Chart.Title; t != nil && t.Tx != nil && t.Tx.Rich != nil {
		body := convertBody(t.Tx.Rich, nil)
		c.title = body.Text()
	}
	if l := cs.Chart.Legend; l != nil {
		c.hasLegend = true
		c.legendPos = l.LegendPos.Val
		if c.legendPos == "" {
			c.legendPos = "r"
		}
	}

	var sers []chSerXML
	switch pa := cs.Chart.PlotArea; {
	case pa.BarChart != nil:
		sers = pa.BarChart.Ser
		if pa.BarChart.BarDir.Val == "bar" {
			c.kind = BarClustered
		} else if pa.BarChart.Grouping.Val == "stacked" {
			c.kind = ColumnStacked
		} else {
			c.kind = ColumnClustered
		}
	case pa.LineChart != nil:
		sers = pa.LineChart.Ser
		c.kind = Line
		if m := pa.LineChart.Marker; m != nil && m.Val == "1" {
			c.kind = LineMarkers
		}
	case pa.PieChart != nil:
		sers = pa.PieChart.Ser
		c.kind = Pie
	}

	for i, ser := range sers {
		s := &Series{chart: c}
		if ser.Tx != nil {
			if ser.Tx.StrRef != nil && len(ser.Tx.StrRef.StrCache.Pt) > 0 {
				s.Name = ser.Tx.StrRef.StrCache.Pt[0].V
			} else {
				s.Name = ser.Tx.V
			}
		}
		if i == 0 && ser.Cat != nil && ser.Cat.StrRef != nil {
			for _, pt := range ser.Cat.StrRef.StrCache.Pt {
				c.categories = append(c.categories, pt.V)
			}
		}
		if ser.Val != nil && ser.Val.NumRef != nil {
			if code := ser.Val.NumRef.NumCache.FormatCode; code != "" && code != "General" {
				s.NumberFormat = code
			}
			for _, pt := range ser.Val.NumRef.NumCache.Pt {
				v, err := strconv.ParseFloat(pt.V, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: chart %s has non-numeric cached value %q",
						ErrSchemaViolation, part.Name(), pt.V)
				}
				s.Values = append(s.Values, v)
			}
		}
		c.series = append(c.series, s)
	}
	return c, nil
}

func loadNotes(s *Slide, part *opc.Part) error {
	var doc notesSlideXML
	if err := opc.UnmarshalXML(part.Data(), &doc); err != nil {
		return fmt.Errorf("%w: parsing %s: %v", ErrSchemaViolation, part.Name(), err)
	}
	for _, child := range doc.CSld.SpTree.Children {
		if child.Sp == nil || child.Sp.NvSpPr.NvPr.Ph == nil {
			continue
		}
		if PlaceholderType(child.Sp.NvSpPr.NvPr.Ph.Type) != PhBody {
			continue
		}
		s.notes = convertBody(child.Sp.TxBody, nil).Text()
		s.hasNotes = true
		return nil
	}
	return nil
}

func convertBody(x *txBodyXML, s *Slide) *TextBody {
	tb := &TextBody{owner: s}
	if x == nil {
		tb.Paragraphs = []*Paragraph{{body: tb}}
		return tb
	}
	tb.Anchor = Anchor(x.BodyPr.Anchor)
	switch x.BodyPr.Wrap {
	case "none":
		wrap := false
		tb.WordWrap = &wrap
	case "square":
		wrap := true
		tb.WordWrap = &wrap
	}
	for _, px := range x.P {
		p := &Paragraph{body: tb}
		if px.PPr != nil {
			p.Alignment = Alignment(px.PPr.Algn)
			p.Level = px.PPr.Lvl
			switch {
			case px.PPr.BuNone != nil:
				p.Bullet = Bullet{None: true}
			case px.PPr.BuChar != nil:
				p.Bullet = Bullet{Char: px.PPr.BuChar.Char}
			case px.PPr.BuAutoNum != nil:
				p.Bullet = Bullet{AutoNum: px.PPr.BuAutoNum.Type}
			}
		}
		for _, rx := range px.R {
			r := &Run{Text: rx.T, para: p}
			if rx.RPr != nil {
				r.Bold = rx.RPr.B != nil && *rx.RPr.B == 1
				r.Italic = rx.RPr.I != nil && *rx.RPr.I == 1
				r.Underline = rx.RPr.U == "sng"
				if rx.RPr.Sz > 0 {
					r.SizePts = float64(rx.RPr.Sz) / 100
				}
				if f := rx.RPr.SolidFill; f != nil && f.SrgbClr != nil {
					r.Color = f.SrgbClr.Val
				}
				if rx.RPr.Latin != nil {
					r.Font = rx.RPr.Latin.Typeface
				}
			}
			p.Runs = append(p.Runs, r)
		}
		tb.Paragraphs = append(tb.Paragraphs, p)
	}
	if len(tb.Paragraphs) == 0 {
		tb.Paragraphs = []*Paragraph{{body: tb}}
	}
	return tb
}

// loadProps fills Core and App metadata from the docProps parts when
// present.
func (ld *loader) loadProps() error {
	pkg := ld.prs.pkg
	if rel, ok := pkg.Relationships().FirstOfType(opc.RelTypeCoreProps); ok {
		part, err := pkg.Resolve(nil, rel.ID)
		if err != nil {
			return err
		}
		var core corePropertiesXML
		if err := opc.UnmarshalXML(part.Data(), &core); err != nil {
			return fmt.Errorf("%w: parsing %s: %v", ErrSchemaViolation, part.Name(), err)
		}
		ld.prs.Core = CoreProperties{
			Title:          core.Title,
			Subject:        core.Subject,
			Creator:        core.Creator,
			Keywords:       core.Keywords,
			Description:    core.Description,
			LastModifiedBy: core.LastModifiedBy,
		}
	}
	if rel, ok := pkg.Relationships().FirstOfType(opc.RelTypeAppProps); ok {
		part, err := pkg.Resolve(nil, rel.ID)
		if err != nil {
			return err
		}
		var app appPropertiesXML
		if err := opc.UnmarshalXML(part.Data(), &app); err != nil {
			return fmt.Errorf("%w: parsing %s: %v", ErrSchemaViolation, part.Name(), err)
		}
		ld.prs.App = AppProperties{Application: app.Application, Company: app.Company}
	}
	return nil
}

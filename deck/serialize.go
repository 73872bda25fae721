package deck

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/tsawler/lectern/opc"
)

// Serialization writes elements with fixed, conventional namespace
// prefixes (p, a, r, c). The write structs below carry the prefixes
// literally in their tags; reading uses the namespace-aware structs
// in types.go instead.

type wSld struct {
	XMLName xml.Name    `xml:"p:sld"`
	XmlnsA  string      `xml:"xmlns:a,attr"`
	XmlnsR  string      `xml:"xmlns:r,attr"`
	XmlnsP  string      `xml:"xmlns:p,attr"`
	CSld    wCSld       `xml:"p:cSld"`
	Extra   []byte      `xml:",innerxml"`
	ExtLst  *wSldExtLst `xml:"p:extLst"`
}

// The creationId extension gives each authored slide a stable GUID,
// the way presentation software tags new slides.
type wSldExtLst struct {
	Ext wSldExt `xml:"p:ext"`
}

type wSldExt struct {
	URI        string      `xml:"uri,attr"`
	CreationID wCreationID `xml:"p14:creationId"`
}

type wCreationID struct {
	XmlnsP14 string `xml:"xmlns:p14,attr"`
	Val      string `xml:"val,attr"`
}

const creationIDExtURI = "{BB962C8B-B14F-4D97-AF65-F5344CB8AC3E}"

type wNotes struct {
	XMLName xml.Name `xml:"p:notes"`
	XmlnsA  string   `xml:"xmlns:a,attr"`
	XmlnsR  string   `xml:"xmlns:r,attr"`
	XmlnsP  string   `xml:"xmlns:p,attr"`
	CSld    wCSld    `xml:"p:cSld"`
}

type wCSld struct {
	SpTree wSpTree `xml:"p:spTree"`
}

// wSpTree holds the fixed group-shape preamble; the shapes themselves
// are pre-marshaled into Inner so heterogeneous shapes keep their
// z-order.
type wSpTree struct {
	NvGrpSpPr wNvGrpSpPr `xml:"p:nvGrpSpPr"`
	GrpSpPr   wGrpSpPr   `xml:"p:grpSpPr"`
	Inner     []byte     `xml:",innerxml"`
}

type wNvGrpSpPr struct {
	CNvPr      wCNvPr   `xml:"p:cNvPr"`
	CNvGrpSpPr struct{} `xml:"p:cNvGrpSpPr"`
	NvPr       struct{} `xml:"p:nvPr"`
}

type wGrpSpPr struct {
	Xfrm wGrpXfrm `xml:"a:xfrm"`
}

type wGrpXfrm struct {
	Off   wOff `xml:"a:off"`
	Ext   wExt `xml:"a:ext"`
	ChOff wOff `xml:"a:chOff"`
	ChExt wExt `xml:"a:chExt"`
}

type wCNvPr struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

// wSp keeps preserved children in schema positions: style and other
// captured elements sit between spPr and txBody, extLst after txBody.
type wSp struct {
	XMLName xml.Name `xml:"p:sp"`
	NvSpPr  wNvSpPr  `xml:"p:nvSpPr"`
	SpPr    wSpPr    `xml:"p:spPr"`
	Extra   []byte   `xml:",innerxml"`
	TxBody  *wTxBody `xml:"p:txBody"`
	Tail    []byte   `xml:",innerxml"`
}

type wNvSpPr struct {
	CNvPr   wCNvPr   `xml:"p:cNvPr"`
	CNvSpPr wCNvSpPr `xml:"p:cNvSpPr"`
	NvPr    wNvPr    `xml:"p:nvPr"`
}

type wCNvSpPr struct {
	TxBox int `xml:"txBox,attr,omitempty"`
}

type wNvPr struct {
	Ph *wPh `xml:"p:ph"`
}

type wPh struct {
	Type string `xml:"type,attr,omitempty"`
	Idx  *int   `xml:"idx,attr"`
}

type wSpPr struct {
	Xfrm      *wXfrm      `xml:"a:xfrm"`
	PrstGeom  *wPrstGeom  `xml:"a:prstGeom"`
	SolidFill *wSolidFill `xml:"a:solidFill"`
	Ln        *wLn        `xml:"a:ln"`
}

type wXfrm struct {
	Rot int  `xml:"rot,attr,omitempty"`
	Off wOff `xml:"a:off"`
	Ext wExt `xml:"a:ext"`
}

type wOff struct {
	X int64 `xml:"x,attr"`
	Y int64 `xml:"y,attr"`
}

type wExt struct {
	Cx int64 `xml:"cx,attr"`
	Cy int64 `xml:"cy,attr"`
}

type wPrstGeom struct {
	Prst  string   `xml:"prst,attr"`
	AvLst struct{} `xml:"a:avLst"`
}

type wSolidFill struct {
	SrgbClr wSrgbClr `xml:"a:srgbClr"`
}

type wSrgbClr struct {
	Val string `xml:"val,attr"`
}

type wLn struct {
	SolidFill *wSolidFill `xml:"a:solidFill"`
}

// wTxBody serves both p:txBody (shapes) and a:txBody (table cells);
// the enclosing field's tag picks the name.
type wTxBody struct {
	BodyPr   wBodyPr  `xml:"a:bodyPr"`
	LstStyle struct{} `xml:"a:lstStyle"`
	P        []wP     `xml:"a:p"`
}

type wBodyPr struct {
	Wrap   string `xml:"wrap,attr,omitempty"`
	Anchor string `xml:"anchor,attr,omitempty"`
}

type wP struct {
	PPr *wPPr `xml:"a:pPr"`
	R   []wR  `xml:"a:r"`
}

type wPPr struct {
	Lvl       int         `xml:"lvl,attr,omitempty"`
	Algn      string      `xml:"algn,attr,omitempty"`
	BuNone    *struct{}   `xml:"a:buNone"`
	BuChar    *wBuChar    `xml:"a:buChar"`
	BuAutoNum *wBuAutoNum `xml:"a:buAutoNum"`
}

type wBuChar struct {
	Char string `xml:"char,attr"`
}

type wBuAutoNum struct {
	Type string `xml:"type,attr"`
}

type wR struct {
	RPr *wRPr  `xml:"a:rPr"`
	T   string `xml:"a:t"`
}

type wRPr struct {
	Sz        int         `xml:"sz,attr,omitempty"`
	B         int         `xml:"b,attr,omitempty"`
	I         int         `xml:"i,attr,omitempty"`
	U         string      `xml:"u,attr,omitempty"`
	SolidFill *wSolidFill `xml:"a:solidFill"`
	Latin     *wLatin     `xml:"a:latin"`
}

type wLatin struct {
	Typeface string `xml:"typeface,attr"`
}

type wPic struct {
	XMLName  xml.Name  `xml:"p:pic"`
	NvPicPr  wNvPicPr  `xml:"p:nvPicPr"`
	BlipFill wBlipFill `xml:"p:blipFill"`
	SpPr     wSpPr     `xml:"p:spPr"`
	Extra    []byte    `xml:",innerxml"`
}

type wNvPicPr struct {
	CNvPr    wCNvPr    `xml:"p:cNvPr"`
	CNvPicPr wCNvPicPr `xml:"p:cNvPicPr"`
	NvPr     wNvPr     `xml:"p:nvPr"`
}

type wCNvPicPr struct {
	PicLocks wPicLocks `xml:"a:picLocks"`
}

type wPicLocks struct {
	NoChangeAspect int `xml:"noChangeAspect,attr"`
}

type wBlipFill struct {
	Blip    wBlip    `xml:"a:blip"`
	Stretch wStretch `xml:"a:stretch"`
}

type wBlip struct {
	Embed string `xml:"r:embed,attr"`
}

type wStretch struct {
	FillRect struct{} `xml:"a:fillRect"`
}

type wGraphicFrame struct {
	XMLName xml.Name          `xml:"p:graphicFrame"`
	NvPr    wNvGraphicFramePr `xml:"p:nvGraphicFramePr"`
	Xfrm    wGfXfrm           `xml:"p:xfrm"`
	Graphic wGraphic          `xml:"a:graphic"`
}

type wNvGraphicFramePr struct {
	CNvPr             wCNvPr   `xml:"p:cNvPr"`
	CNvGraphicFramePr struct{} `xml:"p:cNvGraphicFramePr"`
	NvPr              wNvPr    `xml:"p:nvPr"`
}

type wGfXfrm struct {
	Off wOff `xml:"a:off"`
	Ext wExt `xml:"a:ext"`
}

type wGraphic struct {
	GraphicData wGraphicData `xml:"a:graphicData"`
}

type wGraphicData struct {
	URI   string     `xml:"uri,attr"`
	Tbl   *wTbl      `xml:"a:tbl"`
	Chart *wChartRef `xml:"c:chart"`
}

type wChartRef struct {
	XmlnsC string `xml:"xmlns:c,attr"`
	XmlnsR string `xml:"xmlns:r,attr"`
	RID    string `xml:"r:id,attr"`
}

type wTbl struct {
	TblPr   wTblPr   `xml:"a:tblPr"`
	TblGrid wTblGrid `xml:"a:tblGrid"`
	Tr      []wTr    `xml:"a:tr"`
}

type wTblPr struct {
	FirstRow int `xml:"firstRow,attr,omitempty"`
}

type wTblGrid struct {
	GridCol []wGridCol `xml:"a:gridCol"`
}

type wGridCol struct {
	W int64 `xml:"w,attr"`
}

type wTr struct {
	H  int64 `xml:"h,attr"`
	Tc []wTc `xml:"a:tc"`
}

type wTc struct {
	RowSpan  int     `xml:"rowSpan,attr,omitempty"`
	GridSpan int     `xml:"gridSpan,attr,omitempty"`
	HMerge   int     `xml:"hMerge,attr,omitempty"`
	VMerge   int     `xml:"vMerge,attr,omitempty"`
	TxBody   wTxBody `xml:"a:txBody"`
	TcPr     wTcPr   `xml:"a:tcPr"`
}

type wTcPr struct {
	SolidFill *wSolidFill `xml:"a:solidFill"`
}

type wPresentation struct {
	XMLName        xml.Name      `xml:"p:presentation"`
	XmlnsA         string        `xml:"xmlns:a,attr"`
	XmlnsR         string        `xml:"xmlns:r,attr"`
	XmlnsP         string        `xml:"xmlns:p,attr"`
	SldMasterIdLst *wMasterIdLst `xml:"p:sldMasterIdLst"`
	SldIdLst       *wSldIdLst    `xml:"p:sldIdLst"`
	SldSz          wSldSz        `xml:"p:sldSz"`
	NotesSz        wNotesSz      `xml:"p:notesSz"`
	Extra          []byte        `xml:",innerxml"`
}

type wMasterIdLst struct {
	SldMasterId []wMasterId `xml:"p:sldMasterId"`
}

type wMasterId struct {
	ID  string `xml:"id,attr"`
	RID string `xml:"r:id,attr"`
}

type wSldIdLst struct {
	SldId []wSldId `xml:"p:sldId"`
}

type wSldId struct {
	ID  string `xml:"id,attr"`
	RID string `xml:"r:id,attr"`
}

type wSldSz struct {
	Cx   int64  `xml:"cx,attr"`
	Cy   int64  `xml:"cy,attr"`
	Type string `xml:"type,attr,omitempty"`
}

type wNotesSz struct {
	Cx int64 `xml:"cx,attr"`
	Cy int64 `xml:"cy,attr"`
}

type wCoreProps struct {
	XMLName        xml.Name `xml:"cp:coreProperties"`
	XmlnsCp        string   `xml:"xmlns:cp,attr"`
	XmlnsDc        string   `xml:"xmlns:dc,attr"`
	XmlnsDcterms   string   `xml:"xmlns:dcterms,attr"`
	Title          string   `xml:"dc:title,omitempty"`
	Subject        string   `xml:"dc:subject,omitempty"`
	Creator        string   `xml:"dc:creator,omitempty"`
	Keywords       string   `xml:"cp:keywords,omitempty"`
	Description    string   `xml:"dc:description,omitempty"`
	LastModifiedBy string   `xml:"cp:lastModifiedBy,omitempty"`
}

type wAppProps struct {
	XMLName     xml.Name `xml:"Properties"`
	Xmlns       string   `xml:"xmlns,attr"`
	XmlnsVt     string   `xml:"xmlns:vt,attr"`
	Application string   `xml:"Application,omitempty"`
	Slides      int      `xml:"Slides"`
	Company     string   `xml:"Company,omitempty"`
}

// marshalPart renders an XML declaration plus the marshaled value.
func marshalPart(v interface{}) ([]byte, error) {
	body, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.Write(body)
	return buf.Bytes(), nil
}

// relIDFor returns the id of the relationship from part to target,
// which must have been synced beforehand.
func relIDFor(part *opc.Part, target string) (string, error) {
	rel, ok := part.Relationships().ByTarget(relTarget(part.Name(), target))
	if !ok {
		return "", fmt.Errorf("deck: part %s has no relationship to %s", part.Name(), target)
	}
	return rel.ID, nil
}

func buildTxBody(tb *TextBody) *wTxBody {
	w := &wTxBody{}
	if tb == nil {
		w.P = []wP{{}}
		return w
	}
	w.BodyPr.Anchor = string(tb.Anchor)
	if tb.WordWrap != nil {
		if *tb.WordWrap {
			w.BodyPr.Wrap = "square"
		} else {
			w.BodyPr.Wrap = "none"
		}
	}
	for _, p := range tb.Paragraphs {
		w.P = append(w.P, buildParagraph(p))
	}
	if len(w.P) == 0 {
		w.P = []wP{{}}
	}
	return w
}

func buildParagraph(p *Paragraph) wP {
	var out wP
	if p.Level != 0 || p.Alignment != AlignDefault || p.Bullet != (Bullet{}) {
		pPr := &wPPr{Lvl: p.Level, Algn: string(p.Alignment)}
		switch {
		case p.Bullet.None:
			pPr.BuNone = &struct{}{}
		case p.Bullet.Char != "":
			pPr.BuChar = &wBuChar{Char: p.Bullet.Char}
		case p.Bullet.AutoNum != "":
			pPr.BuAutoNum = &wBuAutoNum{Type: p.Bullet.AutoNum}
		}
		out.PPr = pPr
	}
	for _, r := range p.Runs {
		out.R = append(out.R, buildRun(r))
	}
	return out
}

func buildRun(r *Run) wR {
	out := wR{T: r.Text}
	rPr := &wRPr{}
	used := false
	if r.SizePts > 0 {
		rPr.Sz = int(r.SizePts * 100)
		used = true
	}
	if r.Bold {
		rPr.B = 1
		used = true
	}
	if r.Italic {
		rPr.I = 1
		used = true
	}
	if r.Underline {
		rPr.U = "sng"
		used = true
	}
	if r.Color != "" {
		rPr.SolidFill = &wSolidFill{SrgbClr: wSrgbClr{Val: r.Color}}
		used = true
	}
	if r.Font != "" {
		rPr.Latin = &wLatin{Typeface: r.Font}
		used = true
	}
	if used {
		out.RPr = rPr
	}
	return out
}

func buildXfrm(g *Geometry) *wXfrm {
	if g == nil {
		return nil
	}
	return &wXfrm{
		Rot: g.Rotation * 60000, // schema rotation unit is 1/60000 degree
		Off: wOff{X: int64(g.OffsetX), Y: int64(g.OffsetY)},
		Ext: wExt{Cx: int64(g.Width), Cy: int64(g.Height)},
	}
}

func buildPh(ref *PlaceholderRef) *wPh {
	if ref == nil {
		return nil
	}
	ph := &wPh{Type: string(ref.Type)}
	if ref.HasIdx {
		idx := ref.Idx
		ph.Idx = &idx
	}
	return ph
}

// marshalShape renders one slide shape. Pictures and charts resolve
// their relationship ids through the slide part, so the slide's
// relationships must be synced first.
func marshalShape(s *Slide, sh Shape) ([]byte, error) {
	switch v := sh.(type) {
	case *TextBox:
		w := wSp{SpPr: wSpPr{Xfrm: buildXfrm(v.geom)}, TxBody: buildTxBody(v.Body), Extra: v.extra, Tail: v.extraTail}
		w.NvSpPr.CNvPr = wCNvPr{ID: v.id, Name: v.name}
		w.NvSpPr.CNvSpPr.TxBox = 1
		return xml.Marshal(w)
	case *AutoShape:
		w := wSp{TxBody: buildTxBody(v.Body), Extra: v.extra, Tail: v.extraTail}
		w.NvSpPr.CNvPr = wCNvPr{ID: v.id, Name: v.name}
		w.SpPr = wSpPr{
			Xfrm:     buildXfrm(v.geom),
			PrstGeom: &wPrstGeom{Prst: v.Preset},
		}
		if v.FillColor != "" {
			w.SpPr.SolidFill = &wSolidFill{SrgbClr: wSrgbClr{Val: v.FillColor}}
		}
		if v.LineColor != "" {
			w.SpPr.Ln = &wLn{SolidFill: &wSolidFill{SrgbClr: wSrgbClr{Val: v.LineColor}}}
		}
		return xml.Marshal(w)
	case *Placeholder:
		w := wSp{SpPr: wSpPr{Xfrm: buildXfrm(v.geom)}, TxBody: buildTxBody(v.Body), Extra: v.extra, Tail: v.extraTail}
		w.NvSpPr.CNvPr = wCNvPr{ID: v.id, Name: v.name}
		w.NvSpPr.NvPr.Ph = buildPh(v.ph)
		return xml.Marshal(w)
	case *Picture:
		rid, err := relIDFor(s.part, v.media.partName)
		if err != nil {
			return nil, err
		}
		w := wPic{SpPr: wSpPr{Xfrm: buildXfrm(v.geom)}, Extra: v.extra}
		w.NvPicPr.CNvPr = wCNvPr{ID: v.id, Name: v.name}
		w.NvPicPr.CNvPicPr.PicLocks.NoChangeAspect = 1
		w.BlipFill.Blip.Embed = rid
		return xml.Marshal(w)
	case *Table:
		w := wGraphicFrame{Xfrm: frameXfrm(v.geom)}
		w.NvPr.CNvPr = wCNvPr{ID: v.id, Name: v.name}
		w.Graphic.GraphicData = wGraphicData{URI: uriTable, Tbl: buildTbl(v)}
		return xml.Marshal(w)
	case *Chart:
		if v.syncErr != nil {
			return nil, fmt.Errorf("deck: chart %q workbook cache: %w", v.name, v.syncErr)
		}
		rid, err := relIDFor(s.part, v.part.Name())
		if err != nil {
			return nil, err
		}
		w := wGraphicFrame{Xfrm: frameXfrm(v.geom)}
		w.NvPr.CNvPr = wCNvPr{ID: v.id, Name: v.name}
		w.Graphic.GraphicData = wGraphicData{
			URI:   uriChart,
			Chart: &wChartRef{XmlnsC: nsChart, XmlnsR: nsRelationships, RID: rid},
		}
		return xml.Marshal(w)
	case *rawShape:
		return v.raw, nil
	}
	return nil, fmt.Errorf("deck: cannot serialize shape %q", sh.Name())
}

func frameXfrm(g *Geometry) wGfXfrm {
	if g == nil {
		return wGfXfrm{}
	}
	return wGfXfrm{
		Off: wOff{X: int64(g.OffsetX), Y: int64(g.OffsetY)},
		Ext: wExt{Cx: int64(g.Width), Cy: int64(g.Height)},
	}
}

func buildTbl(t *Table) *wTbl {
	w := &wTbl{}
	if t.FirstRowHeader {
		w.TblPr.FirstRow = 1
	}
	for _, cw := range t.colWidths {
		w.TblGrid.GridCol = append(w.TblGrid.GridCol, wGridCol{W: int64(cw)})
	}
	for i, row := range t.rows {
		tr := wTr{H: int64(t.rowHeights[i])}
		for _, cell := range row {
			tc := wTc{TxBody: *buildTxBody(cell.Body)}
			if cell.RowSpan > 1 {
				tc.RowSpan = cell.RowSpan
			}
			if cell.ColSpan > 1 {
				tc.GridSpan = cell.ColSpan
			}
			if cell.HMerge {
				tc.HMerge = 1
			}
			if cell.VMerge {
				tc.VMerge = 1
			}
			if cell.FillColor != "" {
				tc.TcPr.SolidFill = &wSolidFill{SrgbClr: wSrgbClr{Val: cell.FillColor}}
			}
			tr.Tc = append(tr.Tc, tc)
		}
		w.Tr = append(w.Tr, tr)
	}
	return w
}

// slideBytes renders a slide part. Shape relationship ids resolve
// through the slide's synced relationships.
func (s *Slide) slideBytes() ([]byte, error) {
	var inner bytes.Buffer
	for _, sh := range s.shapes {
		b, err := marshalShape(s, sh)
		if err != nil {
			return nil, err
		}
		inner.Write(b)
	}

	w := wSld{
		XmlnsA: nsDrawingML,
		XmlnsR: nsRelationships,
		XmlnsP: nsPresentationML,
		Extra:  s.extra,
	}
	if s.creationID != "" {
		w.ExtLst = &wSldExtLst{Ext: wSldExt{
			URI:        creationIDExtURI,
			CreationID: wCreationID{XmlnsP14: nsPowerPoint2010, Val: s.creationID},
		}}
	}
	w.CSld.SpTree = wSpTree{
		NvGrpSpPr: wNvGrpSpPr{CNvPr: wCNvPr{ID: 1, Name: ""}},
		Inner:     inner.Bytes(),
	}
	return marshalPart(w)
}

// notesBytes renders the speaker-notes part for a slide: a single
// body placeholder carrying the notes text.
func (s *Slide) notesBytes() ([]byte, error) {
	body := NewTextBody()
	body.SetText(s.notes)

	idx := 1
	sp := wSp{TxBody: buildTxBody(body)}
	sp.NvSpPr.CNvPr = wCNvPr{ID: 2, Name: "Notes Placeholder 2"}
	sp.NvSpPr.NvPr.Ph = &wPh{Type: string(PhBody), Idx: &idx}
	inner, err := xml.Marshal(sp)
	if err != nil {
		return nil, err
	}

	w := wNotes{
		XmlnsA: nsDrawingML,
		XmlnsR: nsRelationships,
		XmlnsP: nsPresentationML,
	}
	w.CSld.SpTree = wSpTree{
		NvGrpSpPr: wNvGrpSpPr{CNvPr: wCNvPr{ID: 1, Name: ""}},
		Inner:     inner,
	}
	return marshalPart(w)
}

// presentationBytes renders ppt/presentation.xml. Master and slide
// relationship ids resolve through the presentation part's synced
// relationships.
func (prs *Presentation) presentationBytes() ([]byte, error) {
	w := wPresentation{
		XmlnsA:  nsDrawingML,
		XmlnsR:  nsRelationships,
		XmlnsP:  nsPresentationML,
		SldSz:   wSldSz{Cx: int64(prs.slideWidth), Cy: int64(prs.slideHeight)},
		NotesSz: wNotesSz{Cx: 6858000, Cy: 9144000},
		Extra:   prs.extra,
	}
	if prs.slideWidth == SlideWidth4x3 && prs.slideHeight == SlideHeight4x3 {
		w.SldSz.Type = "screen4x3"
	}

	if len(prs.masters) > 0 {
		lst := &wMasterIdLst{}
		for i, m := range prs.masters {
			rid, err := relIDFor(prs.presPart, m.partName)
			if err != nil {
				return nil, err
			}
			lst.SldMasterId = append(lst.SldMasterId, wMasterId{
				ID:  fmt.Sprintf("%d", 2147483648+i),
				RID: rid,
			})
		}
		w.SldMasterIdLst = lst
	}

	lst := &wSldIdLst{}
	for i, s := range prs.slides {
		rid, err := relIDFor(prs.presPart, s.part.Name())
		if err != nil {
			return nil, err
		}
		lst.SldId = append(lst.SldId, wSldId{
			ID:  fmt.Sprintf("%d", 256+i),
			RID: rid,
		})
	}
	w.SldIdLst = lst
	return marshalPart(w)
}

// Dublin Core namespaces for docProps/core.xml.
const (
	nsCoreProps = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsDC        = "http://purl.org/dc/elements/1.1/"
	nsDCTerms   = "http://purl.org/dc/terms/"
	nsExtProps  = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	nsVTypes    = "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"
)

func (prs *Presentation) corePropsBytes() ([]byte, error) {
	return marshalPart(wCoreProps{
		XmlnsCp:        nsCoreProps,
		XmlnsDc:        nsDC,
		XmlnsDcterms:   nsDCTerms,
		Title:          prs.Core.Title,
		Subject:        prs.Core.Subject,
		Creator:        prs.Core.Creator,
		Keywords:       prs.Core.Keywords,
		Description:    prs.Core.Description,
		LastModifiedBy: prs.Core.LastModifiedBy,
	})
}

func (prs *Presentation) appPropsBytes() ([]byte, error) {
	return marshalPart(wAppProps{
		Xmlns:       nsExtProps,
		XmlnsVt:     nsVTypes,
		Application: prs.App.Application,
		Slides:      len(prs.slides),
		Company:     prs.App.Company,
	})
}

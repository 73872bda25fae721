package deck

import (
	"encoding/xml"

	"github.com/tsawler/lectern/internal/xmlutil"
)

// XML namespaces used in presentation parts.
const (
	nsPresentationML = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsDrawingML      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsChart          = "http://schemas.openxmlformats.org/drawingml/2006/chart"
	nsRelationships  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPowerPoint2010 = "http://schemas.microsoft.com/office/powerpoint/2010/main"
)

// URIs distinguishing graphic-frame payloads.
const (
	uriTable = "http://schemas.openxmlformats.org/drawingml/2006/table"
	uriChart = "http://schemas.openxmlformats.org/drawingml/2006/chart"
)

// presentationXML models ppt/presentation.xml on read.
type presentationXML struct {
	XMLName        xml.Name         `xml:"presentation"`
	SldMasterIdLst *masterIdListXML `xml:"sldMasterIdLst"`
	SldIdLst       *slideIdListXML  `xml:"sldIdLst"`
	SldSz          *slideSzXML      `xml:"sldSz"`
	NotesSz        *slideSzXML      `xml:"notesSz"`
	Extra          []xmlutil.RawXML `xml:",any"`
}

type masterIdListXML struct {
	SldMasterId []masterIdXML `xml:"sldMasterId"`
}

type masterIdXML struct {
	ID  string `xml:"id,attr"`
	RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

type slideIdListXML struct {
	SldId []slideIdXML `xml:"sldId"`
}

type slideIdXML struct {
	ID  string `xml:"id,attr"`
	RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

type slideSzXML struct {
	Cx   int64  `xml:"cx,attr"`
	Cy   int64  `xml:"cy,attr"`
	Type string `xml:"type,attr"`
}

// slideXML models a slide, layout, or master part on read; the three
// share the cSld/spTree skeleton.
type slideXML struct {
	CSld  cSldXML          `xml:"cSld"`
	Extra []xmlutil.RawXML `xml:",any"`
}

type cSldXML struct {
	Name   string    `xml:"name,attr"`
	SpTree spTreeXML `xml:"spTree"`
}

// spTreeXML is the shape tree. Children decode in document order so
// z-order survives a load/save cycle; unmodeled content (groups,
// connector shapes) is preserved verbatim.
type spTreeXML struct {
	Children []spTreeChildXML
}

// spTreeChildXML is one shape-tree entry; exactly one field is set.
type spTreeChildXML struct {
	Sp    *spXML
	Pic   *picXML
	Frame *graphicFrameXML
	Raw   *xmlutil.RawXML
}

func (t *spTreeXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "nvGrpSpPr", "grpSpPr":
				// Fixed group preamble, regenerated on write.
				if err := d.Skip(); err != nil {
					return err
				}
			case "sp":
				var sp spXML
				if err := d.DecodeElement(&sp, &el); err != nil {
					return err
				}
				t.Children = append(t.Children, spTreeChildXML{Sp: &sp})
			case "pic":
				var pic picXML
				if err := d.DecodeElement(&pic, &el); err != nil {
					return err
				}
				t.Children = append(t.Children, spTreeChildXML{Pic: &pic})
			case "graphicFrame":
				var frame graphicFrameXML
				if err := d.DecodeElement(&frame, &el); err != nil {
					return err
				}
				t.Children = append(t.Children, spTreeChildXML{Frame: &frame})
			default:
				var raw xmlutil.RawXML
				if err := d.DecodeElement(&raw, &el); err != nil {
					return err
				}
				t.Children = append(t.Children, spTreeChildXML{Raw: &raw})
			}
		case xml.EndElement:
			return nil
		}
	}
}

type spXML struct {
	NvSpPr nvSpPrXML        `xml:"nvSpPr"`
	SpPr   spPrXML          `xml:"spPr"`
	TxBody *txBodyXML       `xml:"txBody"`
	Extra  []xmlutil.RawXML `xml:",any"`
}

type nvSpPrXML struct {
	CNvPr cNvPrXML `xml:"cNvPr"`
	NvPr  nvPrXML  `xml:"nvPr"`
}

type cNvPrXML struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type nvPrXML struct {
	Ph *phXML `xml:"ph"`
}

type phXML struct {
	Type string `xml:"type,attr"`
	Idx  *int   `xml:"idx,attr"`
}

type spPrXML struct {
	Xfrm      *xfrmXML      `xml:"xfrm"`
	PrstGeom  *prstGeomXML  `xml:"prstGeom"`
	SolidFill *solidFillXML `xml:"solidFill"`
	Ln        *lnXML        `xml:"ln"`
}

type xfrmXML struct {
	Rot int    `xml:"rot,attr"`
	Off offXML `xml:"off"`
	Ext extXML `xml:"ext"`
}

type offXML struct {
	X int64 `xml:"x,attr"`
	Y int64 `xml:"y,attr"`
}

type extXML struct {
	Cx int64 `xml:"cx,attr"`
	Cy int64 `xml:"cy,attr"`
}

type prstGeomXML struct {
	Prst string `xml:"prst,attr"`
}

type solidFillXML struct {
	SrgbClr *srgbClrXML `xml:"srgbClr"`
}

type srgbClrXML struct {
	Val string `xml:"val,attr"`
}

type lnXML struct {
	SolidFill *solidFillXML `xml:"solidFill"`
}

type txBodyXML struct {
	BodyPr bodyPrXML `xml:"bodyPr"`
	P      []pXML    `xml:"p"`
}

type bodyPrXML struct {
	Anchor string `xml:"anchor,attr"`
	Wrap   string `xml:"wrap,attr"`
}

type pXML struct {
	PPr *pPrXML `xml:"pPr"`
	R   []rXML  `xml:"r"`
}

type pPrXML struct {
	Lvl       int           `xml:"lvl,attr"`
	Algn      string        `xml:"algn,attr"`
	BuNone    *struct{}     `xml:"buNone"`
	BuChar    *buCharXML    `xml:"buChar"`
	BuAutoNum *buAutoNumXML `xml:"buAutoNum"`
}

type buCharXML struct {
	Char string `xml:"char,attr"`
}

type buAutoNumXML struct {
	Type string `xml:"type,attr"`
}

type rXML struct {
	RPr *rPrXML `xml:"rPr"`
	T   string  `xml:"t"`
}

type rPrXML struct {
	Sz        int           `xml:"sz,attr"` // hundredths of a point
	B         *int          `xml:"b,attr"`
	I         *int          `xml:"i,attr"`
	U         string        `xml:"u,attr"`
	SolidFill *solidFillXML `xml:"solidFill"`
	Latin     *latinXML     `xml:"latin"`
}

type latinXML struct {
	Typeface string `xml:"typeface,attr"`
}

type picXML struct {
	NvPicPr  nvPicPrXML       `xml:"nvPicPr"`
	BlipFill blipFillXML      `xml:"blipFill"`
	SpPr     spPrXML          `xml:"spPr"`
	Extra    []xmlutil.RawXML `xml:",any"`
}

type nvPicPrXML struct {
	CNvPr cNvPrXML `xml:"cNvPr"`
}

type blipFillXML struct {
	Blip blipXML `xml:"blip"`
}

type blipXML struct {
	Embed string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships embed,attr"`
}

type graphicFrameXML struct {
	NvGraphicFramePr nvGraphicFramePrXML `xml:"nvGraphicFramePr"`
	Xfrm             *xfrmXML            `xml:"xfrm"`
	Graphic          graphicXML          `xml:"graphic"`
}

type nvGraphicFramePrXML struct {
	CNvPr cNvPrXML `xml:"cNvPr"`
}

type graphicXML struct {
	GraphicData graphicDataXML `xml:"graphicData"`
}

type graphicDataXML struct {
	URI   string       `xml:"uri,attr"`
	Tbl   *tblXML      `xml:"tbl"`
	Chart *chartRefXML `xml:"chart"`
}

type chartRefXML struct {
	RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

type tblXML struct {
	TblPr   *tblPrXML  `xml:"tblPr"`
	TblGrid tblGridXML `xml:"tblGrid"`
	Tr      []trXML    `xml:"tr"`
}

type tblPrXML struct {
	FirstRow int `xml:"firstRow,attr"`
}

type tblGridXML struct {
	GridCol []gridColXML `xml:"gridCol"`
}

type gridColXML struct {
	W int64 `xml:"w,attr"`
}

type trXML struct {
	H  int64   `xml:"h,attr"`
	Tc []tcXML `xml:"tc"`
}

type tcXML struct {
	RowSpan  int        `xml:"rowSpan,attr"`
	GridSpan int        `xml:"gridSpan,attr"`
	HMerge   int        `xml:"hMerge,attr"`
	VMerge   int        `xml:"vMerge,attr"`
	TxBody   *txBodyXML `xml:"txBody"`
	TcPr     *tcPrXML   `xml:"tcPr"`
}

type tcPrXML struct {
	SolidFill *solidFillXML `xml:"solidFill"`
}

// notesSlideXML models a ppt/notesSlides/notesSlide*.xml part.
type notesSlideXML struct {
	XMLName xml.Name `xml:"notes"`
	CSld    cSldXML  `xml:"cSld"`
}

// corePropertiesXML models docProps/core.xml on read.
type corePropertiesXML struct {
	XMLName        xml.Name `xml:"coreProperties"`
	Title          string   `xml:"title"`
	Subject        string   `xml:"subject"`
	Creator        string   `xml:"creator"`
	Keywords       string   `xml:"keywords"`
	Description    string   `xml:"description"`
	LastModifiedBy string   `xml:"lastModifiedBy"`
}

// appPropertiesXML models docProps/app.xml on read.
type appPropertiesXML struct {
	XMLName     xml.Name `xml:"Properties"`
	Application string   `xml:"Application"`
	Company     string   `xml:"Company"`
	Slides      int      `xml:"Slides"`
}

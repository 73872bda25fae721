package deck

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

// Chart parts are regenerated wholesale from the Chart's data, so the
// write structs cover exactly the plot kinds the library produces.
// The formulas in the caches point into the embedded workbook:
// categories in column A, one series per column from B on.

type wChartSpace struct {
	XMLName      xml.Name       `xml:"c:chartSpace"`
	XmlnsC       string         `xml:"xmlns:c,attr"`
	XmlnsA       string         `xml:"xmlns:a,attr"`
	XmlnsR       string         `xml:"xmlns:r,attr"`
	Chart        wChart         `xml:"c:chart"`
	ExternalData *wExternalData `xml:"c:externalData"`
}

type wChart struct {
	Title            *wChTitle `xml:"c:title"`
	AutoTitleDeleted wVal      `xml:"c:autoTitleDeleted"`
	PlotArea         wPlotArea `xml:"c:plotArea"`
	Legend           *wLegend  `xml:"c:legend"`
	PlotVisOnly      wVal      `xml:"c:plotVisOnly"`
}

type wVal struct {
	Val string `xml:"val,attr"`
}

type wChTitle struct {
	Tx      wChTx `xml:"c:tx"`
	Overlay wVal  `xml:"c:overlay"`
}

type wChTx struct {
	Rich wRich `xml:"c:rich"`
}

type wRich struct {
	BodyPr   struct{} `xml:"a:bodyPr"`
	LstStyle struct{} `xml:"a:lstStyle"`
	P        []wP     `xml:"a:p"`
}

type wPlotArea struct {
	Layout    struct{}    `xml:"c:layout"`
	BarChart  *wBarChart  `xml:"c:barChart"`
	LineChart *wLineChart `xml:"c:lineChart"`
	PieChart  *wPieChart  `xml:"c:pieChart"`
	CatAx     *wAxis      `xml:"c:catAx"`
	ValAx     *wAxis      `xml:"c:valAx"`
}

type wBarChart struct {
	BarDir   wVal   `xml:"c:barDir"`
	Grouping wVal   `xml:"c:grouping"`
	Ser      []wSer `xml:"c:ser"`
	Overlap  *wVal  `xml:"c:overlap"`
	AxID     []wVal `xml:"c:axId"`
}

type wLineChart struct {
	Grouping wVal   `xml:"c:grouping"`
	Ser      []wSer `xml:"c:ser"`
	Marker   wVal   `xml:"c:marker"`
	AxID     []wVal `xml:"c:axId"`
}

type wPieChart struct {
	VaryColors wVal   `xml:"c:varyColors"`
	Ser        []wSer `xml:"c:ser"`
}

type wSer struct {
	Idx    wVal     `xml:"c:idx"`
	Order  wVal     `xml:"c:order"`
	Tx     *wSerTx  `xml:"c:tx"`
	Marker *wMarker `xml:"c:marker"`
	Cat    *wCatRef `xml:"c:cat"`
	Val    *wValRef `xml:"c:val"`
}

type wSerTx struct {
	StrRef wStrRef `xml:"c:strRef"`
}

type wCatRef struct {
	StrRef wStrRef `xml:"c:strRef"`
}

type wValRef struct {
	NumRef wNumRef `xml:"c:numRef"`
}

type wStrRef struct {
	F        string    `xml:"c:f"`
	StrCache wStrCache `xml:"c:strCache"`
}

type wStrCache struct {
	PtCount wVal    `xml:"c:ptCount"`
	Pt      []wChPt `xml:"c:pt"`
}

type wNumRef struct {
	F        string    `xml:"c:f"`
	NumCache wNumCache `xml:"c:numCache"`
}

type wNumCache struct {
	FormatCode string  `xml:"c:formatCode"`
	PtCount    wVal    `xml:"c:ptCount"`
	Pt         []wChPt `xml:"c:pt"`
}

type wChPt struct {
	Idx int    `xml:"idx,attr"`
	V   string `xml:"c:v"`
}

type wMarker struct {
	Symbol wVal `xml:"c:symbol"`
}

type wAxis struct {
	AxID    wVal     `xml:"c:axId"`
	Scaling wScaling `xml:"c:scaling"`
	Delete  wVal     `xml:"c:delete"`
	AxPos   wVal     `xml:"c:axPos"`
	CrossAx wVal     `xml:"c:crossAx"`
}

type wScaling struct {
	Orientation wVal `xml:"c:orientation"`
}

type wLegend struct {
	LegendPos wVal `xml:"c:legendPos"`
	Overlay   wVal `xml:"c:overlay"`
}

type wExternalData struct {
	RID        string `xml:"r:id,attr"`
	AutoUpdate wVal   `xml:"c:autoUpdate"`
}

// Fixed axis ids; the two only need to agree across catAx, valAx, and
// the plot's axId references.
const (
	catAxisID = "111111111"
	valAxisID = "222222222"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// columnName returns the spreadsheet column letters for a zero-based
// column index (0 -> A, 25 -> Z, 26 -> AA).
func columnName(col int) string {
	name := ""
	for col >= 0 {
		name = string(rune('A'+col%26)) + name
		col = col/26 - 1
	}
	return name
}

func (c *Chart) buildSer(i int, s *Series) wSer {
	col := columnName(i + 1)
	ser := wSer{
		Idx:   wVal{Val: strconv.Itoa(i)},
		Order: wVal{Val: strconv.Itoa(i)},
	}
	ser.Tx = &wSerTx{StrRef: wStrRef{
		F: fmt.Sprintf("Sheet1!$%s$1", col),
		StrCache: wStrCache{
			PtCount: wVal{Val: "1"},
			Pt:      []wChPt{{Idx: 0, V: s.Name}},
		},
	}}
	if c.kind == Line {
		ser.Marker = &wMarker{Symbol: wVal{Val: "none"}}
	}

	catCache := wStrCache{PtCount: wVal{Val: strconv.Itoa(len(c.categories))}}
	for j, label := range c.categories {
		catCache.Pt = append(catCache.Pt, wChPt{Idx: j, V: label})
	}
	ser.Cat = &wCatRef{StrRef: wStrRef{
		F:        fmt.Sprintf("Sheet1!$A$2:$A$%d", len(c.categories)+1),
		StrCache: catCache,
	}}

	code := s.NumberFormat
	if code == "" {
		code = "General"
	}
	numCache := wNumCache{
		FormatCode: code,
		PtCount:    wVal{Val: strconv.Itoa(len(s.Values))},
	}
	for j, v := range s.Values {
		numCache.Pt = append(numCache.Pt, wChPt{Idx: j, V: formatFloat(v)})
	}
	ser.Val = &wValRef{NumRef: wNumRef{
		F:        fmt.Sprintf("Sheet1!$%s$2:$%s$%d", col, col, len(s.Values)+1),
		NumCache: numCache,
	}}
	return ser
}

// chartXML renders the chart part from the chart's current data.
func (c *Chart) chartXML() []byte {
	space := wChartSpace{
		XmlnsC: nsChart,
		XmlnsA: nsDrawingML,
		XmlnsR: nsRelationships,
	}
	ch := &space.Chart
	ch.AutoTitleDeleted = wVal{Val: "0"}
	ch.PlotVisOnly = wVal{Val: "1"}

	if c.title != "" {
		title := &wChTitle{Overlay: wVal{Val: "0"}}
		title.Tx.Rich.P = []wP{{R: []wR{{T: c.title}}}}
		ch.Title = title
	} else {
		ch.AutoTitleDeleted = wVal{Val: "1"}
	}

	var sers []wSer
	for i, s := range c.series {
		sers = append(sers, c.buildSer(i, s))
	}

	axIDs := []wVal{{Val: catAxisID}, {Val: valAxisID}}
	withAxes := true
	switch c.kind {
	case ColumnClustered:
		ch.PlotArea.BarChart = &wBarChart{
			BarDir:   wVal{Val: "col"},
			Grouping: wVal{Val: "clustered"},
			Ser:      sers,
			AxID:     axIDs,
		}
	case ColumnStacked:
		ch.PlotArea.BarChart = &wBarChart{
			BarDir:   wVal{Val: "col"},
			Grouping: wVal{Val: "stacked"},
			Ser:      sers,
			Overlap:  &wVal{Val: "100"},
			AxID:     axIDs,
		}
	case BarClustered:
		ch.PlotArea.BarChart = &wBarChart{
			BarDir:   wVal{Val: "bar"},
			Grouping: wVal{Val: "clustered"},
			Ser:      sers,
			AxID:     axIDs,
		}
	case Line, LineMarkers:
		marker := "0"
		if c.kind == LineMarkers {
			marker = "1"
		}
		ch.PlotArea.LineChart = &wLineChart{
			Grouping: wVal{Val: "standard"},
			Ser:      sers,
			Marker:   wVal{Val: marker},
			AxID:     axIDs,
		}
	case Pie:
		ch.PlotArea.PieChart = &wPieChart{
			VaryColors: wVal{Val: "1"},
			Ser:        sers,
		}
		withAxes = false
	}

	if withAxes {
		ch.PlotArea.CatAx = &wAxis{
			AxID:    wVal{Val: catAxisID},
			Scaling: wScaling{Orientation: wVal{Val: "minMax"}},
			Delete:  wVal{Val: "0"},
			AxPos:   wVal{Val: "b"},
			CrossAx: wVal{Val: valAxisID},
		}
		ch.PlotArea.ValAx = &wAxis{
			AxID:    wVal{Val: valAxisID},
			Scaling: wScaling{Orientation: wVal{Val: "minMax"}},
			Delete:  wVal{Val: "0"},
			AxPos:   wVal{Val: "l"},
			CrossAx: wVal{Val: catAxisID},
		}
	}

	if c.hasLegend {
		ch.Legend = &wLegend{
			LegendPos: wVal{Val: c.legendPos},
			Overlay:   wVal{Val: "0"},
		}
	}

	if c.wbPart != nil {
		if rel, ok := c.part.Relationships().ByTarget(relTarget(c.part.Name(), c.wbPart.Name())); ok {
			space.ExternalData = &wExternalData{
				RID:        rel.ID,
				AutoUpdate: wVal{Val: "0"},
			}
		}
	}

	data, err := marshalPart(space)
	if err != nil {
		return nil
	}
	return data
}

// Read-side chart structs, matched by local name. They extract the
// data the model carries; everything else in a loaded chart part is
// regenerated on the first mutation.

type chartSpaceXML struct {
	Chart chartXMLBody `xml:"chart"`
}

type chartXMLBody struct {
	Title    *chTitleXML   `xml:"title"`
	PlotArea chPlotAreaXML `xml:"plotArea"`
	Legend   *chLegendXML  `xml:"legend"`
}

type chTitleXML struct {
	Tx *chTxXML `xml:"tx"`
}

type chTxXML struct {
	Rich *txBodyXML `xml:"rich"`
}

type chLegendXML struct {
	LegendPos chValXML `xml:"legendPos"`
}

type chValXML struct {
	Val string `xml:"val,attr"`
}

type chPlotAreaXML struct {
	BarChart  *chBarXML  `xml:"barChart"`
	LineChart *chLineXML `xml:"lineChart"`
	PieChart  *chPieXML  `xml:"pieChart"`
}

type chBarXML struct {
	BarDir   chValXML   `xml:"barDir"`
	Grouping chValXML   `xml:"grouping"`
	Ser      []chSerXML `xml:"ser"`
}

type chLineXML struct {
	Marker *chValXML  `xml:"marker"`
	Ser    []chSerXML `xml:"ser"`
}

type chPieXML struct {
	Ser []chSerXML `xml:"ser"`
}

type chSerXML struct {
	Tx  *chSerTxXML  `xml:"tx"`
	Cat *chCatXML    `xml:"cat"`
	Val *chValRefXML `xml:"val"`
}

type chSerTxXML struct {
	StrRef *chStrRefXML `xml:"strRef"`
	V      string       `xml:"v"`
}

type chCatXML struct {
	StrRef *chStrRefXML `xml:"strRef"`
}

type chValRefXML struct {
	NumRef *chNumRefXML `xml:"numRef"`
}

type chStrRefXML struct {
	StrCache chCacheXML `xml:"strCache"`
}

type chNumRefXML struct {
	NumCache chNumCacheXML `xml:"numCache"`
}

type chCacheXML struct {
	Pt []chPtXML `xml:"pt"`
}

type chNumCacheXML struct {
	FormatCode string    `xml:"formatCode"`
	Pt         []chPtXML `xml:"pt"`
}

type chPtXML struct {
	Idx int    `xml:"idx,attr"`
	V   string `xml:"v"`
}

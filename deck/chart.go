package deck

import (
	"fmt"

	"github.com/tsawler/lectern/opc"
)

// ChartKind selects the plot type of a chart.
type ChartKind int

// Chart kinds. These cover the plot types the library serializes;
// loaded charts of other kinds keep their parts untouched.
const (
	ColumnClustered ChartKind = iota
	ColumnStacked
	BarClustered
	Line
	LineMarkers
	Pie
)

func (k ChartKind) String() string {
	switch k {
	case ColumnClustered:
		return "column clustered"
	case ColumnStacked:
		return "column stacked"
	case BarClustered:
		return "bar clustered"
	case Line:
		return "line"
	case LineMarkers:
		return "line with markers"
	case Pie:
		return "pie"
	}
	return "unknown"
}

// Series is one data series of a chart: a name and one value per
// category.
type Series struct {
	Name         string
	Values       []float64
	NumberFormat string // cached-value format code, e.g. "#,##0"; "General" when empty

	chart *Chart
}

// SetNumberFormat sets the format code written to the value cache.
func (s *Series) SetNumberFormat(code string) *Series {
	s.NumberFormat = code
	if s.chart != nil {
		s.chart.sync()
	}
	return s
}

// Chart is a graphic-frame shape plotting one or more series against
// a shared category axis. The chart definition lives in its own part;
// a workbook part mirrors the plotted data for consumers that read
// cached values. Both parts are regenerated synchronously on every
// mutation, so saving never recomputes them.
type Chart struct {
	baseShape
	kind       ChartKind
	title      string
	hasLegend  bool
	legendPos  string // r, l, t, b
	categories []string
	series     []*Series

	part    *opc.Part // /ppt/charts/chartN.xml
	wbPart  *opc.Part // /ppt/embeddings/Microsoft_Excel_WorksheetN.xlsx
	syncErr error     // failed workbook regeneration, reported at save
}

// Kind returns KindChart.
func (c *Chart) Kind() ShapeKind { return KindChart }

// Type returns the chart's plot kind.
func (c *Chart) Type() ChartKind { return c.kind }

// Title returns the chart title ("" for none).
func (c *Chart) Title() string { return c.title }

// SetTitle sets the chart title. An empty title removes it.
func (c *Chart) SetTitle(title string) *Chart {
	c.title = title
	c.sync()
	return c
}

// SetLegend shows or hides the legend. Position is one of "r", "l",
// "t", "b"; it defaults to "r" when empty.
func (c *Chart) SetLegend(show bool, position string) *Chart {
	c.hasLegend = show
	if position == "" {
		position = "r"
	}
	c.legendPos = position
	c.sync()
	return c
}

// Categories returns a copy of the category labels.
func (c *Chart) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// Series returns the series in plot order. The slice is a copy; the
// series themselves are shared.
func (c *Chart) Series() []*Series {
	out := make([]*Series, len(c.series))
	copy(out, c.series)
	return out
}

// SetCategories replaces the category labels. Every existing series
// must already have exactly len(labels) values; otherwise the call
// fails with ErrSeriesLengthMismatch and the chart is unchanged.
func (c *Chart) SetCategories(labels []string) error {
	for _, s := range c.series {
		if len(s.Values) != len(labels) {
			return fmt.Errorf("%w: series %q has %d values, %d categories given",
				ErrSeriesLengthMismatch, s.Name, len(s.Values), len(labels))
		}
	}
	c.categories = make([]string, len(labels))
	copy(c.categories, labels)
	c.sync()
	return nil
}

// AddSeries appends a series. The value count must equal the category
// count; otherwise the call fails with ErrSeriesLengthMismatch and
// the chart is unchanged.
func (c *Chart) AddSeries(name string, values []float64) (*Series, error) {
	if len(values) != len(c.categories) {
		return nil, fmt.Errorf("%w: series %q has %d values, chart has %d categories",
			ErrSeriesLengthMismatch, name, len(values), len(c.categories))
	}
	s := &Series{Name: name, chart: c}
	s.Values = make([]float64, len(values))
	copy(s.Values, values)
	c.series = append(c.series, s)
	c.sync()
	return s, nil
}

// SetSeriesValues replaces the values of the series at index.
func (c *Chart) SetSeriesValues(index int, values []float64) error {
	if index < 0 || index >= len(c.series) {
		return fmt.Errorf("%w: series %d", ErrOutOfRange, index)
	}
	if len(values) != len(c.categories) {
		return fmt.Errorf("%w: %d values, chart has %d categories",
			ErrSeriesLengthMismatch, len(values), len(c.categories))
	}
	s := c.series[index]
	s.Values = make([]float64, len(values))
	copy(s.Values, values)
	c.sync()
	return nil
}

// sync regenerates the chart part and its workbook cache from the
// current data. Mutations call it synchronously so the serialized
// caches are never stale at save time.
func (c *Chart) sync() {
	c.touch()
	if c.part == nil {
		return // not yet attached to a package
	}
	c.part.SetData(c.chartXML())
	if c.wbPart == nil {
		return
	}
	data, err := c.workbookXLSX()
	if err != nil {
		c.syncErr = err
		return
	}
	c.syncErr = nil
	c.wbPart.SetData(data)
}

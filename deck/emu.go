package deck

import "fmt"

// EMU is the fixed-point length unit used for all shape geometry
// (English Metric Units). One inch is 914400 EMU; the unit is exact
// for inches, points, centimeters, and millimeters alike, so geometry
// survives cross-tool round trips without floating-point drift.
type EMU int64

// Conversion factors.
const (
	EMUPerInch  EMU = 914400
	EMUPerPoint EMU = 12700
	EMUPerCm    EMU = 360000
	EMUPerMm    EMU = 36000
)

// Inches converts inches to EMU.
func Inches(in float64) EMU { return EMU(in * float64(EMUPerInch)) }

// Points converts typographic points to EMU.
func Points(pt float64) EMU { return EMU(pt * float64(EMUPerPoint)) }

// Cm converts centimeters to EMU.
func Cm(cm float64) EMU { return EMU(cm * float64(EMUPerCm)) }

// Mm converts millimeters to EMU.
func Mm(mm float64) EMU { return EMU(mm * float64(EMUPerMm)) }

// Inches returns the length in inches.
func (e EMU) Inches() float64 { return float64(e) / float64(EMUPerInch) }

// Points returns the length in points.
func (e EMU) Points() float64 { return float64(e) / float64(EMUPerPoint) }

// Cm returns the length in centimeters.
func (e EMU) Cm() float64 { return float64(e) / float64(EMUPerCm) }

func (e EMU) String() string {
	return fmt.Sprintf("%d EMU (%.2f in)", int64(e), e.Inches())
}

// Standard slide sizes.
const (
	SlideWidth4x3   EMU = 9144000
	SlideHeight4x3  EMU = 6858000
	SlideWidth16x9  EMU = 12192000
	SlideHeight16x9 EMU = 6858000
)

// Geometry is a shape's position, extent, and rotation. Offsets are
// measured from the slide's top-left corner; rotation is in clockwise
// degrees.
type Geometry struct {
	OffsetX  EMU
	OffsetY  EMU
	Width    EMU
	Height   EMU
	Rotation int
}

// concrete reports whether the geometry carries a usable extent.
func (g Geometry) concrete() bool {
	return g.Width > 0 && g.Height > 0
}

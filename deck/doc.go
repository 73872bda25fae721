// Package deck provides the document object model for presentation
// packages: a presentation with ordered slides, slides with z-ordered
// shapes, and the slide layout/master templates shapes inherit
// geometry from.
//
// # Structure
//
// A [Presentation] owns its slides and the underlying opc package. All
// structural changes go through mutation methods (AddSlide, AddShape
// variants, RemoveShape, MergeCells, AddSeries, ...); each mutation is
// all-or-nothing and marks the affected part for re-serialization.
// Parts that are never touched are written back byte-for-byte, so a
// load/save cycle preserves content the model does not understand.
//
// # Shapes
//
// All slide content implements the [Shape] interface. The concrete
// types are:
//
//   - [TextBox] - free-form text frames
//   - [AutoShape] - preset-geometry shapes (rectangles, arrows, ...)
//   - [Picture] - images backed by shared [MediaItem] parts
//   - [Table] - rectangular cell grids with merge spans
//   - [Chart] - category/series charts with embedded data caches
//   - [Placeholder] - slots inherited from the slide layout
//
// # Geometry
//
// Positions and extents use [EMU] fixed-point units (914400 per inch).
// A shape without explicit geometry resolves its effective geometry
// through the placeholder inheritance chain; see [Slide.ResolveGeometry].
//
// # Example
//
//	prs := deck.New()
//	slide, _ := prs.AddSlide(prs.Layouts()[0])
//	tb := slide.AddTextBox(deck.Inches(1), deck.Inches(1), deck.Inches(4), deck.Inches(1))
//	tb.Body.SetText("Quarterly Review")
//	var buf bytes.Buffer
//	err := prs.Save(&buf)
package deck

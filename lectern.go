// Package lectern creates, edits, and saves slide-deck documents in
// the Office Open XML presentation format.
//
// Basic usage:
//
//	prs := lectern.New()
//	slide := lectern.Must(prs.AddSlide(nil))
//	slide.SetTitle("Hello")
//	if err := lectern.SaveFile(prs, "hello.pptx"); err != nil {
//	    // handle error
//	}
//
// Editing an existing file:
//
//	prs, err := lectern.Open("deck.pptx")
//	if err != nil {
//	    // handle error
//	}
//	prs.Slides()[0].SetTitle("Updated")
//	err = lectern.SaveFile(prs, "deck.pptx")
//
// The deck package holds the document model and the opc package the
// underlying container; both are available for lower-level work.
package lectern

import (
	"io"
	"os"

	"github.com/tsawler/lectern/deck"
	"github.com/tsawler/lectern/opc"
)

// New returns an empty presentation with one slide master and the
// stock layouts ("Title Slide", "Title and Content", "Blank").
func New() *deck.Presentation {
	return deck.New()
}

// Open reads a presentation file from disk.
func Open(filename string) (*deck.Presentation, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return OpenBytes(data)
}

// OpenBytes reads a presentation from archive bytes already in
// memory.
func OpenBytes(data []byte) (*deck.Presentation, error) {
	pkg, err := opc.ReadPackageBytes(data)
	if err != nil {
		return nil, err
	}
	return deck.Load(pkg)
}

// OpenReader reads a presentation from any random-access source.
func OpenReader(ra io.ReaderAt, size int64) (*deck.Presentation, error) {
	pkg, err := opc.ReadPackage(ra, size)
	if err != nil {
		return nil, err
	}
	return deck.Load(pkg)
}

// SaveFile serializes the presentation to a file.
func SaveFile(prs *deck.Presentation, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := prs.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Must is a helper that wraps a call to a function returning
// (T, error) and panics if the error is non-nil. It is intended for
// scripts and tests where error handling would be cumbersome.
//
// Example:
//
//	slide := lectern.Must(prs.AddSlide(nil))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

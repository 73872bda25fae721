package opc

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"
)

// Save serializes the package as a zip archive. Output is
// deterministic: fixed part order, regenerated manifests, and zeroed
// entry timestamps, so the same package always produces the same
// bytes. Save validates structural integrity first and aborts on
// dangling or cyclic relationships.
func (pkg *Package) Save(w io.Writer) error {
	if err := pkg.checkTargets(); err != nil {
		return err
	}
	if err := pkg.Validate(); err != nil {
		return err
	}

	zw := zip.NewWriter(w)

	ctData, err := pkg.types.marshal()
	if err != nil {
		return fmt.Errorf("opc: marshaling content types: %w", err)
	}
	if err := writeEntry(zw, contentTypesName, ctData, zip.Deflate); err != nil {
		return err
	}

	if pkg.rels.Len() > 0 {
		data, err := pkg.rels.marshal()
		if err != nil {
			return fmt.Errorf("opc: marshaling package relationships: %w", err)
		}
		if err := writeEntry(zw, "_rels/.rels", data, zip.Deflate); err != nil {
			return err
		}
	}

	for _, part := range pkg.Parts() {
		if err := writeEntry(zw, strings.TrimPrefix(part.name, "/"), part.data, methodFor(part)); err != nil {
			return err
		}
		if part.rels != nil && part.rels.Len() > 0 {
			data, err := part.rels.marshal()
			if err != nil {
				return fmt.Errorf("opc: marshaling relationships for %s: %w", part.name, err)
			}
			relsName := path.Join(path.Dir(strings.TrimPrefix(part.name, "/")), "_rels", path.Base(part.name)+".rels")
			if err := writeEntry(zw, relsName, data, zip.Deflate); err != nil {
				return err
			}
		}
	}

	return zw.Close()
}

// Bytes serializes the package and returns the archive bytes.
func (pkg *Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := pkg.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// methodFor picks the zip compression method for a part.
// Already-compressed media is stored as-is; everything else deflates.
func methodFor(part *Part) uint16 {
	switch part.contentType {
	case "image/png", "image/jpeg", "image/gif":
		return zip.Store
	}
	return zip.Deflate
}

// writeEntry writes one archive entry with a zeroed timestamp.
func writeEntry(zw *zip.Writer, name string, data []byte, method uint16) error {
	hdr := &zip.FileHeader{Name: name, Method: method}
	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("opc: creating entry %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("opc: writing entry %s: %w", name, err)
	}
	return nil
}

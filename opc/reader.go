package opc

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

const contentTypesName = "[Content_Types].xml"

// ReadPackageBytes reads a package from a byte slice.
func ReadPackageBytes(data []byte) (*Package, error) {
	return ReadPackage(bytes.NewReader(data), int64(len(data)))
}

// ReadPackage reads a package from an io.ReaderAt. It fails with
// ErrCorruptArchive when the zip structure is unreadable, the
// content-types manifest is missing or invalid, a part lacks a
// registered content type, or a relationship targets a part that is
// not in the archive.
func ReadPackage(ra io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
	}

	raw := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: opening %s: %v", ErrCorruptArchive, f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrCorruptArchive, f.Name, err)
		}
		raw[f.Name] = data
	}

	ctData, ok := raw[contentTypesName]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrCorruptArchive, contentTypesName)
	}
	types, err := parseContentTypes(ctData)
	if err != nil {
		return nil, err
	}

	pkg := &Package{
		parts: make(map[string]*Part),
		types: types,
		rels:  newRelationships("/"),
	}

	// Ordinary parts first; rels files are folded into their source
	// parts afterwards.
	for name, data := range raw {
		if name == contentTypesName || isRelsName(name) {
			continue
		}
		partName := normalizeName(name)
		contentType, ok := types.TypeOf(partName)
		if !ok {
			return nil, fmt.Errorf("%w: no content type registered for %s", ErrCorruptArchive, partName)
		}
		pkg.parts[partName] = &Part{name: partName, contentType: contentType, data: data}
	}

	for name, data := range raw {
		if !isRelsName(name) {
			continue
		}
		source := relsSource(name)
		rels, err := parseRelationships(source, data)
		if err != nil {
			return nil, err
		}
		if source == "/" {
			pkg.rels = rels
			continue
		}
		part, ok := pkg.parts[source]
		if !ok {
			return nil, fmt.Errorf("%w: relationships for missing part %s", ErrCorruptArchive, source)
		}
		part.rels = rels
	}

	// The manifest must not reference parts outside the archive.
	if err := pkg.checkTargets(); err != nil {
		return nil, err
	}
	if err := pkg.Validate(); err != nil {
		return nil, err
	}
	return pkg, nil
}

// checkTargets verifies every internal relationship target is
// present. A missing target aborts the load as a corrupt archive;
// there is no partial recovery.
func (pkg *Package) checkTargets() error {
	check := func(base string, rels *Relationships) error {
		for _, rel := range rels.All() {
			if rel.External {
				continue
			}
			target := resolveTarget(base, rel.Target)
			if _, ok := pkg.parts[target]; !ok {
				return fmt.Errorf("%w: %s relationship %q targets missing part %s",
					ErrCorruptArchive, rels.source, rel.ID, target)
			}
		}
		return nil
	}
	if err := check("/", pkg.rels); err != nil {
		return err
	}
	for _, part := range pkg.Parts() {
		if part.rels == nil {
			continue
		}
		if err := check(path.Dir(part.name), part.rels); err != nil {
			return err
		}
	}
	return nil
}

// isRelsName reports whether a zip entry name is a relationships file.
func isRelsName(name string) bool {
	return strings.HasSuffix(name, ".rels") && path.Base(path.Dir(name)) == "_rels"
}

// relsSource maps a rels entry name to its source part name.
// "ppt/_rels/presentation.xml.rels" -> "/ppt/presentation.xml";
// "_rels/.rels" -> "/".
func relsSource(name string) string {
	dir := path.Dir(path.Dir(name)) // strip "_rels"
	base := strings.TrimSuffix(path.Base(name), ".rels")
	if base == "" {
		return "/"
	}
	if dir == "." {
		return "/" + base
	}
	return "/" + dir + "/" + base
}

// UnmarshalXML decodes an XML part, honoring encoding declarations
// other than UTF-8 via the IANA charset index.
func UnmarshalXML(data []byte, v interface{}) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charsetReader
	return dec.Decode(v)
}

func charsetReader(charset string, r io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("opc: unsupported charset %q", charset)
	}
	return enc.NewDecoder().Reader(r), nil
}

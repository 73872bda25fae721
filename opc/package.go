package opc

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
)

// Package-level errors.
var (
	ErrCorruptArchive       = errors.New("opc: invalid or corrupted package archive")
	ErrDanglingRelationship = errors.New("opc: relationship target not in package")
	ErrCyclicReference      = errors.New("opc: cyclic reference between parts")
	ErrUnknownContentType   = errors.New("opc: part content type not registered")
	ErrDuplicatePart        = errors.New("opc: part name already in use")
	ErrNoSuchPart           = errors.New("opc: no such part")
)

// Part is a single named payload inside a package. Part names are
// absolute, slash-separated paths like "/ppt/slides/slide1.xml".
type Part struct {
	name        string
	contentType string
	data        []byte
	dirty       bool
	rels        *Relationships
}

// Name returns the part's absolute name.
func (p *Part) Name() string { return p.name }

// ContentType returns the part's registered content type.
func (p *Part) ContentType() string { return p.contentType }

// Data returns the part's payload. The returned slice is the part's
// backing store; callers that mutate it must call MarkDirty.
func (p *Part) Data() []byte { return p.data }

// SetData replaces the part's payload and marks it dirty.
func (p *Part) SetData(data []byte) {
	p.data = data
	p.dirty = true
}

// MarkDirty flags the part for re-serialization on save.
func (p *Part) MarkDirty() { p.dirty = true }

// Dirty reports whether the part has been modified since load.
func (p *Part) Dirty() bool { return p.dirty }

// Relationships returns the part's outgoing relationship set, creating
// it if necessary.
func (p *Part) Relationships() *Relationships {
	if p.rels == nil {
		p.rels = newRelationships(p.name)
	}
	return p.rels
}

// Package is the root container: an ordered set of parts plus the
// content-types registry and the package-level relationship set.
type Package struct {
	parts map[string]*Part
	types *ContentTypes
	rels  *Relationships
}

// NewPackage returns an empty package with an empty content-types
// registry.
func NewPackage() *Package {
	return &Package{
		parts: make(map[string]*Part),
		types: NewContentTypes(),
		rels:  newRelationships("/"),
	}
}

// ContentTypes returns the package's content-types registry.
func (pkg *Package) ContentTypes() *ContentTypes { return pkg.types }

// Relationships returns the package-level relationship set (the
// _rels/.rels file).
func (pkg *Package) Relationships() *Relationships { return pkg.rels }

// normalizeName ensures a part name has a single leading slash.
func normalizeName(name string) string {
	return "/" + strings.TrimPrefix(name, "/")
}

// AddPart adds a part with the given name, content type, and payload.
// The content type is recorded in the registry: as-is if an extension
// default already covers it, otherwise as a per-part override. Adding
// a part under a name already in use fails with ErrDuplicatePart.
func (pkg *Package) AddPart(name, contentType string, data []byte) (*Part, error) {
	name = normalizeName(name)
	if contentType == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnknownContentType, name)
	}
	if _, exists := pkg.parts[name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicatePart, name)
	}
	pkg.types.register(name, contentType)
	part := &Part{name: name, contentType: contentType, data: data, dirty: true}
	pkg.parts[name] = part
	return part, nil
}

// Part returns the named part, or ErrNoSuchPart if it does not exist.
func (pkg *Package) Part(name string) (*Part, error) {
	part, ok := pkg.parts[normalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchPart, name)
	}
	return part, nil
}

// HasPart reports whether the named part exists.
func (pkg *Package) HasPart(name string) bool {
	_, ok := pkg.parts[normalizeName(name)]
	return ok
}

// RemovePart deletes the named part and its content-type override, if
// any. Relationships pointing at the part are left in place; resolving
// them afterwards fails with ErrDanglingRelationship.
func (pkg *Package) RemovePart(name string) {
	name = normalizeName(name)
	delete(pkg.parts, name)
	pkg.types.removeOverride(name)
}

// Parts returns all parts in deterministic save order.
func (pkg *Package) Parts() []*Part {
	names := make([]string, 0, len(pkg.parts))
	for name := range pkg.parts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return comparePartNames(names[i], names[j]) < 0
	})
	parts := make([]*Part, len(names))
	for i, name := range names {
		parts[i] = pkg.parts[name]
	}
	return parts
}

// Resolve follows the relationship with the given id from source and
// returns the target part. A nil source resolves against the
// package-level relationship set. External-mode relationships and
// relationships whose target is no longer in the package fail with
// ErrDanglingRelationship.
func (pkg *Package) Resolve(source *Part, relID string) (*Part, error) {
	rels := pkg.rels
	base := "/"
	if source != nil {
		rels = source.Relationships()
		base = path.Dir(source.name)
	}
	rel, ok := rels.Get(relID)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no relationship %q", ErrDanglingRelationship, rels.source, relID)
	}
	if rel.External {
		return nil, fmt.Errorf("%w: %q targets external resource %s", ErrDanglingRelationship, relID, rel.Target)
	}
	target := resolveTarget(base, rel.Target)
	part, ok := pkg.parts[target]
	if !ok {
		return nil, fmt.Errorf("%w: %q targets missing part %s", ErrDanglingRelationship, relID, target)
	}
	return part, nil
}

// resolveTarget resolves a relationship target (relative to the source
// part's directory) to an absolute part name.
func resolveTarget(baseDir, target string) string {
	if strings.HasPrefix(target, "/") {
		return path.Clean(target)
	}
	return path.Clean(path.Join(baseDir, target))
}

// Reachable returns the set of part names reachable from the
// package-level relationships by following internal relationship
// edges. It is the mark phase used by higher layers to sweep
// unreferenced parts (shared media) at save time.
func (pkg *Package) Reachable() map[string]bool {
	seen := make(map[string]bool)
	var walk func(base string, rels *Relationships)
	walk = func(base string, rels *Relationships) {
		for _, rel := range rels.All() {
			if rel.External {
				continue
			}
			target := resolveTarget(base, rel.Target)
			if seen[target] {
				continue
			}
			part, ok := pkg.parts[target]
			if !ok {
				continue
			}
			seen[target] = true
			if part.rels != nil {
				walk(path.Dir(part.name), part.rels)
			}
		}
	}
	walk("/", pkg.rels)
	return seen
}

// pairedRefTypes lists relationship types that legitimately close a
// loop: layouts and masters reference each other, and a notes slide
// points back at its slide. Edges of these types are allowed to reach
// an ancestor during cycle detection; any other edge that does so is a
// cyclic reference.
var pairedRefTypes = map[string]bool{
	"http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster": true,
	"http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout": true,
	"http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide":       true,
}

// Validate checks structural integrity: every internal relationship
// target exists, and forward relationship edges form no cycle.
func (pkg *Package) Validate() error {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int)

	var visit func(base string, rels *Relationships) error
	visit = func(base string, rels *Relationships) error {
		for _, rel := range rels.All() {
			if rel.External {
				continue
			}
			target := resolveTarget(base, rel.Target)
			part, ok := pkg.parts[target]
			if !ok {
				return fmt.Errorf("%w: %s relationship %q targets %s", ErrDanglingRelationship, rels.source, rel.ID, target)
			}
			switch state[target] {
			case visiting:
				if pairedRefTypes[rel.Type] {
					continue
				}
				return fmt.Errorf("%w: through %s", ErrCyclicReference, target)
			case done:
				continue
			}
			state[target] = visiting
			if part.rels != nil {
				if err := visit(path.Dir(part.name), part.rels); err != nil {
					return err
				}
			}
			state[target] = done
		}
		return nil
	}
	return visit("/", pkg.rels)
}

// comparePartNames orders part names for deterministic serialization.
// Fixed parts come first, then remaining parts in numeric-aware
// lexical order so slide2 sorts before slide10.
func comparePartNames(a, b string) int {
	ra, rb := partRank(a), partRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	return compareNumericAware(a, b)
}

// partRank assigns fixed parts a stable position at the front of the
// archive. The ordering is pinned so that output is reproducible and
// diff-friendly; consuming software does not depend on entry order.
func partRank(name string) int {
	switch {
	case name == "/docProps/app.xml" || name == "/docProps/core.xml":
		return 0
	case name == "/ppt/presentation.xml":
		return 1
	case strings.HasPrefix(name, "/ppt/slideMasters/"):
		return 2
	case strings.HasPrefix(name, "/ppt/slideLayouts/"):
		return 3
	case strings.HasPrefix(name, "/ppt/slides/"):
		return 4
	case strings.HasPrefix(name, "/ppt/notesSlides/"):
		return 5
	case strings.HasPrefix(name, "/ppt/charts/"):
		return 6
	case strings.HasPrefix(name, "/ppt/embeddings/"):
		return 7
	case strings.HasPrefix(name, "/ppt/media/"):
		return 8
	}
	return 9
}

// compareNumericAware compares strings treating runs of digits as
// numbers, so "slide2.xml" < "slide10.xml".
func compareNumericAware(a, b string) int {
	for len(a) > 0 && len(b) > 0 {
		ca, cb := a[0], b[0]
		if isDigit(ca) && isDigit(cb) {
			na, ra := takeNumber(a)
			nb, rb := takeNumber(b)
			if na != nb {
				if na < nb {
					return -1
				}
				return 1
			}
			a, b = ra, rb
			continue
		}
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		a, b = a[1:], b[1:]
	}
	switch {
	case len(a) == 0 && len(b) == 0:
		return 0
	case len(a) == 0:
		return -1
	}
	return 1
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func takeNumber(s string) (int64, string) {
	var n int64
	i := 0
	for i < len(s) && isDigit(s[i]) {
		n = n*10 + int64(s[i]-'0')
		i++
	}
	return n, s[i:]
}

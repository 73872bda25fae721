package opc

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const nsPackageRels = "http://schemas.openxmlformats.org/package/2006/relationships"

// Relationship type URIs for the parts this library links.
const (
	RelTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	RelTypeSlide          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	RelTypeSlideLayout    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	RelTypeSlideMaster    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	RelTypeNotesSlide     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide"
	RelTypeImage          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	RelTypeChart          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/chart"
	RelTypePackage        = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/package"
	RelTypeWorksheet      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet"
	RelTypeTheme          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
	RelTypeCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	RelTypeAppProps       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	RelTypeHyperlink      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
)

// Relationship is a directed, typed edge from its source part to
// another part or, when External is set, to an outside URI.
type Relationship struct {
	ID       string
	Type     string
	Target   string
	External bool
}

// Relationships is the ordered relationship set of one source part
// (or of the package itself). IDs are unique within the set and stable
// across saves while the target is unchanged.
type Relationships struct {
	source string
	rels   []*Relationship
	byID   map[string]*Relationship
}

func newRelationships(source string) *Relationships {
	return &Relationships{source: source, byID: make(map[string]*Relationship)}
}

// Add creates a relationship to an internal target and returns it.
// The id is the lowest unused rIdN in the set.
func (rs *Relationships) Add(relType, target string) *Relationship {
	return rs.add(relType, target, false)
}

// AddExternal creates a relationship to an external URI.
func (rs *Relationships) AddExternal(relType, target string) *Relationship {
	return rs.add(relType, target, true)
}

func (rs *Relationships) add(relType, target string, external bool) *Relationship {
	rel := &Relationship{
		ID:       rs.nextID(),
		Type:     relType,
		Target:   target,
		External: external,
	}
	rs.rels = append(rs.rels, rel)
	rs.byID[rel.ID] = rel
	return rel
}

// nextID allocates the lowest rIdN not in use. Reusing freed ids keeps
// numbering dense; ids attached to live targets are never reassigned.
func (rs *Relationships) nextID() string {
	for n := 1; ; n++ {
		id := "rId" + strconv.Itoa(n)
		if _, used := rs.byID[id]; !used {
			return id
		}
	}
}

// Get returns the relationship with the given id.
func (rs *Relationships) Get(id string) (*Relationship, bool) {
	rel, ok := rs.byID[id]
	return rel, ok
}

// Remove deletes the relationship with the given id and reports
// whether it existed.
func (rs *Relationships) Remove(id string) bool {
	if _, ok := rs.byID[id]; !ok {
		return false
	}
	delete(rs.byID, id)
	for i, rel := range rs.rels {
		if rel.ID == id {
			rs.rels = append(rs.rels[:i], rs.rels[i+1:]...)
			break
		}
	}
	return true
}

// All returns the relationships in insertion order. The slice is a
// copy; the relationships themselves are shared.
func (rs *Relationships) All() []*Relationship {
	out := make([]*Relationship, len(rs.rels))
	copy(out, rs.rels)
	return out
}

// FirstOfType returns the first relationship with the given type URI.
func (rs *Relationships) FirstOfType(relType string) (*Relationship, bool) {
	for _, rel := range rs.rels {
		if rel.Type == relType {
			return rel, true
		}
	}
	return nil, false
}

// ByTarget returns the relationship pointing at the given target, if
// any.
func (rs *Relationships) ByTarget(target string) (*Relationship, bool) {
	for _, rel := range rs.rels {
		if rel.Target == target && !rel.External {
			return rel, true
		}
	}
	return nil, false
}

// Len returns the number of relationships in the set.
func (rs *Relationships) Len() int { return len(rs.rels) }

// relationshipsXML models a .rels part for both directions; .rels
// files use the default namespace with no prefixes.
type relationshipsXML struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Xmlns         string            `xml:"xmlns,attr"`
	Relationships []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// marshal renders the set as a .rels document with relationships in
// id order for deterministic output.
func (rs *Relationships) marshal() ([]byte, error) {
	doc := relationshipsXML{Xmlns: nsPackageRels}
	ordered := rs.All()
	sort.Slice(ordered, func(i, j int) bool {
		return compareNumericAware(ordered[i].ID, ordered[j].ID) < 0
	})
	for _, rel := range ordered {
		rx := relationshipXML{ID: rel.ID, Type: rel.Type, Target: rel.Target}
		if rel.External {
			rx.TargetMode = "External"
		}
		doc.Relationships = append(doc.Relationships, rx)
	}
	body, err := xml.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// parseRelationships parses a .rels part. Duplicate ids within one
// set are a structural error.
func parseRelationships(source string, data []byte) (*Relationships, error) {
	var doc relationshipsXML
	if err := UnmarshalXML(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing relationships for %s: %v", ErrCorruptArchive, source, err)
	}
	rs := newRelationships(source)
	for _, rx := range doc.Relationships {
		if _, dup := rs.byID[rx.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate relationship id %q in %s", ErrCorruptArchive, rx.ID, source)
		}
		rel := &Relationship{
			ID:       rx.ID,
			Type:     rx.Type,
			Target:   rx.Target,
			External: strings.EqualFold(rx.TargetMode, "External"),
		}
		rs.rels = append(rs.rels, rel)
		rs.byID[rel.ID] = rel
	}
	return rs, nil
}

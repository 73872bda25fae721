package opc

import (
	"encoding/xml"
	"fmt"
	"path"
	"sort"
	"strings"
)

const nsContentTypes = "http://schemas.openxmlformats.org/package/2006/content-types"

// Well-known content types for the parts this library produces.
const (
	ContentTypeRelationships = "application/vnd.openxmlformats-package.relationships+xml"
	ContentTypeXML           = "application/xml"
	ContentTypePresentation  = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ContentTypeSlide         = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ContentTypeSlideLayout   = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	ContentTypeSlideMaster   = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	ContentTypeNotesSlide    = "application/vnd.openxmlformats-officedocument.presentationml.notesSlide+xml"
	ContentTypeTheme         = "application/vnd.openxmlformats-officedocument.theme+xml"
	ContentTypeChart         = "application/vnd.openxmlformats-officedocument.drawingml.chart+xml"
	ContentTypeWorkbook      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeWorkbookMain  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"
	ContentTypeWorksheet     = "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"
	ContentTypeCoreProps     = "application/vnd.openxmlformats-package.core-properties+xml"
	ContentTypeAppProps      = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
)

// ContentTypes is the registry behind [Content_Types].xml: extension
// defaults plus per-part overrides.
type ContentTypes struct {
	defaults  map[string]string // extension (lowercase, no dot) -> type
	overrides map[string]string // part name -> type
}

// NewContentTypes returns a registry pre-populated with the rels and
// xml defaults every package carries.
func NewContentTypes() *ContentTypes {
	return &ContentTypes{
		defaults: map[string]string{
			"rels": ContentTypeRelationships,
			"xml":  ContentTypeXML,
		},
		overrides: make(map[string]string),
	}
}

// SetDefault registers a content type for a file extension.
func (ct *ContentTypes) SetDefault(extension, contentType string) {
	ct.defaults[strings.ToLower(strings.TrimPrefix(extension, "."))] = contentType
}

// SetOverride registers a content type for a specific part name.
func (ct *ContentTypes) SetOverride(partName, contentType string) {
	ct.overrides[normalizeName(partName)] = contentType
}

// TypeOf returns the content type registered for a part name, checking
// overrides first and falling back to the extension default.
func (ct *ContentTypes) TypeOf(partName string) (string, bool) {
	partName = normalizeName(partName)
	if t, ok := ct.overrides[partName]; ok {
		return t, true
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(partName), "."))
	t, ok := ct.defaults[ext]
	return t, ok
}

// register records the content type for a new part. If the extension
// default already yields the same type the part needs no override.
func (ct *ContentTypes) register(partName, contentType string) {
	if t, ok := ct.TypeOf(partName); ok && t == contentType {
		return
	}
	ct.overrides[partName] = contentType
}

func (ct *ContentTypes) removeOverride(partName string) {
	delete(ct.overrides, normalizeName(partName))
}

// typesXML models [Content_Types].xml for both directions. The
// manifest uses the default namespace with no prefixes, so one struct
// serves reading and writing.
type typesXML struct {
	XMLName   xml.Name          `xml:"Types"`
	Xmlns     string            `xml:"xmlns,attr"`
	Defaults  []typeDefaultXML  `xml:"Default"`
	Overrides []typeOverrideXML `xml:"Override"`
}

type typeDefaultXML struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type typeOverrideXML struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// marshal renders the registry as [Content_Types].xml with entries in
// sorted order for deterministic output.
func (ct *ContentTypes) marshal() ([]byte, error) {
	doc := typesXML{Xmlns: nsContentTypes}

	exts := make([]string, 0, len(ct.defaults))
	for ext := range ct.defaults {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		doc.Defaults = append(doc.Defaults, typeDefaultXML{Extension: ext, ContentType: ct.defaults[ext]})
	}

	names := make([]string, 0, len(ct.overrides))
	for name := range ct.overrides {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return comparePartNames(names[i], names[j]) < 0
	})
	for _, name := range names {
		doc.Overrides = append(doc.Overrides, typeOverrideXML{PartName: name, ContentType: ct.overrides[name]})
	}

	body, err := xml.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// parseContentTypes parses [Content_Types].xml.
func parseContentTypes(data []byte) (*ContentTypes, error) {
	var doc typesXML
	if err := UnmarshalXML(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing content types: %v", ErrCorruptArchive, err)
	}
	ct := NewContentTypes()
	for _, d := range doc.Defaults {
		ct.SetDefault(d.Extension, d.ContentType)
	}
	for _, o := range doc.Overrides {
		ct.SetOverride(o.PartName, o.ContentType)
	}
	return ct, nil
}

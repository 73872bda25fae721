// Package xmlutil provides helpers for preserving XML content that the
// typed part models do not understand.
package xmlutil

import (
	"bytes"
	"encoding/xml"
)

// prefixes maps the schema namespaces used by presentation packages to
// their conventional prefixes. Unknown subtrees are re-emitted with
// these prefixes so that repeated load/save cycles produce identical
// bytes.
var prefixes = map[string]string{
	"http://schemas.openxmlformats.org/presentationml/2006/main":         "p",
	"http://schemas.openxmlformats.org/drawingml/2006/main":              "a",
	"http://schemas.openxmlformats.org/drawingml/2006/chart":             "c",
	"http://schemas.openxmlformats.org/officeDocument/2006/relationships": "r",
	"http://schemas.microsoft.com/office/powerpoint/2010/main":           "p14",
	"http://schemas.microsoft.com/office/drawing/2014/main":              "a16",
	"http://schemas.openxmlformats.org/markup-compatibility/2006":        "mc",
}

// rootDeclared lists the namespaces declared on every part root the
// serializer writes; re-declaring them inside captured subtrees would
// be noise.
var rootDeclared = map[string]bool{
	"http://schemas.openxmlformats.org/presentationml/2006/main":          true,
	"http://schemas.openxmlformats.org/drawingml/2006/main":               true,
	"http://schemas.openxmlformats.org/officeDocument/2006/relationships": true,
}

// RawXML holds an XML subtree that the typed models did not recognize.
// The subtree is captured on decode and re-emitted on encode, so
// foreign extensions survive a load/save cycle. Emission is
// deterministic: the same captured subtree always serializes to the
// same bytes.
type RawXML struct {
	Data []byte
}

// UnmarshalXML captures the element and its entire subtree.
func (r *RawXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var buf bytes.Buffer
	if err := copyElement(&buf, d, start); err != nil {
		return err
	}
	r.Data = buf.Bytes()
	return nil
}

// Join concatenates the captured bytes of several subtrees, preserving
// their relative order. The result is suitable for an ",innerxml"
// field on a serialization struct.
func Join(raw []RawXML) []byte {
	if len(raw) == 0 {
		return nil
	}
	var buf bytes.Buffer
	for _, r := range raw {
		buf.Write(r.Data)
	}
	return buf.Bytes()
}

// LocalName returns the local name of a captured subtree's root
// element, without any namespace prefix. It returns "" when the input
// does not start with an element.
func LocalName(data []byte) string {
	b := bytes.TrimSpace(data)
	if len(b) < 2 || b[0] != '<' {
		return ""
	}
	end := 1
	for end < len(b) && b[end] != ' ' && b[end] != '\t' && b[end] != '\n' && b[end] != '>' && b[end] != '/' {
		end++
	}
	name := b[1:end]
	if i := bytes.IndexByte(name, ':'); i >= 0 {
		name = name[i+1:]
	}
	return string(name)
}

// copyElement writes the start element and its subtree to buf,
// consuming tokens from d up to and including the matching end element.
func copyElement(buf *bytes.Buffer, d *xml.Decoder, start xml.StartElement) error {
	writeStart(buf, start)
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := copyElement(buf, d, t); err != nil {
				return err
			}
		case xml.EndElement:
			buf.WriteString("</")
			buf.WriteString(qualify(t.Name))
			buf.WriteString(">")
			return nil
		case xml.CharData:
			if err := xml.EscapeText(buf, t); err != nil {
				return err
			}
		case xml.Comment:
			buf.WriteString("<!--")
			buf.Write(t)
			buf.WriteString("-->")
		}
	}
}

func writeStart(buf *bytes.Buffer, start xml.StartElement) {
	buf.WriteString("<")
	buf.WriteString(qualify(start.Name))
	for _, attr := range start.Attr {
		// Declarations for the namespaces every part root already
		// declares are redundant. Anything else (p14, a16, mc, vendor
		// extensions) keeps its declaration, re-prefixed.
		if attr.Name.Space == "xmlns" {
			if rootDeclared[attr.Value] {
				continue
			}
			if p, known := prefixes[attr.Value]; known {
				buf.WriteString(` xmlns:` + p + `="`)
				writeAttrValue(buf, attr.Value)
				buf.WriteString(`"`)
				continue
			}
			buf.WriteString(` xmlns:` + attr.Name.Local + `="`)
			writeAttrValue(buf, attr.Value)
			buf.WriteString(`"`)
			continue
		}
		buf.WriteString(" ")
		buf.WriteString(qualify(attr.Name))
		buf.WriteString(`="`)
		writeAttrValue(buf, attr.Value)
		buf.WriteString(`"`)
	}
	buf.WriteString(">")
}

// qualify renders an xml.Name using the conventional prefix for its
// namespace. Names in unrecognized namespaces fall back to the local
// name alone.
func qualify(name xml.Name) string {
	if name.Space == "" || name.Space == "xmlns" {
		return name.Local
	}
	if p, ok := prefixes[name.Space]; ok {
		return p + ":" + name.Local
	}
	return name.Local
}

func writeAttrValue(buf *bytes.Buffer, v string) {
	// xml.EscapeText also escapes newlines and tabs, which is safe for
	// attribute values.
	_ = xml.EscapeText(buf, []byte(v))
}

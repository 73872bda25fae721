// Package opc implements the Open Packaging Conventions container used
// by presentation documents: a zip archive holding XML and binary
// parts, a content-types manifest, and typed relationships between
// parts.
//
// A [Package] is an in-memory model of the archive. Parts are opaque
// payloads at this layer; higher layers (the deck package) parse part
// contents into document nodes. The container guarantees:
//
//   - every part's content type is registered, either as an extension
//     default or as a per-part override
//   - relationship ids are unique within their source part and stable
//     across saves
//   - saving is deterministic: the same package always serializes to
//     the same bytes
//
// # Reading and writing
//
//	pkg, err := opc.ReadPackageBytes(data)
//	if err != nil {
//	    // handle error
//	}
//	out, err := pkg.Bytes()
//
// Relationship files (*.rels) and the content-types manifest are parsed
// into the model on read and regenerated on save; they are not exposed
// as ordinary parts.
package opc

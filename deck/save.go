package deck

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/tsawler/lectern/opc"
)

// relTarget computes a relationship target for to, relative to the
// directory of the source part from.
func relTarget(from, to string) string {
	dir := path.Dir(from)
	up := ""
	for dir != "/" && !strings.HasPrefix(to, dir+"/") {
		up += "../"
		dir = path.Dir(dir)
	}
	rest := strings.TrimPrefix(to, dir)
	return up + strings.TrimPrefix(rest, "/")
}

// scaffold populates a new presentation's package: theme, master, the
// stock layouts, the presentation part, and the docProps parts. The
// master and layouts are then loaded back through the regular loader
// so the placeholder chain is in place.
func (prs *Presentation) scaffold() {
	pkg := prs.pkg

	mustAdd := func(name, contentType, data string) *opc.Part {
		part, err := pkg.AddPart(name, contentType, []byte(data))
		if err != nil {
			panic(fmt.Sprintf("deck: scaffolding %s: %v", name, err))
		}
		return part
	}

	theme := mustAdd("/ppt/theme/theme1.xml", opc.ContentTypeTheme, defaultThemeXML)
	master := mustAdd("/ppt/slideMasters/slideMaster1.xml", opc.ContentTypeSlideMaster, defaultMasterXML)

	layouts := []struct{ name, data string }{
		{"/ppt/slideLayouts/slideLayout1.xml", titleSlideLayoutXML},
		{"/ppt/slideLayouts/slideLayout2.xml", titleContentLayoutXML},
		{"/ppt/slideLayouts/slideLayout3.xml", blankLayoutXML},
	}
	// Rel order matters: the master template references its layouts
	// as rId1..rId3 and its theme as rId4.
	for _, l := range layouts {
		part := mustAdd(l.name, opc.ContentTypeSlideLayout, l.data)
		master.Relationships().Add(opc.RelTypeSlideLayout, relTarget(master.Name(), part.Name()))
		part.Relationships().Add(opc.RelTypeSlideMaster, relTarget(part.Name(), master.Name()))
	}
	master.Relationships().Add(opc.RelTypeTheme, relTarget(master.Name(), theme.Name()))

	prs.presPart = mustAdd("/ppt/presentation.xml", opc.ContentTypePresentation, "")
	prs.presPart.Relationships().Add(opc.RelTypeSlideMaster, relTarget(prs.presPart.Name(), master.Name()))

	mustAdd("/docProps/core.xml", opc.ContentTypeCoreProps, "")
	mustAdd("/docProps/app.xml", opc.ContentTypeAppProps, "")

	pkg.Relationships().Add(opc.RelTypeOfficeDocument, "ppt/presentation.xml")
	pkg.Relationships().Add(opc.RelTypeCoreProps, "docProps/core.xml")
	pkg.Relationships().Add(opc.RelTypeAppProps, "docProps/app.xml")

	ld := &loader{prs: prs, layouts: make(map[string]*SlideLayout)}
	m, err := ld.loadMaster(master)
	if err != nil {
		panic(fmt.Sprintf("deck: scaffolding master: %v", err))
	}
	prs.masters = []*SlideMaster{m}
}

// syncRels reconciles a dirty slide's relationships with its shapes:
// one image relationship per referenced media part, one chart
// relationship per chart. Stale image and chart relationships are
// dropped; relationship ids of surviving targets never change, so
// untouched parts keep resolving.
func (s *Slide) syncRels() {
	rels := s.part.Relationships()
	desired := make(map[string]bool)
	for _, sh := range s.shapes {
		var relType, target string
		switch v := sh.(type) {
		case *Picture:
			relType, target = opc.RelTypeImage, v.media.partName
		case *Chart:
			relType, target = opc.RelTypeChart, v.part.Name()
		default:
			continue
		}
		t := relTarget(s.part.Name(), target)
		desired[t] = true
		if _, ok := rels.ByTarget(t); !ok {
			rels.Add(relType, t)
		}
	}
	for _, rel := range rels.All() {
		if rel.External {
			continue
		}
		switch rel.Type {
		case opc.RelTypeImage, opc.RelTypeChart:
			if !desired[rel.Target] {
				rels.Remove(rel.ID)
			}
		}
	}
}

// syncNotes creates, rewrites, or removes the slide's notes part to
// match the current notes text.
func (s *Slide) syncNotes() error {
	rels := s.part.Relationships()
	rel, hasRel := rels.FirstOfType(opc.RelTypeNotesSlide)

	if !s.hasNotes {
		return nil // never touched, leave any loaded notes part alone
	}

	if s.notes == "" {
		if hasRel {
			if part, err := s.prs.pkg.Resolve(s.part, rel.ID); err == nil {
				s.prs.pkg.RemovePart(part.Name())
			}
			rels.Remove(rel.ID)
		}
		return nil
	}

	var part *opc.Part
	if hasRel {
		var err error
		part, err = s.prs.pkg.Resolve(s.part, rel.ID)
		if err != nil {
			return err
		}
	} else {
		name := s.prs.nextPartName("/ppt/notesSlides/notesSlide", ".xml")
		var err error
		part, err = s.prs.pkg.AddPart(name, opc.ContentTypeNotesSlide, nil)
		if err != nil {
			return err
		}
		rels.Add(opc.RelTypeNotesSlide, relTarget(s.part.Name(), name))
		part.Relationships().Add(opc.RelTypeSlide, relTarget(name, s.part.Name()))
	}

	data, err := s.notesBytes()
	if err != nil {
		return err
	}
	part.SetData(data)
	return nil
}

// syncPresRels reconciles the presentation part's slide relationships
// with the slide sequence. Order lives in the sldIdLst, not here, so
// ids stay stable across reorders.
func (prs *Presentation) syncPresRels() {
	rels := prs.presPart.Relationships()
	desired := make(map[string]bool)
	for _, s := range prs.slides {
		t := relTarget(prs.presPart.Name(), s.part.Name())
		desired[t] = true
		if _, ok := rels.ByTarget(t); !ok {
			rels.Add(opc.RelTypeSlide, t)
		}
	}
	for _, rel := range rels.All() {
		if rel.Type == opc.RelTypeSlide && !desired[rel.Target] {
			rels.Remove(rel.ID)
		}
	}
}

// ensureDocProps guarantees the metadata parts and their package
// relationships exist; loaded packages do not always carry them.
func (prs *Presentation) ensureDocProps() error {
	type prop struct {
		name, contentType, relType string
	}
	for _, p := range []prop{
		{"/docProps/core.xml", opc.ContentTypeCoreProps, opc.RelTypeCoreProps},
		{"/docProps/app.xml", opc.ContentTypeAppProps, opc.RelTypeAppProps},
	} {
		if !prs.pkg.HasPart(p.name) {
			if _, err := prs.pkg.AddPart(p.name, p.contentType, nil); err != nil {
				return err
			}
		}
		if _, ok := prs.pkg.Relationships().FirstOfType(p.relType); !ok {
			prs.pkg.Relationships().Add(p.relType, strings.TrimPrefix(p.name, "/"))
		}
	}
	return nil
}

// sweepable part name prefixes: parts under these become garbage when
// the last reference goes away.
var sweepPrefixes = []string{
	"/ppt/media/",
	"/ppt/charts/",
	"/ppt/embeddings/",
	"/ppt/notesSlides/",
}

// sweep removes unreferenced media, chart, workbook, and notes parts.
// Reachability is computed from the package relationship roots, so a
// media part shared by two slides survives until both stop using it.
func (prs *Presentation) sweep() {
	reachable := prs.pkg.Reachable()
	for _, part := range prs.pkg.Parts() {
		name := part.Name()
		if reachable[name] {
			continue
		}
		for _, prefix := range sweepPrefixes {
			if strings.HasPrefix(name, prefix) {
				prs.pkg.RemovePart(name)
				break
			}
		}
	}
	for hash, m := range prs.media {
		if !prs.pkg.HasPart(m.partName) {
			delete(prs.media, hash)
		}
	}
}

// Save serializes the presentation to w as a complete package.
//
// Only dirty state is re-serialized: a slide nobody touched is
// written back byte-for-byte, and saving twice with no mutation in
// between produces identical archives.
func (prs *Presentation) Save(w io.Writer) error {
	for _, s := range prs.slides {
		if !s.dirty {
			continue
		}
		s.syncRels()
		if err := s.syncNotes(); err != nil {
			return err
		}
		for _, sh := range s.shapes {
			if t, ok := sh.(*Table); ok {
				if err := t.validateGrid(); err != nil {
					return err
				}
			}
		}
		data, err := s.slideBytes()
		if err != nil {
			return err
		}
		s.part.SetData(data)
		s.dirty = false
	}

	if prs.dirty || prs.Core != prs.loadedCore || prs.App != prs.loadedApp {
		if err := prs.ensureDocProps(); err != nil {
			return err
		}
		prs.syncPresRels()

		data, err := prs.presentationBytes()
		if err != nil {
			return err
		}
		prs.presPart.SetData(data)

		if core, err := prs.pkg.Part("/docProps/core.xml"); err == nil {
			data, err := prs.corePropsBytes()
			if err != nil {
				return err
			}
			core.SetData(data)
		}
		if app, err := prs.pkg.Part("/docProps/app.xml"); err == nil {
			data, err := prs.appPropsBytes()
			if err != nil {
				return err
			}
			app.SetData(data)
		}
		prs.loadedCore = prs.Core
		prs.loadedApp = prs.App
		prs.dirty = false
	}

	prs.sweep()
	return prs.pkg.Save(w)
}

// Bytes serializes the presentation and returns the archive bytes.
func (prs *Presentation) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := prs.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package deck

import (
	"bytes"
	"crypto/sha1"
	"errors"
	"fmt"
	"image"

	// Header-only decoding for natural picture size. The stdlib
	// covers PNG, JPEG, and GIF; x/image adds BMP and TIFF.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/tsawler/lectern/format"
)

// ErrUnsupportedImage is returned for image bytes in no recognized
// format.
var ErrUnsupportedImage = errors.New("deck: unsupported image format")

// MediaItem is a shared binary image payload. Multiple Picture shapes
// may reference the same item; the backing part is removed from the
// package only when the last referencing picture is gone (swept at
// save time).
type MediaItem struct {
	partName    string
	contentType string
	data        []byte
	hash        [sha1.Size]byte

	// Natural size from the image header, in EMU at 96 DPI. Zero when
	// the header could not be decoded.
	NativeWidth  EMU
	NativeHeight EMU
}

// PartName returns the media part's package name.
func (m *MediaItem) PartName() string { return m.partName }

// ContentType returns the declared MIME type.
func (m *MediaItem) ContentType() string { return m.contentType }

// Data returns the raw image bytes.
func (m *MediaItem) Data() []byte { return m.data }

// emuPerPixel converts pixels to EMU at the conventional 96 DPI.
const emuPerPixel = EMUPerInch / 96

// newMediaItem classifies the image bytes and reads the header for
// the natural size. Pixel data is never decoded.
func newMediaItem(data []byte) (*MediaItem, error) {
	f := format.Detect(data)
	if f == format.Unknown {
		return nil, ErrUnsupportedImage
	}
	m := &MediaItem{
		contentType: f.ContentType(),
		data:        data,
		hash:        sha1.Sum(data),
	}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		m.NativeWidth = EMU(cfg.Width) * emuPerPixel
		m.NativeHeight = EMU(cfg.Height) * emuPerPixel
	}
	return m, nil
}

// extension returns the part-name extension for the media item.
func (m *MediaItem) extension() string {
	switch m.contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpeg"
	case "image/gif":
		return ".gif"
	case "image/bmp":
		return ".bmp"
	case "image/tiff":
		return ".tiff"
	}
	return ".bin"
}

// Picture is a shape displaying a MediaItem.
type Picture struct {
	baseShape
	media *MediaItem
}

// Kind returns KindPicture.
func (p *Picture) Kind() ShapeKind { return KindPicture }

// Media returns the picture's shared media item.
func (p *Picture) Media() *MediaItem { return p.media }

// addMedia registers image bytes with the presentation, reusing an
// existing media part when the bytes are identical.
func (prs *Presentation) addMedia(data []byte) (*MediaItem, error) {
	hash := sha1.Sum(data)
	if m, ok := prs.media[hash]; ok {
		return m, nil
	}
	m, err := newMediaItem(data)
	if err != nil {
		return nil, err
	}
	m.partName = fmt.Sprintf("/ppt/media/image%d%s", prs.nextMediaNumber(), m.extension())
	prs.pkg.ContentTypes().SetDefault(m.extension(), m.contentType)
	if _, err := prs.pkg.AddPart(m.partName, m.contentType, m.data); err != nil {
		return nil, err
	}
	prs.media[hash] = m
	return m, nil
}

func (prs *Presentation) nextMediaNumber() int {
	for n := 1; ; n++ {
		used := false
		for _, m := range prs.media {
			if mediaNumber(m.partName) == n {
				used = true
				break
			}
		}
		if !used {
			return n
		}
	}
}

func mediaNumber(partName string) int {
	var n int
	fmt.Sscanf(partName, "/ppt/media/image%d", &n)
	return n
}

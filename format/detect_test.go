package format

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Image
	}{
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00}, PNG},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}, JPEG},
		{"gif87a", []byte("GIF87a\x01\x00"), GIF},
		{"gif89a", []byte("GIF89a\x01\x00"), GIF},
		{"bmp", []byte("BM\x3E\x00"), BMP},
		{"tiff little endian", []byte{'I', 'I', 0x2A, 0x00}, TIFF},
		{"tiff big endian", []byte{'M', 'M', 0x00, 0x2A}, TIFF},
		{"truncated png header", []byte{0x89, 'P', 'N'}, Unknown},
		{"empty", nil, Unknown},
		{"text", []byte("hello world"), Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.data); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     Image
	}{
		{"photo.PNG", PNG},
		{"photo.jpeg", JPEG},
		{"photo.jpg", JPEG},
		{"anim.gif", GIF},
		{"scan.tif", TIFF},
		{"bitmap.bmp", BMP},
		{"notes.txt", Unknown},
		{"noextension", Unknown},
	}
	for _, tt := range tests {
		if got := DetectFilename(tt.filename); got != tt.want {
			t.Errorf("DetectFilename(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestFormatProperties(t *testing.T) {
	if PNG.ContentType() != "image/png" || PNG.Extension() != ".png" {
		t.Errorf("PNG properties wrong: %s %s", PNG.ContentType(), PNG.Extension())
	}
	if JPEG.Extension() != ".jpg" {
		t.Errorf("JPEG extension = %s", JPEG.Extension())
	}
	if Unknown.ContentType() != "" || Unknown.Extension() != "" {
		t.Error("Unknown format should have empty content type and extension")
	}
	if got := GIF.String(); got != "GIF" {
		t.Errorf("GIF.String() = %q", got)
	}
}

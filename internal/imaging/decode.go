package imaging

import (
	"bufio"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// decoder pairs a format name with the header that identifies it. A '?' in
// magic matches any byte.
type decoder struct {
	name   string
	magic  string
	decode func(io.Reader) (image.Image, error)
}

// decoders are matched by header in order. TGA has no magic number, so it is
// not listed; the tga package registers itself with an empty magic string,
// which would make image.Decode hand every file to it.
var decoders = []decoder{
	{"png", "\x89PNG\r\n\x1a\n", png.Decode},
	{"jpeg", "\xff\xd8", jpeg.Decode},
	{"gif", "GIF8?a", gif.Decode},
	{"bmp", "BM????\x00\x00\x00\x00", bmp.Decode},
	{"tiff", "II*\x00", tiff.Decode},
	{"tiff", "MM\x00*", tiff.Decode},
	{"webp", "RIFF????WEBPVP8", webp.Decode},
}

func match(magic string, b []byte) bool {
	if len(magic) != len(b) {
		return false
	}
	for i, c := range b {
		if magic[i] != c && magic[i] != '?' {
			return false
		}
	}
	return true
}

// decodeImage decodes r, identifying the format from its header. Files
// with no recognised header are read as TGA when path has a .tga extension.
func decodeImage(r io.Reader, path string) (image.Image, string, error) {
	br := bufio.NewReader(r)
	for _, d := range decoders {
		b, err := br.Peek(len(d.magic))
		if err == nil && match(d.magic, b) {
			img, err := d.decode(br)
			return img, d.name, err
		}
	}

	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err := tga.Decode(br)
		return img, "tga", err
	}
	return nil, "", fmt.Errorf("%w: %s", image.ErrFormat, filepath.Base(path))
}

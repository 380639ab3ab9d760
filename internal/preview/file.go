// Package preview owns the user's chosen photo: the file handle that is sent
// for analysis and the rendered preview shown while composing the request.
package preview

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// contentTypes maps the extensions the picker accepts to their media type.
var contentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
}

// ImageExtensions lists the file extensions offered by the picker.
var ImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp"}

// File is a handle to a chosen photo. It is immutable once opened; picking
// another photo produces a new File.
type File struct {
	Path        string
	Name        string
	ContentType string
	Size        int64
}

// Image is the rendered preview of a File.
type Image struct {
	DataURI   string // data:<type>;base64,<bytes>
	Thumbnail string // half-block terminal art, empty when the format could not be decoded
	Width     int    // source pixel width, 0 when not decoded
	Height    int
}

// IsImage reports whether name carries one of the accepted image extensions.
func IsImage(name string) bool {
	_, ok := contentTypes[strings.ToLower(filepath.Ext(name))]
	return ok
}

// ContentTypeFor returns the media type for a file name.
func ContentTypeFor(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// Open creates a handle for the file at path. It does not read the contents.
func Open(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, fmt.Errorf("opening image: %w", err)
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("opening image: %s is a directory", path)
	}

	return File{
		Path:        path,
		Name:        info.Name(),
		ContentType: ContentTypeFor(info.Name()),
		Size:        info.Size(),
	}, nil
}

// ReadAll returns the raw bytes of the file.
func (f File) ReadAll() ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Name, err)
	}
	return data, nil
}

// DataURI encodes data as a base64 data URI.
func DataURI(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Decode reads f and renders its preview. A thumbnail of at most cols x rows
// terminal cells is drawn when the image format is decodable; otherwise only
// the data URI is filled in.
func Decode(f File, cols, rows int) (Image, error) {
	data, err := f.ReadAll()
	if err != nil {
		return Image{}, err
	}

	img := Image{DataURI: DataURI(f.ContentType, data)}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		slog.Debug("Thumbnail unavailable", "file", f.Name, "err", err)
		return img, nil
	}

	b := src.Bounds()
	img.Width = b.Dx()
	img.Height = b.Dy()
	img.Thumbnail = Thumbnail(src, cols, rows)

	slog.Debug("Preview decoded", "file", f.Name, "format", format, "width", img.Width, "height", img.Height)
	return img, nil
}

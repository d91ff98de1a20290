// Package media classifies analysis inputs by file type, decodes still
// images and provides ordered frame sources for video.
package media

import (
	"errors"
	"path/filepath"
	"strings"
)

// Kind is the type of media an input file holds
type Kind int

const (
	Unknown Kind = iota
	Image
	Video
)

// String returns the name of the media kind
func (k Kind) String() string {
	switch k {
	case Image:
		return "image"
	case Video:
		return "video"
	}
	return "unknown"
}

// ErrUnsupported is returned for files whose extension is not a supported
// image or video format
var ErrUnsupported = errors.New("unsupported media type")

var (
	imageExts = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true,
		".bmp": true, ".tif": true, ".tiff": true,
	}
	videoExts = map[string]bool{
		".mp4": true, ".avi": true, ".mov": true,
		".mkv": true, ".wmv": true,
	}
)

// Classify returns the media kind of a file from its extension, ignoring case
func Classify(path string) Kind {

	ext := strings.ToLower(filepath.Ext(path))

	switch {
	case imageExts[ext]:
		return Image
	case videoExts[ext]:
		return Video
	}

	return Unknown
}

package enums

import "fmt"

// MediaType distinguishes the renderable kinds of gallery media.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
	MediaTypePDF   MediaType = "pdf"
)

var validMediaTypes = []MediaType{
	MediaTypeImage,
	MediaTypeVideo,
	MediaTypePDF,
}

// String returns the literal string for the type.
func (m MediaType) String() string {
	return string(m)
}

// IsValid reports whether the type is known.
func (m MediaType) IsValid() bool {
	for _, candidate := range validMediaTypes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMediaType converts raw input into a MediaType.
func ParseMediaType(value string) (MediaType, error) {
	for _, candidate := range validMediaTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid media type %q", value)
}

// MediaTypeForMime maps an upload MIME type onto the stored media type.
func MediaTypeForMime(mimeType string) MediaType {
	switch {
	case mimeType == "application/pdf":
		return MediaTypePDF
	case len(mimeType) > 6 && mimeType[:6] == "video/":
		return MediaTypeVideo
	default:
		return MediaTypeImage
	}
}

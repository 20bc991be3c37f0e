package model

// ImageInfo describes a downloaded image file.
type ImageInfo struct {
	// File is the local file name.
	File string `json:"file"`

	// Size is the file size in bytes.
	Size int64 `json:"size"`

	// Digest is the hex-encoded SHA3-256 digest of the file content.
	Digest string `json:"digest"`

	// EXIF holds notable EXIF tags (tag name to formatted value).
	// Empty when the image carries no EXIF block.
	EXIF map[string]string `json:"exif,omitempty"`
}

// HasEXIF reports whether any EXIF tags were found.
func (i ImageInfo) HasEXIF() bool {
	return len(i.EXIF) > 0
}

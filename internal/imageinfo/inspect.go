package imageinfo

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	exif "github.com/dsoprea/go-exif/v3"
	"golang.org/x/crypto/sha3"

	"github.com/nao1215/logpuzzle/internal/model"
)

// notableTags are the EXIF tags copied into ImageInfo.EXIF.
var notableTags = map[string]bool{
	"Make":               true,
	"Model":              true,
	"Software":           true,
	"ProcessingSoftware": true,
	"HostComputer":       true,
	"DateTime":           true,
	"DateTimeOriginal":   true,
	"DateTimeDigitized":  true,
	"GPSLatitude":        true,
	"GPSLatitudeRef":     true,
	"GPSLongitude":       true,
	"GPSLongitudeRef":    true,
	"Artist":             true,
	"Copyright":          true,
	"ImageWidth":         true,
	"ImageLength":        true,
}

// IsNotableTag reports whether an EXIF tag is recorded by Inspect.
func IsNotableTag(name string) bool {
	return notableTags[name]
}

// Digest returns the hex-encoded SHA3-256 digest of data.
func Digest(data []byte) string {
	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Inspect reads the image at path and returns its digest and notable EXIF
// tags. The File field is set to the base name of path.
func Inspect(path string) (model.ImageInfo, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path comes from the download directory listing
	if err != nil {
		return model.ImageInfo{}, fmt.Errorf("failed to read image: %w", err)
	}

	info := model.ImageInfo{
		File:   filepath.Base(path),
		Size:   int64(len(data)),
		Digest: Digest(data),
	}

	tags, err := ExtractEXIF(data)
	if err != nil {
		return info, fmt.Errorf("failed to parse EXIF of %s: %w", info.File, err)
	}
	if len(tags) > 0 {
		info.EXIF = tags
	}
	return info, nil
}

// ExtractEXIF returns the notable EXIF tags found in data. Data without an
// EXIF block yields an empty map and no error.
func ExtractEXIF(data []byte) (map[string]string, error) {
	tags := make(map[string]string)

	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		if errors.Is(err, exif.ErrNoExif) {
			return tags, nil
		}
		return tags, err
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return tags, err
	}

	for _, entry := range entries {
		if notableTags[entry.TagName] {
			tags[entry.TagName] = entry.Formatted
		}
	}
	return tags, nil
}

// Duplicates groups files that share a digest. Only digests held by more
// than one file are returned; file lists keep their input order.
func Duplicates(infos []model.ImageInfo) map[string][]string {
	byDigest := make(map[string][]string)
	for _, info := range infos {
		byDigest[info.Digest] = append(byDigest[info.Digest], info.File)
	}

	dups := make(map[string][]string)
	for digest, files := range byDigest {
		if len(files) > 1 {
			dups[digest] = slices.Clone(files)
		}
	}
	return dups
}

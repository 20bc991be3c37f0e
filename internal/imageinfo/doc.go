// Package imageinfo inspects downloaded images.
//
// For each file it records a SHA3-256 content digest, which exposes puzzle
// pieces that were served with identical bytes under different URLs, and a
// set of notable EXIF tags (camera, software, timestamps, GPS, authorship).
// Images without EXIF metadata are normal and produce an empty tag set.
package imageinfo

package fetch

import (
	"strconv"
	"strings"
)

// tailLength is the number of trailing URL characters appended to a
// local file name, enough for ".jpg", ".png" or ".gif".
const tailLength = 4

// separatorReplacer keeps a tail such as "x/ab" from escaping the target
// directory.
var separatorReplacer = strings.NewReplacer("/", "_", `\`, "_")

// FileName returns the local file name for the URL at position index:
// "img<index>" followed by the last four characters of url.
//
// This is a tail slice, not extension parsing. URLs ending in ".jpeg" or
// without a three-letter extension produce odd suffixes ("img0jpeg");
// that is kept as-is so file names stay compatible with earlier downloads.
// URLs shorter than four characters are appended whole. The tail is cut
// on runes so multibyte characters stay intact. Path separators in
// the tail are replaced with underscores.
func FileName(url string, index int) string {
	tail := url
	if r := []rune(url); len(r) > tailLength {
		tail = string(r[len(r)-tailLength:])
	}
	return "img" + strconv.Itoa(index) + separatorReplacer.Replace(tail)
}

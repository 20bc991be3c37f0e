package index

import (
	"bytes"
	"cmp"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultFileName is the name of the generated index document.
const DefaultFileName = "index.html"

// numberPattern captures the digits immediately preceding a period.
var numberPattern = regexp.MustCompile(`(\d+)\.`)

// Entry is a file listed in the index.
type Entry struct {
	// Name is the file name relative to the directory.
	Name string

	// Number is the ordering key. Only meaningful when HasNumber is true.
	Number uint64

	// HasNumber is false when the name carries no "<digits>." sequence
	// (or the digits overflow uint64).
	HasNumber bool
}

// NumberOf extracts the ordering key from a file name.
func NumberOf(name string) (uint64, bool) {
	m := numberPattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// compareEntries orders numbered entries by number, then entries without a
// number by name. Equal numbers ("img1.jpg", "img01.jpg") fall back to name.
func compareEntries(a, b Entry) int {
	switch {
	case a.HasNumber && !b.HasNumber:
		return -1
	case !a.HasNumber && b.HasNumber:
		return 1
	case a.HasNumber && b.HasNumber:
		if c := cmp.Compare(a.Number, b.Number); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.Name, b.Name)
}

// List returns the regular files of dir in index order, skipping the file
// named exclude (normally the index document itself).
func List(dir, exclude string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read image directory: %w", err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if !de.Type().IsRegular() || de.Name() == exclude {
			continue
		}
		n, ok := NumberOf(de.Name())
		entries = append(entries, Entry{Name: de.Name(), Number: n, HasNumber: ok})
	}

	slices.SortFunc(entries, compareEntries)
	return entries, nil
}

// Render writes a minimal HTML document with one <img> element per entry,
// in the given order.
func Render(w io.Writer, entries []Entry) error {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	for _, e := range entries {
		body.AppendChild(&html.Node{
			Type:     html.ElementNode,
			Data:     "img",
			DataAtom: atom.Img,
			Attr:     []html.Attribute{{Key: "src", Val: e.Name}},
		})
		body.AppendChild(&html.Node{Type: html.TextNode, Data: "\n"})
	}

	root := &html.Node{Type: html.ElementNode, Data: "html", DataAtom: atom.Html}
	root.AppendChild(body)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(root)

	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("failed to render index: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Build lists dir and renders its index document.
func Build(dir string) ([]byte, error) {
	entries, err := List(dir, DefaultFileName)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := Render(&buf, entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write builds the index of dir and writes it to dir/name, replacing any
// previous document. An empty name means DefaultFileName. It returns the
// path of the written file.
func Write(dir, name string) (string, error) {
	if name == "" {
		name = DefaultFileName
	}

	entries, err := List(dir, name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := Render(&buf, entries); err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return "", fmt.Errorf("failed to write index: %w", err)
	}
	return path, nil
}

package index

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// touch creates empty files in dir.
func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0600); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
}

// imageSources parses an HTML document and returns the src of every <img>.
func imageSources(t *testing.T, doc []byte) []string {
	t.Helper()

	d, err := goquery.NewDocumentFromReader(bytes.NewReader(doc))
	if err != nil {
		t.Fatalf("failed to parse index: %v", err)
	}

	var srcs []string
	d.Find("body img").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		srcs = append(srcs, src)
	})
	return srcs
}

// TestNumberOf tests ordering key extraction.
func TestNumberOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		want   uint64
		wantOK bool
	}{
		{name: "img0.jpg", want: 0, wantOK: true},
		{name: "img19.jpg", want: 19, wantOK: true},
		{name: "img007.png", want: 7, wantOK: true},
		{name: "img3jpeg", wantOK: false},
		{name: "notes.txt", wantOK: false},
		{name: "img99999999999999999999999.jpg", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := NumberOf(tt.name)
			if ok != tt.wantOK {
				t.Fatalf("NumberOf(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("NumberOf(%q) = %d, want %d", tt.name, got, tt.want)
			}
		})
	}
}

// TestBuild tests index generation.
func TestBuild(t *testing.T) {
	t.Parallel()

	t.Run("numeric rather than lexicographic order", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		touch(t, dir, "img19.jpg", "img2.jpg", "img0.jpg")

		doc, err := Build(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"img0.jpg", "img2.jpg", "img19.jpg"}
		if got := imageSources(t, doc); !slices.Equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("tolerates gaps", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		touch(t, dir, "img5.jpg", "img1.jpg")

		doc, err := Build(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"img1.jpg", "img5.jpg"}
		if got := imageSources(t, doc); !slices.Equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("files without a number sort last by name", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		touch(t, dir, "zeta", "img3jpeg", "img10.jpg", "img1.gif")

		doc, err := Build(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"img1.gif", "img10.jpg", "img3jpeg", "zeta"}
		if got := imageSources(t, doc); !slices.Equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("skips the index document and directories", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		touch(t, dir, "img0.jpg", DefaultFileName)
		if err := os.Mkdir(filepath.Join(dir, "img1.d"), 0750); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}

		doc, err := Build(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"img0.jpg"}
		if got := imageSources(t, doc); !slices.Equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("empty directory renders an empty body", func(t *testing.T) {
		t.Parallel()

		doc, err := Build(t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := imageSources(t, doc); len(got) != 0 {
			t.Errorf("expected no images, got %v", got)
		}
		if !strings.Contains(string(doc), "<body>") {
			t.Errorf("expected body element, got %s", doc)
		}
	})

	t.Run("missing directory is an error", func(t *testing.T) {
		t.Parallel()

		if _, err := Build(filepath.Join(t.TempDir(), "missing")); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("escapes file names", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		touch(t, dir, `img0"x.jpg`)

		doc, err := Build(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(string(doc), `src="img0"x.jpg"`) {
			t.Errorf("expected quote to be escaped: %s", doc)
		}
		if got := imageSources(t, doc); len(got) != 1 || got[0] != `img0"x.jpg` {
			t.Errorf("unexpected sources %v", got)
		}
	})
}

// TestWrite tests writing the index to disk.
func TestWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, dir, "img1.jpg", "img0.jpg")

	path, err := Write(dir, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(dir, DefaultFileName) {
		t.Errorf("unexpected path %q", path)
	}

	// A second run must not list the first index document.
	if _, err := Write(dir, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read index: %v", err)
	}
	want := []string{"img0.jpg", "img1.jpg"}
	if got := imageSources(t, doc); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

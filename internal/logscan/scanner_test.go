package logscan

import (
	"context"
	"errors"
	"strings"
	"testing"
)

const sampleLine = `10.254.254.28 - - [06/Aug/2007:00:13:48 -0700] "GET /~foo/puzzle-bar-aaab.jpg HTTP/1.0" 302 528 "-" "Mozilla/5.0 (Windows; U; Windows NT 5.1; en-US; rv:1.8.1.6) Gecko/20070725 Firefox/2.0.0.6"`

// TestExtractPath tests request path extraction.
func TestExtractPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		line   string
		want   string
		wantOK bool
	}{
		{
			name:   "apache combined log line",
			line:   sampleLine,
			want:   "/~foo/puzzle-bar-aaab.jpg",
			wantOK: true,
		},
		{
			name:   "bare fragment",
			line:   "GET /a.jpg HTTP",
			want:   "/a.jpg",
			wantOK: true,
		},
		{
			name:   "repeated whitespace around token",
			line:   "GET  \t /a.jpg   HTTP/1.1",
			want:   "/a.jpg",
			wantOK: true,
		},
		{
			name:   "token with punctuation is returned verbatim",
			line:   `"GET /~x/a?b=c&d=%20e#f HTTP/1.0"`,
			want:   "/~x/a?b=c&d=%20e#f",
			wantOK: true,
		},
		{
			name:   "first occurrence wins",
			line:   "GET /first HTTP GET /second HTTP",
			want:   "/first",
			wantOK: true,
		},
		{
			name:   "empty line",
			line:   "",
			wantOK: false,
		},
		{
			name:   "missing GET marker",
			line:   "POST /a.jpg HTTP/1.0",
			wantOK: false,
		},
		{
			name:   "missing HTTP marker",
			line:   "GET /a.jpg",
			wantOK: false,
		},
		{
			name:   "path with embedded space",
			line:   "GET /a b.jpg HTTP/1.0",
			wantOK: false,
		},
		{
			name:   "markers are case sensitive",
			line:   "get /a.jpg http/1.0",
			wantOK: false,
		},
		{
			name:   "path only",
			line:   "/~foo/puzzle-bar-aaab.jpg",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ExtractPath(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("ExtractPath(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ExtractPath(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

// TestExtractPathRoundTrip checks that any non-whitespace token survives extraction.
func TestExtractPathRoundTrip(t *testing.T) {
	t.Parallel()

	tokens := []string{"/", "x", "/a/b/c.jpg", "/~u/puzzle-a-b.png", "!@#$%^&*()", "HTTP", "GET", "/a-b-c.d.e"}
	for _, token := range tokens {
		got, ok := ExtractPath("GET " + token + " HTTP")
		if !ok {
			t.Errorf("expected token %q to be extracted", token)
			continue
		}
		if got != token {
			t.Errorf("expected %q, got %q", token, got)
		}
	}
}

// TestIsPuzzle tests puzzle line classification.
func TestIsPuzzle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want bool
	}{
		{name: "sample puzzle line", line: sampleLine, want: true},
		{name: "puzzle anywhere in path", line: "GET /images/apuzzles/x.jpg HTTP/1.0", want: true},
		{name: "path without puzzle", line: "GET /images/banner.jpg HTTP/1.0", want: false},
		{name: "puzzle outside the path", line: `GET /index.html HTTP/1.0 "http://puzzle.example.com/"`, want: false},
		{name: "no request fragment", line: "/~foo/puzzle-bar-aaab.jpg", want: false},
		{name: "empty line", line: "", want: false},
		{name: "case sensitive substring", line: "GET /PUZZLE.jpg HTTP/1.0", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsPuzzle(tt.line); got != tt.want {
				t.Errorf("IsPuzzle(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

// TestScan tests line iteration.
func TestScan(t *testing.T) {
	t.Parallel()

	t.Run("visits every line with its number", func(t *testing.T) {
		t.Parallel()

		input := "one\ntwo\n\nfour"
		var got []string
		var numbers []int
		err := Scan(context.Background(), strings.NewReader(input), func(n int, line string) error {
			numbers = append(numbers, n)
			got = append(got, line)
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 4 || got[3] != "four" || got[2] != "" {
			t.Errorf("unexpected lines: %q", got)
		}
		if numbers[0] != 1 || numbers[3] != 4 {
			t.Errorf("unexpected line numbers: %v", numbers)
		}
	})

	t.Run("stops on callback error", func(t *testing.T) {
		t.Parallel()

		stop := errors.New("stop")
		calls := 0
		err := Scan(context.Background(), strings.NewReader("a\nb\nc\n"), func(_ int, _ string) error {
			calls++
			return stop
		})
		if !errors.Is(err, stop) {
			t.Errorf("expected stop error, got %v", err)
		}
		if calls != 1 {
			t.Errorf("expected 1 call, got %d", calls)
		}
	})

	t.Run("respects cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := Scan(ctx, strings.NewReader("a\nb\n"), func(_ int, _ string) error {
			return nil
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("handles lines longer than the default buffer", func(t *testing.T) {
		t.Parallel()

		long := "GET /puzzle-" + strings.Repeat("a", 100*1024) + ".jpg HTTP/1.0"
		paths, err := PuzzlePaths(context.Background(), strings.NewReader(long+"\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(paths) != 1 {
			t.Errorf("expected 1 path, got %d", len(paths))
		}
	})
}

// TestPuzzlePaths tests puzzle path collection.
func TestPuzzlePaths(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		sampleLine,
		"GET /images/banner.jpg HTTP/1.0",
		"garbage line",
		sampleLine,
		"GET /~foo/puzzle-bar-aaaa.jpg HTTP/1.0",
	}, "\n")

	paths, err := PuzzlePaths(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"/~foo/puzzle-bar-aaab.jpg", "/~foo/puzzle-bar-aaab.jpg", "/~foo/puzzle-bar-aaaa.jpg"}
	if len(paths) != len(want) {
		t.Fatalf("expected %d paths, got %d: %v", len(want), len(paths), paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

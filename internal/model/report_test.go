package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestNewRunReport(t *testing.T) {
	t.Parallel()

	r := NewRunReport("/var/log/animal_code.google.com", ModePrint)

	if r.Identifier != "animal_code.google.com" {
		t.Errorf("expected identifier to be the base name, got %q", r.Identifier)
	}
	if r.Mode != ModePrint {
		t.Errorf("expected mode %q, got %q", ModePrint, r.Mode)
	}
	if r.URLs == nil {
		t.Error("expected URLs to be initialized")
	}
	if r.StartedAt.IsZero() {
		t.Error("expected StartedAt to be set")
	}
}

func TestRunReportSummarize(t *testing.T) {
	t.Parallel()

	r := NewRunReport("host_example.com", ModeDownload)
	r.URLs = []string{"a", "b", "c", "d", "e"}
	r.Results = []FetchResult{
		{Index: 0, Failure: FailureNone, File: "img0.jpg"},
		{Index: 1, Failure: FailureTransport},
		{Index: 2, Failure: FailureStatus, StatusCode: 404},
		{Index: 3, Failure: FailureNone, File: "img3.jpg"},
		{Index: 4, Failure: FailureWrite},
	}

	s := r.Summarize()
	if s.Total != 5 {
		t.Errorf("expected total 5, got %d", s.Total)
	}
	if s.Fetched != 2 {
		t.Errorf("expected 2 fetched, got %d", s.Fetched)
	}
	if s.Failed() != 3 {
		t.Errorf("expected 3 failed, got %d", s.Failed())
	}

	failures := r.Failures()
	if len(failures) != 3 {
		t.Fatalf("expected 3 failures, got %d", len(failures))
	}
	if failures[0].Index != 1 || failures[1].Index != 2 || failures[2].Index != 4 {
		t.Errorf("failures not in list order: %+v", failures)
	}
}

func TestRunReportDuration(t *testing.T) {
	t.Parallel()

	r := NewRunReport("host_example.com", ModePrint)
	if r.Duration() != 0 {
		t.Error("expected zero duration for unfinished run")
	}

	r.FinishedAt = r.StartedAt.Add(3 * time.Second)
	if r.Duration() != 3*time.Second {
		t.Errorf("expected 3s, got %v", r.Duration())
	}
}

func TestFailureKind(t *testing.T) {
	t.Parallel()

	t.Run("string and parse agree", func(t *testing.T) {
		t.Parallel()
		for _, k := range []FailureKind{FailureNone, FailureTransport, FailureStatus, FailureWrite} {
			parsed, err := ParseFailureKind(k.String())
			if err != nil {
				t.Fatalf("unexpected error for %v: %v", k, err)
			}
			if parsed != k {
				t.Errorf("expected %v, got %v", k, parsed)
			}
		}
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		t.Parallel()
		if _, err := ParseFailureKind("timeout"); err == nil {
			t.Error("expected error for unknown kind")
		}
	})

	t.Run("serializes as name in JSON", func(t *testing.T) {
		t.Parallel()
		data, err := json.Marshal(FetchResult{URL: "http://x/a.jpg", Failure: FailureStatus})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(string(data), `"failure":"status"`) {
			t.Errorf("expected failure name in JSON, got %s", data)
		}

		var decoded FetchResult
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if decoded.Failure != FailureStatus {
			t.Errorf("expected FailureStatus, got %v", decoded.Failure)
		}
	})
}

package model

import (
	"path/filepath"
	"time"
)

// Run modes.
const (
	// ModePrint lists the assembled URLs without fetching them.
	ModePrint = "print"

	// ModeDownload fetches the images and builds the index document.
	ModeDownload = "download"
)

// RunReport is the result of processing one access log.
// Pipeline steps fill it in progressively; writers and the history
// database consume it.
type RunReport struct {
	// ID is the history database row ID, zero when the run was not recorded.
	ID int64 `json:"id,omitempty"`

	// LogFile is the path of the processed access log.
	LogFile string `json:"log_file"`

	// Identifier is the source identifier (the log file base name).
	// It selects the ordering policy and encodes the hostname.
	Identifier string `json:"identifier"`

	// Hostname is the host derived from Identifier.
	Hostname string `json:"hostname,omitempty"`

	// Policy is the name of the ordering policy that was applied.
	Policy string `json:"policy,omitempty"`

	// Mode is ModePrint or ModeDownload.
	Mode string `json:"mode"`

	// TargetDir is the download directory (download mode only).
	TargetDir string `json:"target_dir,omitempty"`

	// URLs is the ordered, deduplicated list of fully-qualified URLs.
	URLs []string `json:"urls"`

	// Results holds one entry per URL once the download step ran.
	Results []FetchResult `json:"results,omitempty"`

	// Images holds inspection data for each downloaded file.
	Images []ImageInfo `json:"images,omitempty"`

	// IndexFile is the path of the generated index document.
	IndexFile string `json:"index_file,omitempty"`

	// StartedAt is when processing began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when processing ended.
	FinishedAt time.Time `json:"finished_at,omitempty"`

	// PerformedSteps lists the pipeline steps that were executed.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Error holds the last step error, if any.
	Error error `json:"-"`

	// ErrorMessage is the serializable form of Error.
	ErrorMessage string `json:"error,omitempty"`
}

// NewRunReport creates a report for the given log file.
// The identifier is the base name of the path.
func NewRunReport(logFile, mode string) *RunReport {
	return &RunReport{
		LogFile:    logFile,
		Identifier: filepath.Base(logFile),
		Mode:       mode,
		URLs:       make([]string, 0),
		StartedAt:  time.Now(),
	}
}

// Summary counts outcomes of the download step.
type Summary struct {
	Total     int `json:"total"`
	Fetched   int `json:"fetched"`
	Transport int `json:"transport_failures"`
	Status    int `json:"status_failures"`
	Write     int `json:"write_failures"`
}

// Failed returns the number of failed fetches of any kind.
func (s Summary) Failed() int {
	return s.Transport + s.Status + s.Write
}

// Summarize aggregates the fetch results.
func (r *RunReport) Summarize() Summary {
	s := Summary{Total: len(r.URLs)}
	for _, res := range r.Results {
		switch res.Failure {
		case FailureNone:
			s.Fetched++
		case FailureTransport:
			s.Transport++
		case FailureStatus:
			s.Status++
		case FailureWrite:
			s.Write++
		}
	}
	return s
}

// Failures returns the failed fetch results in list order.
func (r *RunReport) Failures() []FetchResult {
	failures := make([]FetchResult, 0)
	for _, res := range r.Results {
		if !res.OK() {
			failures = append(failures, res)
		}
	}
	return failures
}

// Duration returns the processing time, zero if the run has not finished.
func (r *RunReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

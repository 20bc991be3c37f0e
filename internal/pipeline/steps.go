package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/nao1215/logpuzzle/internal/fetch"
	"github.com/nao1215/logpuzzle/internal/imageinfo"
	"github.com/nao1215/logpuzzle/internal/index"
	"github.com/nao1215/logpuzzle/internal/model"
	"github.com/nao1215/logpuzzle/internal/puzzle"
)

// Step names as recorded in RunReport.PerformedSteps.
const (
	StepCollect  = "collect"
	StepDownload = "download"
	StepInspect  = "inspect"
	StepIndex    = "index"
)

// StepOption configures the steps created by this package.
type StepOption func(*stepBase)

// WithStepLogger sets the logger used by a step.
func WithStepLogger(logger *slog.Logger) StepOption {
	return func(s *stepBase) {
		s.logger = logger
	}
}

// stepBase holds what every step shares.
type stepBase struct {
	logger *slog.Logger
}

func newStepBase(opts []StepOption) stepBase {
	b := stepBase{logger: slog.Default()}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// CollectStep reads the access log and assembles the ordered URL list.
type CollectStep struct {
	stepBase

	// table selects the ordering policy by source identifier.
	table *puzzle.PolicyTable
}

// NewCollectStep creates a collect step. A nil table means
// puzzle.DefaultPolicyTable().
func NewCollectStep(table *puzzle.PolicyTable, opts ...StepOption) *CollectStep {
	if table == nil {
		table = puzzle.DefaultPolicyTable()
	}
	return &CollectStep{stepBase: newStepBase(opts), table: table}
}

// Name returns the step name.
func (s *CollectStep) Name() string {
	return StepCollect
}

// Do executes the collect step.
func (s *CollectStep) Do(ctx context.Context, report *model.RunReport) error {
	assembly, err := puzzle.CollectFile(ctx, report.LogFile, s.table)
	if err != nil {
		return err
	}

	report.Identifier = assembly.Identifier
	report.Hostname = assembly.Hostname
	report.Policy = assembly.Policy.String()
	report.URLs = assembly.URLs

	s.logger.Info("collected puzzle urls",
		"log", report.Identifier,
		"policy", report.Policy,
		"count", len(report.URLs),
	)
	return nil
}

// DownloadStep fetches every URL of the report into the target directory.
type DownloadStep struct {
	stepBase

	fetcher *fetch.Fetcher
}

// NewDownloadStep creates a download step around fetcher.
func NewDownloadStep(fetcher *fetch.Fetcher, opts ...StepOption) *DownloadStep {
	return &DownloadStep{stepBase: newStepBase(opts), fetcher: fetcher}
}

// Name returns the step name.
func (s *DownloadStep) Name() string {
	return StepDownload
}

// Do executes the download step.
// Individual fetch failures are recorded in report.Results; only a
// missing directory or cancellation fails the step.
func (s *DownloadStep) Do(ctx context.Context, report *model.RunReport) error {
	if report.TargetDir == "" {
		return ErrNoTargetDir
	}

	results, err := s.fetcher.Download(ctx, report.URLs, report.TargetDir)
	report.Results = results
	if err != nil {
		return err
	}

	summary := report.Summarize()
	s.logger.Info("download finished",
		"fetched", summary.Fetched,
		"failed", summary.Failed(),
	)
	return nil
}

// InspectStep digests every downloaded image and extracts its EXIF tags.
type InspectStep struct {
	stepBase
}

// NewInspectStep creates an inspect step.
func NewInspectStep(opts ...StepOption) *InspectStep {
	return &InspectStep{stepBase: newStepBase(opts)}
}

// Name returns the step name.
func (s *InspectStep) Name() string {
	return StepInspect
}

// Do executes the inspect step. An image that cannot be read is logged and
// skipped; an image whose EXIF cannot be parsed is kept without tags.
func (s *InspectStep) Do(ctx context.Context, report *model.RunReport) error {
	if report.TargetDir == "" {
		return ErrNoTargetDir
	}

	infos := make([]model.ImageInfo, 0, len(report.Results))
	for _, res := range report.Results {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !res.OK() {
			continue
		}

		info, err := imageinfo.Inspect(filepath.Join(report.TargetDir, res.File))
		if err != nil {
			s.logger.Warn("failed to inspect image", "file", res.File, "error", err)
			// Unreadable EXIF still leaves a usable digest.
			if info.Digest == "" {
				continue
			}
		}
		if info.HasEXIF() {
			s.logger.Debug("image carries EXIF metadata", "file", info.File, "tags", len(info.EXIF))
		}
		infos = append(infos, info)
	}
	report.Images = infos

	for digest, files := range imageinfo.Duplicates(infos) {
		s.logger.Info("duplicate image content", "digest", digest, "files", files)
	}
	return nil
}

// IndexStep writes the HTML index document of the target directory.
type IndexStep struct {
	stepBase

	// fileName is the index document name inside the target directory.
	fileName string
}

// NewIndexStep creates an index step. An empty fileName means
// index.DefaultFileName.
func NewIndexStep(fileName string, opts ...StepOption) *IndexStep {
	if fileName == "" {
		fileName = index.DefaultFileName
	}
	return &IndexStep{stepBase: newStepBase(opts), fileName: fileName}
}

// Name returns the step name.
func (s *IndexStep) Name() string {
	return StepIndex
}

// Do executes the index step.
func (s *IndexStep) Do(_ context.Context, report *model.RunReport) error {
	if report.TargetDir == "" {
		return ErrNoTargetDir
	}

	path, err := index.Write(report.TargetDir, s.fileName)
	if err != nil {
		return fmt.Errorf("failed to build index: %w", err)
	}
	report.IndexFile = path

	s.logger.Info("index written", "path", path)
	return nil
}

// PrintPipeline creates the pipeline for print mode: collect only.
func PrintPipeline(table *puzzle.PolicyTable, opts ...Option) *Pipeline {
	p := New(opts...)
	p.AddStep(NewCollectStep(table, WithStepLogger(p.logger)))
	return p
}

// DownloadPipeline creates the pipeline for download mode:
// collect, download, inspect and index, in that order.
func DownloadPipeline(table *puzzle.PolicyTable, fetcher *fetch.Fetcher, indexFileName string, opts ...Option) *Pipeline {
	p := New(opts...)
	logOpt := WithStepLogger(p.logger)
	p.AddSteps(
		NewCollectStep(table, logOpt),
		NewDownloadStep(fetcher, logOpt),
		NewInspectStep(logOpt),
		NewIndexStep(indexFileName, logOpt),
	)
	return p
}

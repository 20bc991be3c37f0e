package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/nao1215/logpuzzle/internal/model"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "logpuzzle"

	// DefaultTimeout of zero means requests never time out, which is the
	// behaviour of Go's default HTTP client.
	DefaultTimeout time.Duration = 0

	// DefaultUserAgent identifies logpuzzle in HTTP requests.
	DefaultUserAgent = "logpuzzle/1.0 (+https://github.com/nao1215/logpuzzle)"

	// DefaultIndexFileName is the name of the generated index document.
	DefaultIndexFileName = "index.html"

	// DefaultHistoryLimit is the number of runs listed by the history command.
	DefaultHistoryLimit = 20
)

// Config holds all options for one logpuzzle run.
// It is populated from the configuration file and CLI flags and passed
// through the application explicitly rather than via global state.
type Config struct {
	// LogFile is the path of the access log to process.
	// Its base name is the source identifier.
	LogFile string

	// TargetDir is the directory images are downloaded into.
	// Empty selects print mode, where URLs are only listed.
	TargetDir string

	// Timeout bounds each HTTP request. Zero disables the timeout.
	Timeout time.Duration

	// ProxyAddress routes downloads through a SOCKS5 proxy ("host:port").
	ProxyAddress string

	// UserAgent is the User-Agent header sent with image requests.
	UserAgent string

	// IndexFileName is the name of the index document written to TargetDir.
	IndexFileName string

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the explicit configuration file path, if any.
	ConfigFilePath string

	// File holds the loaded configuration file, never nil after NewConfig.
	File *File

	// JSONReport prints the download report as JSON.
	JSONReport bool

	// MarkdownReport prints the download report as Markdown.
	MarkdownReport bool

	// ReportFile writes the download report to a file instead of stdout.
	ReportFile string

	// Record saves the run report in the history database.
	Record bool

	// DBDir is the directory holding the history database.
	DBDir string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Timeout:       DefaultTimeout,
		UserAgent:     DefaultUserAgent,
		IndexFileName: DefaultIndexFileName,
		File:          NewFile(),
		DBDir:         XDGDataDir(),
	}
}

// Mode returns model.ModeDownload when a target directory is set and
// model.ModePrint otherwise.
func (c *Config) Mode() string {
	if c.TargetDir != "" {
		return model.ModeDownload
	}
	return model.ModePrint
}

// ApplyFile copies the settings of a configuration file into c.
// Fields left empty in the file keep their current value. Flags explicitly
// set on the command line are applied afterwards and win.
func (c *Config) ApplyFile(f *File) error {
	if f == nil {
		return nil
	}
	c.File = f

	if f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
	if f.IndexFile != "" {
		c.IndexFileName = f.IndexFile
	}
	if f.Proxy != "" {
		c.ProxyAddress = f.Proxy
	}
	if f.Timeout != "" {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return ErrInvalidTimeout
		}
		c.Timeout = d
	}
	return nil
}

// XDGDataDir returns the XDG data directory for logpuzzle.
// On Linux: ~/.local/share/logpuzzle
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for logpuzzle.
// On Linux: ~/.config/logpuzzle
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *Config) Validate() error {
	if c.LogFile == "" {
		return ErrNoLogFile
	}

	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.IndexFileName == "" || strings.ContainsAny(c.IndexFileName, `/\`) ||
		c.IndexFileName == "." || c.IndexFileName == ".." {
		return ErrInvalidIndexFileName
	}

	if c.Mode() == model.ModePrint && (c.JSONReport || c.MarkdownReport || c.ReportFile != "") {
		return ErrReportWithoutDownload
	}

	return nil
}

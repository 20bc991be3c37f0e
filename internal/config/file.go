package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/nao1215/logpuzzle/internal/puzzle"
)

// File represents the structure of a .logpuzzle YAML file.
//
// Example:
//
//	policies:
//	  animal_code.google.com: lexicographic
//	  place_code.google.com: secondary
//	  mirror_logs.example.org: secondary
//	userAgent: "logpuzzle/1.0"
//	timeout: 30s
//	indexFile: index.html
//	proxy: 127.0.0.1:1080
type File struct {
	// Policies maps a source identifier (the log file base name) to the
	// name of its ordering policy. Entries extend the built-in table.
	Policies map[string]string `yaml:"policies,omitempty"`

	// UserAgent overrides the default User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Timeout is a Go duration string such as "30s".
	Timeout string `yaml:"timeout,omitempty"`

	// IndexFile overrides the index document name.
	IndexFile string `yaml:"indexFile,omitempty"`

	// Proxy is a SOCKS5 proxy address ("host:port").
	Proxy string `yaml:"proxy,omitempty"`
}

// NewFile returns an empty configuration file.
func NewFile() *File {
	return &File{Policies: make(map[string]string)}
}

// Validate checks the policy names and the timeout of the file.
func (f *File) Validate() error {
	for id, name := range f.Policies {
		if _, err := puzzle.ParsePolicy(name); err != nil {
			return fmt.Errorf("policy for %q: %w", id, err)
		}
	}
	if f.Timeout != "" {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return errors.Join(ErrInvalidTimeout, err)
		}
		if d < 0 {
			return ErrInvalidTimeout
		}
	}
	return nil
}

// PolicyTable returns the built-in policy table extended with the policies
// configured in the file. File entries replace built-in ones.
func (f *File) PolicyTable() (*puzzle.PolicyTable, error) {
	table := puzzle.DefaultPolicyTable()
	if f == nil {
		return table, nil
	}
	for id, name := range f.Policies {
		if err := table.SetNamed(id, name); err != nil {
			return nil, err
		}
	}
	return table, nil
}

package puzzle

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nao1215/logpuzzle/internal/logscan"
)

// URLScheme is prepended to the hostname of every assembled URL.
const URLScheme = "http://"

// Assembly is the result of collecting puzzle URLs from one log.
type Assembly struct {
	// Identifier is the source identifier that selected the policy.
	Identifier string

	// Hostname is the host derived from Identifier.
	Hostname string

	// Policy is the ordering policy that was applied.
	Policy Policy

	// Paths holds the deduplicated, ordered request paths.
	Paths []string

	// URLs holds Paths prefixed with URLScheme and Hostname.
	URLs []string
}

// Collect reads an access log from r and assembles the ordered list of
// fully-qualified puzzle URLs. The identifier must encode a hostname,
// otherwise ErrNoHostname is returned before r is read.
func Collect(ctx context.Context, r io.Reader, identifier string, table *PolicyTable) (*Assembly, error) {
	host, ok := Hostname(identifier)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoHostname, identifier)
	}

	paths, err := logscan.PuzzlePaths(ctx, r)
	if err != nil {
		return nil, err
	}

	policy, _ := table.Lookup(identifier)
	unique := dedupe(paths)
	policy.Sort(unique)

	urls := make([]string, len(unique))
	for i, path := range unique {
		urls[i] = URLScheme + host + path
	}

	return &Assembly{
		Identifier: identifier,
		Hostname:   host,
		Policy:     policy,
		Paths:      unique,
		URLs:       urls,
	}, nil
}

// CollectFile opens the log at path and calls Collect with the file's base
// name as the source identifier.
func CollectFile(ctx context.Context, path string, table *PolicyTable) (*Assembly, error) {
	identifier := filepath.Base(path)
	// Checked here as well as in Collect so a bad name fails without
	// touching the file.
	if _, ok := Hostname(identifier); !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoHostname, identifier)
	}

	f, err := os.Open(path) //nolint:gosec // Log path is provided by the user
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	return Collect(ctx, f, identifier, table)
}

// dedupe returns the distinct values of paths. Order is not meaningful;
// callers sort the result.
func dedupe(paths []string) []string {
	set := make(map[string]struct{}, len(paths))
	unique := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, seen := set[p]; seen {
			continue
		}
		set[p] = struct{}{}
		unique = append(unique, p)
	}
	return unique
}

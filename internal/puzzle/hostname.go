package puzzle

import "strings"

// Hostname derives the hostname encoded in a source identifier.
// It returns everything after the first underscore. The second return value
// is false when the identifier has no underscore or nothing follows it.
//
// This is a pure string transform; the identifier is never resolved
// against the filesystem.
func Hostname(identifier string) (string, bool) {
	_, host, found := strings.Cut(identifier, "_")
	if !found || host == "" {
		return "", false
	}
	return host, true
}

package puzzle

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Policy selects how deduplicated puzzle paths are ordered.
type Policy int

const (
	// PolicyLexicographic orders paths by plain ascending string comparison.
	PolicyLexicographic Policy = iota

	// PolicySecondaryKey orders paths by SecondaryKey, the token between the
	// last hyphen and the following period ("...-bar-aaab.jpg" -> "aaab").
	// Puzzles whose pieces are named "<word>-<key>.jpg" use this ordering.
	PolicySecondaryKey
)

// String returns the policy name as used in configuration files.
func (p Policy) String() string {
	switch p {
	case PolicyLexicographic:
		return "lexicographic"
	case PolicySecondaryKey:
		return "secondary"
	default:
		return "unknown"
	}
}

// ParsePolicy converts a configuration name into a Policy.
// Accepted names are "lexicographic" (or "lex") and "secondary"
// (or "secondary-key"), case-insensitive.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lexicographic", "lex":
		return PolicyLexicographic, nil
	case "secondary", "secondary-key", "secondary_key":
		return PolicySecondaryKey, nil
	default:
		return PolicyLexicographic, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// SecondaryKey returns the ordering key used by PolicySecondaryKey: the text
// after the last hyphen of path, up to the first period after that hyphen.
// A path without a hyphen is keyed by its last path segment instead, so
// directories never take part in the comparison.
func SecondaryKey(path string) string {
	start := strings.LastIndex(path, "-")
	if start < 0 {
		start = strings.LastIndex(path, "/")
	}
	key := path[start+1:]
	if dot := strings.Index(key, "."); dot >= 0 {
		key = key[:dot]
	}
	return key
}

// Sort orders paths in place according to the policy.
// Under PolicySecondaryKey, paths with equal keys are ordered by the full
// path so that output is deterministic.
func (p Policy) Sort(paths []string) {
	switch p {
	case PolicySecondaryKey:
		slices.SortFunc(paths, func(a, b string) int {
			if c := strings.Compare(SecondaryKey(a), SecondaryKey(b)); c != 0 {
				return c
			}
			return strings.Compare(a, b)
		})
	default:
		slices.Sort(paths)
	}
}

// Known source identifiers shipped with the puzzle logs.
const (
	IdentifierAnimal = "animal_code.google.com"
	IdentifierPlace  = "place_code.google.com"
)

// PolicyTable maps source identifiers to ordering policies.
// Identifiers that are not in the table use the fallback policy.
type PolicyTable struct {
	policies map[string]Policy
	fallback Policy
}

// NewPolicyTable creates an empty table with the given fallback policy.
func NewPolicyTable(fallback Policy) *PolicyTable {
	return &PolicyTable{
		policies: make(map[string]Policy),
		fallback: fallback,
	}
}

// DefaultPolicyTable returns the table for the known puzzle logs.
// Unrecognized identifiers are ordered lexicographically.
func DefaultPolicyTable() *PolicyTable {
	t := NewPolicyTable(PolicyLexicographic)
	t.Set(IdentifierAnimal, PolicyLexicographic)
	t.Set(IdentifierPlace, PolicySecondaryKey)
	return t
}

// Set registers the policy for an identifier, replacing any previous entry.
func (t *PolicyTable) Set(identifier string, p Policy) {
	t.policies[identifier] = p
}

// SetNamed registers a policy given by name.
func (t *PolicyTable) SetNamed(identifier, name string) error {
	p, err := ParsePolicy(name)
	if err != nil {
		return fmt.Errorf("policy for %q: %w", identifier, err)
	}
	t.Set(identifier, p)
	return nil
}

// Lookup returns the policy for an identifier and whether it was found.
// When not found, the fallback policy is returned.
func (t *PolicyTable) Lookup(identifier string) (Policy, bool) {
	if t == nil {
		return PolicyLexicographic, false
	}
	p, ok := t.policies[identifier]
	if !ok {
		return t.fallback, false
	}
	return p, true
}

// Identifiers returns the registered identifiers in sorted order.
func (t *PolicyTable) Identifiers() []string {
	return slices.Sorted(maps.Keys(t.policies))
}

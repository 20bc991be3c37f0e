// Package puzzle assembles the ordered list of puzzle image URLs from an
// access log.
//
// The log file name is the source identifier. It serves two purposes:
//   - the text after its first underscore is the hostname the log was
//     recorded on ("animal_code.google.com" -> "code.google.com")
//   - the whole identifier selects an ordering Policy from a PolicyTable
//
// Puzzle paths are deduplicated, ordered by the selected policy and then
// prefixed with "http://" and the hostname.
package puzzle

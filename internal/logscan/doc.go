// Package logscan reads Apache-style access logs and extracts request paths.
//
// Only the `GET <path> HTTP` fragment of a line is relevant; everything else
// (client address, timestamp, status, user agent) is ignored. Lines that do
// not contain the fragment are skipped rather than treated as errors.
//
// A puzzle line is a line whose extracted path contains the substring
// "puzzle".
package logscan

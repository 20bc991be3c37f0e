// Package model defines the core data structures used throughout logpuzzle.
//
// This package contains the following main types:
//   - RunReport: The result of processing one access log
//   - FetchResult: The outcome of downloading a single puzzle image
//   - ImageInfo: Digest and EXIF metadata of a downloaded image
//
// Models live in their own package so that the pipeline, report writers and
// history database can share them without import cycles. All types are
// serializable to JSON for report output and database storage.
package model

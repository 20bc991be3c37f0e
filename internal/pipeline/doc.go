// Package pipeline runs the stages of a logpuzzle run in sequence.
//
// A run is collect, download, inspect and index. Each stage is a Step
// that receives the shared model.RunReport and fills in its part. Print
// mode runs only the collect step; download mode runs all four.
//
// Steps share error handling, logging and cancellation through the
// Pipeline, so adding a stage does not touch the others.
package pipeline

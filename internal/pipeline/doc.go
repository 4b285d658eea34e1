// Package pipeline orchestrates batch validation of discovered
// artifacts with bounded concurrency.
//
// Artifact validations are independent of one another, so a batch is
// embarrassingly parallel: each worker writes into its own
// pre-allocated result slot, and the slots are merged into an
// id-keyed map only after every worker has finished. One artifact's
// failure never fails the batch; its outcome is captured in its own
// result entry.
package pipeline

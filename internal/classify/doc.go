// Package classify maps scanner matches to typed artifact records.
//
// Classification is a pure, deterministic mapping from pattern category
// to artifact type and subtype label. It has no side effects beyond
// constructing the record: every classified artifact starts with
// PENDING validation status and an empty tag set, ready for validator
// dispatch.
package classify

// Package aggregates defines the write boundaries of the recipe domain and the
// error codes every layer uses to describe failures.
//
// Aggregate write methods own their transaction. Callers never see a partially
// applied write.
package aggregates

// Package aggregates contains infrastructure implementations of domain aggregate contracts.
//
// Implementations compose table-level repos from internal/data/repos and own the
// transaction boundary of every write that has to hold an invariant across tables:
// a recipe with its tags and line items, and the cart and favorite pair tables.
package aggregates

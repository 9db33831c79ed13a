package repository

import "errors"

// This file defines custom errors specific to the repository layer.
// This allows the repository to communicate outcomes in a database-agnostic way.

// ErrNotFound is returned when a query for a single entity finds no rows, or
// when a conditional update finds its target row gone.
//
// The service layer translates it into a domain-level error or, inside a
// running generation, treats it as an implicit cancellation.
var ErrNotFound = errors.New("repository: not found")

// ErrConflict is returned when a guarded write loses against the current
// state of the row, e.g. BeginGeneration while another chat of the same user
// is already pending.
var ErrConflict = errors.New("repository: conflict")

package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.
// Every query is tenant-scoped; repositories never apply business rules.

import "errors"

// ErrDuplicate reports a uniqueness violation, e.g. a taken email address.
var ErrDuplicate = errors.New("duplicate row")

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}

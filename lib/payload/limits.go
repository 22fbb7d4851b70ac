// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package payload

// Limits bound payload sizes. Zero values mean "use the default"; the
// validators call Normalize before checking anything.
type Limits struct {
	// MaxTableCells caps rows*columns of any table payload.
	MaxTableCells int
	// MaxTableRows caps the row count of any table payload.
	MaxTableRows int
	// MaxTableCols caps the column count of any table payload.
	MaxTableCols int
	// MaxTextLen caps any single text field or cell, in bytes.
	MaxTextLen int
	// MaxImageBytes caps figure binaries.
	MaxImageBytes int64
}

// DefaultLimits returns the standard production limits.
func DefaultLimits() Limits {
	return Limits{
		MaxTableCells: 200000,
		MaxTableRows:  10000,
		MaxTableCols:  100,
		MaxTextLen:    5000000,
		MaxImageBytes: 50000000,
	}
}

// Normalize fills zero fields from the defaults.
func (l Limits) Normalize() Limits {
	def := DefaultLimits()
	if l.MaxTableCells <= 0 {
		l.MaxTableCells = def.MaxTableCells
	}
	if l.MaxTableRows <= 0 {
		l.MaxTableRows = def.MaxTableRows
	}
	if l.MaxTableCols <= 0 {
		l.MaxTableCols = def.MaxTableCols
	}
	if l.MaxTextLen <= 0 {
		l.MaxTextLen = def.MaxTextLen
	}
	if l.MaxImageBytes <= 0 {
		l.MaxImageBytes = def.MaxImageBytes
	}
	return l
}

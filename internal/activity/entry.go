// Package activity converts a flat, time-ordered list of unified
// transactions into date-bucketed display entries, detecting swaps along
// the way. Grouping is pure: the same input always produces the same
// output, and input slices are never mutated.
package activity

import (
	"time"

	"github.com/gcavalcante/walletfolio/internal/unify"
)

// Category describes how a hash-group resolved for the watched address.
type Category string

const (
	// CategorySwapped marks an entry holding both outgoing and incoming
	// non-dust transfers under one hash.
	CategorySwapped Category = "swapped"

	// CategorySent marks a single outgoing non-dust transfer.
	CategorySent Category = "sent"

	// CategoryReceived marks a single incoming non-dust transfer.
	CategoryReceived Category = "received"

	// CategoryApproved marks a dust-only ERC-20 record, typically a token
	// approval.
	CategoryApproved Category = "approved"

	// CategoryInteraction marks a zero-value native record, typically a
	// plain contract call.
	CategoryInteraction Category = "interaction"
)

// Entry is one display entry: a single transaction, or two to four
// transactions forming a swap with the outgoing legs first.
type Entry struct {
	Category     Category
	Transactions []unify.Transaction
}

// Timestamp returns the block time of the entry's first record, which
// drives date bucketing.
func (e Entry) Timestamp() time.Time {
	if len(e.Transactions) == 0 {
		return time.Time{}
	}
	return e.Transactions[0].Timestamp
}

// DateBucket groups the entries of one calendar day. The date is formatted
// in the local time zone without time-of-day granularity.
type DateBucket struct {
	Date    string // "2006-01-02"
	Entries []Entry
}

// dateKey formats a timestamp as the calendar day it falls on in the
// given location.
func dateKey(ts time.Time, loc *time.Location) string {
	return ts.In(loc).Format(time.DateOnly)
}

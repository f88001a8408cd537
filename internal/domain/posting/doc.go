// Package posting turns a voucher into balanced double-entry lines.
//
// Dispatch maps the voucher type to one of nine strategies. Strategies are
// plain functions over a Context: they aggregate taxes and cost of goods sold,
// resolve the system ledgers they need and return EntryLines in a fixed
// order. Persisting the lines and refreshing balances is the caller's job.
package posting

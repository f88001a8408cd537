// Package accounting holds the chart of accounts and the voucher model the
// posting engine works on: account groups, ledgers, vouchers with their items,
// ledger entries, TDS side records and the tenant's business profile.
//
// Amounts are shopspring decimals. Ledger balances are never adjusted by
// deltas; they are always derived with ComputeBalance from the opening balance
// and the full set of posted entries.
package accounting

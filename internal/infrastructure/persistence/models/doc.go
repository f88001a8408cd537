// Package models contains GORM persistence models for the posting engine's tables.
// Domain entities stay free of ORM tags; every model here converts with ToDomain and
// a ...FromDomain constructor.
//
//   - base.go: BaseModel and AggregateModel
//   - accounting.go: account groups, ledgers, tenant profiles
//   - voucher.go: vouchers, voucher items, ledger entries, TDS details
//   - inventory.go: the read-only inventory item projection
//   - outbox.go: transactional outbox rows
package models

// Package model holds the row shapes the data layer reads and writes.
//
// Struct tags:
//   - `db` maps a field to its column for pgx.RowToStructByName
//   - `json` is the shape returned to API clients
package model

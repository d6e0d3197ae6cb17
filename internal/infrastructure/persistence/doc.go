// Package persistence stores the gateway audit trail. It uses GORM over
// PostgreSQL or SQLite and never sees input or output bytes, only their sizes.
package persistence

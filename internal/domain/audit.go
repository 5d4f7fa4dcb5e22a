package domain

import "time"

// AuditEntry records one admin action. The log is append-only and ordered
// newest first; entries are never mutated or deleted.
type AuditEntry struct {
	Timestamp time.Time `json:"timestamp"`
	ID        string    `json:"id"`
	Action    string    `json:"action"`
}

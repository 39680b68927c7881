// Package sqlite provides SQLite-backed world persistence.
//
// Every save appends a full JSON snapshot as a new revision. Load reads the
// newest one; older revisions remain as an audit trail and are pruned past a
// retention limit.
package sqlite

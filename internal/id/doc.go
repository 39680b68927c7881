// Package id generates opaque correlation identifiers.
//
// Identifiers are UUIDv4 bytes encoded as lowercase base32 (RFC 4648) with no
// padding: 26 characters, safe in URLs, log lines, and span attributes.
package id

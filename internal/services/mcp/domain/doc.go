// Package domain maps MCP tool calls and resource reads onto the world service.
//
// Each tool has a schema factory, typed input and result structs, and a
// handler built from a WorldService. Domain failures come back as tool
// errors rendered through the configured locale.
package domain

// Package service wires protocol transport to the world domain handlers.
//
// It knows how to run MCP over stdio or streamable HTTP and delegates the
// meaning of every tool and resource to the MCP domain package.
package service

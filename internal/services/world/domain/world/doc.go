// Package world holds the RPG world model: a single location tree rooted at
// the world itself, plus flat character and plot registries that reference it.
//
// Every mutating method on State validates completely before touching any
// field, so a returned error always means State is unchanged. Parent lookup
// and paths are derived by traversal; nothing keeps a back-index, and deletes
// never cascade into characters or plots that still carry the removed ids.
package world

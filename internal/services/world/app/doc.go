// Package app hosts the world service: the single owner of world state.
//
// Operations run one at a time. Each validates and mutates the in-memory
// state through the domain package, then saves the whole document before
// returning. Callers always receive copies.
package app

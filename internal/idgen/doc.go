// Package idgen issues opaque run identifiers. NewFunc can be replaced in
// tests that need stable identifiers.
package idgen

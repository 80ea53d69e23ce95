// Package tables registers the importable barista models with the core registry.
// Import this package for its side effects before running imports.
package tables

// Each file registers a group of related models in init(). Descriptors list
// required columns, foreign keys and an explicit Build mapping per entity.

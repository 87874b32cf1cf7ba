// Package items persists inventory items in the local SQL store.
package items

// Package memory provides an in-process core.Store.
//
// The store is safe for concurrent use. Reads share a lock; each mutation,
// and each Update unit of work, holds the write lock for its duration.
package memory

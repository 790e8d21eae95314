// Package store persists acronym definitions as a flat keyed
// collection, behind a narrow get/put/delete/list interface with
// interchangeable backends: SQLite (default), etcd, and in-memory.
package store

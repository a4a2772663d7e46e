// Package store provides the client's persistent key-value storage.
//
// # Overview
//
// The Store interface is the only durability mechanism of the client core:
// the session token, the language preference and the cart snapshot are each
// kept under one key (KeyToken, KeyLanguage, KeyCart) and read back once at
// startup.
//
// Implementations
//
//   - SQLiteStore: the default, a kv table in a local SQLite file, created by
//     the embedded goose migrations (see Open).
//   - MemoryStore: process-local map, used by tests and "-s memory".
//   - RedisStore: keys under "eduroot:<namespace>:" in Redis, so several
//     terminals on one device can share a profile.
//
// All implementations are safe for concurrent use.
package store

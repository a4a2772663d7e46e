// Package services holds the storefront's client core: the session and cart
// managers, the checkout coordinator, and the Provider that wires them.
//
// Each manager owns its in-memory state behind a mutex, persists it through
// a store.Store before a mutator returns, and publishes an immutable
// snapshot to subscribers after every successful mutation. Network calls
// and subscriber callbacks never run under a manager's lock.
package services

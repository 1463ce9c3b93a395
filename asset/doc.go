// Package asset provides the generic machinery shared by all asset
// categories: the Asset and Resource contracts, the ordered Table that
// stores one category, and the fanout index that ties definition
// documents to the many named assets they produce.
//
// # Identity
//
// Tables own their entries for the registry's lifetime. Reconciliation
// updates a changed asset in place and removes an entry only when its
// backing resource vanished, so pointers handed out by Get remain
// valid across refresh passes. Consumers are expected to hold those
// pointers rather than re-query by name every frame.
//
// # Fanout
//
// Most resources produce exactly one asset. Definition documents are
// the exception: one document defines many named assets, and a
// re-parse may add names, remove names, or change existing ones.
// SyncFanout reconciles a document's current parse against the table
// while preserving the identity of every surviving asset, and
// DropFanout retires a vanished document wholesale. The index and the
// table agree at every return: every name the index attributes to a
// resource is present in the table.
package asset

// Package store tracks the resource files that back loaded assets.
//
// A Store is rooted at a content directory. Scan discovers resource
// files by extension and hands out Handles: one canonical Handle per
// cleaned path, shared by every asset the file produces. Handles
// answer the two questions reconciliation asks about a resource,
// whether it still exists and whether it changed since the last pass.
//
// # Change Latch
//
// Changes are latched, not delivered: detection (filesystem events or
// modification-time polling) marks a path dirty, and the dirty set is
// frozen by BeginCycle so that every table reconciled within one
// refresh pass observes the same pending set. EndCycle consumes the
// frozen set. Changes arriving while a cycle is open are latched for
// the next cycle, never lost and never observed twice.
//
// # Detection Modes
//
// By default the store polls: BeginCycle compares modification time
// and size for every known handle. WithWatcher switches to fsnotify
// events from the scanned directories, which makes BeginCycle cheap
// at the cost of a background goroutine.
package store

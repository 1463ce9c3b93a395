// Package registry assembles the per-category asset tables behind one
// facade with an explicit lifecycle.
//
// A Registry moves strictly forward through its states:
//
//	Uninitialized --Initialize--> Ready --Shutdown--> Terminated
//
// Initialize scans the content root once per category and fills the
// tables; the builtin unit quad registers first. Refresh runs once per
// host tick and reconciles every table against the store's frozen
// change set: dirty resources reload in place, vanished resources drop
// their assets, material documents fan out through the shared index.
// Shutdown drains the tables in load-category order and reports every
// asset that was loaded but never looked up.
//
// # Lookup Contract
//
// Typed accessors (Mesh, Texture, Material, Animation, Sound) mark the
// asset used and return a non-owning pointer. The pointer stays valid
// across Refresh calls as long as the backing resource exists: reloads
// happen in place. A removed resource invalidates outstanding pointers
// to its assets, so holders must re-resolve names each cycle or accept
// that contract. A lookup miss is an error by policy; the Must
// variants panic on it.
//
// # Threading
//
// Initialize, Refresh, Shutdown, and the accessors belong to one
// control goroutine and must not overlap. The store's optional watcher
// goroutine only latches change flags internally and never touches the
// tables.
package registry

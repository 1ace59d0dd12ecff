// Package dataset manages the images of a batch edit.
//
// A Library keeps, for every loaded image, the decoded source, a square
// preview and the preview's cached mean luma. The mean of those means is the
// dataset mean that auto exposure equalizes toward; it is a derived value,
// recomputed on demand after the item set changes.
//
// # Parameters
//
// All items share one base parameter record. Editing a single item creates
// its override: a snapshot of the base at that moment, into which the edit
// is merged. Rendering resolves override fields first and falls back to the
// base, so nothing is ever merged destructively.
//
// # Selection
//
// Items carry a selected flag. Scope decides which items a batch operation
// touches:
//
//	auto       selected items, or all items when none are selected
//	sel        selected items only
//	all        every item
//	exceptSel  items that are not selected
//
// # Rendering
//
// Render produces the preview tile, a quarter size detail view or the full
// resolution image. Auto exposure uses the preview mean for every view.
// Bitmaps held by the library are immutable, so renders run without the
// lock and may proceed concurrently.
package dataset

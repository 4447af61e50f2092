// Package automation drives a desktop-publishing target that assembles the
// print template.
//
// The target is reached through the [Application] capability interface. A
// run walks a fixed state machine:
//
//	Uninitialized -> Started -> DocumentCreated -> CardPlaced* -> Saved -> Closed -> Stopped
//
// [BuildTemplate] drives it and always stops the application, on success and
// on failure. Faults are wrapped with the AUTOMATION_FAILED code after the
// stop attempt.
//
// Two implementations are provided: [VectorDocument], which writes the page
// as SVG or PDF, and [Recorder], a fake that records calls and can inject
// faults.
package automation

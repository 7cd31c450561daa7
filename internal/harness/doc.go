// Package harness runs declarative match conformance scenarios.
//
// A scenario is a YAML file holding a pattern document, a subject
// document, and the match reports the engine is expected to produce.
// Scenarios keep the engine's observable behavior pinned down in data
// rather than in test code, and their rendered traces golden-compare
// across engine changes.
package harness

// Package exprdoc is the expression construction layer: a strict YAML
// document format for expression trees and rewrite rules.
//
// Decoding is strict (unknown fields are rejected, catching typos like
// "term:" for "terms:") and builds trees through the flattening
// constructors, so every expression this package produces satisfies the
// matcher's structural preconditions by construction. Symbol, space, and
// index names are NFC-normalized at decode time so Unicode encoding
// differences never reach leaf comparison.
package exprdoc

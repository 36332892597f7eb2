// Package component defines the lifecycle contract shared by the
// attribute store backends and their test doubles.
//
// A Component is started before use, stopped on shutdown, and can report
// its health. Registry starts components in registration order and stops
// them in reverse, so register a store before anything that depends on it.
package component

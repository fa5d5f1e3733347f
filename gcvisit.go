// ABOUTME: Main gcvisit package providing version information and package documentation
// ABOUTME: This is the root package for the heap object traversal and dispatch engine

// Package gcvisit provides the object traversal core of a garbage collector:
// visitor-id assignment, atomic dispatch tables, body traversal strategies,
// static new-space and marking visitors, a dynamic visitor, and weak-list
// pruning. It consumes type and layout information from the heapobj package
// and produces traversal effects (sizes, per-slot callbacks) for a collector
// to act on.
package gcvisit

// Version is the semantic version of the gcvisit library
const Version = "0.1.0-dev"

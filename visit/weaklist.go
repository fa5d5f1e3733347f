// ABOUTME: Pruning of intrusive singly-linked lists whose link field is a weak reference
// ABOUTME: Resolves each node through the retainer before relinking so relocation is safe

package visit

import "github.com/prateek/gcvisit/heapobj"

// WeakLink abstracts the intrusive "next" field of a weak list's node
// type, so lists threaded through different slots share one pruning
// routine.
type WeakLink interface {
	Next(obj heapobj.Ref) heapobj.Ref
	SetNext(obj heapobj.Ref, next heapobj.Ref)
}

// NextField is the stock WeakLink for lists threaded through the object's
// Next field.
type NextField struct{}

// Next returns the node's weak link.
func (NextField) Next(obj heapobj.Ref) heapobj.Ref { return obj.Next }

// SetNext rewrites the node's weak link.
func (NextField) SetNext(obj heapobj.Ref, next heapobj.Ref) { obj.Next = next }

// PruneWeakList walks the intrusive list starting at head and unlinks
// every node the retainer reports dead, returning the new head. Retained
// nodes keep their relative order; a dead head is skipped by advancing to
// the first survivor. Each node is resolved through the retainer before
// any relinking, and the next link is always read from the resolved
// (possibly relocated) node, so the walk never follows a link through a
// node that has already moved.
func PruneWeakList(head heapobj.Ref, link WeakLink, retainer heapobj.WeakRetainer) heapobj.Ref {
	var newHead heapobj.Ref
	var tail heapobj.Ref
	for list := head; list != nil; {
		candidate := list
		if retained := retainer.RetainAs(candidate); retained != nil {
			if newHead == nil {
				newHead = retained
			} else {
				link.SetNext(tail, retained)
			}
			tail = retained
			candidate = retained
		}
		list = link.Next(candidate)
	}
	if tail != nil {
		link.SetNext(tail, nil)
	}
	return newHead
}

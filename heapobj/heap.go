// ABOUTME: In-memory object-model registry consumed by visitors and tests
// ABOUTME: Provides methods for registering types and objects and recording GC roots

package heapobj

import "sync"

// Roots is the set of objects the collector starts marking from.
type Roots struct {
	Refs []Ref
}

// Heap is a small in-memory registry of type descriptors and objects. It
// stands in for the allocator-owned object space: the traversal engine
// itself only ever sees individual objects and their TypeInfos, but tests
// and collectors need somewhere to keep them.
type Heap struct {
	mu      sync.RWMutex
	types   map[string]*TypeInfo
	objects map[ObjID]*Object
	roots   Roots
}

// NewHeap creates an empty heap registry.
func NewHeap() *Heap {
	return &Heap{
		types:   make(map[string]*TypeInfo),
		objects: make(map[ObjID]*Object),
	}
}

// AddType registers a type descriptor under its name.
func (h *Heap) AddType(t *TypeInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.types[t.Name] = t
}

// Type retrieves a type descriptor by name, or nil.
func (h *Heap) Type(name string) *TypeInfo {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.types[name]
}

// AddObject adds an object to the heap. A duplicate ID replaces the
// earlier object.
func (h *Heap) AddObject(obj *Object) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.objects[obj.ID] = obj
}

// Object retrieves an object by ID, or nil.
func (h *Heap) Object(id ObjID) *Object {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.objects[id]
}

// NumObjects returns the total number of objects.
func (h *Heap) NumObjects() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.objects)
}

// ForEachObject iterates over all objects.
func (h *Heap) ForEachObject(fn func(*Object)) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, obj := range h.objects {
		fn(obj)
	}
}

// SetRoots records the GC roots.
func (h *Heap) SetRoots(roots Roots) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.roots = roots
}

// Roots returns the GC roots.
func (h *Heap) Roots() Roots {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.roots
}

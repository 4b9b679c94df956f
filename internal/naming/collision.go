package naming

import (
	"fmt"
	"strings"
	"sync"
)

// CollisionResolver tracks short names claimed by input files and resolves
// duplicates by appending " - dupN" suffixes. Names are compared
// case-insensitively so outputs stay distinct on case-folding filesystems.
// All methods are goroutine-safe; resolution order decides who keeps the
// plain name, so callers feed inputs in discovery order.
type CollisionResolver struct {
	mu       sync.Mutex
	owners   map[string]string // folded name -> input path that owns it
	counters map[string]int    // folded base name -> next dup counter
}

// NewCollisionResolver creates a ready-to-use resolver.
func NewCollisionResolver() *CollisionResolver {
	return &CollisionResolver{
		owners:   make(map[string]string),
		counters: make(map[string]int),
	}
}

// Resolve returns the final short name for input. If name is unclaimed (or
// already owned by input) it is returned as-is; otherwise a " - dupN"
// variant is generated.
func (cr *CollisionResolver) Resolve(input, name string) string {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	key := strings.ToLower(name)
	owner, exists := cr.owners[key]
	if !exists || owner == input {
		cr.owners[key] = input
		return name
	}

	counter := cr.counters[key]
	if counter == 0 {
		counter = 1
	}

	for {
		candidate := fmt.Sprintf("%s - dup%d", name, counter)
		cKey := strings.ToLower(candidate)
		cOwner, cExists := cr.owners[cKey]
		if !cExists || cOwner == input {
			cr.counters[key] = counter + 1
			cr.owners[cKey] = input
			return candidate
		}
		counter++
	}
}

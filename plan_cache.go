package lenum

import (
	"reflect"
	"sync"
)

// PlanCache provides thread-safe caching of decode plans per struct
// type. Plans are immutable once built, so entries never need
// invalidation; a failed build is not cached and will be retried.
type PlanCache struct {
	cache sync.Map // map[reflect.Type]*planEntry
}

// planEntry holds the built plan for a specific struct type
type planEntry struct {
	plan *decodePlan
	once sync.Once
	err  error
}

// NewPlanCache creates a new thread-safe plan cache
func NewPlanCache() *PlanCache {
	return &PlanCache{}
}

// GetOrBuild returns the plan for the struct type, building it if it
// doesn't exist. The build function is called only once per type, even
// under concurrent access.
func (pc *PlanCache) GetOrBuild(t reflect.Type, build func() (*decodePlan, error)) (*decodePlan, error) {
	var entry *planEntry
	if v, ok := pc.cache.Load(t); ok {
		entry = v.(*planEntry)
	} else {
		// LoadOrStore returns the actual stored value
		actual, _ := pc.cache.LoadOrStore(t, &planEntry{})
		entry = actual.(*planEntry)
	}

	// Always pass through the Once so concurrent callers observe a
	// fully built plan.
	entry.once.Do(func() {
		entry.plan, entry.err = build()
		if entry.err != nil {
			// Drop failed builds so a later registration can succeed.
			pc.cache.Delete(t)
		}
	})

	return entry.plan, entry.err
}

// Get retrieves the plan for the struct type if it exists
func (pc *PlanCache) Get(t reflect.Type) (*decodePlan, bool) {
	if v, ok := pc.cache.Load(t); ok {
		entry := v.(*planEntry)
		if entry.err == nil && entry.plan != nil {
			return entry.plan, true
		}
	}
	return nil, false
}

// Clear removes all cached plans
func (pc *PlanCache) Clear() {
	pc.cache.Range(func(key, _ any) bool {
		pc.cache.Delete(key)
		return true
	})
}

package registry

import (
	"sort"
	"sync"

	"github.com/weiawesome/supplyfinder/pkg/record"
)

// Registry is the in-memory id → Record store behind the lookup service.
// Reads share the lock; Insert and Load hold it only while mutating.
type Registry struct {
	mu      sync.RWMutex
	records map[uint32]record.Record
}

// New creates a registry holding seed. Later entries in seed win on
// duplicate ids.
func New(seed ...record.Record) *Registry {
	r := &Registry{records: make(map[uint32]record.Record, len(seed))}
	for _, rec := range seed {
		r.records[rec.ID] = rec
	}
	return r
}

// Insert adds rec or overwrites the record stored under rec.ID.
func (r *Registry) Insert(rec record.Record) {
	r.mu.Lock()
	r.records[rec.ID] = rec
	r.mu.Unlock()
}

// Get returns the record stored under id, or an error matching
// record.ErrNotFound.
func (r *Registry) Get(id uint32) (record.Record, error) {
	r.mu.RLock()
	rec, ok := r.records[id]
	r.mu.RUnlock()

	if !ok {
		return record.Record{}, record.Errorf(record.KindNotFound, "registry get", "record %d not found", id)
	}
	return rec, nil
}

// Load replaces the whole mapping. The new map is built before the lock is
// taken, so readers observe either the previous or the new set, never a mix.
func (r *Registry) Load(recs []record.Record) {
	next := make(map[uint32]record.Record, len(recs))
	for _, rec := range recs {
		next[rec.ID] = rec
	}

	r.mu.Lock()
	r.records = next
	r.mu.Unlock()
}

// Len returns the number of stored records.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// List returns a copy of every record ordered by id.
func (r *Registry) List() []record.Record {
	r.mu.RLock()
	out := make([]record.Record, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

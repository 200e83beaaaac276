package session

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"
)

// KV is a key-value store scoped to one learner session. It is the only
// storage boundary of the drill cycle and makes no guarantee of persistence.
type KV interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Has reports whether key is present.
	Has(ctx context.Context, key string) (bool, error)
}

// Backend hands out KV views scoped to a learner.
type Backend interface {
	Scope(learnerID string) KV
}

type memEntry struct {
	value   []byte
	updated time.Time
}

// MemoryBackend keeps every learner's values in process memory. With a
// positive TTL, entries untouched for longer than TTL read as absent and are
// dropped by Sweep.
type MemoryBackend struct {
	mu   sync.Mutex
	data map[string]map[string]memEntry
	ttl  time.Duration
	now  func() time.Time
}

// NewMemoryBackend returns an empty backend. A zero ttl keeps entries
// forever.
func NewMemoryBackend(ttl time.Duration) *MemoryBackend {
	return &MemoryBackend{
		data: make(map[string]map[string]memEntry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Scope returns the KV view for learnerID.
func (b *MemoryBackend) Scope(learnerID string) KV {
	return &memKV{b: b, learner: learnerID}
}

// Learners returns the ids of learners with at least one live entry.
func (b *MemoryBackend) Learners() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for id, entries := range b.data {
		for _, e := range entries {
			if !b.expired(e) {
				out = append(out, id)
				break
			}
		}
	}
	slices.Sort(out)
	return out
}

// Sweep drops expired entries and returns how many it removed.
func (b *MemoryBackend) Sweep(_ context.Context) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	removed := 0
	for id, entries := range b.data {
		for k, e := range entries {
			if b.expired(e) {
				delete(entries, k)
				removed++
			}
		}
		if len(entries) == 0 {
			delete(b.data, id)
		}
	}
	return removed, nil
}

func (b *MemoryBackend) expired(e memEntry) bool {
	return b.ttl > 0 && b.now().Sub(e.updated) > b.ttl
}

type memKV struct {
	b       *MemoryBackend
	learner string
}

func (kv *memKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	kv.b.mu.Lock()
	defer kv.b.mu.Unlock()
	e, ok := kv.b.data[kv.learner][key]
	if !ok || kv.b.expired(e) {
		return nil, false, nil
	}
	return slices.Clone(e.value), true, nil
}

func (kv *memKV) Set(_ context.Context, key string, value []byte) error {
	kv.b.mu.Lock()
	defer kv.b.mu.Unlock()
	entries := kv.b.data[kv.learner]
	if entries == nil {
		entries = make(map[string]memEntry)
		kv.b.data[kv.learner] = entries
	}
	entries[key] = memEntry{value: slices.Clone(value), updated: kv.b.now()}
	return nil
}

func (kv *memKV) Delete(_ context.Context, key string) error {
	kv.b.mu.Lock()
	defer kv.b.mu.Unlock()
	delete(kv.b.data[kv.learner], key)
	return nil
}

func (kv *memKV) Has(ctx context.Context, key string) (bool, error) {
	_, ok, err := kv.Get(ctx, key)
	return ok, err
}

// Keys returns the live keys of one learner, sorted.
func (b *MemoryBackend) Keys(learnerID string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	live := maps.Clone(b.data[learnerID])
	maps.DeleteFunc(live, func(_ string, e memEntry) bool { return b.expired(e) })
	return slices.Sorted(maps.Keys(live))
}

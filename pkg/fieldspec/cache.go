package fieldspec

import (
	"container/list"
	"context"
	"slices"
	"sync"
	"time"
)

type schemaKey struct {
	entityType string
	variant    string
}

type cacheEntry struct {
	key     schemaKey
	schema  Schema
	expires time.Time
}

// CachedSource keeps the most recently used schemas of another source in
// memory. Failed lookups are not cached. It is safe for concurrent use.
type CachedSource struct {
	next     Source
	capacity int
	ttl      time.Duration
	now      func() time.Time

	mu    sync.Mutex
	items map[schemaKey]*list.Element
	order *list.List // front is most recently used
}

// NewCachedSource wraps next with an LRU cache of capacity schemas. Entries
// older than ttl are fetched again; a non-positive ttl keeps them until
// evicted. The capacity must be positive, otherwise it panics.
func NewCachedSource(next Source, capacity int, ttl time.Duration) *CachedSource {
	if capacity <= 0 {
		panic("schema cache capacity must be positive")
	}
	return &CachedSource{
		next:     next,
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		items:    make(map[schemaKey]*list.Element),
		order:    list.New(),
	}
}

// Schema implements Source.
func (c *CachedSource) Schema(ctx context.Context, entityType, variant string) (Schema, error) {
	if c.next == nil {
		return Schema{}, ErrNilSource
	}

	key := schemaKey{entityType: entityType, variant: variant}
	if schema, ok := c.get(key); ok {
		return schema, nil
	}

	schema, err := c.next.Schema(ctx, entityType, variant)
	if err != nil {
		return Schema{}, err
	}
	c.put(key, schema)
	return cloneSchema(schema), nil
}

// Invalidate drops the cached schema of entityType and variant.
func (c *CachedSource) Invalidate(entityType, variant string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[schemaKey{entityType: entityType, variant: variant}]; ok {
		c.remove(elem)
	}
}

// Purge drops every cached schema.
func (c *CachedSource) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[schemaKey]*list.Element)
	c.order.Init()
}

// Len returns the number of cached schemas, expired ones included.
func (c *CachedSource) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *CachedSource) get(key schemaKey) (Schema, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return Schema{}, false
	}
	entry := elem.Value.(*cacheEntry)
	if !entry.expires.IsZero() && !c.now().Before(entry.expires) {
		c.remove(elem)
		return Schema{}, false
	}

	c.order.MoveToFront(elem)
	return cloneSchema(entry.schema), true
}

func (c *CachedSource) put(key schemaKey, schema Schema) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &cacheEntry{key: key, schema: cloneSchema(schema)}
	if c.ttl > 0 {
		entry.expires = c.now().Add(c.ttl)
	}

	if elem, ok := c.items[key]; ok {
		elem.Value = entry
		c.order.MoveToFront(elem)
		return
	}

	c.items[key] = c.order.PushFront(entry)
	if c.order.Len() > c.capacity {
		c.remove(c.order.Back())
	}
}

// Must be called with lock held.
func (c *CachedSource) remove(elem *list.Element) {
	c.order.Remove(elem)
	delete(c.items, elem.Value.(*cacheEntry).key)
}

func cloneSchema(s Schema) Schema {
	out := Schema{LabelKey: s.LabelKey}
	if s.Fields == nil {
		return out
	}
	out.Fields = make([]Definition, len(s.Fields))
	for i, def := range s.Fields {
		def.Validators = slices.Clone(def.Validators)
		def.Settings = def.Settings.clone()
		out.Fields[i] = def
	}
	return out
}

package secrets

import (
	"container/list"
	"crypto/sha256"
	"encoding/binary"
	"sync"
)

// DefaultKeyCacheSize bounds the number of derived keys held in memory.
const DefaultKeyCacheSize = 64

type fingerprint [sha256.Size]byte

type keyEntry struct {
	id  fingerprint
	key []byte
}

// KeyCache memoizes DeriveKey results in a thread-safe LRU.
// Entries are keyed by a SHA-256 fingerprint of the derivation inputs so the
// cache never stores secrets themselves. Evicted keys are zeroed.
type KeyCache struct {
	capacity int
	items    map[fingerprint]*list.Element
	order    *list.List
	mu       sync.Mutex
}

// NewKeyCache creates a cache holding at most capacity keys.
// Non-positive capacity falls back to DefaultKeyCacheSize.
func NewKeyCache(capacity int) *KeyCache {
	if capacity <= 0 {
		capacity = DefaultKeyCacheSize
	}
	return &KeyCache{
		capacity: capacity,
		items:    make(map[fingerprint]*list.Element),
		order:    list.New(),
	}
}

// Derive returns the key for the given inputs, deriving it on a miss.
// The returned slice is a copy owned by the caller.
func (c *KeyCache) Derive(secret string, salt []byte, iterations, size int) ([]byte, error) {
	id := keyFingerprint(secret, salt, iterations, size)

	c.mu.Lock()
	if elem, ok := c.items[id]; ok {
		c.order.MoveToFront(elem)
		key := append([]byte(nil), elem.Value.(*keyEntry).key...)
		c.mu.Unlock()
		return key, nil
	}
	c.mu.Unlock()

	// Derive outside the lock: PBKDF2 is the slow part.
	key, err := DeriveKey(secret, salt, iterations, size)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[id]; ok {
		c.order.MoveToFront(elem)
		return key, nil
	}

	entry := &keyEntry{id: id, key: append([]byte(nil), key...)}
	c.items[id] = c.order.PushFront(entry)

	if c.order.Len() > c.capacity {
		c.evictOldest()
	}

	return key, nil
}

func (c *KeyCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear drops and zeroes every cached key.
func (c *KeyCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, elem := range c.items {
		clearBytes(elem.Value.(*keyEntry).key)
	}
	c.items = make(map[fingerprint]*list.Element)
	c.order.Init()
}

// Must be called with lock held.
func (c *KeyCache) evictOldest() {
	elem := c.order.Back()
	if elem == nil {
		return
	}
	c.order.Remove(elem)
	entry := elem.Value.(*keyEntry)
	delete(c.items, entry.id)
	clearBytes(entry.key)
}

func keyFingerprint(secret string, salt []byte, iterations, size int) fingerprint {
	h := sha256.New()
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(secret)))
	h.Write(n[:])
	h.Write([]byte(secret))
	binary.BigEndian.PutUint64(n[:], uint64(len(salt)))
	h.Write(n[:])
	h.Write(salt)
	binary.BigEndian.PutUint64(n[:], uint64(iterations))
	h.Write(n[:])
	binary.BigEndian.PutUint64(n[:], uint64(size))
	h.Write(n[:])

	var id fingerprint
	copy(id[:], h.Sum(nil))
	return id
}

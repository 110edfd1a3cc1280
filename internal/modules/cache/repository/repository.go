package repository

// KVStore defines the interface for the durable key/value substrate
// backing the caches. It makes no transactional guarantees and a Set
// may fail (finite capacity); callers decide how to degrade.
// This abstraction allows easy replacement of storage implementations
// (e.g., FileStorage -> Redis -> SQLite)
type KVStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

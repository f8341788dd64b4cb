package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/coocood/freecache"
)

const (
	defaultMemoryCacheSize = 16 * 1024 * 1024
	minMemoryCacheSize     = 512 * 1024
)

// MemoryStore keeps values in freecache. freecache rejects entries above
// 1/1024 of the cache size, so a value is split into chunks stored under
// "<key>#<i>" with the chunk count under "<key>#n".
type MemoryStore struct {
	cache     *freecache.Cache
	chunkSize int
}

func NewMemoryStore(size int) *MemoryStore {
	if size <= 0 {
		size = defaultMemoryCacheSize
	}
	size = max(size, minMemoryCacheSize)
	return &MemoryStore{
		cache: freecache.NewCache(size),
		// a quarter of the entry limit, so a single freecache segment holds many chunks
		chunkSize: size / 4096,
	}
}

func countKey(key string) []byte {
	return []byte(key + "#n")
}

func chunkKey(key string, i int) []byte {
	return []byte(key + "#" + strconv.Itoa(i))
}

func (s *MemoryStore) Load(_ context.Context, key string) (string, bool, error) {
	rawCount, err := s.cache.Get(countKey(key))
	if err != nil {
		if errors.Is(err, freecache.ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("memory get [%s]: %w", key, err)
	}
	count, err := strconv.Atoi(string(rawCount))
	if err != nil {
		return "", false, fmt.Errorf("memory chunk count [%s]: %w", key, err)
	}

	value := make([]byte, 0, count*s.chunkSize)
	for i := 0; i < count; i++ {
		chunk, err := s.cache.Get(chunkKey(key, i))
		if err != nil {
			// an evicted chunk leaves the value unusable
			return "", false, fmt.Errorf("memory get [%s] chunk %d/%d: %w", key, i, count, err)
		}
		value = append(value, chunk...)
	}
	return string(value), true, nil
}

func (s *MemoryStore) Save(_ context.Context, key, value string) error {
	prevCount := 0
	if rawCount, err := s.cache.Get(countKey(key)); err == nil {
		prevCount, _ = strconv.Atoi(string(rawCount))
	}

	count := 0
	for start := 0; start < len(value) || count == 0; start += s.chunkSize {
		end := min(start+s.chunkSize, len(value))
		// no expiration
		if err := s.cache.Set(chunkKey(key, count), []byte(value[start:end]), 0); err != nil {
			return fmt.Errorf("memory set [%s] chunk %d: %w", key, count, err)
		}
		count++
	}

	if err := s.cache.Set(countKey(key), []byte(strconv.Itoa(count)), 0); err != nil {
		return fmt.Errorf("memory set [%s] chunk count: %w", key, err)
	}

	for i := count; i < prevCount; i++ {
		s.cache.Del(chunkKey(key, i))
	}
	return nil
}

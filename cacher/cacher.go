package cacher

import (
	"crypto/md5"
	"encoding/hex"
	"sort"
	"time"

	"github.com/adverax/bandreport/data"
	"github.com/adverax/bandreport/generic"
)

type Storage interface {
	// Lock key
	Lock(key string)
	// Unlock key
	Unlock(key string)

	// Get value by key. Returns data.ErrNoMatch, if has no key.
	Get(key string, dst interface{}) error
	// Set value with key and expire time.
	Set(key string, val interface{}, timeout time.Duration) error
	// Delete cached value by key.
	Delete(key string) error

	// Assert depended key
	Assert(key string, dependencies map[string]string) error
	// Invalidate depended data
	Invalidate(key, val string) error
}

// Cacher fetches a dependency-tagged value, building it via builder on a
// miss and invalidating every cached entry tagged with a dependency when
// that dependency's value changes - the mechanism a prepared Document
// cache uses to drop entries once the data source they were built from
// moves on.
type Cacher interface {
	FetchData(
		class string,
		dependencies map[string]string,
		dst interface{},
		builder func() (interface{}, error),
		lifeTime time.Duration,
	) error

	// Invalidate depended data
	Invalidate(key, val string) error
}

type cacher struct {
	Storage
}

func (c *cacher) FetchData(
	class string,
	dependencies map[string]string,
	dst interface{},
	builder func() (interface{}, error),
	lifeTime time.Duration,
) error {
	key := c.makeKey(class, dependencies)

	c.Lock(key)
	defer c.Unlock(key)

	err := c.Storage.Get(key, dst)
	if err != data.ErrNoMatch {
		return err
	}

	val, err := builder()
	if err != nil {
		return err
	}

	generic.CloneValueTo(dst, val)

	err = c.Storage.Set(key, val, lifeTime)
	if err != nil {
		return err
	}

	return c.Assert(key, dependencies)
}

// Create normalized key from dependencies
func (c *cacher) makeKey(
	class string,
	dependencies map[string]string,
) string {
	keys := make([]string, len(dependencies))
	for key := range dependencies {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	hasher := md5.New()
	hasher.Write([]byte(class))
	for _, key := range keys {
		val := dependencies[key]
		item := key + "=" + val + ";"
		hasher.Write([]byte(item))
	}

	return hex.EncodeToString(hasher.Sum(nil))
}

func New(
	storage Storage,
) Cacher {
	return &cacher{
		Storage: storage,
	}
}

package store

import (
	"errors"
	"math"
	"sync"
	"time"
)

// Numeric command failures. The textual descriptions are part of the wire
// contract: callers surface them verbatim as error replies.
var (
	ErrNotInteger = errors.New("value is not an integer or out of range")
	ErrOverflow   = errors.New("increment or decrement would overflow")
)

// DB is the exclusive-lock facade over the keyspace. Every operation locks
// once at entry and holds the lock across all of its reads and mutations,
// so commands execute atomically against each other and the reaper. Nothing
// here blocks while the lock is held.
type DB struct {
	mu sync.Mutex
	ks keyspace
}

// New returns an empty keyspace.
func New() *DB {
	return &DB{ks: newKeyspace()}
}

// Set stores value under key, overwriting any prior object wholesale.
// A zero exp clears any prior expiry.
func (db *DB) Set(key, value string, exp time.Time) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.ks.insert(key, Object{Val: StringValue(value), Exp: exp})
}

// Get returns the stored value's textual form, or false if the key is
// absent or expired. An expired entry is purged before returning.
func (db *DB) Get(key string) (string, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()

	obj, state := db.ks.classify(key, time.Now())
	switch state {
	case expired:
		db.ks.removeUnordered(key)
		fallthrough
	case notExist:
		return "", false
	}
	return obj.Val.Text(), true
}

// Del removes the listed keys and returns how many were actually removed.
// No expiry check: removing an expired entry still counts.
func (db *DB) Del(keys ...string) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()

	var n int64
	for _, key := range keys {
		if db.ks.removeUnordered(key) {
			n++
		}
	}
	return n
}

// Exists counts how many of the listed keys exist and are not expired.
// Duplicates count separately; expired entries are purged and not counted.
func (db *DB) Exists(keys ...string) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()

	now := time.Now()
	var n int64
	for _, key := range keys {
		switch _, state := db.ks.classify(key, now); state {
		case notExpired:
			n++
		case expired:
			db.ks.removeUnordered(key)
		}
	}
	return n
}

// IncrBy adds delta to the integer stored under key and returns the new
// value. A missing or expired key starts from zero with no expiry; an
// existing integer keeps its expiry. A string value is ErrNotInteger;
// arithmetic leaving the 64-bit signed range is ErrOverflow and leaves the
// entry untouched.
func (db *DB) IncrBy(key string, delta int64) (int64, error) {
	return db.arith(key, delta, addChecked)
}

// DecrBy subtracts delta from the integer stored under key. Kept separate
// from IncrBy so that delta == math.MinInt64 subtracts correctly instead of
// overflowing on negation.
func (db *DB) DecrBy(key string, delta int64) (int64, error) {
	return db.arith(key, delta, subChecked)
}

func (db *DB) arith(key string, delta int64, op func(a, b int64) (int64, bool)) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	obj, state := db.ks.classify(key, time.Now())
	if state != notExpired {
		if state == expired {
			db.ks.removeUnordered(key)
		}
		v, ok := op(0, delta)
		if !ok {
			// subtracting math.MinInt64 from zero
			return 0, ErrOverflow
		}
		db.ks.insert(key, Object{Val: IntValue(v)})
		return v, nil
	}

	if obj.Val.Kind != KindInt {
		return 0, ErrNotInteger
	}
	v, ok := op(obj.Val.Int, delta)
	if !ok {
		return 0, ErrOverflow
	}
	db.ks.insert(key, Object{Val: IntValue(v), Exp: obj.Exp})
	return v, nil
}

// Len returns the number of stored entries, expired or not.
func (db *DB) Len() int {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.ks.len()
}

func addChecked(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}

func subChecked(a, b int64) (int64, bool) {
	if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
		return 0, false
	}
	return a - b, true
}

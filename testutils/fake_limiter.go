package testutils

import (
	"context"
	"sync"
)

// FakeLimiter allows Limit attempts per key and records every key it sees.
type FakeLimiter struct {
	Limit int
	Err   error

	mu       sync.Mutex
	attempts map[string]int
}

func NewFakeLimiter(limit int) *FakeLimiter {
	return &FakeLimiter{
		Limit:    limit,
		attempts: make(map[string]int),
	}
}

func (l *FakeLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Err != nil {
		return false, l.Err
	}
	l.attempts[key]++
	return l.attempts[key] <= l.Limit, nil
}

func (l *FakeLimiter) Attempts(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.attempts[key]
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "sync"

// UserLocks serialises all cache mutations of one user. The write path and
// the hydration engine share a single registry, so a hydration replace can
// never interleave with a write applying for the same user. Different users
// never contend.
type UserLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewUserLocks constructs an empty registry.
func NewUserLocks() *UserLocks {
	return &UserLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex of the given user, creating it on first use, and
// returns the matching unlock function.
func (u *UserLocks) Lock(userID string) (unlock func()) {
	u.mu.Lock()
	m, ok := u.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		u.locks[userID] = m
	}
	u.mu.Unlock()

	m.Lock()
	return m.Unlock
}

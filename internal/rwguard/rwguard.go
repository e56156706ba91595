// SPDX-License-Identifier: MIT
// Package rwguard is a generic port of the original tool's Lockable<T>
// helper: it wraps a resource in a sync.RWMutex and hands out scoped
// accessors instead of exposing lock/unlock calls directly.
//
// Usage:
//
//	guard := rwguard.New(design.New())
//	acc := guard.Lock()
//	defer acc.Unlock()
//	(*acc.Ref()).AddModule("top")
package rwguard

import "sync"

// RWGuard wraps a value of type T behind a read-write mutex.
type RWGuard[T any] struct {
	mu  sync.RWMutex
	obj T
}

// New wraps obj in a fresh RWGuard.
func New[T any](obj T) *RWGuard[T] {
	return &RWGuard[T]{obj: obj}
}

// Accessor grants exclusive read-write access to the wrapped resource.
// The zero value owns no lock; it is only ever produced by Lock.
type Accessor[T any] struct {
	guard    *RWGuard[T]
	ownsLock bool
}

// ConstAccessor grants shared read-only access to the wrapped resource.
type ConstAccessor[T any] struct {
	guard    *RWGuard[T]
	ownsLock bool
}

// Lock acquires exclusive access and returns an Accessor. The caller must
// call Unlock (directly or via defer) exactly once.
func (g *RWGuard[T]) Lock() *Accessor[T] {
	g.mu.Lock()
	return &Accessor[T]{guard: g, ownsLock: true}
}

// RLock acquires shared read-only access and returns a ConstAccessor.
func (g *RWGuard[T]) RLock() *ConstAccessor[T] {
	g.mu.RLock()
	return &ConstAccessor[T]{guard: g, ownsLock: true}
}

// Ref returns a pointer to the wrapped resource. Panics if the lock was
// already released, mirroring the original's "lock not owned" guard.
func (a *Accessor[T]) Ref() *T {
	if !a.ownsLock {
		panic("rwguard: Accessor used after Unlock")
	}
	return &a.guard.obj
}

// OwnsLock reports whether Unlock has not yet been called.
func (a *Accessor[T]) OwnsLock() bool { return a.ownsLock }

// Unlock releases the exclusive lock. Safe to call once; a second call is a no-op.
func (a *Accessor[T]) Unlock() {
	if !a.ownsLock {
		return
	}
	a.ownsLock = false
	a.guard.mu.Unlock()
}

// Ref returns a read-only pointer to the wrapped resource.
func (a *ConstAccessor[T]) Ref() *T {
	if !a.ownsLock {
		panic("rwguard: ConstAccessor used after Unlock")
	}
	return &a.guard.obj
}

// OwnsLock reports whether Unlock has not yet been called.
func (a *ConstAccessor[T]) OwnsLock() bool { return a.ownsLock }

// Unlock releases the shared lock. Safe to call once; a second call is a no-op.
func (a *ConstAccessor[T]) Unlock() {
	if !a.ownsLock {
		return
	}
	a.ownsLock = false
	a.guard.mu.RUnlock()
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package secret backs the paramspec.Secret value type: a command-line
// value that should never sit in the Go heap as a plain string (where it
// would be visible in a core dump or caught by a later GC scan of freed
// memory). A Value wraps a memguard LockedBuffer instead.
package secret

import (
	"github.com/awnumar/memguard"
)

// Value is a converted Secret-typed argument: its bytes live in
// memguard-locked, non-swappable memory until Destroy is called.
//
// Thread Safety: a *Value may be read concurrently; Destroy must not race
// with a concurrent Open call.
type Value struct {
	buf *memguard.LockedBuffer
}

// New copies token's bytes into a freshly allocated locked buffer. memguard
// wipes the plaintext byte slice it is given once the copy into locked
// memory is made; the original Go string's backing array is left to the
// runtime and garbage collector as usual, since a Go string is immutable
// and cannot be scrubbed in place.
func New(token string) *Value {
	buf := memguard.NewBufferFromBytes([]byte(token))
	return &Value{buf: buf}
}

// Open returns the secret's plaintext bytes plus a closer that must be
// called as soon as the caller is done with them. The locked buffer is
// writable between Open and the closer; the closer makes it read-only
// again. There is
// deliberately no (*Value) String method: a Value must never be printable
// by accident (via %v, a log call, fmt.Sprint) — reading it is only
// possible through this explicit, narrow-scoped call.
func (v *Value) Open() (plaintext []byte, closeFn func()) {
	v.buf.Melt()
	return v.buf.Bytes(), v.buf.Freeze
}

// Destroy wipes and releases the underlying locked buffer. Safe to call
// more than once.
func (v *Value) Destroy() {
	v.buf.Destroy()
}

package iouring

import (
	"golang.org/x/sys/unix"

	"github.com/asyncring/asyncring/pool"
)

// FixedBuffers hands out a bounded set of pre-registered buffers for
// ReadFixed/WriteFixed, backed by a Fixed pool so callers block rather
// than over-subscribe the set registered with the kernel via
// Ring.RegisterBuffer.
type FixedBuffers struct {
	bufs   [][]byte
	slots  pool.Pool
	iovecs []unix.Iovec
}

// NewFixedBuffers allocates count buffers of bufSize bytes each and
// prepares the iovec table RegisterWith needs to hand to the kernel.
func NewFixedBuffers(count int, bufSize int) *FixedBuffers {
	fb := &FixedBuffers{bufs: make([][]byte, count), iovecs: make([]unix.Iovec, count)}
	for i := range fb.bufs {
		fb.bufs[i] = make([]byte, bufSize)
		fb.iovecs[i].SetLen(bufSize)
		fb.iovecs[i].Base = &fb.bufs[i][0]
	}

	next := 0
	fb.slots = pool.NewFixed(uint(count), func() interface{} {
		idx := next
		next++
		return idx
	})
	return fb
}

// RegisterWith registers every buffer this set owns with ring.
func (fb *FixedBuffers) RegisterWith(ring *Ring) error {
	return ring.RegisterBuffer(fb.iovecs)
}

// Acquire blocks until a buffer index is available and returns it
// along with the backing slice, sized to cap.
func (fb *FixedBuffers) Acquire() (index uint16, buf []byte) {
	idx := fb.slots.Get().(int)
	return uint16(idx), fb.bufs[idx]
}

// Release returns index to the pool for reuse.
func (fb *FixedBuffers) Release(index uint16) {
	fb.slots.Put(int(index))
}

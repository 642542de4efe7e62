//go:build linux

package iouring

import "sync/atomic"

// The kernel and this process communicate through the mmap'd ring
// head/tail indices without any syscall; atomic loads/stores with
// acquire/release semantics are what keep that communication correct
// on weakly-ordered architectures.

func atomicLoad(p *uint32) uint32 {
	return atomic.LoadUint32(p)
}

func atomicLoadAcquire(p *uint32) uint32 {
	return atomic.LoadUint32(p)
}

func atomicStoreRelease(p *uint32, v uint32) {
	atomic.StoreUint32(p, v)
}

//go:build linux

package iouring

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/asyncring/asyncring/metrics"
)

// Ring is a submission/completion queue pair backed by one io_uring
// file descriptor. Construct with New.
type Ring struct {
	mu sync.Mutex

	fd    int
	flags uint32

	sqRingMmap []byte
	sqesMmap   []byte
	cqRingMmap []byte

	sqHead        *uint32
	sqTail        *uint32
	sqRingMask    *uint32
	sqRingEntries *uint32
	sqFlags       *uint32
	sqDropped     *uint32
	sqArray       []uint32
	sqes          []SQE
	sqeTail       uint32 // local, not-yet-submitted tail

	cqHead        *uint32
	cqTail        *uint32
	cqRingMask    *uint32
	cqRingEntries *uint32
	cqOverflow    *uint32
	cqes          []CQE

	closed bool

	submittedCounter metrics.Counter
	reapedCounter    metrics.Counter
	overflowCounter  metrics.Counter
}

// New sets up a new io_uring instance with the requested submission
// queue depth (rounded up to a power of two by the kernel) and
// options, optionally recording instrument counts under provider (a
// nil provider uses a no-op one).
func New(entries uint32, provider metrics.Provider, opts ...Option) (*Ring, error) {
	cfg := defaultConfig(entries)
	for _, opt := range opts {
		opt(&cfg)
	}
	params := cfg.toParams()

	fd, _, errno := unix.Syscall6(sysIOUringSetup, uintptr(cfg.Entries), uintptr(unsafe.Pointer(&params)), 0, 0, 0, 0)
	if errno != 0 {
		return nil, errno
	}

	r := &Ring{fd: int(fd), flags: params.Flags}
	if provider == nil {
		provider = metrics.NewNoopProvider()
	}
	r.submittedCounter = provider.Counter("iouring_sqes_submitted_total")
	r.reapedCounter = provider.Counter("iouring_cqes_reaped_total")
	r.overflowCounter = provider.Counter("iouring_cq_overflow_total")

	if err := r.mapRings(&params); err != nil {
		unix.Close(r.fd)
		return nil, err
	}
	return r, nil
}

func (r *Ring) mapRings(params *Params) error {
	sqRingSize := uint64(params.SQOff.Array) + uint64(params.SQEntries)*4
	cqRingSize := uint64(params.CQOff.Cqes) + uint64(params.CQEntries)*16

	sqRingMmap, err := unix.Mmap(r.fd, int64(offSQRing), int(sqRingSize), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED|unix.MAP_POPULATE)
	if err != nil {
		return err
	}
	r.sqRingMmap = sqRingMmap

	cqRingMmap, err := unix.Mmap(r.fd, int64(offCQRing), int(cqRingSize), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED|unix.MAP_POPULATE)
	if err != nil {
		unix.Munmap(r.sqRingMmap)
		return err
	}
	r.cqRingMmap = cqRingMmap

	sqesSize := int(params.SQEntries) * int(unsafe.Sizeof(SQE{}))
	sqesMmap, err := unix.Mmap(r.fd, int64(offSQEs), sqesSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED|unix.MAP_POPULATE)
	if err != nil {
		unix.Munmap(r.sqRingMmap)
		unix.Munmap(r.cqRingMmap)
		return err
	}
	r.sqesMmap = sqesMmap

	sqBase := unsafe.Pointer(&r.sqRingMmap[0])
	r.sqHead = (*uint32)(unsafe.Add(sqBase, params.SQOff.Head))
	r.sqTail = (*uint32)(unsafe.Add(sqBase, params.SQOff.Tail))
	r.sqRingMask = (*uint32)(unsafe.Add(sqBase, params.SQOff.RingMask))
	r.sqRingEntries = (*uint32)(unsafe.Add(sqBase, params.SQOff.RingEntries))
	r.sqFlags = (*uint32)(unsafe.Add(sqBase, params.SQOff.Flags))
	r.sqDropped = (*uint32)(unsafe.Add(sqBase, params.SQOff.Dropped))
	arrayPtr := (*uint32)(unsafe.Add(sqBase, params.SQOff.Array))
	r.sqArray = unsafe.Slice(arrayPtr, params.SQEntries)

	sqesPtr := (*SQE)(unsafe.Pointer(&r.sqesMmap[0]))
	r.sqes = unsafe.Slice(sqesPtr, params.SQEntries)

	cqBase := unsafe.Pointer(&r.cqRingMmap[0])
	r.cqHead = (*uint32)(unsafe.Add(cqBase, params.CQOff.Head))
	r.cqTail = (*uint32)(unsafe.Add(cqBase, params.CQOff.Tail))
	r.cqRingMask = (*uint32)(unsafe.Add(cqBase, params.CQOff.RingMask))
	r.cqRingEntries = (*uint32)(unsafe.Add(cqBase, params.CQOff.RingEntries))
	r.cqOverflow = (*uint32)(unsafe.Add(cqBase, params.CQOff.Overflow))
	cqesPtr := (*CQE)(unsafe.Add(cqBase, params.CQOff.Cqes))
	r.cqes = unsafe.Slice(cqesPtr, params.CQEntries)

	r.sqeTail = atomicLoad(r.sqTail)
	return nil
}

// GetSubmissionEntry returns the next free submission queue entry to
// fill in, or ErrSubmissionQueueFull if none remain until Submit
// frees some up.
func (r *Ring) GetSubmissionEntry() (*SQE, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	head := atomicLoadAcquire(r.sqHead)
	mask := *r.sqRingMask
	if r.sqeTail-head >= *r.sqRingEntries {
		return nil, ErrSubmissionQueueFull
	}
	idx := r.sqeTail & mask
	entry := &r.sqes[idx]
	entry.Clear()
	r.sqeTail++
	return entry, nil
}

// Submit publishes every filled submission queue entry obtained since
// the last Submit to the kernel, waiting for at least waitCompletions
// completions before returning. It returns the number of entries
// submitted.
func (r *Ring) Submit(waitCompletions uint32) (int, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return 0, ErrClosed
	}

	localTail := atomicLoad(r.sqTail)
	toSubmit := r.sqeTail - localTail
	if toSubmit == 0 {
		r.mu.Unlock()
		return 0, nil
	}

	for i := uint32(0); i < toSubmit; i++ {
		idx := (localTail + i) & *r.sqRingMask
		r.sqArray[idx] = idx
	}
	atomicStoreRelease(r.sqTail, r.sqeTail)
	r.mu.Unlock()

	var enterFlags uint32
	needsEnter := true
	if r.flags&SetupSQPoll != 0 {
		needsEnter = false
		if atomicLoadAcquire(r.sqFlags)&sqNeedWakeup != 0 {
			enterFlags |= EnterSQWakeup
			needsEnter = true
		}
	}
	if waitCompletions > 0 {
		enterFlags |= EnterGetEvents
		needsEnter = true
	}
	if !needsEnter {
		r.submittedCounter.Add(int64(toSubmit))
		return int(toSubmit), nil
	}

	n, _, errno := unix.Syscall6(sysIOUringEnter, uintptr(r.fd), uintptr(toSubmit), uintptr(waitCompletions), uintptr(enterFlags), 0, 0)
	if errno != 0 {
		return int(n), errno
	}
	r.submittedCounter.Add(int64(n))
	return int(n), nil
}

// GetCompletionEntry returns the next completion queue entry. If wait
// is true and none is currently available, it blocks (via
// io_uring_enter) until one arrives.
func (r *Ring) GetCompletionEntry(wait bool) (*CQE, error) {
	for {
		head := atomicLoadAcquire(r.cqHead)
		tail := atomicLoadAcquire(r.cqTail)
		if head != tail {
			entry := &r.cqes[head&*r.cqRingMask]
			r.reapedCounter.Add(1)
			if overflow := atomicLoadAcquire(r.cqOverflow); overflow > 0 {
				r.overflowCounter.Add(int64(overflow))
			}
			return entry, nil
		}
		if !wait {
			return nil, ErrNoCompletion
		}
		_, _, errno := unix.Syscall6(sysIOUringEnter, uintptr(r.fd), 0, 1, uintptr(EnterGetEvents), 0, 0)
		if errno != 0 {
			return nil, errno
		}
	}
}

// PeekCompletionEntry is GetCompletionEntry(wait=false).
func (r *Ring) PeekCompletionEntry() (*CQE, error) {
	return r.GetCompletionEntry(false)
}

// Seen advances the completion ring's consumer head past n entries
// already handled, making their slots available to the kernel again.
func (r *Ring) Seen(n uint32) {
	atomicStoreRelease(r.cqHead, atomicLoad(r.cqHead)+n)
}

// RegisterBuffer pre-registers iovecs for use with ReadFixed/WriteFixed,
// avoiding a per-call page pin/unpin.
func (r *Ring) RegisterBuffer(iovecs []unix.Iovec) error {
	if len(iovecs) == 0 {
		return nil
	}
	_, _, errno := unix.Syscall6(sysIOUringRegister, uintptr(r.fd), registerBuffers, uintptr(unsafe.Pointer(&iovecs[0])), uintptr(len(iovecs)), 0, 0)
	if errno != 0 {
		return errno
	}
	return nil
}

// UnregisterBuffer releases buffers registered by RegisterBuffer.
func (r *Ring) UnregisterBuffer() error {
	_, _, errno := unix.Syscall6(sysIOUringRegister, uintptr(r.fd), unregisterBuffers, 0, 0, 0, 0)
	if errno != 0 {
		return errno
	}
	return nil
}

// RegisterFiles pre-registers file descriptors so SQEs can refer to
// them by index instead of raw fd, reducing per-submission fd table
// reference counting overhead.
func (r *Ring) RegisterFiles(files []int32) error {
	if len(files) == 0 {
		return nil
	}
	_, _, errno := unix.Syscall6(sysIOUringRegister, uintptr(r.fd), registerFiles, uintptr(unsafe.Pointer(&files[0])), uintptr(len(files)), 0, 0)
	if errno != 0 {
		return errno
	}
	return nil
}

// UnregisterFiles releases files registered by RegisterFiles.
func (r *Ring) UnregisterFiles() error {
	_, _, errno := unix.Syscall6(sysIOUringRegister, uintptr(r.fd), unregisterFiles, 0, 0, 0, 0)
	if errno != 0 {
		return errno
	}
	return nil
}

// RegisterEventfd arranges for eventFD to be signaled whenever a
// completion is posted, so the ring can be waited on alongside other
// descriptors in an external poll/epoll loop.
func (r *Ring) RegisterEventfd(eventFD int) error {
	fd := uint32(eventFD)
	_, _, errno := unix.Syscall6(sysIOUringRegister, uintptr(r.fd), registerEventfd, uintptr(unsafe.Pointer(&fd)), 1, 0, 0)
	if errno != 0 {
		return errno
	}
	return nil
}

// UnregisterEventfd releases the eventfd registered by
// RegisterEventfd.
func (r *Ring) UnregisterEventfd() error {
	_, _, errno := unix.Syscall6(sysIOUringRegister, uintptr(r.fd), unregisterEventfd, 0, 0, 0, 0)
	if errno != 0 {
		return errno
	}
	return nil
}

// Close unmaps the rings and closes the ring file descriptor. It is
// not safe to call concurrently with any other Ring method.
func (r *Ring) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	r.closed = true

	unix.Munmap(r.sqesMmap)
	unix.Munmap(r.sqRingMmap)
	unix.Munmap(r.cqRingMmap)
	return unix.Close(r.fd)
}

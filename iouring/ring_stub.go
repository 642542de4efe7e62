//go:build !linux

package iouring

import (
	"golang.org/x/sys/unix"

	"github.com/asyncring/asyncring/metrics"
)

// Ring is the non-Linux stand-in: io_uring is a Linux-only kernel
// interface, so every method here just reports ErrUnsupportedPlatform.
type Ring struct{}

// New always fails on non-Linux platforms.
func New(entries uint32, provider metrics.Provider, opts ...Option) (*Ring, error) {
	return nil, ErrUnsupportedPlatform
}

func (r *Ring) GetSubmissionEntry() (*SQE, error) {
	return nil, ErrUnsupportedPlatform
}

func (r *Ring) Submit(waitCompletions uint32) (int, error) {
	return 0, ErrUnsupportedPlatform
}

func (r *Ring) GetCompletionEntry(wait bool) (*CQE, error) {
	return nil, ErrUnsupportedPlatform
}

func (r *Ring) PeekCompletionEntry() (*CQE, error) {
	return nil, ErrUnsupportedPlatform
}

func (r *Ring) Seen(n uint32) {}

func (r *Ring) RegisterBuffer(iovecs []unix.Iovec) error {
	return ErrUnsupportedPlatform
}

func (r *Ring) UnregisterBuffer() error {
	return ErrUnsupportedPlatform
}

func (r *Ring) RegisterFiles(files []int32) error {
	return ErrUnsupportedPlatform
}

func (r *Ring) UnregisterFiles() error {
	return ErrUnsupportedPlatform
}

func (r *Ring) RegisterEventfd(eventFD int) error {
	return ErrUnsupportedPlatform
}

func (r *Ring) UnregisterEventfd() error {
	return ErrUnsupportedPlatform
}

func (r *Ring) Close() error {
	return ErrUnsupportedPlatform
}

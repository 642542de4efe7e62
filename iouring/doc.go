// Package iouring provides a thin, allocation-conscious binding to the
// Linux io_uring submission/completion ring pair: a fixed-size
// submission queue (SQ) and completion queue (CQ) of entries shared
// with the kernel via mmap, with io_uring_setup/io_uring_enter/
// io_uring_register driven directly through golang.org/x/sys/unix
// rather than cgo.
//
// A Ring is not safe for concurrent use by multiple goroutines without
// external synchronization; the kernel itself only requires that SQ
// producers and CQ consumers each serialize among themselves.
package iouring

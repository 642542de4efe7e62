package iouring

// CQE is one completion queue entry: a 16-byte record matching struct
// io_uring_cqe.
type CQE struct {
	UserData uint64
	Res      int32
	Flags    uint32
}

// Success reports whether the operation that produced this CQE
// completed without an error (Res >= 0).
func (c CQE) Success() bool { return c.Res >= 0 }

// Errno returns the negated Res as an error code when the operation
// failed, and zero otherwise. io_uring reports failures as negative
// errno values in Res rather than through errno/CQE.Flags.
func (c CQE) Errno() int {
	if c.Res < 0 {
		return -int(c.Res)
	}
	return 0
}

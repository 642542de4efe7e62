package iouring

// SQE is one submission queue entry: a 64-byte record matching struct
// io_uring_sqe. Fields the kernel treats as a union (Off/Addr2,
// Addr/SpliceOffIn, OpcodeFlags, BufIndex/BufGroup) are named for
// their most common use and reinterpreted by the prep helpers below.
type SQE struct {
	Opcode      uint8
	Flags       uint8
	IoPrio      uint16
	FD          int32
	Off         uint64
	Addr        uint64
	Len         uint32
	OpcodeFlags uint32
	UserData    uint64
	BufIndex    uint16
	Personality uint16
	SpliceFDIn  int32
	pad         [2]uint64
}

// Clear zeroes the entry, matching the teacher's own clear-then-fill
// pattern used by every prep helper below.
func (s *SQE) Clear() {
	*s = SQE{}
}

func (s *SQE) prepRW(opcode uint8, fd int, addr uint64, length uint32, offset int64) {
	s.Clear()
	s.Opcode = opcode
	s.FD = int32(fd)
	s.Off = uint64(offset)
	s.Addr = addr
	s.Len = length
}

// Readv prepares a vectored read from fd at offset into iovecs, given
// as a pointer to the first unix.Iovec and its count. Buffer lifetime
// is the caller's responsibility until the matching CQE is reaped.
func (s *SQE) Readv(fd int, iovecsAddr uint64, iovecsCount uint32, offset int64) {
	s.prepRW(opReadv, fd, iovecsAddr, iovecsCount, offset)
}

// Writev prepares a vectored write from fd at offset.
func (s *SQE) Writev(fd int, iovecsAddr uint64, iovecsCount uint32, offset int64) {
	s.prepRW(opWritev, fd, iovecsAddr, iovecsCount, offset)
}

// ReadFixed prepares a read into a pre-registered buffer (see
// Ring.RegisterBuffer), identified by bufIndex.
func (s *SQE) ReadFixed(fd int, bufAddr uint64, length uint32, offset int64, bufIndex uint16) {
	s.prepRW(opReadFixed, fd, bufAddr, length, offset)
	s.BufIndex = bufIndex
}

// WriteFixed prepares a write from a pre-registered buffer.
func (s *SQE) WriteFixed(fd int, bufAddr uint64, length uint32, offset int64, bufIndex uint16) {
	s.prepRW(opWriteFixed, fd, bufAddr, length, offset)
	s.BufIndex = bufIndex
}

// PollAdd prepares a one-shot poll of fd for pollEvents (an epoll
// event mask), behaving like epoll with EPOLLONESHOT.
func (s *SQE) PollAdd(fd int, pollEvents uint32) {
	s.Clear()
	s.Opcode = opPollAdd
	s.FD = int32(fd)
	s.OpcodeFlags = pollEvents
}

// PollRemove cancels a previously submitted poll request, matched by
// the UserData value it was submitted with.
func (s *SQE) PollRemove(userData uint64) {
	s.Clear()
	s.Opcode = opPollRemove
	s.Addr = userData
}

// Fsync prepares an fsync of fd. Pass FsyncDatasync in fsyncFlags for
// fdatasync-like semantics.
func (s *SQE) Fsync(fd int, fsyncFlags uint32) {
	s.Clear()
	s.Opcode = opFsync
	s.FD = int32(fd)
	s.OpcodeFlags = fsyncFlags
}

// SyncFileRange prepares a sync_file_range over [offset, offset+nbytes).
func (s *SQE) SyncFileRange(fd int, offset, nbytes int64, flags uint32) {
	s.Clear()
	s.Opcode = opSyncFileRng
	s.FD = int32(fd)
	s.Off = uint64(offset)
	s.Len = uint32(nbytes)
	s.OpcodeFlags = flags
}

// Recvmsg prepares a recvmsg of n msghdrs starting at msgsAddr.
func (s *SQE) Recvmsg(fd int, msgsAddr uint64, n uint32) {
	s.Clear()
	s.Opcode = opRecvmsg
	s.FD = int32(fd)
	s.Addr = msgsAddr
	s.Len = n
}

// Sendmsg prepares a sendmsg of n msghdrs starting at msgsAddr.
func (s *SQE) Sendmsg(fd int, msgsAddr uint64, n uint32) {
	s.Clear()
	s.Opcode = opSendmsg
	s.FD = int32(fd)
	s.Addr = msgsAddr
	s.Len = n
}

// Nop prepares a no-op entry: useful for exercising the submit/reap
// path or as a liveness barrier.
func (s *SQE) Nop() {
	s.Clear()
	s.Opcode = opNop
}

// SetUserData stamps the entry with an opaque correlation token,
// returned unchanged on the matching CQE.
func (s *SQE) SetUserData(userData uint64) {
	s.UserData = userData
}

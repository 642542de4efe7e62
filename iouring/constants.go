package iouring

// Submission queue entry opcodes (IORING_OP_*), matching the kernel's
// include/uapi/linux/io_uring.h.
const (
	opNop         = 0
	opReadv       = 1
	opWritev      = 2
	opFsync       = 3
	opReadFixed   = 4
	opWriteFixed  = 5
	opPollAdd     = 6
	opPollRemove  = 7
	opSyncFileRng = 8
	opSendmsg     = 9
	opRecvmsg     = 10
)

// Setup flags (IORING_SETUP_*).
const (
	SetupIOPoll uint32 = 1 << 0
	SetupSQPoll uint32 = 1 << 1
	SetupSQAff  uint32 = 1 << 2
	SetupCQSize uint32 = 1 << 3
	SetupClamp  uint32 = 1 << 4
)

// Enter flags (IORING_ENTER_*).
const (
	EnterGetEvents uint32 = 1 << 0
	EnterSQWakeup  uint32 = 1 << 1
)

// Runtime SQ ring flags (IORING_SQ_*).
const (
	sqNeedWakeup uint32 = 1 << 0
)

// Per-SQE flags (IOSQE_*), set on SQE.Flags before Submit.
const (
	// IOSQEIODrain forces this SQE to wait for all previously submitted
	// SQEs to complete before it is started, acting as a barrier.
	IOSQEIODrain uint8 = 1 << 1
	// IOSQEIOLink chains this SQE to the next one: the next SQE only
	// starts once this one completes, and is dropped if this one fails.
	IOSQEIOLink uint8 = 1 << 2
)

// fsync flags (IORING_FSYNC_*).
const (
	FsyncDatasync uint32 = 1 << 0
)

// Register opcodes (IORING_REGISTER_*).
const (
	registerBuffers       = 0
	unregisterBuffers     = 1
	registerFiles         = 2
	unregisterFiles       = 3
	registerEventfd       = 4
	unregisterEventfd     = 5
)

// mmap offsets into the ring fd (IORING_OFF_*).
const (
	offSQRing uint64 = 0
	offCQRing uint64 = 0x8000000
	offSQEs   uint64 = 0x10000000
)

// Raw syscall numbers for the io_uring family, as seen on the generic
// 64-bit syscall table (x86_64 and arm64 share these numbers).
const (
	sysIOUringSetup    = 425
	sysIOUringEnter    = 426
	sysIOUringRegister = 427
)

package iouring

// SQRingOffsets gives the byte offsets of each field within the mmap'd
// submission queue ring, as filled in by the kernel during
// io_uring_setup. It mirrors struct io_sqring_offsets.
type SQRingOffsets struct {
	Head        uint32
	Tail        uint32
	RingMask    uint32
	RingEntries uint32
	Flags       uint32
	Dropped     uint32
	Array       uint32
	Resv1       uint32
	Resv2       uint64
}

// CQRingOffsets gives the byte offsets of each field within the mmap'd
// completion queue ring. It mirrors struct io_cqring_offsets.
type CQRingOffsets struct {
	Head        uint32
	Tail        uint32
	RingMask    uint32
	RingEntries uint32
	Overflow    uint32
	Cqes        uint32
	Flags       uint32
	Resv1       uint32
	Resv2       uint64
}

// Params mirrors struct io_uring_params: the in/out argument to
// io_uring_setup. Only Flags, SQThreadCPU, and SQThreadIdle are
// meaningful as input; the rest are filled in by the kernel.
type Params struct {
	SQEntries    uint32
	CQEntries    uint32
	Flags        uint32
	SQThreadCPU  uint32
	SQThreadIdle uint32
	Features     uint32
	WQFd         uint32
	Resv         [3]uint32
	SQOff        SQRingOffsets
	CQOff        CQRingOffsets
}

// Config holds the settings New assembles from Options before
// calling io_uring_setup.
type Config struct {
	// Entries is the requested submission queue depth; the kernel
	// rounds it up to the next power of two.
	Entries uint32

	// SQPoll, if true, sets IORING_SETUP_SQPOLL: the kernel polls the
	// submission queue from a dedicated thread instead of requiring
	// io_uring_enter for every batch.
	SQPoll bool

	// SQThreadCPU pins the SQPOLL thread to a CPU when SQPoll is set
	// and PinSQThread is true.
	SQThreadCPU  uint32
	PinSQThread  bool

	// SQThreadIdle is the SQPOLL thread's idle timeout in milliseconds
	// before it sleeps and needs an explicit wakeup.
	SQThreadIdle uint32
}

// Option mutates a Config during New.
type Option func(*Config)

// WithSQPoll enables IORING_SETUP_SQPOLL with the given thread idle
// timeout.
func WithSQPoll(idleMillis uint32) Option {
	return func(c *Config) {
		c.SQPoll = true
		c.SQThreadIdle = idleMillis
	}
}

// WithSQThreadCPU pins the SQPOLL thread to cpu. Only meaningful
// combined with WithSQPoll.
func WithSQThreadCPU(cpu uint32) Option {
	return func(c *Config) {
		c.PinSQThread = true
		c.SQThreadCPU = cpu
	}
}

func defaultConfig(entries uint32) Config {
	return Config{Entries: entries}
}

func (c Config) toParams() Params {
	var p Params
	if c.SQPoll {
		p.Flags |= SetupSQPoll
		p.SQThreadIdle = c.SQThreadIdle
	}
	if c.PinSQThread {
		p.Flags |= SetupSQAff
		p.SQThreadCPU = c.SQThreadCPU
	}
	return p
}

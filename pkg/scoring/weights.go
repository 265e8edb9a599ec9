package scoring

// Weights holds the point contribution of each capability. The values are
// calibration, not invariants: recalibrating requires no change to the
// scoring algorithm itself.
type Weights struct {
	// CPU vector extensions, mutually exclusive: the highest present tier wins.
	AVX512 int
	AVX2   int
	AVX    int

	AESNI     int
	BMI       int // requires both BMI1 and BMI2
	ManyCores int // 8 cores or more
	SomeCores int // 4-7 cores

	// Virtualization, mutually exclusive: second-level address translation
	// (EPT/NPT) supersedes the bare hardware-virtualization contribution.
	SLATVirtualization  int
	BasicVirtualization int

	VPID       int
	EPT1GPages int

	// Storage, mutually exclusive: NVMe supersedes plain block storage.
	NVMe           int
	NonNVMeStorage int

	LargeRAM     int // 32 GB or more
	HugePages1GB int
}

// DefaultWeights returns the default calibration.
func DefaultWeights() Weights {
	return Weights{
		AVX512:              25,
		AVX2:                15,
		AVX:                 5,
		AESNI:               10,
		BMI:                 5,
		ManyCores:           10,
		SomeCores:           5,
		SLATVirtualization:  20,
		BasicVirtualization: 10,
		VPID:                5,
		EPT1GPages:          5,
		NVMe:                15,
		NonNVMeStorage:      5,
		LargeRAM:            10,
		HugePages1GB:        5,
	}
}

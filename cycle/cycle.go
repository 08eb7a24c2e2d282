// Package cycle defines the NES timing domain: a monotonic master-cycle base
// and the CPU- and PPU-relative units that derive from it.
//
// Conversion: 1 CPU cycle = 3 master cycles = 3 PPU cycles. Master and PPU
// share a 1:1 ratio; CPU is the slow clock.
package cycle

// Master is the machine's common time base. Every component's StepTo entry
// point is expressed in Master cycles.
type Master uint64

// CPU counts 6502 clock cycles.
type CPU uint64

// PPU counts PPU dot cycles; numerically identical to Master.
type PPU uint64

const cpuDivisor = 3

// ToCPU converts a Master duration to whole CPU cycles, truncating any
// remainder (the remainder is the "overshoot" a caller is expected to carry
// forward itself).
func (m Master) ToCPU() CPU {
	return CPU(m / cpuDivisor)
}

// ToPPU converts a Master duration to PPU cycles. Identity conversion.
func (m Master) ToPPU() PPU {
	return PPU(m)
}

// FromCPU converts a CPU cycle count back to Master cycles.
func FromCPU(c CPU) Master {
	return Master(c * cpuDivisor)
}

// FromPPU converts a PPU cycle count back to Master cycles.
func FromPPU(p PPU) Master {
	return Master(p)
}

// Add returns m+n.
func (m Master) Add(n Master) Master {
	return m + n
}

// Sub returns m-n, saturating at zero rather than wrapping.
func (m Master) Sub(n Master) Master {
	if n >= m {
		return 0
	}
	return m - n
}

// Before reports whether m represents an earlier point in time than n.
func (m Master) Before(n Master) bool {
	return m < n
}

package kernel

import "simd/archsimd"

// cpuFeatures records which SIMD extensions are available on the
// current machine, probed once at init and consulted by the
// microkernels to pick a vectorized or scalar path.
type cpuFeatures struct {
	HasAVX2 bool
}

var cpu cpuFeatures

func init() {
	cpu.HasAVX2 = archsimd.X86.AVX2()
}

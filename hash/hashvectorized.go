package hash

import "github.com/klauspost/cpuid/v2"

// lanes bounds HashVectorizedParallelism and sizes the HashTokens scratch buffers
const lanes = 16

func init() {
	// wide registers let the compiler keep all 16 lanes live
	if cpuid.CPU.Supports(cpuid.AVX512F, cpuid.AVX512DQ) {
		HashVectorized = hashUnrolled
		hashVectorizedParallelism = lanes
	} else {
		HashVectorized = hashNotVectorized
		hashVectorizedParallelism = 1
	}
}

func hashUnrolled(out []uint32, n []uint32, s []uint32, max uint32) {
	var i int
	for ; i+lanes <= len(out); i += lanes {
		o := (*[lanes]uint32)(out[i : i+lanes])
		nn := (*[lanes]uint32)(n[i : i+lanes])
		ss := (*[lanes]uint32)(s[i : i+lanes])
		for j := range o {
			o[j] = Hash(nn[j], ss[j], max)
		}
	}
	hashNotVectorized(out[i:], n[i:], s[i:], max)
}

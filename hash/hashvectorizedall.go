package hash

// HashVectorized computes many hashes sharing the same max at once
var HashVectorized func(out []uint32, n []uint32, s []uint32, max uint32) = hashNotVectorized

var hashVectorizedParallelism int = 1

// HashVectorizedParallelism reports the recommended number of hashes to compute in one go on this platform
// Can't return 0.
func HashVectorizedParallelism() int {
	return hashVectorizedParallelism
}

func hashNotVectorized(out []uint32, n []uint32, s []uint32, max uint32) {
	for i := range out {
		out[i] = Hash(n[i], s[i], max)
	}
}

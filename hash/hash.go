// Package hash implements the fast modular hash used to turn tokens into word feature ids
package hash

// Hash mixes n with salt s and reduces the result into the range 0..max-1
func Hash(n uint32, s uint32, max uint32) uint32 {
	// mix input with salt
	var m = n - s

	// xor shift with prime shift amounts
	m ^= m << 2
	m ^= m << 3
	m ^= m >> 5
	m ^= m >> 7
	m ^= m << 11
	m ^= m << 13
	m ^= m >> 17
	m ^= m << 19

	m += s

	// multiply shift reduction instead of modulo
	// https://lemire.me/blog/2016/06/27/a-fast-alternative-to-the-modulo-reduction/
	return uint32((uint64(m) * uint64(max)) >> 32)
}

// StringHash folds every byte of str into seed
func StringHash(seed uint32, str string) uint32 {
	var h = seed
	for i := 0; i < len(str); i++ {
		h = Hash(h, uint32(str[i]), 0xFFFFFFFF)
	}
	return Hash(h, uint32(len(str)), 0xFFFFFFFF)
}

// StringsHash folds a sequence of strings into seed, order sensitive
func StringsHash(seed uint32, strs []string) uint32 {
	var h = seed
	for _, str := range strs {
		h = StringHash(h, str)
	}
	return h
}

// HashTokens writes the bucket of each token into out, out must be at least as long as tokens.
// Tokens go through HashVectorized HashVectorizedParallelism() at a time.
// Buckets of 0 yields all zeros.
func HashTokens(out []uint32, tokens []string, seed uint32, buckets uint32) {
	var n, s [lanes]uint32
	for i := range s {
		s[i] = seed
	}
	var width = min(HashVectorizedParallelism(), lanes)
	for i := 0; i < len(tokens); i += width {
		end := min(i+width, len(tokens))
		for j, tok := range tokens[i:end] {
			n[j] = StringHash(seed, tok)
		}
		HashVectorized(out[i:end], n[:end-i], s[:end-i], buckets)
	}
}

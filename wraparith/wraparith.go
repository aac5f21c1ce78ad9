// wraparith.go -- 64-bit wrapping arithmetic and shift helpers used by
// every hot path in the hasher and the byte-map generator.
//
// Go's uint64 already wraps silently on overflow, and the language spec
// guarantees a shift of an unsigned operand by a count >= its width yields
// zero. We still centralize both behind named functions so the hasher and
// the byte-map generator never open-code a bare `<<`/`>>` -- a transliteration
// from a narrower-word reference is far easier to audit this way.
package wraparith

// Shl performs a logical left shift of v by n bits, wrapping to 0 once
// n reaches the word width.
func Shl(v uint64, n uint) uint64 {
	if n >= 64 {
		return 0
	}
	return v << n
}

// Shr performs a logical right shift of v by n bits, wrapping to 0 once
// n reaches the word width.
func Shr(v uint64, n uint) uint64 {
	if n >= 64 {
		return 0
	}
	return v >> n
}

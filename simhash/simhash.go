// Package simhash computes 64-bit locality-sensitive fingerprints used to
// compare raw and rendered versions of the same page.
package simhash

import (
	"hash/fnv"
	"math/bits"
	"strings"
	"unicode"
)

// Fingerprint computes a 64-bit SimHash of the given text.
// Words are lower-cased and stripped of surrounding punctuation, hashed with
// FNV-64a, and accumulated into a signed bit vector.
func Fingerprint(text string) uint64 {
	words := tokenize(text)
	if len(words) == 0 {
		return 0
	}
	return fold(words)
}

func fold(tokens []string) uint64 {
	var vector [64]int
	for _, tok := range tokens {
		h := fnv.New64a()
		h.Write([]byte(tok))
		hash := h.Sum64()

		for i := 0; i < 64; i++ {
			if hash&(1<<uint(i)) != 0 {
				vector[i]++
			} else {
				vector[i]--
			}
		}
	}

	var fp uint64
	for i := 0; i < 64; i++ {
		if vector[i] > 0 {
			fp |= 1 << uint(i)
		}
	}
	return fp
}

func tokenize(text string) []string {
	fields := strings.Fields(text)
	out := fields[:0]
	for _, f := range fields {
		f = strings.TrimFunc(f, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if f != "" {
			out = append(out, strings.ToLower(f))
		}
	}
	return out
}

// Distance returns the Hamming distance between two fingerprints.
func Distance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

// Similarity maps the Hamming distance to [0,1], 1 meaning identical.
// Two empty fingerprints are identical; one empty side is fully dissimilar.
func Similarity(a, b uint64) float64 {
	if a == b {
		return 1
	}
	if a == 0 || b == 0 {
		return 0
	}
	return 1 - float64(Distance(a, b))/64
}

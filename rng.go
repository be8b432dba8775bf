package main

import (
	"crypto/rand"
	"encoding/binary"
)

// RNG is the single source of randomness for game decisions (category, word,
// and imposter selection). Injecting it lets tests pin exact outcomes.
type RNG interface {
	// IntN returns a uniform random integer in [0, n). n must be > 0.
	IntN(n int) int
}

// cryptoRNG draws from crypto/rand, discarding bytes that would bias the
// result (same rejection loop the game IDs use).
type cryptoRNG struct{}

func (cryptoRNG) IntN(n int) int {
	if n <= 0 {
		panic("IntN: n must be > 0")
	}

	limit := uint64(1<<32) - (uint64(1<<32) % uint64(n))

	var b [4]byte
	for {
		if _, err := rand.Read(b[:]); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		v := uint64(binary.BigEndian.Uint32(b[:]))
		if v < limit {
			return int(v % uint64(n))
		}
	}
}

// randomID generates an n-char alphanumeric identifier.
func randomID(rng RNG, n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"

	out := make([]byte, n)
	for i := range out {
		out[i] = letters[rng.IntN(len(letters))]
	}
	return string(out)
}

package main

import (
	"strings"
	"testing"
)

func TestCryptoRNGBounds(t *testing.T) {
	rng := cryptoRNG{}

	for _, n := range []int{1, 2, 7, 36, 255, 1000} {
		for i := 0; i < 200; i++ {
			v := rng.IntN(n)
			if v < 0 || v >= n {
				t.Fatalf("IntN(%d) returned %d, out of range", n, v)
			}
		}
	}
}

func TestCryptoRNGCoversRange(t *testing.T) {
	rng := cryptoRNG{}

	seen := make(map[int]bool)
	for i := 0; i < 500; i++ {
		seen[rng.IntN(4)] = true
	}
	for v := 0; v < 4; v++ {
		if !seen[v] {
			t.Errorf("IntN(4) never produced %d in 500 draws", v)
		}
	}
}

func TestRandomID(t *testing.T) {
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"

	id := randomID(cryptoRNG{}, 8)
	if len(id) != 8 {
		t.Fatalf("expected 8-char ID, got %q", id)
	}
	for _, r := range id {
		if !strings.ContainsRune(letters, r) {
			t.Errorf("unexpected character %q in ID %q", r, id)
		}
	}

	if randomID(&seqRNG{seq: []int{0}}, 4) != "aaaa" {
		t.Error("randomID should be driven entirely by the injected RNG")
	}
}

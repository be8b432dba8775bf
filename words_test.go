package main

import (
	"testing"
)

func TestDefaultWordBankLoads(t *testing.T) {
	bank := defaultWordBank()

	if len(bank.keys) == 0 {
		t.Fatal("embedded word bank has no categories")
	}
	for key, c := range bank.categories {
		if c.Name == "" {
			t.Errorf("category %q has no display label", key)
		}
		if len(c.Words) == 0 {
			t.Errorf("category %q has no words", key)
		}
	}
	if bank.size() < 100 {
		t.Errorf("word bank is suspiciously small: %d words", bank.size())
	}
}

func TestWordBankPickIsDeterministicWithPinnedRNG(t *testing.T) {
	bank := defaultWordBank()

	category, word := bank.pick(&seqRNG{seq: []int{0}})

	// Keys are sorted, so index 0 is the alphabetically first category.
	want := bank.categories[bank.keys[0]]
	if category != want.Name {
		t.Errorf("expected category %q, got %q", want.Name, category)
	}
	if word != want.Words[0] {
		t.Errorf("expected word %q, got %q", want.Words[0], word)
	}
}

func TestWordBankPickStaysInChosenCategory(t *testing.T) {
	bank := defaultWordBank()

	for i := 0; i < 50; i++ {
		category, word := bank.pick(cryptoRNG{})

		found := false
		for _, c := range bank.categories {
			if c.Name != category {
				continue
			}
			for _, w := range c.Words {
				if w == word {
					found = true
				}
			}
		}
		if !found {
			t.Fatalf("picked word %q does not belong to picked category %q", word, category)
		}
	}
}

func TestLoadWordBankRejectsInvalidJSON(t *testing.T) {
	if _, err := loadWordBank([]byte("not json")); err == nil {
		t.Error("expected an error for invalid JSON")
	}
}

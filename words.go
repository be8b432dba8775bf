package main

import (
	_ "embed"
	"encoding/json"
	"sort"
)

//go:embed words/words.json
var wordsJSON []byte

// Category is one labeled set of candidate words.
type Category struct {
	Name  string   `json:"name"`
	Words []string `json:"words"`
}

// WordBank is the static category → words lookup table. Read-only after load.
type WordBank struct {
	categories map[string]Category
	keys       []string
}

func loadWordBank(data []byte) (*WordBank, error) {
	categories := make(map[string]Category)
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, err
	}

	// Deterministic key order, so an injected RNG yields repeatable picks.
	keys := make([]string, 0, len(categories))
	for k := range categories {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return &WordBank{
		categories: categories,
		keys:       keys,
	}, nil
}

func defaultWordBank() *WordBank {
	bank, err := loadWordBank(wordsJSON)
	if err != nil {
		panic("embedded word bank is invalid: " + err.Error())
	}
	return bank
}

// pick chooses one category uniformly at random, then one word uniformly at
// random from that category. Returns the category's display label.
func (wb *WordBank) pick(rng RNG) (category string, word string) {
	key := wb.keys[rng.IntN(len(wb.keys))]
	c := wb.categories[key]
	return c.Name, c.Words[rng.IntN(len(c.Words))]
}

func (wb *WordBank) size() int {
	total := 0
	for _, c := range wb.categories {
		total += len(c.Words)
	}
	return total
}

package game

import (
	"fmt"
	"math"

	"github.com/pixil98/go-errors"
)

const (
	DefaultItemDescription = "No description available"
	DefaultWhenUsed        = "No information"
)

// Item is a portable, usable thing. Every room placement and every
// inventory slot holds its own copy so use counts never leak between them.
type Item struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Weight        float64 `json:"weight"`
	MaxUses       int     `json:"max_uses"`
	UsesRemaining int     `json:"uses_remaining"`
	Value         int     `json:"value"`
	WhenUsed      string  `json:"when_used"`
}

// Clone returns an independent copy of the item.
func (i *Item) Clone() *Item {
	c := *i
	return &c
}

// Usable reports whether the item has any uses left.
func (i *Item) Usable() bool {
	return i.UsesRemaining > 0
}

// Use consumes one use and returns the item's use text.
func (i *Item) Use() (string, bool) {
	if !i.Usable() {
		return "", false
	}
	i.UsesRemaining--
	return i.WhenUsed, true
}

// Validate satisfies storage.ValidatingSpec.
func (i *Item) Validate() error {
	el := errors.NewErrorList()

	if i.Name == "" {
		el.Add(fmt.Errorf("item name is required"))
	}
	if math.IsNaN(i.Weight) || math.IsInf(i.Weight, 0) {
		el.Add(fmt.Errorf("item %q: weight must be a finite number", i.Name))
	} else if i.Weight < 0 {
		el.Add(fmt.Errorf("item %q: weight must not be negative", i.Name))
	}
	if i.MaxUses < 0 {
		el.Add(fmt.Errorf("item %q: max_uses must not be negative", i.Name))
	}
	if i.UsesRemaining < 0 || i.UsesRemaining > i.MaxUses {
		el.Add(fmt.Errorf("item %q: uses_remaining must be between 0 and max_uses", i.Name))
	}

	return el.Err()
}

// Fixture is scenery: examinable, never carried. A single fixture may be
// referenced by several rooms.
type Fixture struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
}

// Validate satisfies storage.ValidatingSpec.
func (f *Fixture) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("fixture name is required")
	}
	return nil
}

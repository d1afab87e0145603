package catalog

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var ErrNoFavorite = errors.New("no favorite fruit selected")

// Shopper is a customer record with free-form counters in Data.
type Shopper struct {
	Name           string
	Age            int
	FavoriteFruits []string
	Data           map[string]int
}

// NewShopper gives the shopper its own empty Data map.
func NewShopper(name string, age int, fruits ...string) Shopper {
	return Shopper{
		Name:           name,
		Age:            age,
		FavoriteFruits: slices.Clone(fruits),
		Data:           map[string]int{},
	}
}

// Basket groups optional values about a shopper. Nil pointers mean "not set".
type Basket struct {
	Count     *int
	Note      *string
	Weights   []float64
	Shopper   Shopper
	ItemIndex *int
}

// Favorite is the shopper's favorite fruit at ItemIndex.
func (b Basket) Favorite() (string, error) {
	if b.ItemIndex == nil {
		return "", ErrNoFavorite
	}
	i := *b.ItemIndex
	if i < 0 || i >= len(b.Shopper.FavoriteFruits) {
		return "", fmt.Errorf("%w: index %d of %d fruits", ErrNoFavorite, i, len(b.Shopper.FavoriteFruits))
	}
	return b.Shopper.FavoriteFruits[i], nil
}

// Summary renders the set fields and marks unset ones as <none>.
func (b Basket) Summary() string {
	count, note := "<none>", "<none>"
	if b.Count != nil {
		count = fmt.Sprint(*b.Count)
	}
	if b.Note != nil {
		note = *b.Note
	}
	keys := slices.Sorted(maps.Keys(b.Shopper.Data))
	return fmt.Sprintf("%s: count=%s note=%s weights=%v data=%v", b.Shopper.Name, count, note, b.Weights, keys)
}

package domain

import (
	"sort"
	"strconv"
	"strings"
)

type ChildSlot struct {
	Order    int    `json:"order"`
	AgeGroup string `json:"ageGroup"`
}

// CombinationKey identifies an occupancy for combination-table lookups.
type CombinationKey struct {
	Adults   int         `json:"adults"`
	Children []ChildSlot `json:"children"`
}

func NewCombinationKey(adults int, ageGroups []string) CombinationKey {
	key := CombinationKey{Adults: adults, Children: make([]ChildSlot, 0, len(ageGroups))}
	for i, g := range ageGroups {
		key.Children = append(key.Children, ChildSlot{Order: i + 1, AgeGroup: g})
	}
	return key
}

// NormalizeAgeGroup is the form age-group codes are compared in.
func NormalizeAgeGroup(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// Normalize returns a copy with children ordered by position and age groups
// trimmed and lower-cased.
func (k CombinationKey) Normalize() CombinationKey {
	out := CombinationKey{Adults: k.Adults, Children: make([]ChildSlot, len(k.Children))}
	for i, c := range k.Children {
		out.Children[i] = ChildSlot{Order: c.Order, AgeGroup: NormalizeAgeGroup(c.AgeGroup)}
	}
	sort.SliceStable(out.Children, func(i, j int) bool {
		return out.Children[i].Order < out.Children[j].Order
	})
	return out
}

// Canonical encodes the normalized key. Two keys describing the same
// occupancy always encode identically.
func (k CombinationKey) Canonical() string {
	n := k.Normalize()
	var b strings.Builder
	b.WriteString("a=")
	b.WriteString(strconv.Itoa(n.Adults))
	for _, c := range n.Children {
		b.WriteString(";c")
		b.WriteString(strconv.Itoa(c.Order))
		b.WriteByte('=')
		b.WriteString(strconv.Quote(c.AgeGroup))
	}
	return b.String()
}

func (k CombinationKey) String() string {
	return k.Canonical()
}

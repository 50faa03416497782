package stats

import "sort"

// ItemPriority is one row of the known-item table.
type ItemPriority struct {
	ID           int    `json:"id" validate:"gte=0"`
	Rarity       int    `json:"rarity"`
	ShortName    string `json:"shortname" validate:"required"`
	DropPriority int    `json:"dropPriority"`
}

// ItemTable is the static lookup of known material names. It is built once
// and shared read-only; a nil table knows no items.
type ItemTable struct {
	byName map[string]ItemPriority
}

// NewItemTable indexes the rows by short name. Later rows win on duplicates.
func NewItemTable(rows []ItemPriority) *ItemTable {
	byName := make(map[string]ItemPriority, len(rows))
	for _, r := range rows {
		byName[r.ShortName] = r
	}
	return &ItemTable{byName: byName}
}

// Lookup returns the row for a name.
func (t *ItemTable) Lookup(name string) (ItemPriority, bool) {
	if t == nil {
		return ItemPriority{}, false
	}
	p, ok := t.byName[name]
	return p, ok
}

// IsKnown reports whether the name is in the table.
func (t *ItemTable) IsKnown(name string) bool {
	_, ok := t.Lookup(name)
	return ok
}

// Len returns the number of known items.
func (t *ItemTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byName)
}

// Compare orders known items by dropPriority descending, then id descending.
// Unknown items sort after every known item. Two unknown items compare equal
// whatever their names, so the relation is not a total order over unknowns
// and callers must not rely on their relative order.
func (t *ItemTable) Compare(a, b string) int {
	pa, okA := t.Lookup(a)
	pb, okB := t.Lookup(b)

	switch {
	case !okA && !okB:
		return 0
	case !okB:
		return -1
	case !okA:
		return 1
	}

	if pa.DropPriority != pb.DropPriority {
		return pb.DropPriority - pa.DropPriority
	}
	return pb.ID - pa.ID
}

// SortNames returns a copy of names in Compare order. Unknown names keep their
// input order after the known ones.
func (t *ItemTable) SortNames(names []string) []string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.SliceStable(sorted, func(i, j int) bool {
		return t.Compare(sorted[i], sorted[j]) < 0
	})
	return sorted
}

package stats

import (
	"regexp"
	"sort"
	"strconv"
)

// ItemKind is the category of an item, derived from its name.
type ItemKind int

const (
	// KindNormal is a regular material drop.
	KindNormal ItemKind = iota
	// KindEventItem is a box-count report of an event item, e.g. "ミトン(x3)".
	KindEventItem
	// KindPointBonus is an event point drop with its bonus, e.g. "ポイント(+600)".
	KindPointBonus
	// KindQPBonus is a QP drop with its amount, e.g. "QP(+150000)".
	KindQPBonus
)

// Base names of the bonus categories.
const (
	PointBaseName = "ポイント"
	QPBaseName    = "QP"
)

func (k ItemKind) String() string {
	switch k {
	case KindEventItem:
		return "event_item"
	case KindPointBonus:
		return "point"
	case KindQPBonus:
		return "qp"
	default:
		return "normal"
	}
}

var (
	reEventItem  = regexp.MustCompile(`\(x(\d+)\)$`)
	reQPBonus    = regexp.MustCompile(`^QP\(\+(\d+)\)$`)
	rePointBonus = regexp.MustCompile(`^` + PointBaseName + `\(\+(\d+)\)$`)
)

// ItemClass is the decomposition of an item name. Modifier is the box count
// for event items, the bonus amount for point/QP items and 0 otherwise.
type ItemClass struct {
	Kind     ItemKind `json:"kind"`
	Base     string   `json:"base"`
	Modifier int      `json:"modifier"`
}

// IsBonus reports whether the item is bonus-structured (anything but normal).
func (c ItemClass) IsBonus() bool {
	return c.Kind != KindNormal
}

// Classify decomposes an item name. The event-item suffix is tested first,
// then QP, then points.
func Classify(name string) ItemClass {
	if loc := reEventItem.FindStringSubmatchIndex(name); loc != nil {
		return ItemClass{
			Kind:     KindEventItem,
			Base:     name[:loc[0]],
			Modifier: atoi(name[loc[2]:loc[3]]),
		}
	}
	if m := reQPBonus.FindStringSubmatch(name); m != nil {
		return ItemClass{Kind: KindQPBonus, Base: QPBaseName, Modifier: atoi(m[1])}
	}
	if m := rePointBonus.FindStringSubmatch(name); m != nil {
		return ItemClass{Kind: KindPointBonus, Base: PointBaseName, Modifier: atoi(m[1])}
	}
	return ItemClass{Kind: KindNormal, Base: name}
}

// ExtractBaseName strips the box-count or bonus suffix from an item name.
func ExtractBaseName(name string) string {
	return Classify(name).Base
}

// ExtractModifier returns the integer inside the suffix, 0 when there is none.
func ExtractModifier(name string) int {
	return Classify(name).Modifier
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// ClassifiedStats partitions quest stats by item category.
type ClassifiedStats struct {
	Normal     []ItemStats `json:"normal"`
	EventItems []ItemStats `json:"eventItems"`
	Points     []ItemStats `json:"points"`
	QP         []ItemStats `json:"qp"`
}

// ClassifyItems partitions stats by category. Normal materials missing from
// the item table are dropped. Normal items come out in drop-priority order,
// the bonus categories by base name then modifier.
func ClassifyItems(stats []ItemStats, table *ItemTable) ClassifiedStats {
	var out ClassifiedStats
	for _, s := range stats {
		switch Classify(s.ItemName).Kind {
		case KindEventItem:
			out.EventItems = append(out.EventItems, s)
		case KindQPBonus:
			out.QP = append(out.QP, s)
		case KindPointBonus:
			out.Points = append(out.Points, s)
		default:
			if table.IsKnown(s.ItemName) {
				out.Normal = append(out.Normal, s)
			}
		}
	}

	sort.SliceStable(out.Normal, func(i, j int) bool {
		return table.Compare(out.Normal[i].ItemName, out.Normal[j].ItemName) < 0
	})
	out.EventItems = SortByBaseAndModifier(out.EventItems)
	out.Points = SortByBaseAndModifier(out.Points)
	out.QP = SortByBaseAndModifier(out.QP)
	return out
}

// SortByBaseAndModifier returns a copy ordered by base name, then modifier.
func SortByBaseAndModifier(items []ItemStats) []ItemStats {
	sorted := make([]ItemStats, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := Classify(sorted[i].ItemName), Classify(sorted[j].ItemName)
		if a.Base != b.Base {
			return a.Base < b.Base
		}
		return a.Modifier < b.Modifier
	})
	return sorted
}

package stats

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
)

// DropCount is the quantity reported for an item. Its zero value means the
// item was not tracked in that report, which is not the same as Count(0).
type DropCount struct {
	n       int
	present bool
}

// Count returns a tracked quantity.
func Count(n int) DropCount {
	return DropCount{n: n, present: true}
}

// Absent returns the "not tracked" value.
func Absent() DropCount {
	return DropCount{}
}

// Get returns the quantity and whether it was tracked.
func (c DropCount) Get() (int, bool) {
	return c.n, c.present
}

// IsAbsent reports whether the item was not tracked.
func (c DropCount) IsAbsent() bool {
	return !c.present
}

// Ptr returns the quantity as a pointer, nil when absent.
func (c DropCount) Ptr() *int {
	if !c.present {
		return nil
	}
	n := c.n
	return &n
}

func (c DropCount) String() string {
	if !c.present {
		return "-"
	}
	return strconv.Itoa(c.n)
}

// MarshalJSON encodes an absent count as null.
func (c DropCount) MarshalJSON() ([]byte, error) {
	if !c.present {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(c.n)), nil
}

// UnmarshalJSON accepts null or a number. Fractional numbers are truncated;
// numbers outside the int range are rejected.
func (c *DropCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = DropCount{}
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("drop count must be a number or null, got %s", data)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		*c = DropCount{}
		return nil
	}
	if f >= math.MaxInt || f < math.MinInt {
		return fmt.Errorf("drop count %s is out of range", data)
	}
	*c = Count(int(f))
	return nil
}

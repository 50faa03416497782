package stats

import (
	"sort"
	"strings"
	"time"
)

// ParseLevel converts a quest level to a comparable number. The leading
// integer is taken as is and a trailing "+" adds 0.5, so "90+" sorts above
// "90". A level without leading digits is 0.
func ParseLevel(level string) float64 {
	s := strings.TrimSpace(level)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	base := float64(atoi(s[:end]))
	if strings.HasSuffix(s, "+") {
		return base + 0.5
	}
	return base
}

// SortQuestsByLevel returns a copy of quests ordered by ascending level.
func SortQuestsByLevel(quests []Quest) []Quest {
	sorted := make([]Quest, len(quests))
	copy(sorted, quests)
	sort.SliceStable(sorted, func(i, j int) bool {
		return ParseLevel(sorted[i].Level) < ParseLevel(sorted[j].Level)
	})
	return sorted
}

// HighestQuest returns the quest with the highest level.
func HighestQuest(quests []Quest) (Quest, bool) {
	if len(quests) == 0 {
		return Quest{}, false
	}
	sorted := SortQuestsByLevel(quests)
	return sorted[len(sorted)-1], true
}

// FindQuest looks a quest up by id.
func (e Event) FindQuest(questID string) (Quest, bool) {
	for _, q := range e.Quests {
		if q.QuestID == questID {
			return q, true
		}
	}
	return Quest{}, false
}

// Window parses the event period. ok is false when either bound is not RFC 3339.
func (p EventPeriod) Window() (start, end time.Time, ok bool) {
	start, err := time.Parse(time.RFC3339, p.Start)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err = time.Parse(time.RFC3339, p.End)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// IsActive reports whether now falls inside the period, bounds included.
func (p EventPeriod) IsActive(now time.Time) bool {
	start, end, ok := p.Window()
	if !ok {
		return false
	}
	return !now.Before(start) && !now.After(end)
}

// ActiveEvents returns the events open at now, in input order.
func ActiveEvents(events []Event, now time.Time) []Event {
	var active []Event
	for _, e := range events {
		if e.Period.IsActive(now) {
			active = append(active, e)
		}
	}
	return active
}

// SortEventsByStart returns a copy of events, most recently started first.
// Events with an unparseable start sort last.
func SortEventsByStart(events []Event) []Event {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	startOf := func(e Event) time.Time {
		t, err := time.Parse(time.RFC3339, e.Period.Start)
		if err != nil {
			return time.Time{}
		}
		return t
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return startOf(sorted[i]).After(startOf(sorted[j]))
	})
	return sorted
}

// LatestEvent returns the most recently started event.
func LatestEvent(events []Event) (Event, bool) {
	if len(events) == 0 {
		return Event{}, false
	}
	return SortEventsByStart(events)[0], true
}

package stats

// ExclusionSet is the set of excluded report ids of a single quest.
type ExclusionSet struct {
	reasons map[string]string
}

// NewExclusionSet builds the set from an exclusion list. Duplicate ids collapse
// into one entry; the first reason wins.
func NewExclusionSet(exclusions []Exclusion) ExclusionSet {
	reasons := make(map[string]string, len(exclusions))
	for _, e := range exclusions {
		if _, ok := reasons[e.ReportID]; !ok {
			reasons[e.ReportID] = e.Reason
		}
	}
	return ExclusionSet{reasons: reasons}
}

// Contains reports whether a report id is excluded.
func (s ExclusionSet) Contains(reportID string) bool {
	_, ok := s.reasons[reportID]
	return ok
}

// Reason returns the moderator's reason for an excluded report.
func (s ExclusionSet) Reason(reportID string) (string, bool) {
	r, ok := s.reasons[reportID]
	return r, ok
}

// Len returns the number of distinct excluded ids.
func (s ExclusionSet) Len() int {
	return len(s.reasons)
}

// ValidReports returns the reports whose id is not excluded, preserving order.
// Every aggregation pass goes through this filter.
func ValidReports(reports []Report, exclusions []Exclusion) []Report {
	set := NewExclusionSet(exclusions)
	valid := make([]Report, 0, len(reports))
	for _, r := range reports {
		if set.Contains(r.ID) {
			continue
		}
		valid = append(valid, r)
	}
	return valid
}

package stats

// Quest is one quest of an event as configured by the event admin.
type Quest struct {
	QuestID string `json:"questId" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Level   string `json:"level"` // may carry a "+" suffix, e.g. "90+"
	AP      int    `json:"ap" validate:"gte=0"`
}

// EventPeriod is the open window of an event, as ISO 8601 strings.
type EventPeriod struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

// Event groups the quests that are aggregated together.
type Event struct {
	EventID    string      `json:"eventId" validate:"required"`
	Name       string      `json:"name" validate:"required"`
	Period     EventPeriod `json:"period"`
	Quests     []Quest     `json:"quests" validate:"dive"`
	EventItems []string    `json:"eventItems,omitempty"`
}

// Report is a single player's submission for one quest.
type Report struct {
	ID           string               `json:"id" validate:"required"`
	Reporter     string               `json:"reporter"`     // external account id, may be empty
	ReporterName string               `json:"reporterName"` // display name, preferred over Reporter
	RunCount     int                  `json:"runcount" validate:"gte=0"`
	Timestamp    string               `json:"timestamp"`
	Note         string               `json:"note"`
	Items        map[string]DropCount `json:"items"`
	Warnings     []string             `json:"warnings,omitempty"`
}

// QuestData is the per-quest document produced by the ingestion pipeline.
type QuestData struct {
	Quest       Quest    `json:"quest"`
	LastUpdated string   `json:"lastUpdated"`
	Reports     []Report `json:"reports"`
}

// Exclusion is a moderator decision to drop a report from every aggregation.
type Exclusion struct {
	ReportID string `json:"reportId" validate:"required"`
	Reason   string `json:"reason"`
}

// ExclusionsMap holds the exclusion lists keyed by quest id.
type ExclusionsMap map[string][]Exclusion

// ForQuest returns the exclusion list for a quest, nil when none is registered.
func (m ExclusionsMap) ForQuest(questID string) []Exclusion {
	if m == nil {
		return nil
	}
	return m[questID]
}

// ItemStats is the drop-rate estimate of a single item for one quest.
type ItemStats struct {
	ItemName   string  `json:"itemName"`
	TotalDrops int     `json:"totalDrops"`
	TotalRuns  int     `json:"totalRuns"`
	DropRate   float64 `json:"dropRate"`
	CILower    float64 `json:"ciLower"`
	CIUpper    float64 `json:"ciUpper"`
}

// ItemOutlierStats describes the spread of per-run rates of one item across reports.
type ItemOutlierStats struct {
	ItemName    string  `json:"itemName"`
	Mean        float64 `json:"mean"`
	StdDev      float64 `json:"stdDev"`
	SampleCount int     `json:"sampleCount"`
}

package dataset

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

// DocumentKind names one of the published document types.
type DocumentKind string

const (
	KindEvents     DocumentKind = "events"
	KindExclusions DocumentKind = "exclusions"
	KindQuest      DocumentKind = "quest"
	KindReport     DocumentKind = "report"
)

func str(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: desc}
}

func object(props map[string]*jsonschema.Schema, required ...string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object", Properties: props, Required: required}
}

func arrayOf(items *jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "array", Items: items}
}

func questSchema() *jsonschema.Schema {
	return object(map[string]*jsonschema.Schema{
		"questId": str("Quest identifier, unique within the event"),
		"name":    str("Display name"),
		"level":   str(`Recommended level, e.g. "90" or "90+"`),
		"ap":      {Type: "integer", Minimum: jsonschema.Ptr(0.0), Description: "AP cost"},
	}, "questId")
}

var documentSchemas = map[DocumentKind]func() *jsonschema.Schema{
	KindEvents: func() *jsonschema.Schema {
		event := object(map[string]*jsonschema.Schema{
			"eventId": str("Event identifier"),
			"name":    str("Display name"),
			"period": object(map[string]*jsonschema.Schema{
				"start": str("RFC 3339 start"),
				"end":   str("RFC 3339 end"),
			}, "start", "end"),
			"quests":     arrayOf(questSchema()),
			"eventItems": arrayOf(str("Event item base name")),
		}, "eventId", "quests")
		return object(map[string]*jsonschema.Schema{
			"events": arrayOf(event),
		}, "events")
	},
	KindExclusions: func() *jsonschema.Schema {
		entry := object(map[string]*jsonschema.Schema{
			"reportId": str("Excluded report id"),
			"reason":   str("Why the report is excluded"),
		}, "reportId")
		return &jsonschema.Schema{
			Type:                 "object",
			Description:          "Exclusion lists keyed by quest id",
			AdditionalProperties: arrayOf(entry),
		}
	},
	// The quest envelope leaves reports open; each report is checked against
	// KindReport on its own so one bad report does not reject the document.
	KindQuest: func() *jsonschema.Schema {
		return object(map[string]*jsonschema.Schema{
			"quest":       questSchema(),
			"lastUpdated": str("Time of the last ingestion"),
			"reports": arrayOf(&jsonschema.Schema{
				Type:        "object",
				Description: "Player report, see the report schema",
			}),
		}, "quest", "reports")
	},
	KindReport: func() *jsonschema.Schema {
		return object(map[string]*jsonschema.Schema{
			"id":           str("Report id"),
			"reporter":     str("Reporter account"),
			"reporterName": str("Reporter display name"),
			"runcount":     {Type: "integer", Minimum: jsonschema.Ptr(0.0), Description: "Number of runs"},
			"timestamp":    str("Submission time"),
			"note":         str("Free text"),
			"items": {
				Type:        "object",
				Description: "Drop counts keyed by item name; null when not recorded",
				AdditionalProperties: &jsonschema.Schema{
					Types:   []string{"number", "null"},
					Minimum: jsonschema.Ptr(0.0),
				},
			},
			"warnings": arrayOf(str("Ingestion warning")),
		}, "id", "runcount", "items")
	},
}

// Kinds lists the known document kinds in name order.
func Kinds() []DocumentKind {
	kinds := make([]DocumentKind, 0, len(documentSchemas))
	for k := range documentSchemas {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Schema returns the JSON Schema of a document kind.
func Schema(kind DocumentKind) (*jsonschema.Schema, error) {
	build, ok := documentSchemas[kind]
	if !ok {
		return nil, fmt.Errorf("unknown document kind %q", kind)
	}
	return build(), nil
}

var (
	resolvedMu sync.Mutex
	resolved   = make(map[DocumentKind]*jsonschema.Resolved)
)

func resolvedSchema(kind DocumentKind) (*jsonschema.Resolved, error) {
	resolvedMu.Lock()
	defer resolvedMu.Unlock()

	if rs, ok := resolved[kind]; ok {
		return rs, nil
	}
	s, err := Schema(kind)
	if err != nil {
		return nil, err
	}
	rs, err := s.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s schema: %w", kind, err)
	}
	resolved[kind] = rs
	return rs, nil
}

// ValidateDocument checks a decoded JSON value against the schema of kind.
func ValidateDocument(kind DocumentKind, doc any) error {
	rs, err := resolvedSchema(kind)
	if err != nil {
		return err
	}
	if err := rs.Validate(doc); err != nil {
		return fmt.Errorf("%s document does not match schema: %w", kind, err)
	}
	return nil
}

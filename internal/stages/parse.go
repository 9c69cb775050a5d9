package stages

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gusrasch/ventii/internal/domain"
)

// structuredPayload mirrors the schema described to the model. Fields
// arrive as strings (or null) and are converted to typed values; an
// empty string counts as absent rather than a malformed value.
type structuredPayload struct {
	EventDate        *string `json:"event_date"`
	EventStartTime   *string `json:"event_starttime"`
	EventEndTime     *string `json:"event_endtime"`
	EventVenue       *string `json:"event_venue"`
	EventLocation    *string `json:"event_location"`
	EventDescription *string `json:"event_description"`
	EventTitle       *string `json:"event_title"`
}

// ParseEventInfo maps the structure-stage response onto EventInfo.
// A response that cannot be parsed against the schema fails with the
// ErrParse kind rather than silently defaulting.
func ParseEventInfo(raw string) (domain.EventInfo, error) {
	body, err := extractJSON(raw)
	if err != nil {
		return domain.EventInfo{}, err
	}

	var payload structuredPayload
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return domain.EventInfo{}, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}

	var info domain.EventInfo
	if v := textValue(payload.EventDate); v != "" {
		date, err := domain.ParseDate(v)
		if err != nil {
			return domain.EventInfo{}, fmt.Errorf("%w: event_date: %v", domain.ErrParse, err)
		}
		info.EventDate = &date
	}
	if v := textValue(payload.EventStartTime); v != "" {
		start, err := domain.ParseTimeOfDay(v)
		if err != nil {
			return domain.EventInfo{}, fmt.Errorf("%w: event_starttime: %v", domain.ErrParse, err)
		}
		info.EventStartTime = &start
	}
	if v := textValue(payload.EventEndTime); v != "" {
		end, err := domain.ParseTimeOfDay(v)
		if err != nil {
			return domain.EventInfo{}, fmt.Errorf("%w: event_endtime: %v", domain.ErrParse, err)
		}
		info.EventEndTime = &end
	}

	info.EventVenue = stringField(payload.EventVenue)
	info.EventLocation = stringField(payload.EventLocation)
	info.EventDescription = stringField(payload.EventDescription)
	info.EventTitle = stringField(payload.EventTitle)

	return info, nil
}

// extractJSON pulls the JSON object out of the response text, tolerating
// markdown code fences and surrounding prose the model sometimes adds.
func extractJSON(raw string) (string, error) {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("%w: no JSON object in response", domain.ErrParse)
	}

	return text[start : end+1], nil
}

func textValue(field *string) string {
	if field == nil {
		return ""
	}
	return strings.TrimSpace(*field)
}

func stringField(field *string) *string {
	v := textValue(field)
	if v == "" {
		return nil
	}
	return &v
}

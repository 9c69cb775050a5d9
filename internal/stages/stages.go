// Package stages implements the three model-backed extraction steps:
// Filter (does the image advertise an event?), Summarize (free-text
// factual summary), and Structure (typed EventInfo). Each stage is
// stateless; the only side effect is the inference call itself.
package stages

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gusrasch/ventii/internal/domain"
	"github.com/gusrasch/ventii/internal/ports"
)

const filterPrompt = "Determine if this image contains information about an upcoming event"

const summarizePromptFormat = `Generate a written summary of the following image that contains information about an event. Be objective and concise, using only information explicitly provided. Emphasize relevant factual elements like time, place, host, etc.

Today's date is: %s`

const structurePromptFormat = `Extract structured information about this event from the image and summary provided.

Summary: %s

Please extract the following information if available:
- event_date: the date the event occurs (choose first date if spans multiple days)
- event_starttime: the time the event starts (leave blank if all day)
- event_endtime: the time the event ends (if provided)
- event_venue: the name of the venue hosting the event
- event_location: the address or precise location of the event
- event_description: a short written description using language from the flyer
- event_title: a few-word title for the event (should not be redundant with description)

%s`

const formatInstructions = `Respond with a single JSON object and nothing else. Use exactly these keys:
"event_date" (string "YYYY-MM-DD" or null),
"event_starttime" (string "HH:MM:SS" or null),
"event_endtime" (string "HH:MM:SS" or null),
"event_venue" (string or null),
"event_location" (string or null),
"event_description" (string or null),
"event_title" (string or null).
Use null for any field that is not available.`

// Indicator lists scanned against the lower-cased filter response.
// Strong positives are checked before negatives, so a response carrying
// both "yes" and "no event" resolves to true. The bare "event" positive
// is checked last: it occurs inside the negative phrases themselves and
// must not override them. Neither list matching defaults to false.
var (
	strongPositiveIndicators = []string{"yes", "true", "contains"}
	negativeIndicators       = []string{"no", "false", "does not", "not an event", "no event"}
	weakPositiveIndicator    = "event"
)

// Extractor runs the extraction stages over a substitutable vision backend.
type Extractor struct {
	client ports.VisionClient
	logger *slog.Logger
}

var _ ports.EventExtractor = (*Extractor)(nil)

// NewExtractor wires the vision client into the stage functions.
func NewExtractor(client ports.VisionClient, logger *slog.Logger) *Extractor {
	return &Extractor{client: client, logger: logger}
}

// Filter asks whether the image depicts an upcoming event and parses
// the answer into a boolean verdict.
func (e *Extractor) Filter(ctx context.Context, image domain.EncodedImage) (bool, error) {
	raw, err := e.client.Complete(ctx, filterPrompt, []domain.EncodedImage{image})
	if err != nil {
		return false, fmt.Errorf("filter stage: %w", err)
	}

	verdict := ParseVerdict(raw)
	e.debug("filter stage done", "verdict", verdict)
	return verdict, nil
}

// ParseVerdict maps free-form response text to a boolean, failing
// closed when neither indicator list matches.
func ParseVerdict(raw string) bool {
	text := strings.ToLower(strings.TrimSpace(raw))

	for _, indicator := range strongPositiveIndicators {
		if strings.Contains(text, indicator) {
			return true
		}
	}
	for _, indicator := range negativeIndicators {
		if strings.Contains(text, indicator) {
			return false
		}
	}
	return strings.Contains(text, weakPositiveIndicator)
}

// Summarize produces a concise factual summary of the flyer. The
// todayDate string anchors relative expressions like "next Friday".
func (e *Extractor) Summarize(ctx context.Context, image domain.EncodedImage, todayDate string) (string, error) {
	prompt := fmt.Sprintf(summarizePromptFormat, todayDate)
	raw, err := e.client.Complete(ctx, prompt, []domain.EncodedImage{image})
	if err != nil {
		return "", fmt.Errorf("summarize stage: %w", err)
	}

	summary := strings.TrimSpace(raw)
	e.debug("summarize stage done", "chars", len(summary))
	return summary, nil
}

// Structure extracts the typed EventInfo fields, feeding the prior
// summary back as context alongside the image.
func (e *Extractor) Structure(ctx context.Context, image domain.EncodedImage, summary string) (domain.EventInfo, error) {
	prompt := fmt.Sprintf(structurePromptFormat, summary, formatInstructions)
	raw, err := e.client.Complete(ctx, prompt, []domain.EncodedImage{image})
	if err != nil {
		return domain.EventInfo{}, fmt.Errorf("structure stage: %w", err)
	}

	info, err := ParseEventInfo(raw)
	if err != nil {
		return domain.EventInfo{}, fmt.Errorf("structure stage: %w", err)
	}

	e.debug("structure stage done", "has_date", info.EventDate != nil, "has_title", info.EventTitle != nil)
	return info, nil
}

func (e *Extractor) debug(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}

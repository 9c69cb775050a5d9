package stages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gusrasch/ventii/internal/domain"
)

func TestParseEventInfoMarkdownFences(t *testing.T) {
	t.Parallel()

	raw := "```json\n{\"event_date\": \"2025-07-04\", \"event_title\": \"Block Party\"}\n```"

	info, err := ParseEventInfo(raw)
	require.NoError(t, err)
	require.NotNil(t, info.EventDate)
	assert.Equal(t, "2025-07-04", info.EventDate.String())
	require.NotNil(t, info.EventTitle)
	assert.Equal(t, "Block Party", *info.EventTitle)
}

func TestParseEventInfoSurroundingProse(t *testing.T) {
	t.Parallel()

	raw := `Here is the extracted information:
{"event_venue": "City Hall", "event_date": null}
Let me know if you need anything else.`

	info, err := ParseEventInfo(raw)
	require.NoError(t, err)
	assert.Nil(t, info.EventDate)
	require.NotNil(t, info.EventVenue)
	assert.Equal(t, "City Hall", *info.EventVenue)
}

func TestParseEventInfoEmptyStringsAreAbsent(t *testing.T) {
	t.Parallel()

	raw := `{"event_date": "", "event_starttime": "", "event_title": "  "}`

	info, err := ParseEventInfo(raw)
	require.NoError(t, err)
	assert.Nil(t, info.EventDate)
	assert.Nil(t, info.EventStartTime)
	assert.Nil(t, info.EventTitle)
}

func TestParseEventInfoBadDateIsParseError(t *testing.T) {
	t.Parallel()

	_, err := ParseEventInfo(`{"event_date": "next Friday"}`)
	assert.ErrorIs(t, err, domain.ErrParse)

	_, err = ParseEventInfo(`{"event_starttime": "evening"}`)
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestParseEventInfoNoObjectIsParseError(t *testing.T) {
	t.Parallel()

	_, err := ParseEventInfo("no structured content here")
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestParseEventInfoAllNull(t *testing.T) {
	t.Parallel()

	info, err := ParseEventInfo(`{"event_date": null, "event_starttime": null, "event_endtime": null, "event_venue": null, "event_location": null, "event_description": null, "event_title": null}`)
	require.NoError(t, err)
	assert.Equal(t, domain.EventInfo{}, info)
}

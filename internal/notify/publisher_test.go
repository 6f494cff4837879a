package notify

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
)

func TestEncode(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	data, err := Encode(&CheckEvent{
		RunID:      "run-1",
		Trigger:    "fsnotify",
		ConfigPath: "sitenav.yaml",
		Timestamp:  ts,
		Outcome:    "invalid",
		Links:      14,
		Errors:     1,
		Issues: []IssueSummary{
			{Rule: "missing-page", Severity: "error", Location: "[1 0]", Message: "link \"/x\" has no page"},
		},
	})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "run-1", raw["run_id"])
	assert.Equal(t, "fsnotify", raw["trigger"])
	assert.Equal(t, "2026-01-02T03:04:05Z", raw["timestamp"])
	assert.InDelta(t, 14, raw["links"], 0)
	assert.NotContains(t, raw, "error")

	issues, ok := raw["issues"].([]any)
	require.True(t, ok)
	require.Len(t, issues, 1)
	assert.Equal(t, "missing-page", issues[0].(map[string]any)["rule"])
}

func TestEncode_SetsTimestamp(t *testing.T) {
	ev := &CheckEvent{RunID: "r"}
	_, err := Encode(ev)
	require.NoError(t, err)
	assert.False(t, ev.Timestamp.IsZero())
}

func TestNewNATSPublisher_Unreachable(t *testing.T) {
	_, err := NewNATSPublisher("nats://127.0.0.1:1", "")
	require.Error(t, err)

	ce, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, ferrors.CategoryNetwork, ce.Category())
	assert.Equal(t, "nats://127.0.0.1:1", ce.Context()["nats_url"])
}

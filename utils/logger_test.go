package utils

import (
	"bytes"
	"encoding/json"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesJSONFields(t *testing.T) {
	original := log.StandardLogger().Out
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(original)

	SetLevel("debug")
	defer SetLevel("info")

	Debug("bid accepted", map[string]any{"auction_id": 5, "amount": 120.5})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "bid accepted", entry["msg"])
	require.Equal(t, "debug", entry["level"])
	require.Equal(t, 5.0, entry["auction_id"])
	require.Equal(t, 120.5, entry["amount"])
}

func TestSetLevelFallsBackToInfo(t *testing.T) {
	SetLevel("loud")
	defer SetLevel("info")

	require.Equal(t, log.InfoLevel, log.GetLevel())
}

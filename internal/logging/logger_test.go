package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realmforge/srpauth/internal/logging"
)

func capture(level logging.Level, format logging.Format) (*logging.Logger, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	logger := logging.New(level, format)
	logger.SetOutput(&stdout, &stderr)
	return logger, &stdout, &stderr
}

func TestLogger_JSONOutput(t *testing.T) {
	logger, stdout, _ := capture(logging.LevelInfo, logging.FormatJSON)

	logger.Info("account registered", map[string]any{"username": "alice"})

	var entry struct {
		Level   string         `json:"level"`
		Message string         `json:"message"`
		Fields  map[string]any `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &entry))
	assert.Equal(t, "info", entry.Level)
	assert.Equal(t, "account registered", entry.Message)
	assert.Equal(t, "alice", entry.Fields["username"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, stdout, stderr := capture(logging.LevelWarn, logging.FormatJSON)

	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("kept")
	logger.Error("kept")

	assert.Equal(t, 1, bytes.Count(stdout.Bytes(), []byte("\n")))
	assert.Equal(t, 1, bytes.Count(stderr.Bytes(), []byte("\n")))
}

func TestLogger_RedactsSecrets(t *testing.T) {
	logger, stdout, _ := capture(logging.LevelInfo, logging.FormatJSON)

	logger.Info("handshake step", map[string]any{
		"username":     "alice",
		"password":     "password123",
		"srp_verifier": "7E273DE8",
		"client_proof": "deadbeef",
		"Salt":         "BEB25379",
	})

	out := stdout.String()
	assert.Contains(t, out, "alice")
	assert.NotContains(t, out, "password123")
	assert.NotContains(t, out, "7E273DE8")
	assert.NotContains(t, out, "deadbeef")
	assert.NotContains(t, out, "BEB25379")
}

func TestLogger_HumanFormat(t *testing.T) {
	logger, stdout, _ := capture(logging.LevelInfo, logging.FormatHuman)

	logger.Info("handshake complete", map[string]any{"username": "alice"})

	out := stdout.String()
	assert.Contains(t, out, "info: handshake complete")
	assert.Contains(t, out, "username=alice")
}

func TestParseLevelAndFormat(t *testing.T) {
	assert.Equal(t, logging.LevelDebug, logging.ParseLevel("DEBUG"))
	assert.Equal(t, logging.LevelInfo, logging.ParseLevel("bogus"))
	assert.Equal(t, logging.FormatHuman, logging.ParseFormat("human"))
	assert.Equal(t, logging.FormatJSON, logging.ParseFormat(""))
}

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCapturedAdapter(level string) (*LogrusAdapter, *bytes.Buffer) {
	logger := logrus.New()
	buf := &bytes.Buffer{}
	logger.SetOutput(buf)
	logger.SetFormatter(&logrus.JSONFormatter{})
	if parsed, err := logrus.ParseLevel(level); err == nil {
		logger.SetLevel(parsed)
	}
	return NewLogrusAdapterFromLogger(logger), buf
}

func TestNewLogrusAdapterInvalidLevel(t *testing.T) {
	logger := NewLogrusAdapter("not-a-level", "text")
	assert.NotNil(t, logger)
}

func TestInfoWithFields(t *testing.T) {
	adapter, buf := newCapturedAdapter("info")

	adapter.Info("parsed statement",
		Field{Key: FieldFormat, Value: "rbc"},
		Field{Key: FieldCount, Value: 3})

	out := buf.String()
	assert.Contains(t, out, "parsed statement")
	assert.Contains(t, out, `"format":"rbc"`)
	assert.Contains(t, out, `"count":3`)
}

func TestDebugSuppressedAtInfoLevel(t *testing.T) {
	adapter, buf := newCapturedAdapter("info")

	adapter.Debug("noise")

	assert.Empty(t, buf.String())
}

func TestWithErrorAttachesField(t *testing.T) {
	adapter, buf := newCapturedAdapter("info")

	adapter.WithError(errors.New("boom")).Warn("conversion failed")

	out := buf.String()
	assert.Contains(t, out, "conversion failed")
	assert.Contains(t, out, "boom")
}

func TestWithFieldReturnsNewLogger(t *testing.T) {
	adapter, buf := newCapturedAdapter("info")

	derived := adapter.WithField(FieldFile, "statement.pdf")
	derived.Info("first")
	adapter.Info("second")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	// The field stays on the derived logger only.
	assert.Contains(t, lines[0], "statement.pdf")
	assert.NotContains(t, lines[1], "statement.pdf")
}

func TestSetDefaultLogger(t *testing.T) {
	original := GetLogger()
	defer SetDefaultLogger(original)

	replacement, _ := newCapturedAdapter("debug")
	SetDefaultLogger(replacement)
	assert.Equal(t, Logger(replacement), GetLogger())

	SetDefaultLogger(nil)
	assert.Equal(t, Logger(replacement), GetLogger())
}

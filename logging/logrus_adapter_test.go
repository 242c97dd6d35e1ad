package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogrusAdapter(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		format      string
		expectLevel logrus.Level
	}{
		{name: "debug level with text format", level: "debug", format: "text", expectLevel: logrus.DebugLevel},
		{name: "info level with json format", level: "info", format: "json", expectLevel: logrus.InfoLevel},
		{name: "invalid level defaults to info", level: "loud", format: "text", expectLevel: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogrusAdapter(tt.level, tt.format)
			adapter, ok := logger.(*LogrusAdapter)
			require.True(t, ok)
			assert.Equal(t, tt.expectLevel, adapter.logger.Level)
		})
	}
}

func TestLogrusAdapter_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.JSONFormatter{})

	logger := NewLogrusAdapterFromLogger(base).
		WithField(FieldStrategy, "avalanche").
		WithError(errors.New("boom"))
	logger.Warn("schedule failed", F(FieldDebtID, "card"))

	out := buf.String()
	assert.Contains(t, out, `"strategy":"avalanche"`)
	assert.Contains(t, out, `"debt_id":"card"`)
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"msg":"schedule failed"`)
}

func TestMockLogger_ChildrenShareEntries(t *testing.T) {
	mock := NewMockLogger()
	mock.WithField("a", 1).Info("child")
	mock.Error("parent")

	entries := mock.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, []Field{{Key: "a", Value: 1}}, entries[0].Fields)
	assert.True(t, mock.HasEntry("ERROR", "parent"))
}

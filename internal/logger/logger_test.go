package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FormatAutoDetection(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		format      string
		wantJSON    bool
	}{
		{"production uses json", "production", "", true},
		{"development uses pretty", "development", "", false},
		{"staging uses pretty", "staging", "", false},
		{"explicit json wins", "development", "json", true},
		{"explicit pretty wins", "production", "pretty", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(Config{
				Writer:      &buf,
				Environment: tt.environment,
				Format:      tt.format,
				Level:       slog.LevelInfo,
			})
			log.Info("recipe created", "recipe_id", "rcp-1")

			out := buf.String()
			if tt.wantJSON {
				assert.Contains(t, out, `"msg":"recipe created"`)
				assert.Contains(t, out, `"recipe_id":"rcp-1"`)
			} else {
				assert.Contains(t, out, "INF")
				assert.Contains(t, out, "recipe_id=rcp-1")
			}
		})
	}
}

func TestNew_DefaultWriter(t *testing.T) {
	log := New(Config{Level: slog.LevelInfo, Format: "json"})
	require.NotNil(t, log)
	require.NotNil(t, log.Logger)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestRedaction(t *testing.T) {
	for _, format := range []string{"json", "pretty"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(Config{Writer: &buf, Format: format, Level: slog.LevelDebug})

			log.With("Authorization", "Bearer v4.local.abc").
				Info("login", "email", "alice@example.com", "password", "hunter22", "auth_token", "v4.local.xyz")

			out := buf.String()
			assert.NotContains(t, out, "hunter22")
			assert.NotContains(t, out, "v4.local")
			assert.Contains(t, out, "alice@example.com")
			assert.Equal(t, 3, strings.Count(out, Redacted))
		})
	}
}

func TestIsSensitive(t *testing.T) {
	assert.True(t, IsSensitive("password"))
	assert.True(t, IsSensitive("Password_Hash"))
	assert.True(t, IsSensitive("token"))
	assert.False(t, IsSensitive("email"))
	assert.False(t, IsSensitive("recipe_id"))
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h := NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	ctx := context.Background()

	assert.False(t, h.Enabled(ctx, slog.LevelDebug))
	assert.False(t, h.Enabled(ctx, slog.LevelInfo))
	assert.True(t, h.Enabled(ctx, slog.LevelWarn))
	assert.True(t, h.Enabled(ctx, slog.LevelError))

	// Nil options default to info.
	def := NewPrettyHandler(&bytes.Buffer{}, nil)
	assert.False(t, def.Enabled(ctx, slog.LevelDebug))
	assert.True(t, def.Enabled(ctx, slog.LevelInfo))
}

func TestPrettyHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, nil))

	log.WithGroup("http").With("method", "POST").WithGroup("req").Info("handled", "path", "/api/recipes")

	out := buf.String()
	assert.Contains(t, out, "http.method=POST")
	assert.Contains(t, out, "http.req.path=/api/recipes")
}

func TestPrettyHandler_WithSource(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{AddSource: true}))
	log.Info("with source")

	assert.Contains(t, buf.String(), "logger_test.go:")
}

func TestPrettyHandler_NoAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, nil))
	log.Info("simple message")

	out := buf.String()
	require.Contains(t, out, "simple message")
	after := strings.SplitN(out, "simple message", 2)[1]
	assert.NotContains(t, after, "=")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestFormatLevel(t *testing.T) {
	tests := []struct {
		level     slog.Level
		wantLabel string
		wantColor string
	}{
		{slog.LevelDebug, "DBG", colorMagenta},
		{slog.LevelInfo, "INF", colorGreen},
		{slog.LevelWarn, "WRN", colorYellow},
		{slog.LevelError, "ERR", colorRed},
		{slog.LevelError + 4, "ERROR+4", colorGray},
	}

	for _, tt := range tests {
		t.Run(tt.wantLabel, func(t *testing.T) {
			label, color := formatLevel(tt.level)
			assert.Equal(t, tt.wantLabel, label)
			assert.Equal(t, tt.wantColor, color)
		})
	}
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	assert.Equal(t, "pancakes", formatValue(slog.StringValue("pancakes")))
	assert.Equal(t, "15", formatValue(slog.IntValue(15)))
	assert.Equal(t, "true", formatValue(slog.BoolValue(true)))
	assert.Equal(t, "1.5s", formatValue(slog.DurationValue(1500*time.Millisecond)))
	assert.Equal(t, "2024-03-01T12:30:00Z", formatValue(slog.TimeValue(ts)))
}

func TestLogger_WithHelpers(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: "json", Level: slog.LevelInfo})

	log.WithError(errors.New("disk full")).WithField("user_id", "u-1").Error("save failed")

	out := buf.String()
	assert.Contains(t, out, `"error":"disk full"`)
	assert.Contains(t, out, `"user_id":"u-1"`)
	assert.Contains(t, out, `"level":"ERROR"`)
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Writer: &buf, Format: "json", Level: slog.LevelWarn})

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
}

package logger_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/depsub/internal/adapters/logger"
)

func TestPrettyHandler_Levels(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Level
		msg   string
		want  string
	}{
		{name: "info", level: slog.LevelInfo, msg: "information", want: "information\n"},
		{name: "warn", level: slog.LevelWarn, msg: "careful", want: "! careful\n"},
		{name: "error", level: slog.LevelError, msg: "broken", want: "✗ broken\n"},
		{name: "debug filtered", level: slog.LevelDebug, msg: "noise", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			lg := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
			lg.Log(t.Context(), tt.level, tt.msg)

			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrettyHandler_AttrsAndGroups(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	handler := logger.NewPrettyHandler(buf, nil)
	lg := slog.New(handler.WithAttrs([]slog.Attr{slog.String("manifest", "go.mod")}))
	lg.Info("parsed", "packages", 12)

	grouped := slog.New(handler.WithGroup("submit"))
	grouped.Info("done", "status", 201)

	assert.Equal(t, "parsed manifest=go.mod packages=12\ndone submit.status=201\n", buf.String())
}

func TestPrettyHandler_ConcurrentWriters(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	handler := logger.NewPrettyHandler(buf, nil)
	plain := slog.New(handler)
	tagged := slog.New(handler.WithAttrs([]slog.Attr{slog.String("manifest", "go.mod")}))

	const writers, lines = 8, 50
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lg := plain
			if i%2 == 1 {
				lg = tagged
			}
			for j := range lines {
				lg.Warn(fmt.Sprintf("writer %d line %d", i, j))
			}
		}()
	}
	wg.Wait()

	out := strings.TrimSuffix(buf.String(), "\n")
	got := strings.Split(out, "\n")
	assert.Len(t, got, writers*lines)
	for _, line := range got {
		assert.True(t, strings.HasPrefix(line, "! writer "), line)
	}
}

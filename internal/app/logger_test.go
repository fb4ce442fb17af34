//go:build !integration

package app

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		logPretty string
		wantLevel zerolog.Level
	}{
		{name: "defaults to info", wantLevel: zerolog.InfoLevel},
		{name: "honors LOG_LEVEL", logLevel: "debug", wantLevel: zerolog.DebugLevel},
		{name: "pretty output keeps the level", logLevel: "warn", logPretty: "true", wantLevel: zerolog.WarnLevel},
		{name: "LOG_PRETTY off", logLevel: "error", logPretty: "false", wantLevel: zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.logLevel)
			t.Setenv("LOG_PRETTY", tt.logPretty)

			InitializeLogger()
			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
		})
	}
}

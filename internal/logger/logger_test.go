package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		enabled zapcore.Level
		wantErr bool
	}{
		{name: "Defaults to json info", cfg: Config{}, enabled: zapcore.InfoLevel},
		{name: "Console debug", cfg: Config{Level: "DEBUG", Format: "console"}, enabled: zapcore.DebugLevel},
		{name: "Warn", cfg: Config{Level: "warn", Format: "json"}, enabled: zapcore.WarnLevel},
		{name: "Bad level", cfg: Config{Level: "loud"}, wantErr: true},
		{name: "Bad format", cfg: Config{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.enabled))
			assert.False(t, log.Core().Enabled(tt.enabled-1))
		})
	}
}

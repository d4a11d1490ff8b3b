package logger

import (
	"testing"

	"github.com/sklep-internetowy/backend/internal/adapter/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name   string
		conf   config.App
		expErr bool
	}{
		{name: "develop mode", conf: config.App{LogLevel: "debug", Mode: config.AppModeDevelop}},
		{name: "production mode", conf: config.App{LogLevel: "info", Mode: config.AppModeProduction}},
		{name: "unknown log level", conf: config.App{LogLevel: "verbose", Mode: config.AppModeDevelop}, expErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := NewLogger(&tt.conf)
			if tt.expErr {
				assert.Error(t, err)
				assert.Nil(t, log)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

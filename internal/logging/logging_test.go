package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	var testCases = []struct {
		name    string
		config  Config
		emitted bool
		wantErr bool
	}{
		{name: "default level is info", config: Config{}, emitted: true},
		{name: "warn filters info", config: Config{Level: "warn"}, emitted: false},
		{name: "mixed case level", config: Config{Level: "DEBUG"}, emitted: true},
		{name: "unknown level", config: Config{Level: "loud"}, wantErr: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger, err := New(testCase.config, buf)
			if testCase.wantErr {
				assert.Error(t, err)
				assert.Error(t, testCase.config.Validate())
				return
			}
			assert.NoError(t, err)
			assert.NoError(t, testCase.config.Validate())
			logger.Info().Int("process", 1).Msg("registered")
			if !testCase.emitted {
				assert.Empty(t, buf.String())
				return
			}
			record := map[string]interface{}{}
			assert.NoError(t, json.Unmarshal(buf.Bytes(), &record))
			assert.Equal(t, "registered", record["message"])
			assert.Equal(t, float64(1), record["process"])
		})
	}
}

func TestNew_Console(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(DefaultConfig(), buf)
	assert.NoError(t, err)
	logger.Warn().Msg("too few producers")
	assert.Contains(t, buf.String(), "too few producers")
	assert.Contains(t, buf.String(), "WRN")
}

package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_Select(t *testing.T) {
	var testCases = []struct {
		name        string
		policy      *Policy
		readyAtZero int
		expected    Kind
	}{
		{name: "nil policy small load", policy: nil, readyAtZero: 3, expected: KindPriority},
		{name: "auto at threshold", policy: Default(), readyAtZero: 5, expected: KindPriority},
		{name: "auto above threshold", policy: Default(), readyAtZero: 6, expected: KindRoundRobin},
		{name: "auto custom threshold", policy: &Policy{Mode: ModeAuto, Threshold: 1}, readyAtZero: 2, expected: KindRoundRobin},
		{name: "auto zero threshold falls back", policy: &Policy{Mode: ModeAuto}, readyAtZero: 5, expected: KindPriority},
		{name: "forced priority", policy: &Policy{Mode: ModePriority}, readyAtZero: 50, expected: KindPriority},
		{name: "forced round-robin", policy: &Policy{Mode: ModeRoundRobin}, readyAtZero: 0, expected: KindRoundRobin},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, testCase.policy.Select(testCase.readyAtZero))
		})
	}
}

func TestPolicy_NeedsQuantum(t *testing.T) {
	assert.False(t, Default().NeedsQuantum(5))
	assert.True(t, Default().NeedsQuantum(6))
	assert.True(t, (&Policy{Mode: ModeRoundRobin}).NeedsQuantum(1))
	assert.False(t, (&Policy{Mode: ModePriority}).NeedsQuantum(100))
	assert.Equal(t, DefaultQuantum, (*Policy)(nil).TimeQuantum())
	assert.Equal(t, 4, (&Policy{Quantum: 4}).TimeQuantum())
}

func TestPolicy_AutoThreshold(t *testing.T) {
	assert.Equal(t, DefaultThreshold, (*Policy)(nil).AutoThreshold())
	assert.Equal(t, 7, (&Policy{Threshold: 7}).AutoThreshold())
	assert.Equal(t, 0, (&Policy{Mode: ModePriority, Threshold: 7}).AutoThreshold())
	assert.Equal(t, 0, (&Policy{Mode: ModeRoundRobin}).AutoThreshold())
}

func TestConfig(t *testing.T) {
	var testCases = []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "empty", config: Config{}},
		{name: "mixed case mode", config: Config{Mode: "Round-Robin", Quantum: 3}},
		{name: "unknown mode", config: Config{Mode: "fifo"}, wantErr: true},
		{name: "negative quantum", config: Config{Quantum: -1}, wantErr: true},
		{name: "negative threshold", config: Config{Threshold: -1}, wantErr: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			err := testCase.config.Validate()
			if testCase.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}

	p := FromConfig(&Config{Mode: "Round-Robin", Quantum: 3})
	assert.Equal(t, ModeRoundRobin, p.Mode)
	assert.Equal(t, DefaultThreshold, p.Threshold)
	assert.Equal(t, &Config{Mode: ModeRoundRobin, Threshold: DefaultThreshold, Quantum: 3}, ToConfig(p))
	assert.Nil(t, FromConfig(nil))
	assert.Nil(t, ToConfig(nil))
}

func TestContext(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))
	p := &Policy{Mode: ModePriority}
	ctx := WithPolicy(context.Background(), p)
	assert.Same(t, p, FromContext(ctx))
}

package adc_test

import (
	"testing"

	"codeberg.org/mutker/currentctl/internal/adc"
	"codeberg.org/mutker/currentctl/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLineSingleChannel(t *testing.T) {
	out, err := adc.ParseLine("cur, 1000", defaultModel())
	require.NoError(t, err)
	assert.Equal(t, "1000, 6.9503105590062105e-06", out)
}

func TestParseLineTrimsFields(t *testing.T) {
	out, err := adc.ParseLine("cur,\t1000 \r\n", defaultModel())
	require.NoError(t, err)
	assert.Equal(t, "1000, 6.9503105590062105e-06", out)
}

func TestParseLineTooFewFields(t *testing.T) {
	out, err := adc.ParseLine("cur", defaultModel())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, adc.ErrTooFewFields))
	assert.Empty(t, out)
}

func TestParseLineBadCode(t *testing.T) {
	out, err := adc.ParseLine("cur, not-a-number", defaultModel())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, adc.ErrBadCode))
	assert.Empty(t, out)
}

func TestParseLineFourChannel(t *testing.T) {
	m := defaultModel()
	m.FourChannel = true

	out, err := adc.ParseLine("cur, 500, 600, 700, 800", m)
	require.NoError(t, err)
	assert.Equal(t,
		"500, 2.975155279503106e-06, 3.7701863354037256e-06, 4.565217391304348e-06, 5.360248447204969e-06",
		out)
}

func TestParseLineFourChannelShortRecord(t *testing.T) {
	m := defaultModel()
	m.FourChannel = true

	// Missing channels 2-4 degrade to the channel 1 result.
	out, err := adc.ParseLine("cur, 500", m)
	require.NoError(t, err)
	assert.Equal(t, "500, 2.975155279503106e-06", out)
}

func TestParseLineFourChannelBadExtraChannel(t *testing.T) {
	m := defaultModel()
	m.FourChannel = true

	_, err := adc.ParseLine("cur, 500, x, 700, 800", m)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, adc.ErrBadCode))
}

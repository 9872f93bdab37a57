package adc

import (
	"math"

	"codeberg.org/mutker/currentctl/internal/logger"
)

// ShuntCurrent converts a raw ADC code to a shunt current in amperes.
//
// The arithmetic follows the MCP3424 front end stage by stage: ADC code to
// ADC input voltage, through the voltage divider back to the amplifier
// output, through the amplifier to its input, and across the shunt. The
// operation order is fixed; log files produced with the same parameters are
// bit-for-bit reproducible.
//
// Degenerate parameters (zero gain, zero lower resistance, zero shunt) are a
// configuration error and yield Inf or NaN rather than an error value.
func ShuntCurrent(code float64, m Model) float64 {
	bitScale := math.Pow(2, m.Bits-1) - 1
	vADC := m.FullScaleVoltage * code / bitScale
	vAmpOut := vADC * ((m.LowerResistance + m.UpperResistance) / m.LowerResistance)
	vAmpIn := (vAmpOut - m.RefVoltage) / m.Gain
	current := vAmpIn / (m.ShuntMilliohms * 1000)

	logger.Debug().
		Float64("adc_code", code).
		Float64("shunt_current", current).
		Msg("converted sample")

	return current
}

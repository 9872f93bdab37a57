package adc

// Model holds the analog front-end parameters used to turn a raw ADC code
// into a shunt current. It is built once from the start-up configuration
// and never mutated.
type Model struct {
	Bits             float64 // ADC resolution in bits
	ShuntMilliohms   float64 // shunt resistance [mΩ]
	RefVoltage       float64 // amplifier reference voltage [V]
	Gain             float64 // amplifier gain
	UpperResistance  float64 // upper divider resistance [Ω]
	LowerResistance  float64 // lower divider resistance [Ω]
	FullScaleVoltage float64 // ADC full-scale voltage [V]
	FourChannel      bool    // convert channels 2-4 as well
}

package config

import (
	"os"
	"strings"

	"codeberg.org/mutker/currentctl/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Analog front-end defaults for the stock M5Atom-MCP3424 sender.
const (
	DefaultBaudRate         = 115200
	DefaultADCBits          = 12
	DefaultShuntMilliohms   = 2
	DefaultRefVoltage       = 0.2
	DefaultGain             = 100
	DefaultUpperResistance  = 3300
	DefaultLowerResistance  = 5600
	DefaultFullScaleVoltage = 2.048
)

// Config is loaded once at start-up and treated as immutable afterwards.
type Config struct {
	Calc    float64 `mapstructure:"calc"`
	CalcSet bool    `mapstructure:"-"`
	BLE     bool    `mapstructure:"ble"`
	Baud    int     `mapstructure:"baud"`
	Port    string  `mapstructure:"interface"`
	Output  string  `mapstructure:"output"`
	Verbose bool    `mapstructure:"verbose"`
	Debug   bool    `mapstructure:"debug"`

	ADCBits          float64 `mapstructure:"adc-bits"`
	ShuntMilliohms   float64 `mapstructure:"shunt"`
	RefVoltage       float64 `mapstructure:"ref-voltage"`
	Gain             float64 `mapstructure:"gain"`
	UpperResistance  float64 `mapstructure:"upper-resistance"`
	LowerResistance  float64 `mapstructure:"lower-resistance"`
	FullScaleVoltage float64 `mapstructure:"adc-max-voltage"`
	FourChannel      bool    `mapstructure:"four-channel"`
}

// Load reads configuration from flags, environment (CURRENTCTL_ prefix) and
// an optional TOML config file (/etc/currentctl.conf, or the path in
// CURRENTCTL_CONFIG). Flags win over environment, environment over file.
func Load() (*Config, error) {
	errFactory := errors.New()

	fs := pflag.NewFlagSet("currentctl", pflag.ExitOnError)
	fs.Float64P("calc", "c", 0, "compute the shunt current for a single ADC code and exit")
	fs.BoolP("ble", "B", false, "acquire over BLE instead of a serial interface")
	fs.IntP("baud", "b", DefaultBaudRate, "serial baud rate")
	fs.StringP("interface", "i", "", "serial interface, e.g. COM0 or /dev/ttyUSB0")
	fs.StringP("output", "o", "", "directory for session log files")
	fs.BoolP("verbose", "v", false, "echo measurements to the console")
	fs.Float64P("adc-bits", "a", DefaultADCBits, "ADC resolution in bits")
	fs.Float64P("shunt", "s", DefaultShuntMilliohms, "shunt resistance [mOhm]")
	fs.Float64("ref-voltage", DefaultRefVoltage, "amplifier reference voltage [V]")
	fs.Float64("gain", DefaultGain, "amplifier gain")
	fs.Float64("upper-resistance", DefaultUpperResistance, "upper divider resistance [Ohm]")
	fs.Float64("lower-resistance", DefaultLowerResistance, "lower divider resistance [Ohm]")
	fs.Float64("adc-max-voltage", DefaultFullScaleVoltage, "ADC full-scale voltage [V]")
	fs.BoolP("four-channel", "f", false, "convert channels 2-4 as well")
	fs.Bool("debug", false, "enable debug logging")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	v.SetEnvPrefix("CURRENTCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := os.Getenv("CURRENTCTL_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("currentctl.conf")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}
	cfg.CalcSet = fs.Changed("calc")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	errFactory := errors.New()

	if c.Baud <= 0 {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "baud rate must be positive")
	}
	if c.ADCBits <= 0 {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "ADC bit depth must be positive")
	}

	return nil
}

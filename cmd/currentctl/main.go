package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"codeberg.org/mutker/currentctl/internal/adc"
	"codeberg.org/mutker/currentctl/internal/ble"
	"codeberg.org/mutker/currentctl/internal/config"
	"codeberg.org/mutker/currentctl/internal/logger"
	"codeberg.org/mutker/currentctl/internal/session"
	"codeberg.org/mutker/currentctl/internal/sink"
	"codeberg.org/mutker/currentctl/internal/uart"
)

var cfg *config.Config

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Debug, cfg.Verbose, logger.IsService())
	logger.Debug().Msg("Config loaded")
}

func main() {
	model := analogModel(cfg)

	if cfg.CalcSet {
		runCalc(model)
		return
	}

	if !cfg.BLE && cfg.Port == "" {
		listPorts()
		return
	}

	writer, err := sink.New(cfg.Output, cfg.Verbose)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create output sink")
	}
	defer writer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	var src session.Source
	if cfg.BLE {
		src = ble.New()
	} else {
		src = uart.New(cfg.Port, cfg.Baud)
	}

	if err := session.New(model, writer).Run(ctx, src); err != nil {
		writer.Close()
		logger.Fatal().Err(err).Msg("acquisition session failed")
	}
	logger.Info().Msg("Exiting...")
}

func analogModel(cfg *config.Config) adc.Model {
	return adc.Model{
		Bits:             cfg.ADCBits,
		ShuntMilliohms:   cfg.ShuntMilliohms,
		RefVoltage:       cfg.RefVoltage,
		Gain:             cfg.Gain,
		UpperResistance:  cfg.UpperResistance,
		LowerResistance:  cfg.LowerResistance,
		FullScaleVoltage: cfg.FullScaleVoltage,
		FourChannel:      cfg.FourChannel,
	}
}

// runCalc converts a single ADC code and exits, bypassing both drivers.
func runCalc(model adc.Model) {
	out, err := session.New(model, nil).Calc(cfg.Calc)
	if err != nil {
		logger.Fatal().Err(err).Msg("calc failed")
	}
	fmt.Printf("shunt current: %s\n", out)
}

// listPorts is the serial discovery mode: no interface configured, so show
// what is available and exit cleanly.
func listPorts() {
	ports, err := uart.ListPorts()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to list serial ports")
	}

	fmt.Println("An --interface is required in serial mode.")
	fmt.Println("Available ports:")
	for _, port := range ports {
		fmt.Printf("  %s\n", port)
	}
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/config"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/debug"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/engine"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/host"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/midi"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/preset"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/strip"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/theme"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/tui"
)

var logger = slog.Default()

func initLogger(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

func main() {
	configPath := flag.String("config", "", "config file (default ~/.config/midi-rgb-lighting/config.json)")
	headless := flag.Bool("headless", false, "run without the terminal UI")
	debugFlag := flag.Bool("debug", false, "write a debug log")
	serialPort := flag.String("serial", "", "strip controller serial port (overrides config)")
	noMIDI := flag.Bool("no-midi", false, "do not connect MIDI devices")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *serialPort != "" {
		cfg.Serial.Port = *serialPort
	}

	verbose := *debugFlag || cfg.Debug
	if *headless {
		initLogger(os.Stderr, verbose)
	} else {
		// stderr belongs to the UI
		initLogger(io.Discard, false)
	}
	if verbose {
		if err := debug.Enable(); err != nil {
			logger.Warn("debug log unavailable", "err", err)
		}
		defer debug.Disable()
	}

	if err := run(cfg, *configPath, *headless, *noMIDI); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

func run(cfg *config.Config, configPath string, headless, noMIDI bool) error {
	eng := engine.New(cfg.NumLEDs)
	if cfg.UI.LastPreset != "" {
		if p, err := preset.Load(cfg.UI.LastPreset); err != nil {
			logger.Warn("last preset not loaded", "file", cfg.UI.LastPreset, "err", err)
		} else {
			p.Apply(eng)
			logger.Info("preset loaded", "name", p.Name)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var deviceMgr *midi.DeviceManager
	sinks := strip.MultiSink{}
	if !noMIDI {
		filter := midi.PortFilter{Include: cfg.Inputs.Include, Exclude: cfg.Inputs.Exclude}
		deviceMgr = midi.NewDeviceManager(filter, cfg.Launchpad)
		sinks = append(sinks, host.PreviewSink{Previews: deviceMgr.Previews})
	}
	if cfg.Serial.Port != "" {
		s, err := strip.OpenSerial(cfg.Serial.Port, cfg.Serial.Baud)
		if err != nil {
			return err
		}
		logger.Info("strip connected", "port", s.Port, "baud", s.Baud)
		sinks = append(sinks, s)
	}
	defer sinks.Close()

	runner := host.New(eng, cfg.FPS, sinks)
	if deviceMgr != nil {
		go deviceMgr.Run(ctx)
		go runner.Feed(ctx, deviceMgr.MIDI())
	}
	go runner.Run(ctx)

	if headless {
		logger.Info("running headless", "leds", eng.NumLEDs(), "fps", runner.FPS())
		watchDevices(ctx, deviceMgr, runner)
		<-ctx.Done()
		return nil
	}

	presetDir, err := config.PresetDir()
	if err != nil {
		return err
	}
	th := theme.New(theme.LoadOrDefault(cfg.UI.Palette))
	m := tui.NewModel(runner, deviceMgr, th, presetDir)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	final, err := p.Run()
	stop()
	if err != nil && ctx.Err() == nil {
		return err
	}

	if fm, ok := final.(tui.Model); ok && fm.LastPreset() != "" && fm.LastPreset() != cfg.UI.LastPreset {
		cfg.UI.LastPreset = fm.LastPreset()
		if configPath != "" {
			err = cfg.SaveTo(configPath)
		} else {
			err = cfg.Save()
		}
		if err != nil {
			debug.Log("config", "save failed: %v", err)
		}
	}
	return nil
}

func watchDevices(ctx context.Context, deviceMgr *midi.DeviceManager, runner *host.Runner) {
	if deviceMgr == nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-deviceMgr.Events():
			if !ok {
				return
			}
			switch ev.Type {
			case midi.DeviceConnected:
				logger.Info("device connected", "port", ev.ID, "type", ev.Controller.Type())
				runner.Refresh()
			case midi.DeviceDisconnected:
				logger.Info("device disconnected", "port", ev.ID)
			}
		}
	}
}

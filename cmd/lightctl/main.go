package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/config"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/engine"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/midi"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/preset"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/replay"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/strip"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/theme"
	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/widgets"
)

var logger = slog.Default()

func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "list":
		err = listPorts()
	case "params":
		printParams()
	case "render":
		err = render(args)
	case "monitor":
		err = monitor(args)
	case "presets":
		err = listPresets()
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error(os.Args[1]+" failed", "err", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("lightctl - MIDI RGB lighting tools")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list                 - List MIDI and serial ports")
	fmt.Println("  params               - Show parameters and modes")
	fmt.Println("  render <file.mid>    - Render a MIDI file (-serial to play it on the strip)")
	fmt.Println("  monitor              - Print incoming MIDI events")
	fmt.Println("  presets              - List saved presets")
}

func listPorts() error {
	type result struct {
		ins  []drivers.In
		outs []drivers.Out
	}
	ch := make(chan result, 1)
	go func() {
		ch <- result{ins: gomidi.GetInPorts(), outs: gomidi.GetOutPorts()}
	}()

	select {
	case r := <-ch:
		fmt.Println("=== MIDI Input Ports ===")
		for i, p := range r.ins {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
		fmt.Println("\n=== MIDI Output Ports ===")
		for i, p := range r.outs {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
	case <-time.After(3 * time.Second):
		fmt.Println("MIDI port scan timed out (CoreMIDI hung?)")
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
	}

	ports, err := strip.ListPorts()
	if err != nil {
		return err
	}
	fmt.Println("\n=== Serial Ports ===")
	for _, p := range ports {
		fmt.Printf("  %s\n", p)
	}
	return nil
}

func printParams() {
	fmt.Printf("%s (version %d)\n\n", engine.EngineName, engine.EngineVersion)
	fmt.Println("Parameters:")
	for _, p := range engine.Parameters() {
		fmt.Printf("  CC%-3d %-16s %-10s %s\n", p.CC, p.Name, p.Layer, p.Tooltip)
	}

	params := engine.Parameters()
	printModes := func(title string, modes []engine.ModeInfo) {
		fmt.Printf("\n%s:\n", title)
		for _, m := range modes {
			var uses []string
			for _, idx := range m.Uses {
				uses = append(uses, fmt.Sprintf("CC%d", params[idx].CC))
			}
			fmt.Printf("  %d  %-40s %s\n", m.ID, m.Name, strings.Join(uses, " "))
		}
	}
	printModes("Foreground modes", engine.ForegroundModes())
	printModes("Background modes", engine.BackgroundModes())
}

func render(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	fps := fs.Int("fps", config.DefaultFPS, "frames per second")
	leds := fs.Int("leds", engine.DefaultNumLEDs, "strip length")
	port := fs.String("serial", "", "serial port to stream frames to, in real time")
	baud := fs.Int("baud", config.DefaultBaud, "serial baud rate")
	presetPath := fs.String("preset", "", "preset to apply before playing")
	every := fs.Int("every", 0, "print every n-th frame (default: once per second)")
	debug := fs.Bool("debug", false, "verbose logging")
	fs.Parse(args)
	initLogger(*debug)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: lightctl render [flags] <file.mid>")
	}
	cues, err := replay.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	logger.Info("loaded song", "file", fs.Arg(0), "cues", len(cues), "duration", replay.Duration(cues))

	eng := engine.New(*leds)
	if *presetPath != "" {
		p, err := preset.Load(*presetPath)
		if err != nil {
			return err
		}
		p.Apply(eng)
		logger.Info("applied preset", "name", p.Name)
	}

	var frameFn func(int, []engine.Color) error
	if *port != "" {
		sink, err := strip.OpenSerial(*port, *baud)
		if err != nil {
			return err
		}
		defer sink.Close()

		ticker := time.NewTicker(time.Second / time.Duration(max(*fps, 1)))
		defer ticker.Stop()
		frameFn = func(_ int, leds []engine.Color) error {
			<-ticker.C
			return sink.WriteFrame(leds)
		}
	} else {
		n := *every
		if n <= 0 {
			n = max(*fps, 1)
		}
		frameFn = func(frame int, leds []engine.Color) error {
			if frame%n == 0 {
				fmt.Printf("%6d %s\n", frame, widgets.RenderStrip(theme.LEDColors(leds), 0, '█'))
			}
			return nil
		}
	}

	frames, err := replay.Render(cues, *fps, eng, frameFn)
	logger.Info("rendered", "frames", frames)
	return err
}

func monitor(args []string) error {
	fs := flag.NewFlagSet("monitor", flag.ExitOnError)
	include := fs.String("include", "", "comma separated port name patterns to connect")
	debug := fs.Bool("debug", false, "verbose logging")
	fs.Parse(args)
	initLogger(*debug)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	filter := midi.PortFilter{Include: cfg.Inputs.Include, Exclude: cfg.Inputs.Exclude}
	if *include != "" {
		filter.Include = strings.Split(*include, ",")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dm := midi.NewDeviceManager(filter, false)
	go dm.Run(ctx)

	fmt.Println("Listening for MIDI. Ctrl+C to exit.")
	devices, events := dm.Events(), dm.MIDI()
	for devices != nil || events != nil {
		select {
		case ev, ok := <-devices:
			if !ok {
				devices = nil
				continue
			}
			if ev.Type == midi.DeviceConnected {
				logger.Info("device connected", "port", ev.ID)
			} else {
				logger.Info("device disconnected", "port", ev.ID)
			}
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			fmt.Printf("[%s] %s\n", time.Now().Format("15:04:05.000"), ev)
		}
	}
	return nil
}

func listPresets() error {
	dir, err := config.PresetDir()
	if err != nil {
		return err
	}
	paths, err := preset.List(dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Printf("No presets in %s\n", dir)
		return nil
	}
	for _, path := range paths {
		p, err := preset.Load(path)
		if err != nil {
			logger.Warn("unreadable preset", "file", path, "err", err)
			continue
		}
		fmt.Printf("  %-30s %s\n", p.Name, path)
	}
	return nil
}

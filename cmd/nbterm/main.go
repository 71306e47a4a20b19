package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"nbterm/internal/cells"
	"nbterm/internal/config"
	"nbterm/internal/events"
	"nbterm/internal/kernel"
	"nbterm/internal/logger"
	"nbterm/internal/notebook"
	"nbterm/internal/tui"
)

var log = logger.Named("main")

type kvFlags []string

func (f *kvFlags) String() string { return strings.Join(*f, ",") }

func (f *kvFlags) Set(value string) error {
	*f = append(*f, value)
	return nil
}

func main() {
	logger.Configure()

	var (
		configPath string
		overrides  kvFlags
		saveConfig bool
		inputPath  string
		printMode  bool
		title      string
		width      int
	)
	flag.StringVar(&configPath, "config", "", "config file path (default ~/.nbterm/config.toml)")
	flag.Var(&overrides, "c", "config override key=value (repeatable)")
	flag.BoolVar(&saveConfig, "save-config", false, "write the effective config (including -c overrides) back to the config file")
	flag.StringVar(&inputPath, "input", "-", "kernel session stream, '-' for stdin")
	flag.BoolVar(&printMode, "print", false, "consume the whole stream and print the notebook once")
	flag.StringVar(&title, "title", "", "notebook title shown in the header")
	flag.IntVar(&width, "width", 0, "render width for --print (default 100)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cfg = config.ApplyKVOverrides(cfg, overrides)
	if saveConfig {
		if err := config.Save(cfg); err != nil {
			log.Warnf("failed to save config: %v", err)
		}
	}

	if logFile, _, err := logger.SetupFile(cfg.Log.Path); err != nil {
		log.Warnf("failed to initialize log file: %v", err)
	} else {
		defer logFile.Close()
	}

	input, err := openInput(inputPath)
	if err != nil {
		log.Fatalf("open input: %v", err)
	}
	defer input.Close()

	bus := events.NewBus()
	sub := bus.Subscribe()
	sizes := notebook.NewSizeObserver()
	renderer := notebook.NewRenderer(notebook.RendererOptions{
		Width:           100,
		CollapsedHeight: cfg.Display.CollapsedHeight,
		Defaults:        cells.RuntimeDefaults{AutoInstantiate: cfg.Runtime.AutoInstantiate},
		Sizes:           sizes,
	})
	defer renderer.Close()

	stream := kernel.NewStream(bus)
	go func() {
		if err := stream.Run(context.Background(), input); err != nil {
			log.Warnf("kernel stream ended: %v", err)
		}
		bus.Close()
	}()

	if printMode {
		if width <= 0 {
			width = 100
		}
		runPrint(renderer, sub, width)
		return
	}

	if err := tui.Run(tui.Options{
		Title:    title,
		Renderer: renderer,
		Sizes:    sizes,
		Events:   sub,
	}); err != nil {
		log.Fatalf("tui: %v", err)
	}
}

// runPrint 消费整个事件流后把笔记本一次性写到 stdout（非交互模式）。
func runPrint(renderer *notebook.Renderer, sub <-chan events.Event, width int) {
	renderer.SetWidth(width)
	for evt := range sub {
		renderer.Handle(evt)
	}
	scrollback := notebook.NewScrollback(notebook.ScrollbackOptions{Width: width})
	scrollback.AppendLines(renderer.Lines())
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/benoitkugler/svglayout/svgconfig"
	"github.com/benoitkugler/svglayout/svgdraw"
	"github.com/benoitkugler/svglayout/svgkeys"
	"github.com/benoitkugler/svglayout/svgraster"
	"github.com/benoitkugler/svglayout/svgregion"
)

func main() {
	defaultConfig, _ := svgconfig.DefaultPath()

	configPath := flag.String("config", defaultConfig, "configuration file, YAML or SQLite (.db)")
	system := flag.String("system", svgconfig.EnglishStenotype, "steno system to display")
	svgPath := flag.String("svg", "", "layout file, overriding the configuration")
	scale := flag.Int("scale", 0, "layout scale in percent, overriding the configuration")
	keymap := flag.String("keymap", "", "key table file or "+svgkeys.EnglishRef+", overriding the configuration")
	outDir := flag.String("out", "", "directory receiving one file per frame (default: documents on stdout)")
	format := flag.String("format", "svg", "frame format: svg, png, bmp or tiff")
	save := flag.Bool("save", false, "store the overrides in the configuration file")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] < strokes\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Each input line is a stroke, as keys separated by spaces, commas or slashes,")
		fmt.Fprintln(os.Stderr, "optionally followed by a tab and the previous translation.")
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	svgregion.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if *svgPath != "" || *scale != 0 || *keymap != "" {
		sys, _ := cfg.System(*system)
		if *svgPath != "" {
			sys.SVG = *svgPath
		}
		if *scale != 0 {
			sys.Scale = *scale
		}
		if *keymap != "" {
			sys.KeyMap = *keymap
		}
		cfg.SetSystem(*system, sys)
	}
	if *save {
		if err := saveConfig(*configPath, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving configuration: %v\n", err)
			os.Exit(1)
		}
	}

	driver, err := newDriver(*outDir, *format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tool, err := svgdraw.New(cfg, *system, driver)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error presenting layout: %v\n", err)
		os.Exit(1)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		stroke, prev, _ := strings.Cut(scanner.Text(), "\t")
		if err := tool.Stroke(svgkeys.ParseStroke(stroke), prev); err != nil {
			fmt.Fprintf(os.Stderr, "Error presenting stroke: %v\n", err)
			os.Exit(1)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading strokes: %v\n", err)
		os.Exit(1)
	}

	if fd, ok := driver.(*svgdraw.FileDriver); ok {
		fmt.Fprintf(os.Stderr, "Wrote %d frames to %s\n", fd.Count(), fd.Dir)
	}
}

func loadConfig(path string) (*svgconfig.Config, error) {
	switch {
	case path == "":
		return svgconfig.Default(), nil
	case svgconfig.IsDBPath(path):
		db, err := svgconfig.OpenDB(path)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return svgconfig.LoadDB(context.Background(), db)
	default:
		return svgconfig.Load(path)
	}
}

func saveConfig(path string, cfg *svgconfig.Config) error {
	switch {
	case path == "":
		return fmt.Errorf("no configuration file")
	case svgconfig.IsDBPath(path):
		db, err := svgconfig.OpenDB(path)
		if err != nil {
			return err
		}
		defer db.Close()
		return cfg.SaveDB(context.Background(), db)
	default:
		return cfg.Save(path)
	}
}

func newDriver(outDir, format string) (svgdraw.Driver, error) {
	raster := format != "svg"
	var f svgraster.Format
	if raster {
		var err error
		if f, err = svgraster.ParseFormat(format); err != nil {
			return nil, err
		}
	}
	if outDir == "" {
		if raster {
			return nil, fmt.Errorf("format %s requires an output directory", format)
		}
		return svgdraw.StreamDriver{W: os.Stdout}, nil
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}
	return &svgdraw.FileDriver{Dir: outDir, Raster: raster, Format: f}, nil
}

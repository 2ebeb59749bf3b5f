package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/danmuck/qrsplit/internal/split"
)

// config is the fully-resolved run configuration: defaults, then the
// optional TOML file, then command-line flags, strongest last.
type config struct {
	Encode   string
	Codes    string
	Images   string
	OutDir   string
	Level    split.Level
	GridCols int
	GridRows int
	MaxCodes int
	Workers  int
}

// fileConfig mirrors the TOML file. Only keys the file actually
// defines override the built-in defaults.
type fileConfig struct {
	Level    string `toml:"level"`
	Grid     string `toml:"grid"`
	OutDir   string `toml:"out_dir"`
	MaxCodes int    `toml:"max_codes"`
	Workers  int    `toml:"workers"`
}

func loadConfig(args []string) (config, error) {
	fs := pflag.NewFlagSet("qrsplit", pflag.ContinueOnError)
	var (
		encode     = fs.String("encode", "", "path to a file to split into barcode frames")
		codes      = fs.String("codes", "", "file with one transport string per line")
		images     = fs.String("images", "", "file with one scanned image path per line")
		outDir     = fs.String("out", ".", "output directory")
		levelName  = fs.String("level", split.DefaultLevel().Name, "robustness level (strongest first): "+levelNames())
		grid       = fs.String("grid", "3x4", "page grid as WxH symbols")
		maxCodes   = fs.Int("max-codes", 0, "unique codes per image before detection stops (0 = unlimited)")
		workers    = fs.Int("workers", 0, "detection workers (0 = all CPUs)")
		configPath = fs.String("config", "", "optional TOML config file")
	)
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	if fs.NArg() > 0 {
		return config{}, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	if *configPath != "" {
		var raw fileConfig
		meta, err := toml.DecodeFile(*configPath, &raw)
		if err != nil {
			return config{}, fmt.Errorf("load config: %w", err)
		}
		// Flags beat the file; the file beats built-in defaults.
		if meta.IsDefined("level") && !fs.Changed("level") {
			*levelName = raw.Level
		}
		if meta.IsDefined("grid") && !fs.Changed("grid") {
			*grid = raw.Grid
		}
		if meta.IsDefined("out_dir") && !fs.Changed("out") {
			*outDir = raw.OutDir
		}
		if meta.IsDefined("max_codes") && !fs.Changed("max-codes") {
			*maxCodes = raw.MaxCodes
		}
		if meta.IsDefined("workers") && !fs.Changed("workers") {
			*workers = raw.Workers
		}
	}

	cfg := config{
		Encode:   strings.TrimSpace(*encode),
		Codes:    strings.TrimSpace(*codes),
		Images:   strings.TrimSpace(*images),
		OutDir:   *outDir,
		MaxCodes: *maxCodes,
		Workers:  *workers,
	}

	level, err := split.LevelByName(*levelName)
	if err != nil {
		return config{}, err
	}
	cfg.Level = level

	cfg.GridCols, cfg.GridRows, err = parseGrid(*grid)
	if err != nil {
		return config{}, err
	}

	if cfg.MaxCodes < 0 {
		return config{}, fmt.Errorf("max-codes must be >= 0, got %d", cfg.MaxCodes)
	}

	encoding := cfg.Encode != ""
	decoding := cfg.Codes != "" || cfg.Images != ""
	switch {
	case encoding && decoding:
		return config{}, errors.New("--encode is mutually exclusive with --codes/--images")
	case !encoding && !decoding:
		return config{}, errors.New("nothing to do: pass --encode, or --codes and/or --images")
	}
	return cfg, nil
}

// parseGrid parses "WxH" with both dimensions at least 1.
func parseGrid(s string) (cols, rows int, err error) {
	parts := strings.SplitN(strings.ToLower(strings.TrimSpace(s)), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("grid %q: want WxH", s)
	}
	cols, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("grid %q: %w", s, err)
	}
	rows, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("grid %q: %w", s, err)
	}
	if cols < 1 || rows < 1 {
		return 0, 0, fmt.Errorf("grid %q: both dimensions must be at least 1", s)
	}
	return cols, rows, nil
}

func levelNames() string {
	names := make([]string, len(split.Levels))
	for i, l := range split.Levels {
		names[i] = l.Name
	}
	return strings.Join(names, ", ")
}

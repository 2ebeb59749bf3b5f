// Command qrsplit turns a file into a printable set of barcode frames
// and reconstructs files from scanned frames.
//
// Encode:
//
//	qrsplit --encode report.pdf --level high --grid 3x4 --out ./backup
//
// Decode, from scans and a hand-typed code list:
//
//	qrsplit --images scans.txt --codes typed.txt --out ./restore
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/danmuck/qrsplit/internal/job"
	"github.com/danmuck/qrsplit/internal/logging"
	"github.com/danmuck/qrsplit/internal/symbol"
	"github.com/danmuck/qrsplit/internal/transport"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "qrsplit: %v\n", err)
		os.Exit(2)
	}

	log := logging.New("qrsplit")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, log zerolog.Logger) error {
	tc := transport.Base32{}

	if cfg.Encode != "" {
		enc := symbol.QREncoder{Recovery: cfg.Level.Recovery}
		return job.Encode(ctx, job.EncodeConfig{
			Source:   cfg.Encode,
			OutDir:   cfg.OutDir,
			Level:    cfg.Level,
			GridCols: cfg.GridCols,
			GridRows: cfg.GridRows,
		}, enc, tc, log)
	}

	return job.Decode(ctx, job.DecodeConfig{
		CodesFile:  cfg.Codes,
		ImagesFile: cfg.Images,
		OutDir:     cfg.OutDir,
		MaxCodes:   cfg.MaxCodes,
		Workers:    cfg.Workers,
	}, symbol.QRDetector{}, tc, log)
}

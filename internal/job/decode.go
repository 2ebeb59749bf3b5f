package job

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/danmuck/qrsplit/internal/collect"
	"github.com/danmuck/qrsplit/internal/frame"
	"github.com/danmuck/qrsplit/internal/imgio"
	"github.com/danmuck/qrsplit/internal/reassemble"
	"github.com/danmuck/qrsplit/internal/symbol"
	"github.com/danmuck/qrsplit/internal/transport"
)

// DecodeConfig is the resolved configuration for one decode run. At
// least one of CodesFile and ImagesFile must be set.
type DecodeConfig struct {
	CodesFile  string
	ImagesFile string
	OutDir     string
	MaxCodes   int // unique codes per image before detection stops, 0 = unlimited
	Workers    int // detection workers, NumCPU when zero
}

// Decode gathers candidate transport strings, reassembles every file
// group found in them, and writes the reconstructions. Each group
// succeeds or fails on its own; the returned error joins the failures
// so a batch verdict is still a single value.
func Decode(ctx context.Context, cfg DecodeConfig, det symbol.Detector, tc transport.Transcoder, log zerolog.Logger) error {
	set := collect.NewSet()

	if cfg.CodesFile != "" {
		codes, err := collect.ReadCodes(cfg.CodesFile, tc.Prefix())
		if err != nil {
			return err
		}
		for _, c := range codes {
			set.Add(c)
		}
		log.Info().Str("file", cfg.CodesFile).Int("candidates", len(codes)).Msg("read codes file")
	}

	if cfg.ImagesFile != "" {
		paths, err := collect.ReadList(cfg.ImagesFile)
		if err != nil {
			return err
		}
		if err := scanImages(ctx, paths, cfg, det, tc.Prefix(), set, log); err != nil {
			return err
		}
	}

	if set.Len() == 0 {
		return errors.New("no candidate codes collected from any source")
	}
	log.Info().Int("unique", set.Len()).Msg("code collection complete")

	batch := reassemble.NewBatch()
	for _, code := range set.Strings() {
		raw, err := tc.Decode(code)
		if err != nil {
			log.Warn().Err(err).Msg("dropping untranscodable candidate")
			continue
		}
		fr, err := frame.Decode(raw)
		if err != nil {
			log.Warn().Err(err).Msg("dropping malformed frame")
			continue
		}
		batch.Add(fr)
	}
	if batch.Len() == 0 {
		return errors.New("no frames survived decoding")
	}

	var failures []error
	for _, out := range batch.Resolve() {
		if out.Err == nil {
			path := filepath.Join(cfg.OutDir, decodedFileName(out.Result.Name))
			if err := os.WriteFile(path, out.Result.Data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			log.Info().Str("group", out.Key).Str("output", path).Msg("reconstructed and verified")
			continue
		}

		failures = append(failures, out.Err)
		var cerr *reassemble.CorruptionError
		if errors.As(out.Err, &cerr) {
			// The bytes are structurally complete but fail the
			// checksum: persist them under a name nobody can
			// mistake for a good reconstruction.
			path := filepath.Join(cfg.OutDir, decodedFileName(out.Result.Name)+".corrupt")
			if err := os.WriteFile(path, out.Result.Data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			log.Error().Err(out.Err).Str("group", out.Key).Str("output", path).Msg("checksum mismatch, corrupted bytes kept for inspection")
			continue
		}
		log.Error().Err(out.Err).Str("group", out.Key).Msg("reconstruction failed")
	}
	return errors.Join(failures...)
}

// scanImages runs barcode detection over the listed images with a
// bounded worker pool. Detection misses are per-image noise; an
// unreadable image aborts the run.
func scanImages(ctx context.Context, paths []string, cfg DecodeConfig, det symbol.Detector, prefix string, set *collect.Set, log zerolog.Logger) error {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	jobs := make(chan string)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				if ctx.Err() != nil {
					continue
				}
				img, err := imgio.LoadFile(path)
				if err != nil {
					fail(err)
					continue
				}
				codes, err := det.Detect(img, cfg.MaxCodes)
				if err != nil {
					log.Warn().Err(err).Str("image", path).Msg("detection failed")
					continue
				}
				fresh := 0
				for _, c := range codes {
					if strings.HasPrefix(c, prefix) && set.Add(c) {
						fresh++
					}
				}
				log.Debug().Str("image", path).Int("detected", len(codes)).Int("new", fresh).Msg("scanned image")
			}
		}()
	}

feed:
	for _, p := range paths {
		select {
		case jobs <- p:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return context.Cause(ctx)
}

// Package job wires the codec, splitter, reassembler, planner, and the
// symbol/transport capabilities into the two end-to-end pipelines.
package job

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/danmuck/qrsplit/internal/frame"
	"github.com/danmuck/qrsplit/internal/imgio"
	"github.com/danmuck/qrsplit/internal/page"
	"github.com/danmuck/qrsplit/internal/split"
	"github.com/danmuck/qrsplit/internal/symbol"
	"github.com/danmuck/qrsplit/internal/transport"
)

// EncodeConfig is the resolved configuration for one encode run.
type EncodeConfig struct {
	Source   string
	OutDir   string
	Level    split.Level
	GridCols int
	GridRows int
}

// pageSink composes each flushed page and writes it as a PNG.
type pageSink struct {
	comp page.Compositor
	dir  string
	stem string
	log  zerolog.Logger
}

func (s *pageSink) WritePage(pageNo, total int, cells []image.Image) error {
	name := pageFileName(pageNo, total, s.stem)
	if err := imgio.WritePNG(filepath.Join(s.dir, name), s.comp.Compose(cells)); err != nil {
		return err
	}
	s.log.Info().Str("page", name).Int("symbols", len(cells)).Msg("wrote page")
	return nil
}

// Encode splits the source file into frames, renders each as a symbol
// image, and lays the symbols out on printable pages. Symbol images are
// written as they are produced and retained only until their page
// flushes, so memory stays bounded by one grid of images.
func Encode(ctx context.Context, cfg EncodeConfig, enc symbol.Encoder, tc transport.Transcoder, log zerolog.Logger) error {
	data, err := os.ReadFile(cfg.Source)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	sum := frame.Checksum(data)
	base := filepath.Base(cfg.Source)

	frames, err := split.Split(base, data, cfg.Level, sum)
	if err != nil {
		return err
	}
	log.Info().
		Str("source", base).
		Str("level", cfg.Level.Name).
		Int("bytes", len(data)).
		Int("frames", len(frames)).
		Msg("split complete")

	fileStem := stem(base)
	sink := &pageSink{
		comp: page.Compositor{Cols: cfg.GridCols, Rows: cfg.GridRows},
		dir:  cfg.OutDir,
		stem: fileStem,
		log:  log,
	}
	planner, err := page.NewPlanner(cfg.GridCols, cfg.GridRows, page.Pages(len(frames), cfg.GridCols, cfg.GridRows), sink)
	if err != nil {
		return err
	}

	for _, fr := range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		img, err := enc.Encode(tc.Encode(frame.Encode(fr)))
		if err != nil {
			return fmt.Errorf("render frame %d of %s: %w", fr.Index, fr.GroupKey(), err)
		}
		name := symbolFileName(fr.Index, fr.Count, fileStem)
		if err := imgio.WritePNG(filepath.Join(cfg.OutDir, name), img); err != nil {
			return err
		}
		log.Debug().Str("symbol", name).Msg("wrote symbol")
		if err := planner.Add(img); err != nil {
			return err
		}
	}
	return planner.Close()
}

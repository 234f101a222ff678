package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/LdDl/bubbles-go/bubbles"
	"github.com/LdDl/bubbles-go/internal/config"
	"github.com/LdDl/bubbles-go/internal/report"
	"github.com/LdDl/bubbles-go/internal/store"
	"github.com/LdDl/bubbles-go/internal/vision"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// run tracks bubbles until the input is exhausted, ctx is cancelled or a frame fails.
// Whatever has been processed is persisted in every case.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	roster := bubbles.DefaultRoster()
	if err := cfg.CheckRoster(roster); err != nil {
		return errors.Wrap(err, "Configuration does not cover roster")
	}
	pipeline, err := bubbles.NewPipeline(roster, logger)
	if err != nil {
		return err
	}
	pipeline.SetMaxTrackLen(cfg.TrackLen)
	for _, marker := range pipeline.Markers() {
		logger.Debug("marker", "number", marker.GetNumber(), "id", marker.GetID())
	}

	reader, err := vision.OpenVideo(cfg.Input.Video)
	if err != nil {
		return err
	}
	defer reader.Close()
	logger.Info("input opened", "path", cfg.Input.Video, "fps", reader.FPS, "width", reader.Width, "height", reader.Height)

	var writer *vision.VideoWriter
	if cfg.Output.Video != "" {
		writer, err = vision.CreateVideo(cfg.Output.Video, cfg.Output.Codec, reader.FPS, reader.Width, reader.Height)
		if err != nil {
			return err
		}
		defer writer.Close()
	}

	analyzer := vision.NewAnalyzer(cfg.Colors, cfg.Sizes, cfg.Blur.Kernel, cfg.Blur.Sigma)
	frame := gocv.NewMat()
	defer frame.Close()

	frameNo := 0
	for reader.Read(&frame) {
		if ctx.Err() != nil {
			logger.Info("interrupted", "frame", frameNo)
			break
		}
		frameNo++
		if err := processFrame(pipeline, analyzer, writer, frameNo, frame); err != nil {
			// Keep frames processed so far
			if persistErr := persist(ctx, cfg, pipeline, logger); persistErr != nil {
				logger.Error("can't persist history", "error", persistErr)
			}
			return err
		}
	}
	logger.Info("input exhausted", "frames", frameNo)

	return persist(ctx, cfg, pipeline, logger)
}

func processFrame(pipeline *bubbles.Pipeline, analyzer *vision.Analyzer, writer *vision.VideoWriter, frameNo int, frame gocv.Mat) error {
	analysis, err := analyzer.Analyze(frame)
	if err != nil {
		return errors.Wrapf(err, "Can't analyze frame %d", frameNo)
	}
	defer analysis.Close()

	result, err := pipeline.ProcessFrame(frameNo, analysis)
	if err != nil {
		return err
	}
	if writer == nil {
		return nil
	}
	vision.Annotate(&frame, result)
	return writer.Write(frame)
}

func persist(ctx context.Context, cfg *config.Config, pipeline *bubbles.Pipeline, logger *slog.Logger) error {
	history := pipeline.History()
	if history.Len() == 0 {
		logger.Warn("no frames have been processed, nothing to save")
		return nil
	}

	file, err := os.Create(cfg.Output.Log)
	if err != nil {
		return errors.Wrapf(err, "Can't create position log %s", cfg.Output.Log)
	}
	if err := history.WriteTSV(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return errors.Wrapf(err, "Can't close position log %s", cfg.Output.Log)
	}
	logger.Info("position log saved", "path", cfg.Output.Log, "frames", history.Len())

	if cfg.Output.Database != "" {
		s, err := store.Open(cfg.Output.Database)
		if err != nil {
			return err
		}
		defer s.Close()
		// Positions are saved even after interruption
		runID, err := s.SaveRun(context.WithoutCancel(ctx), cfg.Input.Video, pipeline.Markers(), history)
		if err != nil {
			return err
		}
		logger.Info("positions stored", "path", cfg.Output.Database, "run", runID)
	}

	if cfg.Output.Plot != "" {
		if err := report.PlotTrajectories(pipeline.Markers(), cfg.Output.Plot); err != nil {
			return err
		}
		logger.Info("trajectories plotted", "path", cfg.Output.Plot)
	}
	return nil
}

// glbtool is a CLI utility for inspecting, measuring and reducing GLB models.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/glbmodel/internal/assets"
	"github.com/Faultbox/glbmodel/internal/config"
	"github.com/Faultbox/glbmodel/internal/lod"
	"github.com/Faultbox/glbmodel/internal/logger"
	"github.com/Faultbox/glbmodel/internal/scheduler"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(args)
	case "stats":
		err = cmdStats(args)
	case "lod", "reduce":
		err = cmdLOD(args)
	case "watch":
		err = cmdWatch(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`glbtool - GLB (binary glTF) model utility

Usage:
  glbtool [global options] <command> [options]

Commands:
  info <file.glb>                      Show container, chunk and mesh layout
  stats [asset...]                     Parse assets and print model statistics
  lod [-target N] [-o out.glb] <asset> Reduce a model to a triangle budget
  watch                                Re-parse assets when their files change

Global options:
  -config path   Config file (.yaml, .yml or .toml)
  -root dir      Asset root searched before configured roots
  -workers N     Concurrent decodes
  -seed N        LOD shuffle seed
  -target N      Default triangle budget
  -debug         Debug logging
  -log-file path Also log to a rotating file

Examples:
  glbtool info avatar.glb
  glbtool -root ./models stats
  glbtool lod -target 5000 -o avatar_lod.glb avatar.glb`)
}

// app holds what every command needs after configuration is loaded.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	source *assets.Source
	sched  *scheduler.Scheduler
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	log := logger.Log

	source := assets.NewSource(log.Named("assets"))
	for _, dir := range cfg.Assets.Roots {
		if err := source.AddRoot(dir); err != nil {
			log.Warn("skipping asset root", zap.String("dir", dir), zap.Error(err))
		}
	}

	sched := scheduler.New(
		scheduler.WithLogger(log.Named("scheduler")),
		scheduler.WithWorkers(cfg.Scheduler.Workers),
		scheduler.WithReducer(lod.NewReducer(lod.WithSeed(cfg.LOD.Seed))),
		scheduler.WithPlaceholderName(cfg.Parser.PlaceholderName),
	)

	log.Debug("configured",
		zap.Strings("roots", source.Roots()),
		zap.Int("workers", sched.Workers()),
		zap.Int64("seed", cfg.LOD.Seed),
		zap.Int("default_target", cfg.LOD.DefaultTargetFaces))

	return &app{cfg: cfg, log: log, source: source, sched: sched}, nil
}

func (a *app) Close() {
	a.source.Close()
}

// load reads an asset by path if it exists on disk, otherwise by name
// through the asset roots.
func (a *app) load(name string) ([]byte, error) {
	if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		return os.ReadFile(name)
	}
	return a.source.Load(filepath.ToSlash(name))
}

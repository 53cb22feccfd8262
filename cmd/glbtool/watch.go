package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/Faultbox/glbmodel/internal/assets"
)

func cmdWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	target := fs.Int("target", -1, "Triangle budget (-1 = configured default)")
	fs.Parse(args)

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	budget := a.cfg.LOD.DefaultTargetFaces
	if *target >= 0 {
		budget = *target
	}

	names, err := a.source.List()
	if err != nil {
		return err
	}
	for _, name := range names {
		a.report(context.Background(), name, budget)
	}
	return a.watch(budget)
}

// watch re-parses assets as they change until interrupted. Cached models are
// dropped on every change since the old bytes will not be requested again.
func (a *app) watch(budget int) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.source.Watch(ctx, func(c assets.Change) {
		a.sched.ClearCache()
		if c.Removed {
			fmt.Printf("%s: removed\n", c.Name)
			return
		}
		a.report(ctx, c.Name, budget)
	})
}

func (a *app) report(ctx context.Context, name string, budget int) {
	data, err := a.source.Load(name)
	if err != nil {
		a.log.Warn("load failed", zap.String("name", name), zap.Error(err))
		return
	}
	m, err := a.sched.Parse(ctx, data, budget)
	if err != nil {
		return
	}
	s := a.sched.ModelStats(m)
	fmt.Printf("%s: %s (%s faces, %s)\n", name, s.ModelName,
		humanize.Comma(int64(s.FaceCount)), humanize.IBytes(uint64(s.EstimatedMemoryBytes)))
}

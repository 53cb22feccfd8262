package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/glbmodel/internal/model"
)

func cmdStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	target := fs.Int("target", -1, "Triangle budget (-1 = configured default)")
	fs.Parse(args)

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	names := fs.Args()
	if len(names) == 0 {
		if names, err = a.source.List(); err != nil {
			return err
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("no assets found in %v", a.source.Roots())
	}

	budget := a.cfg.LOD.DefaultTargetFaces
	if *target >= 0 {
		budget = *target
	}

	results := make([]model.ModelStats, len(names))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(a.sched.Workers())
	for i, name := range names {
		g.Go(func() error {
			data, err := a.load(name)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			m, err := a.sched.Parse(ctx, data, budget)
			if err != nil {
				return err
			}
			if m.Placeholder {
				a.log.Warn("asset could not be parsed", zap.String("name", name))
			}
			results[i] = a.sched.ModelStats(m)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ASSET\tMODEL\tVERTICES\tFACES\tSIZE (W x H x D)\tMEMORY")
	var total int64
	for i, s := range results {
		size := s.Bounds.Size()
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f x %.2f x %.2f\t%s\n",
			names[i], s.ModelName,
			humanize.Comma(int64(s.VertexCount)), humanize.Comma(int64(s.FaceCount)),
			size.X(), size.Y(), size.Z(),
			humanize.IBytes(uint64(s.EstimatedMemoryBytes)))
		total += s.EstimatedMemoryBytes
	}
	w.Flush()

	cs := a.sched.CacheStats()
	fmt.Printf("\n%d model(s), %s estimated, %d decode(s), %d cache hit(s)\n",
		len(results), humanize.IBytes(uint64(total)), cs.Decodes, cs.Hits)

	if a.cfg.Assets.Watch {
		fmt.Println("watching for changes...")
		return a.watch(budget)
	}
	return nil
}

package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

func cmdLOD(args []string) error {
	fs := flag.NewFlagSet("lod", flag.ExitOnError)
	target := fs.Int("target", 0, "Triangle budget (0 = configured default)")
	output := fs.String("o", "", "Write the reduced model to this GLB file")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: glbtool lod [-target N] [-o out.glb] <asset>")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	budget := *target
	if budget <= 0 {
		budget = a.cfg.LOD.DefaultTargetFaces
	}
	if budget <= 0 {
		return fmt.Errorf("no triangle budget: pass -target or set lod.default_target_faces")
	}

	data, err := a.load(fs.Arg(0))
	if err != nil {
		return err
	}

	m, err := a.sched.Parse(context.Background(), data, budget)
	if err != nil {
		return err
	}
	if m.Placeholder {
		return fmt.Errorf("%s could not be parsed", fs.Arg(0))
	}

	s := a.sched.ModelStats(m)
	fmt.Printf("%s\n", s.ModelName)
	fmt.Printf("  faces:    %s -> %s\n", humanize.Comma(int64(m.OriginalFaceCount)), humanize.Comma(int64(s.FaceCount)))
	fmt.Printf("  vertices: %s -> %s\n", humanize.Comma(int64(m.OriginalVertexCount)), humanize.Comma(int64(s.VertexCount)))
	fmt.Printf("  memory:   %s\n", humanize.IBytes(uint64(s.EstimatedMemoryBytes)))

	if *output == "" {
		return nil
	}
	if err := exportGLB(m, *output); err != nil {
		return fmt.Errorf("writing %s: %w", *output, err)
	}
	a.log.Info("reduced model written", zap.String("path", *output), zap.String("id", m.ID.String()))
	return nil
}

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/Faultbox/glbmodel/pkg/formats"
)

func cmdInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: glbtool info <file.glb>")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	c, err := formats.ReadGLB(data)
	if err != nil {
		return err
	}

	fmt.Printf("File:     %s\n", fs.Arg(0))
	fmt.Printf("Size:     %s\n", humanize.Bytes(uint64(len(data))))
	fmt.Printf("Version:  %d\n", c.Version)
	fmt.Printf("Chunks:   %d", len(c.Chunks))
	if c.Truncated {
		fmt.Print(" (truncated)")
	}
	fmt.Println()
	for i, ch := range c.Chunks {
		fmt.Printf("  [%d] %-18s %s\n", i, formats.ChunkTypeName(ch.Type), humanize.Bytes(uint64(ch.Length)))
	}

	jsonData, ok := c.JSON()
	if !ok {
		return formats.ErrNoJSONChunk
	}
	scene, err := formats.ParseScene(jsonData)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Name:        %s\n", scene.ModelName())
	fmt.Printf("Meshes:      %d\n", len(scene.Meshes))
	fmt.Printf("Accessors:   %d\n", len(scene.Accessors))
	fmt.Printf("BufferViews: %d\n", len(scene.BufferViews))
	for mi, m := range scene.Meshes {
		fmt.Printf("  mesh %d %q: %d primitive(s)\n", mi, m.Name, len(m.Primitives))
	}

	sel, err := scene.SelectPrimitive()
	if err != nil {
		fmt.Printf("Selected:    none (%v)\n", err)
		return nil
	}
	fmt.Printf("Selected:    mesh %d, primitive %d (POSITION accessor %d, indexed: %t)\n",
		sel.Mesh, sel.Primitive, sel.Position, sel.Indices != nil)
	return nil
}

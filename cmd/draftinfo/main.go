// Command draftinfo summarizes a drawing file: format version,
// layers, entity counts and extents.
package main

import (
	"flag"
	"fmt"
	"os"

	"draft-editor/internal/entity"
	"draft-editor/internal/project"
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Println("Usage: draftinfo <file.draft>")
		os.Exit(1)
	}
	path := flag.Arg(0)

	proj, err := project.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", path, err)
		os.Exit(1)
	}

	fmt.Printf("%s (format v%d)\n", proj.Name, proj.Version)
	if !proj.Modified.IsZero() {
		fmt.Printf("Modified: %s\n", proj.Modified.Format("2006-01-02 15:04:05"))
	}

	fmt.Printf("\nLayers:\n")
	for _, l := range proj.Scene.Layers() {
		flags := ""
		if !l.Visible {
			flags += " hidden"
		}
		if l.Locked {
			flags += " locked"
		}
		fmt.Printf("  %-16s %-8s %s%s\n", l.Name, l.Color, l.LineType, flags)
	}

	counts := make(map[entity.Kind]int)
	for _, e := range proj.Scene.Entities() {
		counts[e.EntityKind()]++
	}
	fmt.Printf("\nEntities: %d\n", proj.Scene.Len())
	for _, kind := range []entity.Kind{
		entity.KindLine, entity.KindCircle, entity.KindArc,
		entity.KindPolyline, entity.KindRectangle,
	} {
		if counts[kind] > 0 {
			fmt.Printf("  %-10s %d\n", kind, counts[kind])
		}
	}

	if bounds, ok := proj.Scene.Bounds(); ok {
		fmt.Printf("\nExtents: (%.2f, %.2f) to (%.2f, %.2f)\n",
			bounds.X, bounds.Y, bounds.X+bounds.Width, bounds.Y+bounds.Height)
		fmt.Printf("Size: %.2f x %.2f\n", bounds.Width, bounds.Height)
	}

	vt := proj.ViewTransform()
	fmt.Printf("Saved view: %.0f%% at offset (%.1f, %.1f)\n",
		vt.Scale*100, vt.OffsetX, vt.OffsetY)
}

// Command scenegen writes a randomly generated drawing file, for
// exercising the editor with non-trivial scenes.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"

	"draft-editor/internal/entity"
	"draft-editor/internal/project"
	"draft-editor/internal/scene"
	"draft-editor/pkg/geometry"
)

func main() {
	out := flag.String("o", "generated.draft", "Output drawing path")
	count := flag.Int("n", 50, "Number of entities to generate")
	seed := flag.Int64("seed", 1, "Random seed")
	extent := flag.Float64("extent", 500, "Half-width of the square region to fill")
	flag.Parse()

	if *count <= 0 {
		fmt.Fprintln(os.Stderr, "entity count must be positive")
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))
	proj := project.New(project.NameFromPath(*out))
	proj.Scene.AddLayer(&scene.Layer{
		Name: "construction", Color: "#808080", Visible: true,
		LineType: entity.LineTypeDashed,
	})
	proj.Scene.AddLayer(&scene.Layer{
		Name: "detail", Color: "#ffcc00", Visible: true,
		LineType: entity.LineTypeSolid,
	})

	counts := make(map[entity.Kind]int)
	for i := 0; i < *count; i++ {
		e := randomEntity(rng, *extent)
		if i%5 == 0 {
			st := e.EntityStyle()
			st.Layer = "construction"
			e.SetStyle(st)
		} else if i%7 == 0 {
			st := e.EntityStyle()
			st.Layer = "detail"
			e.SetStyle(st)
		}
		proj.Scene.Add(e)
		counts[e.EntityKind()]++
	}

	if err := proj.Save(*out); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", *out, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s with %d entities:\n", *out, proj.Scene.Len())
	for kind, n := range counts {
		fmt.Printf("  %-10s %d\n", kind, n)
	}
	if bounds, ok := proj.Scene.Bounds(); ok {
		fmt.Printf("Bounds: (%.1f, %.1f) to (%.1f, %.1f)\n",
			bounds.X, bounds.Y, bounds.X+bounds.Width, bounds.Y+bounds.Height)
	}
}

func randomEntity(rng *rand.Rand, extent float64) entity.Entity {
	at := func() geometry.Point2D {
		return geometry.Point2D{
			X: (rng.Float64()*2 - 1) * extent,
			Y: (rng.Float64()*2 - 1) * extent,
		}
	}

	switch rng.Intn(5) {
	case 0:
		return entity.NewLine(at(), at())
	case 1:
		return entity.NewCircle(at(), 5+rng.Float64()*extent/10)
	case 2:
		start := rng.Float64() * 2 * math.Pi
		return entity.NewArc(at(), 5+rng.Float64()*extent/10,
			start, start+math.Pi/2+rng.Float64()*math.Pi)
	case 3:
		return entity.NewRectangle(geometry.NewRectFromPoints(at(), at()))
	default:
		n := 3 + rng.Intn(5)
		verts := make([]geometry.Point2D, n)
		base := at()
		for i := range verts {
			verts[i] = geometry.Point2D{
				X: base.X + (rng.Float64()*2-1)*extent/5,
				Y: base.Y + (rng.Float64()*2-1)*extent/5,
			}
		}
		return entity.NewPolyline(verts, rng.Intn(2) == 0)
	}
}

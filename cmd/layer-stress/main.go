// Command layer-stress measures render layer visibility and the layer audit
// on a world with many cameras and meshes on random layers.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"

	"github.com/plus3/layercams/ecs"
	"github.com/plus3/layercams/internal/engine"
	"github.com/plus3/layercams/render"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The number of mesh entities to create.")
	cameraCount := flag.Int("cameras", 8, "The number of cameras to create.")
	layerCount := flag.Int("layers", 8, "Entities and cameras pick from layers [0, n).")
	seed := flag.Int64("seed", 1, "Random seed for layer assignment.")
	profileMode := flag.String("profile", "", "Write a profile to the working directory: cpu, mem, block, mutex or trace.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	if *layerCount < 1 || *layerCount > render.TotalLayers {
		log.Fatalf("-layers must be in [1, %d]", render.TotalLayers)
	}
	if stop := startProfile(*profileMode); stop != nil {
		defer stop()
	}

	log.Println("Starting render layer stress test...")

	e := engine.New()
	rng := rand.New(rand.NewSource(*seed))

	log.Printf("Populating storage with %d meshes and %d cameras...\n", *entityCount, *cameraCount)
	Populate(e.Storage, rng, *entityCount, *cameraCount, *layerCount)
	log.Println("Population complete.")

	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Cameras:        *cameraCount,
		Layers:         *layerCount,
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			e.Update(float64(deltaTime) / float64(time.Second))
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))

			auditStart := time.Now()
			findings := engine.AuditRenderLayers(e.Storage)
			report.AuditTime.Samples = append(report.AuditTime.Samples, time.Since(auditStart))
			report.Findings = len(findings)

			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.AuditTime.Finalize()
	report.Visible = CountVisible(e.Storage)
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

// startProfile starts the named pkg/profile mode and returns its stop
// function, or nil for no profiling.
func startProfile(mode string) func() {
	var opt func(*profile.Profile)
	switch mode {
	case "":
		return nil
	case "cpu":
		opt = profile.CPUProfile
	case "mem":
		opt = profile.MemProfile
	case "block":
		opt = profile.BlockProfile
	case "mutex":
		opt = profile.MutexProfile
	case "trace":
		opt = profile.TraceProfile
	default:
		log.Fatalf("unknown -profile mode %q", mode)
	}
	return profile.Start(opt, profile.ProfilePath("."), profile.NoShutdownHook).Stop
}

// Populate spawns meshes and cameras, each on one random layer in [0, layers).
// Every tenth mesh also joins a second random layer.
func Populate(storage *ecs.Storage, rng *rand.Rand, meshes, cameras, layers int) {
	meshAssets := ecs.GetSingleton[render.Assets[render.Mesh]](storage)
	materials := ecs.GetSingleton[render.Assets[render.StandardMaterial]](storage)
	cube := meshAssets.Add(render.Cuboid(1, 1, 1))
	material := materials.Add(render.MaterialFromColor(render.White))

	for i := range meshes {
		layer := render.Layer(rng.Intn(layers))
		if i%10 == 0 {
			layer = layer.With(rng.Intn(layers))
		}
		bundle := render.NewPbrBundle(cube, material)
		bundle.Transform = render.FromXYZ(rng.Float32()*100-50, 0, rng.Float32()*100-50)
		storage.Spawn(bundle, layer)
	}

	for i := range cameras {
		camera := render.NewCamera3dBundle()
		camera.Camera.Order = i
		camera.Transform = render.FromXYZ(0, 10, 20).LookingAt(render.Vec3Zero, render.Vec3Y)
		storage.Spawn(camera, render.Layer(rng.Intn(layers)))
	}
}

// CountVisible sums VisibleEntities over every camera.
func CountVisible(storage *ecs.Storage) int {
	total := 0
	for item := range ecs.NewView[struct{ *render.VisibleEntities }](storage).Values() {
		total += item.VisibleEntities.Len()
	}
	return total
}

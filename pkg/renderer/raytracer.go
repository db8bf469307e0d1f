package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"runtime"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// MinHitDistance keeps scattered rays from re-hitting the surface they start on
const MinHitDistance = 0.001

var (
	skyWhite = core.NewVec3(1.0, 1.0, 1.0)
	skyBlue  = core.NewVec3(0.5, 0.7, 1.0)
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	Jitter          bool  // Randomize the sub-pixel offset of each sample (false = pixel centre)
	Seed            int64 // Base seed; each scan line derives its own generator from it
	Workers         int   // Number of parallel workers (0 = use CPU count)
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Jitter:          true,
		Seed:            42,
		Workers:         0,
	}
}

// Validate checks the configuration before rendering
func (c SamplingConfig) Validate() error {
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max depth must be positive, got %d", c.MaxDepth)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// Raytracer handles the rendering process. The world and camera are only
// read, so one Raytracer is shared by every worker.
type Raytracer struct {
	world  core.Hitable
	camera *Camera
	width  int
	height int
	config SamplingConfig
	logger core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(world core.Hitable, camera *Camera, width, height int, config SamplingConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		world:  world,
		camera: camera,
		width:  width,
		height: height,
		config: config,
		logger: logger,
	}
}

// Width returns the image width in pixels
func (rt *Raytracer) Width() int { return rt.width }

// Height returns the image height in pixels
func (rt *Raytracer) Height() int { return rt.height }

// BackgroundColor returns the sky gradient for a ray that escapes the scene.
// It blends white (looking down) to light blue (looking up).
func BackgroundColor(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	return skyWhite.Lerp(skyBlue, t)
}

// RayColor returns the color carried back along r. depth counts the bounces
// taken so far; at MaxDepth the path is cut off and contributes black.
func (rt *Raytracer) RayColor(r core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	hit, isHit := rt.world.Hit(r, MinHitDistance, math.Inf(1))
	if !isHit {
		return BackgroundColor(r)
	}

	if depth >= rt.config.MaxDepth {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	scatter, didScatter := hit.Material.Scatter(r, *hit, sampler)
	if !didScatter {
		return core.Vec3{X: 0, Y: 0, Z: 0} // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyVec(rt.RayColor(scatter.Scattered, depth+1, sampler))
}

// SamplePixel averages SamplesPerPixel estimates for pixel (i, j), with j
// counted from the bottom of the image. The result is linear (no gamma).
func (rt *Raytracer) SamplePixel(i, j int, sampler core.Sampler) core.Vec3 {
	colorAccum := core.Vec3{X: 0, Y: 0, Z: 0}

	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		du, dv := 0.5, 0.5
		if rt.config.Jitter {
			du, dv = sampler.Get1D(), sampler.Get1D()
		}

		s := (float64(i) + du) / float64(rt.width)
		t := (float64(j) + dv) / float64(rt.height)

		ray := rt.camera.GetRay(s, t, sampler)
		colorAccum = colorAccum.Add(rt.RayColor(ray, 0, sampler))
	}

	return colorAccum.Divide(float64(rt.config.SamplesPerPixel))
}

// RenderRow renders scan line j (counted from the bottom) into img, which is
// stored top row first. Rows touch disjoint parts of img.
func (rt *Raytracer) RenderRow(img *image.RGBA, j int, sampler core.Sampler) {
	y := rt.height - 1 - j
	for i := 0; i < rt.width; i++ {
		img.SetRGBA(i, y, ToRGBA(rt.SamplePixel(i, j, sampler)))
	}
}

// ToRGBA gamma-corrects a linear color (gamma 2) and quantizes it to 8 bits
func ToRGBA(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.Sqrt().Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255.99 * colorVec.X),
		G: uint8(255.99 * colorVec.Y),
		B: uint8(255.99 * colorVec.Z),
		A: 255,
	}
}

// numWorkers resolves the configured worker count
func (rt *Raytracer) numWorkers() int {
	if rt.config.Workers > 0 {
		return rt.config.Workers
	}
	return runtime.NumCPU()
}

// Render renders the full image in parallel, one scan line per task.
// Cancelling ctx stops rendering of rows that have not started yet.
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}
	if rt.width <= 0 || rt.height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("image size must be positive, got %dx%d", rt.width, rt.height)
	}

	startTime := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))

	pool := NewWorkerPool(rt, img, rt.numWorkers())
	rt.logger.Printf("Rendering %dx%d at %d samples per pixel (using %d workers)...\n",
		rt.width, rt.height, rt.config.SamplesPerPixel, pool.GetNumWorkers())

	pool.Start(ctx)
	for j := rt.height - 1; j >= 0; j-- {
		pool.SubmitTask(RowTask{Row: j, Seed: rt.config.Seed + int64(j)})
	}
	go pool.Stop()

	stats := newRenderStats(rt.width, rt.height, rt.config.SamplesPerPixel, pool.GetNumWorkers())
	var firstErr error
	logEvery := max(1, rt.height/10)

	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}
		stats.addRow(rt.width)
		if remaining := rt.height - stats.RowsRendered; remaining%logEvery == 0 && remaining > 0 {
			rt.logger.Printf("Scanlines remaining: %d\n", remaining)
		}
	}

	stats.Duration = time.Since(startTime)
	stats.finalize()

	if firstErr != nil {
		rt.logger.Printf("Rendering stopped after %d of %d rows: %v\n", stats.RowsRendered, rt.height, firstErr)
		return img, stats, firstErr
	}

	rt.logger.Printf("Render completed in %v (%d samples)\n", stats.Duration, stats.TotalSamples)
	return img, stats, nil
}

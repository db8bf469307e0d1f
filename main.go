package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/output"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// renderOptions holds everything the command line can change. Zero numeric
// values keep the scene's own defaults.
type renderOptions struct {
	Scene     string
	Width     int
	Samples   int
	MaxDepth  int
	Workers   int
	Seed      int64
	NoJitter  bool
	Output    string
	Thumbnail uint
	Quiet     bool
	List      bool
	S3        output.S3Config
}

func newApp(action func(opts renderOptions) error) *cli.App {
	app := cli.NewApp()
	app.Name = "sphere-raytracer"
	app.Usage = "render sphere scenes with a Monte Carlo path tracer"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "scene",
			Value:  "default",
			Usage:  "built-in scene to render (see --list)",
			EnvVar: "RT_SCENE",
		},
		cli.BoolFlag{
			Name:  "list",
			Usage: "list the built-in scenes and exit",
		},
		cli.IntFlag{
			Name:   "width",
			Usage:  "image width in pixels; height follows the camera aspect ratio (0 = scene default)",
			EnvVar: "RT_WIDTH",
		},
		cli.IntFlag{
			Name:   "samples",
			Usage:  "samples per pixel (0 = scene default)",
			EnvVar: "RT_SAMPLES",
		},
		cli.IntFlag{
			Name:   "max-depth",
			Usage:  "maximum bounces per path (0 = scene default)",
			EnvVar: "RT_MAX_DEPTH",
		},
		cli.IntFlag{
			Name:   "workers",
			Usage:  "parallel workers (0 = number of CPUs)",
			EnvVar: "RT_WORKERS",
		},
		cli.Int64Flag{
			Name:   "seed",
			Value:  renderer.DefaultSamplingConfig().Seed,
			Usage:  "random seed for sampling and seeded scenes",
			EnvVar: "RT_SEED",
		},
		cli.BoolFlag{
			Name:   "no-jitter",
			Usage:  "sample pixel centres instead of random sub-pixel offsets",
			EnvVar: "RT_NO_JITTER",
		},
		cli.StringFlag{
			Name:   "out",
			Usage:  "output file (.ppm, .png, .jpg); default output/<scene>/render_<timestamp>.png",
			EnvVar: "RT_OUT",
		},
		cli.UintFlag{
			Name:   "thumbnail",
			Usage:  "also write a thumbnail this many pixels wide (0 = none)",
			EnvVar: "RT_THUMBNAIL",
		},
		cli.BoolFlag{
			Name:   "quiet",
			Usage:  "suppress progress output",
			EnvVar: "RT_QUIET",
		},
		cli.StringFlag{
			Name:   "s3-bucket",
			Usage:  "upload the rendered files to this bucket",
			EnvVar: "RT_S3_BUCKET",
		},
		cli.StringFlag{
			Name:   "s3-region",
			Value:  "us-east-1",
			Usage:  "bucket region",
			EnvVar: "RT_S3_REGION",
		},
		cli.StringFlag{
			Name:   "s3-endpoint",
			Usage:  "S3-compatible endpoint (empty for AWS)",
			EnvVar: "RT_S3_ENDPOINT",
		},
		cli.StringFlag{
			Name:   "s3-prefix",
			Usage:  "key prefix for uploaded files",
			EnvVar: "RT_S3_PREFIX",
		},
		cli.StringFlag{
			Name:   "s3-acl",
			Usage:  "canned ACL for uploaded files, e.g. public-read",
			EnvVar: "RT_S3_ACL",
		},
	}
	app.Action = func(c *cli.Context) error {
		return action(optionsFromContext(c))
	}
	return app
}

func optionsFromContext(c *cli.Context) renderOptions {
	return renderOptions{
		Scene:     c.String("scene"),
		Width:     c.Int("width"),
		Samples:   c.Int("samples"),
		MaxDepth:  c.Int("max-depth"),
		Workers:   c.Int("workers"),
		Seed:      c.Int64("seed"),
		NoJitter:  c.Bool("no-jitter"),
		Output:    c.String("out"),
		Thumbnail: c.Uint("thumbnail"),
		Quiet:     c.Bool("quiet"),
		List:      c.Bool("list"),
		S3: output.S3Config{
			AccessKey: os.Getenv("RT_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("RT_S3_SECRET_KEY"),
			Endpoint:  c.String("s3-endpoint"),
			Region:    c.String("s3-region"),
			Bucket:    c.String("s3-bucket"),
			Prefix:    c.String("s3-prefix"),
			ACL:       c.String("s3-acl"),
		},
	}
}

// createScene looks up the requested scene and applies the command line
// overrides to its defaults
func createScene(opts renderOptions) (*scene.Scene, error) {
	s, err := scene.Lookup(opts.Scene, opts.Seed)
	if err != nil {
		return nil, err
	}

	if opts.Width < 0 || opts.Samples < 0 || opts.MaxDepth < 0 || opts.Workers < 0 {
		return nil, fmt.Errorf("width, samples, max-depth and workers must not be negative")
	}
	if opts.Width > 0 {
		s.Width = opts.Width
	}
	if opts.Samples > 0 {
		s.SamplingConfig.SamplesPerPixel = opts.Samples
	}
	if opts.MaxDepth > 0 {
		s.SamplingConfig.MaxDepth = opts.MaxDepth
	}
	s.SamplingConfig.Workers = opts.Workers
	s.SamplingConfig.Seed = opts.Seed
	s.SamplingConfig.Jitter = !opts.NoJitter

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// defaultOutputPath returns output/<scene>/render_<timestamp>.png
func defaultOutputPath(sceneName string, now time.Time) string {
	return filepath.Join("output", sceneName, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

func listScenes() {
	fmt.Println("Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Printf("  %-12s %s\n", info.Name, info.Description)
	}
}

func render(ctx context.Context, opts renderOptions, logger core.Logger) error {
	selectedScene, err := createScene(opts)
	if err != nil {
		return err
	}
	logger.Printf("Using %s scene (%d objects)\n", selectedScene.Name, selectedScene.GetPrimitiveCount())

	raytracer := selectedScene.NewRaytracer(logger)
	img, stats, err := raytracer.Render(ctx)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	logger.Printf("%.0f samples/sec on %d workers\n", stats.SamplesPerSec, stats.Workers)

	filename := opts.Output
	if filename == "" {
		filename = defaultOutputPath(selectedScene.Name, time.Now())
	}
	if err := output.SaveImage(filename, img); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", filename)
	files := []string{filename}

	if opts.Thumbnail > 0 {
		thumbName := output.ThumbnailPath(filename, opts.Thumbnail)
		if err := output.SaveImage(thumbName, output.Thumbnail(img, opts.Thumbnail)); err != nil {
			return err
		}
		logger.Printf("Thumbnail saved as %s\n", thumbName)
		files = append(files, thumbName)
	}

	if opts.S3.Bucket == "" {
		return nil
	}
	uploader, err := output.NewUploader(opts.S3, logger)
	if err != nil {
		return err
	}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s for upload: %w", file, err)
		}
		if err := uploader.Upload(ctx, path.Join(selectedScene.Name, filepath.Base(file)), data); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	// A missing .env file is fine; flags and the environment still apply
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := newApp(func(opts renderOptions) error {
		if opts.List {
			listScenes()
			return nil
		}

		var logger core.Logger = renderer.NewDefaultLogger()
		if opts.Quiet {
			logger = core.NopLogger{}
		}
		logger.Printf("Starting sphere raytracer...\n")
		return render(ctx, opts, logger)
	})

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

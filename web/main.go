package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/web/server"
)

func main() {
	_ = godotenv.Load()

	app := cli.NewApp()
	app.Name = "sphere-raytracer-web"
	app.Usage = "serve renders over HTTP with server-sent events"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:   "port",
			Value:  8080,
			Usage:  "port to serve on",
			EnvVar: "RT_PORT",
		},
	}
	app.Action = func(c *cli.Context) error {
		logger := renderer.NewDefaultLogger()
		logger.Printf("Sphere Raytracer Web Server\n")
		logger.Printf("Try http://localhost:%d/api/render?scene=default&width=200&samples=10\n", c.Int("port"))
		return server.NewServer(c.Int("port"), logger).Start()
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting server: %v\n", err)
		os.Exit(1)
	}
}

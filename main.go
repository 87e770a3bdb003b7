package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/arnolddental/pagegen/internal/generate"
	"github.com/arnolddental/pagegen/internal/health"
	"github.com/arnolddental/pagegen/internal/serve"
	"github.com/arnolddental/pagegen/internal/sitemap"
)

func main() {
	// A missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "pagegen",
		Usage: "programmatic service x location page generation for the practice site",
		Commands: []*cli.Command{
			{
				Name:   "generate",
				Usage:  "plan the pair matrix, pre-render pages and write the static param list",
				Action: generate.Action,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write the param list to `PATH` instead of stdout"},
					&cli.StringFlag{Name: "mode", Usage: "generation strategy: priority, staged or full (overrides GENERATION_MODE)"},
					&cli.IntFlag{Name: "cap", Usage: "hard cap on pre-rendered pairs", Value: 500},
					&cli.IntFlag{Name: "workers", Usage: "concurrent pair resolutions"},
					&cli.BoolFlag{Name: "verbose", Usage: "debug logging"},
					&cli.BoolFlag{Name: "quiet", Usage: "errors only"},
				},
			},
			{
				Name:   "sitemap",
				Usage:  "generate the sitemap for indexable pre-built pages",
				Action: sitemap.Action,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write the sitemap to `PATH` instead of stdout"},
					&cli.StringFlag{Name: "base-url", Usage: "canonical site base `URL`"},
					&cli.IntFlag{Name: "max", Usage: "maximum sitemap URLs"},
					&cli.IntFlag{Name: "cap", Usage: "hard cap on rendered pairs", Value: 500},
					&cli.BoolFlag{Name: "content-only", Usage: "only index pages meeting the word-count floor"},
					&cli.BoolFlag{Name: "no-content-only", Usage: "disable the word-count rule"},
					&cli.BoolFlag{Name: "priority-only", Usage: "only index priority services"},
					&cli.BoolFlag{Name: "no-priority-only", Usage: "disable the priority-service rule"},
					&cli.BoolFlag{Name: "allowlist-only", Usage: "only index allow-listed suburbs"},
					&cli.BoolFlag{Name: "no-allowlist-only", Usage: "disable the suburb allowlist rule"},
					&cli.BoolFlag{Name: "require-local-proof", Usage: "only index locations with testimonials or unique local content"},
					&cli.BoolFlag{Name: "no-require-local-proof", Usage: "disable the local-proof rule"},
					&cli.BoolFlag{Name: "verbose", Usage: "print per-pair exclusion reasons"},
				},
			},
			{
				Name:   "serve",
				Usage:  "serve pages over HTTP with lazy generation and stale-while-revalidate",
				Action: serve.Action,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "listen `ADDR`", Value: ":8080"},
					&cli.BoolFlag{Name: "verbose", Usage: "debug logging"},
					&cli.BoolFlag{Name: "quiet", Usage: "errors only"},
				},
			},
			{
				Name:   "health",
				Usage:  "check content source reachability",
				Action: health.Action,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "quiet", Usage: "errors only"},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

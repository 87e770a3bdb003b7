// Package health implements the content-source health probe command.
package health

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/arnolddental/pagegen/internal/common"
	"github.com/arnolddental/pagegen/models"
	"github.com/arnolddental/pagegen/pkg/catalog"
)

func Action(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"), false)
	cfg := models.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	client := catalog.NewClient(cfg.ContentAPIURL, cfg.ContentTimeout, logger)
	if !client.Health(ctx) {
		fmt.Fprintf(os.Stderr, "content source unreachable: %s\n", cfg.ContentAPIURL)
		os.Exit(1)
	}
	fmt.Println("ok")
	return nil
}

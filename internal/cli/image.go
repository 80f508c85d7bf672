package cli

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/runnerr0/daybook/internal/images"
)

// imageJSON is the JSON output shape for the image command.
type imageJSON struct {
	Query          string `json:"query"`
	Image          string `json:"image,omitempty"` // base64
	Found          bool   `json:"found"`
	RemainingQuota int    `json:"remaining_quota"`
}

// Execute implements the go-flags Commander interface for ImageCommand.
func (c *ImageCommand) Execute(args []string) error {
	if c.Query == "" {
		return fmt.Errorf("--query is required for image command")
	}

	a, err := openApp(c.globals)
	if err != nil {
		return err
	}

	source, err := openImageSource(a.cfg, a.log)
	if err != nil {
		return err
	}

	return c.executeWithSource(source)
}

// executeWithSource runs the image logic against a provided source (used by tests).
func (c *ImageCommand) executeWithSource(source *images.Source) error {
	image, err := source.ImageFor(context.Background(), c.Query)
	if err != nil {
		return err
	}

	remaining := source.RemainingQuota()
	if remaining <= images.LowQuotaThreshold {
		fmt.Fprintf(os.Stderr, "Warning: only %d image searches left today.\n", remaining)
	}

	if c.globals.JSON {
		out := imageJSON{
			Query:          c.Query,
			Image:          image,
			Found:          image != "",
			RemainingQuota: remaining,
		}
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(out)
	}

	if image == "" {
		if remaining <= 0 {
			fmt.Println("No image: daily search quota exhausted.")
		} else {
			fmt.Println("No image found.")
		}
		return nil
	}

	if c.Output != "" {
		data, err := base64.StdEncoding.DecodeString(image)
		if err != nil {
			return fmt.Errorf("decode image: %w", err)
		}
		if err := os.WriteFile(c.Output, data, 0644); err != nil {
			return fmt.Errorf("write image file: %w", err)
		}
		fmt.Printf("Wrote image to %s\n", c.Output)
		return nil
	}

	fmt.Println(image)
	return nil
}

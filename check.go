package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chengchew0204/Sunique-Assemble-Display/internal/graph"
	"github.com/chengchew0204/Sunique-Assemble-Display/internal/schedule"
)

var (
	flagCheckJSON     bool
	flagCheckDownload bool
)

// newCheckCmd builds the check command: one pipeline pass from the CLI,
// reporting where the schedule resolved without running the server.
// Deploy scripts use it to verify credentials and store reachability.
func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Resolve the schedule once and report where it was found",
		RunE:  runCheck,
	}

	cmd.Flags().BoolVar(&flagCheckJSON, "json", false, "output in JSON format")
	cmd.Flags().BoolVar(&flagCheckDownload, "download", false, "also download the content and report its size")

	return cmd
}

type checkOutput struct {
	Strategy string `json:"strategy"`
	Site     string `json:"site"`
	DriveID  string `json:"driveId"`
	ItemID   string `json:"itemId"`
	Bytes    int    `json:"bytes,omitempty"`
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := buildLogger(cfg)

	httpClient := newHTTPClient(cfg)
	creds := graph.NewCredentialProvider(
		graph.TokenURL(cfg.TenantID), cfg.ClientID, cfg.ClientSecret, httpClient, logger)
	pipeline := schedule.New(cfg, creds, httpClient, logger)

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout())
	defer cancel()

	var out checkOutput

	if flagCheckDownload {
		content, err := pipeline.Run(ctx, logger)
		if err != nil {
			return err
		}

		out = checkOutput{
			Strategy: content.Resolution.Strategy,
			Site:     content.Resolution.Site,
			DriveID:  content.Resolution.Handle.DriveID,
			ItemID:   content.Resolution.Handle.ItemID,
			Bytes:    len(content.Bytes),
		}
	} else {
		res, err := pipeline.Resolve(ctx, logger)
		if err != nil {
			return err
		}

		out = checkOutput{
			Strategy: res.Strategy,
			Site:     res.Site,
			DriveID:  res.Handle.DriveID,
			ItemID:   res.Handle.ItemID,
		}
	}

	return writeCheckOutput(cmd.OutOrStdout(), out, flagCheckJSON)
}

func writeCheckOutput(w io.Writer, out checkOutput, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(out)
	}

	fmt.Fprintf(w, "strategy: %s\nsite: %s\ndrive: %s\nitem: %s\n",
		out.Strategy, out.Site, out.DriveID, out.ItemID)

	if out.Bytes > 0 {
		fmt.Fprintf(w, "bytes: %d\n", out.Bytes)
	}

	return nil
}

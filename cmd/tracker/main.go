// Command tracker is the thin presentation collaborator over the tracking
// engine. It parses arguments, calls the service boundary, and prints JSON;
// no business logic lives here.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"numtrack_backend/internal/tracker"
	"numtrack_backend/internal/tracker/transport"
	"numtrack_backend/platform/config"
	"numtrack_backend/platform/db"
	"numtrack_backend/platform/logger"
	"numtrack_backend/platform/validator"
)

var (
	dbPath string
	region string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "tracker",
		Short:         "Validate, enrich, and track international phone numbers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (overrides TRACKER_DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&region, "region", "", "default region for local-format numbers, e.g. NG")

	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(infoCmd())
	rootCmd.AddCommand(enrichedCmd())
	rootCmd.AddCommand(trackCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(removeCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(clearCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type app struct {
	module *tracker.Module
	log    *logger.Logger
	close  func()
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}

	log := logger.New(cfg.Env)

	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	module, err := tracker.NewModule(conn, cfg, validator.New(), log)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &app{module: module, log: log, close: func() { conn.Close() }}, nil
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [number]",
		Short: "Check a number against its national numbering plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			resp, err := a.module.Service().Validate(context.Background(), args[0], region)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info [number]",
		Short: "Show carrier, region, timezone, and line type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			resp, err := a.module.Service().Info(context.Background(), args[0], region)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
}

func enrichedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enriched [number]",
		Short: "Show metadata plus heuristic owner and location estimates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			resp, err := a.module.Service().EnrichedInfo(context.Background(), args[0], region)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
}

func trackCmd() *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "track [number]",
		Short: "Validate, enrich, and persist a number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			resp, err := a.module.Service().Track(context.Background(), transport.TrackRequest{
				PhoneNumber:   args[0],
				Notes:         notes,
				DefaultRegion: region,
			})
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "notes to store with the record")
	return cmd
}

func listCmd() *cobra.Command {
	var page, pageSize int
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked numbers, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			resp, err := a.module.Service().List(context.Background(), transport.ListRequest{
				Page:     page,
				PageSize: pageSize,
				Search:   search,
			})
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number (1-indexed)")
	cmd.Flags().IntVar(&pageSize, "page-size", 50, "records per page")
	cmd.Flags().StringVar(&search, "search", "", "filter across number, carrier, region, and notes")
	return cmd
}

func removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [number]",
		Short: "Delete a tracked number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.module.Service().Remove(context.Background(), args[0], region); err != nil {
				return err
			}
			fmt.Println("deleted", args[0])
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate statistics over the tracked set",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			resp, err := a.module.Service().Stats(context.Background())
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
}

func exportCmd() *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all tracked numbers",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			blob, err := a.module.Service().ExportAll(context.Background(), format)
			if err != nil {
				return err
			}

			if out == "" {
				fmt.Print(string(blob))
				return nil
			}
			if err := os.WriteFile(out, blob, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Println("exported to", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "export format: csv or json")
	cmd.Flags().StringVar(&out, "out", "", "output file (stdout when empty)")
	return cmd
}

func importCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import numbers from a previous export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			blob, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}

			if format == "" {
				format = strings.TrimPrefix(filepath.Ext(args[0]), ".")
			}

			rows, err := a.module.Service().DecodeRows(format, blob)
			if err != nil {
				return err
			}

			resp, err := a.module.Service().ImportBatch(context.Background(), rows)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "import format: csv or json (default: file extension)")
	return cmd
}

func clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every tracked number",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.module.Service().ClearAll(context.Background()); err != nil {
				return err
			}
			fmt.Println("all records cleared")
			return nil
		},
	}
}

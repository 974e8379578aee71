package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/xelth-com/eckslotgo/internal/address"
	"github.com/xelth-com/eckslotgo/internal/buildinfo"
	"github.com/xelth-com/eckslotgo/internal/config"
	"github.com/xelth-com/eckslotgo/internal/database"
	"github.com/xelth-com/eckslotgo/internal/provisioning"
	"github.com/xelth-com/eckslotgo/internal/repository"
	"github.com/xelth-com/eckslotgo/internal/services/export"
	"github.com/xelth-com/eckslotgo/internal/services/printer"
	"github.com/xelth-com/eckslotgo/internal/utils"
)

// ParsedAddress is the output of the parse command
type ParsedAddress struct {
	Input    string       `json:"input" yaml:"input"`
	Address  string       `json:"address" yaml:"address"`
	Cell     int          `json:"cell" yaml:"cell"`
	Aisle    int          `json:"aisle" yaml:"aisle"`
	Position int          `json:"position" yaml:"position"`
	Level    int          `json:"level" yaml:"level"`
	Side     address.Side `json:"side" yaml:"side"`
	Picking  bool         `json:"picking" yaml:"picking"`
}

func newParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse ADDRESS...",
		Short: "Validate and normalise addresses (short forms accepted)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed := make([]ParsedAddress, 0, len(args))
			for _, raw := range args {
				a, err := address.Parse(raw)
				if err != nil {
					return err
				}
				parsed = append(parsed, ParsedAddress{
					Input:    raw,
					Address:  a.String(),
					Cell:     a.Cell.Int(),
					Aisle:    a.Aisle.Int(),
					Position: a.Position.Int(),
					Level:    a.Level.Int(),
					Side:     a.Side(),
					Picking:  a.Level.IsPicking(),
				})
			}
			return render(cmd.OutOrStdout(), output, parsed, func(w io.Writer) error {
				for _, p := range parsed {
					fmt.Fprintf(w, "%s\t%s side, level %02d", p.Address, p.Side, p.Level)
					if p.Picking {
						fmt.Fprint(w, " (picking)")
					}
					fmt.Fprintln(w)
				}
				return nil
			})
		},
	}
}

func newFormatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "format CELL AISLE POSITION LEVEL",
		Short: "Build a canonical address from its numbers",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			var n [4]int
			for i, arg := range args {
				v, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("argument %d: %q is not a number", i+1, arg)
				}
				n[i] = v
			}
			a, err := address.New(n[0], n[1], n[2], n[3])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), address.Format(a))
			return nil
		},
	}
}

func newPlanCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "plan -f CELL.yaml",
		Short: "Preview the aisles, bays and locations a cell configuration produces",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCellConfig(file)
			if err != nil {
				return err
			}
			plan, err := provisioning.BuildPlan(cfg)
			if err != nil {
				return err
			}
			summary := plan.Summary()
			return render(cmd.OutOrStdout(), output, summary, func(w io.Writer) error {
				return writeSummary(w, summary)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Cell configuration file (YAML or JSON, - for stdin)")
	cmd.MarkFlagRequired("file")
	return cmd
}

func writeSummary(w io.Writer, s provisioning.Summary) error {
	_, err := fmt.Fprintf(w, "Cell %d\n%s\nLevels: %s\nAisle sides: %d\nBays: %d\nLocations: %d\nOdd positions: %d-%d, even positions: %d-%d\n",
		s.Cell, s.Aisles, s.Levels, s.AisleSides, s.Bays, s.Locations,
		s.Ranges.Odd.Start, s.Ranges.Odd.End, s.Ranges.Even.Start, s.Ranges.Even.End)
	return err
}

func newProvisionCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "provision -f CELL.yaml",
		Short: "Create a cell with all its aisles, bays and locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cellCfg, err := loadCellConfig(file)
			if err != nil {
				return err
			}
			cfg, db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			progress := provisioning.ProgressFunc(func(p provisioning.Progress) {
				if p.Stage == provisioning.StageLocations {
					fmt.Fprintf(cmd.ErrOrStderr(), "\r📦 %d/%d locations", p.Done, p.Total)
				}
			})
			result, err := provisioning.NewProvisioner(
				repository.NewGormStore(db.DB),
				provisioning.WithBatchSize(cfg.Provisioning.BatchSize),
				provisioning.WithProgress(progress),
			).Provision(ctx, cellCfg)
			fmt.Fprintln(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), output, result, func(w io.Writer) error {
				fmt.Fprintf(w, "✅ Run %s finished in %s (%d batches)\n", result.RunID, result.Duration.Round(time.Millisecond), result.Batches)
				return writeSummary(w, result.Summary)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Cell configuration file (YAML or JSON, - for stdin)")
	cmd.MarkFlagRequired("file")
	return cmd
}

func newExportCommand() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export CELL",
		Short: "Write a cell and its locations to an Excel workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid cell number %q", args[0])
			}
			cfg, db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			cell, err := repository.NewCellRepository(db.DB).FindByNumber(ctx, number)
			if err != nil {
				return err
			}
			rows, err := repository.NewLocationRepository(db.DB).Addresses(ctx, number)
			if err != nil {
				return err
			}

			if out == "" {
				out = fmt.Sprintf("cell-%d.xlsx", number)
			}
			var buf bytes.Buffer
			if err := export.WriteCellWorkbook(&buf, *cell, rows, address.NewFormatCache(cfg.Provisioning.AddressCacheSize)); err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ %d locations written to %s\n", len(rows), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default cell-N.xlsx)")
	return cmd
}

func newLabelsCommand() *cobra.Command {
	var (
		out   string
		aisle int
		level int
	)
	cmd := &cobra.Command{
		Use:   "labels CELL",
		Short: "Render QR labels for a cell as PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid cell number %q", args[0])
			}
			cfg, db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			rows, err := repository.NewLocationRepository(db.DB).Addresses(cmd.Context(), number)
			if err != nil {
				return err
			}
			filtered := rows[:0]
			for _, row := range rows {
				if aisle > 0 && row.Aisle != aisle {
					continue
				}
				if level >= 0 && row.Level != level {
					continue
				}
				filtered = append(filtered, row)
			}

			labels, err := printer.LabelsFromRows(filtered, address.NewFormatCache(cfg.Provisioning.AddressCacheSize))
			if err != nil {
				return err
			}
			layout := printer.DefaultLayout()
			if cfg.InstanceSuffix != "" {
				layout.InstanceSuffix = cfg.InstanceSuffix
			}
			pdf, err := printer.GenerateLabelsPDF(labels, layout)
			if err != nil {
				return err
			}

			if out == "" {
				out = fmt.Sprintf("labels-cell-%d.pdf", number)
			}
			if err := os.WriteFile(out, pdf, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ %d labels written to %s\n", len(labels), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default labels-cell-N.pdf)")
	cmd.Flags().IntVar(&aisle, "aisle", 0, "Only this aisle")
	cmd.Flags().IntVar(&level, "level", -1, "Only this level")
	return cmd
}

func newTokenCommand() *cobra.Command {
	var (
		subject string
		role    string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the API's mutating routes (uses JWT_SECRET)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			token, err := utils.GenerateToken(subject, role, cfg.JWTSecret, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "slotctl", "Token subject")
	cmd.Flags().StringVar(&role, "role", "admin", "Token role")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := buildinfo.Current()
			return render(cmd.OutOrStdout(), output, info, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "slotctl %s (built %s)\n", info.CommitHash, info.BuildTime)
				return err
			})
		},
	}
}

// openDB connects with the environment configuration and migrates the schema
func openDB() (*config.Config, *database.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, nil, err
	}
	log.Printf("✅ Connected to %s database", cfg.Database.Driver)
	return cfg, db, nil
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bitfantasy/toolcat/internal/catalog/ingest"
	"github.com/bitfantasy/toolcat/internal/catalog/repository"
	"github.com/bitfantasy/toolcat/internal/catalog/schema"
	"github.com/bitfantasy/toolcat/internal/catalog/service"
	"github.com/bitfantasy/toolcat/internal/catalog/strategy"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the catalog tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lc := repository.NewLifecycle(a.db, a.logger)
			if err := lc.Migrate(cmd.Context()); err != nil {
				return err
			}
			if missing := lc.MissingTables(cmd.Context(), a.cfg.Catalog.ExpectedTables); len(missing) > 0 {
				return fmt.Errorf("tables still missing after migration: %s", strings.Join(missing, ", "))
			}
			return nil
		},
	}
}

func (a *app) loadCmd() *cobra.Command {
	var sheet, comma, encoding string
	cmd := &cobra.Command{
		Use:   "load FILE",
		Short: "Load a wide normative table (.csv or .xlsx) into the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			var table *ingest.Table
			switch strings.ToLower(filepath.Ext(args[0])) {
			case ".xlsx":
				table, err = ingest.ReadXLSX(f, sheet)
			default:
				ingestCfg := a.cfg.Ingest
				if cmd.Flags().Changed("comma") {
					ingestCfg.Comma = comma
				}
				if cmd.Flags().Changed("encoding") {
					ingestCfg.Encoding = encoding
				}
				table, err = ingest.ReadCSV(f, ingest.OptionsFromConfig(ingestCfg))
			}
			if err != nil {
				return err
			}

			var report *ingest.Report
			err = repository.Sessions().WithSession("", func(db *gorm.DB) error {
				report, err = ingest.NewLoader(db, a.cache, a.logger).Load(cmd.Context(), table)
				return err
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "", "sheet to read from an .xlsx file (default: first)")
	cmd.Flags().StringVar(&comma, "comma", ",", "CSV field separator")
	cmd.Flags().StringVar(&encoding, "encoding", "utf-8", "CSV encoding: utf-8 or windows-1251")
	return cmd
}

// queryFlags are shared by find and export.
type queryFlags struct {
	ids        []int64
	marking    string
	exact      bool
	groups     []string
	standards  []string
	ignoreCase bool
	limit      int
}

func (q *queryFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Int64SliceVar(&q.ids, "id", nil, "tool ids (by_id)")
	cmd.Flags().StringVar(&q.marking, "marking", "", "marking or marking fragment")
	cmd.Flags().BoolVar(&q.exact, "exact", false, "match the marking exactly")
	cmd.Flags().StringSliceVar(&q.groups, "group", nil, "tool groups, e.g. Фреза,Сверло")
	cmd.Flags().StringSliceVar(&q.standards, "standard", nil, "standards, e.g. \"ГОСТ 886-77\"")
	cmd.Flags().BoolVar(&q.ignoreCase, "ignore-case", false, "case-insensitive matching")
	cmd.Flags().IntVar(&q.limit, "limit", 0, "maximum number of results (0: configured default)")
}

func (q *queryFlags) args() strategy.Args {
	return strategy.Args{
		ToolIDs:         q.ids,
		Marking:         q.marking,
		ExactMatch:      q.exact,
		Groups:          q.groups,
		Standards:       q.standards,
		CaseInsensitive: q.ignoreCase,
	}
}

func (a *app) finderOptions() []service.Option {
	return []service.Option{
		service.WithDefaultLimit(a.cfg.Catalog.DefaultLimit),
		service.WithLogger(a.logger),
	}
}

// schemaView is the printed form of a schema.
type schemaView struct {
	Name   string         `json:"name"`
	Fields map[string]any `json:"fields"`
}

func view(s schema.Schema) schemaView {
	return schemaView{Name: s.Name(), Fields: s.ToMap()}
}

func (a *app) findCmd() *cobra.Command {
	var q queryFlags
	var format string
	cmd := &cobra.Command{
		Use:   "find STRATEGY",
		Short: "Run a named search and print the assembled schemas",
		Long: "Strategies: " + strings.Join(strategy.NewFactory().Names(), ", ") + ".\n" +
			"Formats: list, marking, ordinal.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db := repository.Sessions().GetSession("")
			ctx, out := cmd.Context(), cmd.OutOrStdout()

			switch format {
			case "list":
				res, err := service.NewListFinder(db, a.finderOptions()...).Find(ctx, args[0], q.limit, q.args())
				if err != nil {
					return err
				}
				views := make([]schemaView, len(res))
				for i, s := range res {
					views[i] = view(s)
				}
				return writeJSON(out, views)
			case "marking":
				res, err := service.NewFinder[map[string]schema.Schema](db, service.MarkingFormatter{}, a.finderOptions()...).
					Find(ctx, args[0], q.limit, q.args())
				if err != nil {
					return err
				}
				views := make(map[string]schemaView, len(res))
				for k, s := range res {
					views[k] = view(s)
				}
				return writeJSON(out, views)
			case "ordinal":
				res, err := service.NewFinder[map[int]schema.Schema](db, service.OrdinalFormatter{}, a.finderOptions()...).
					Find(ctx, args[0], q.limit, q.args())
				if err != nil {
					return err
				}
				views := make(map[int]schemaView, len(res))
				for k, s := range res {
					views[k] = view(s)
				}
				return writeJSON(out, views)
			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}
	q.bind(cmd)
	cmd.Flags().StringVar(&format, "format", "list", "result shape: list, marking or ordinal")
	return cmd
}

func (a *app) valuesCmd() *cobra.Command {
	var groups []string
	cmd := &cobra.Command{
		Use:   "values COLUMN",
		Short: "List the distinct values of a tools column (marking, group, standard)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lookup := service.NewValueLookup(repository.Sessions().GetSession(""), a.cache, a.logger)
			values, err := lookup.Values(cmd.Context(), args[0], groups...)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), values)
		},
	}
	cmd.Flags().StringSliceVar(&groups, "group", nil, "restrict to these tool groups")
	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	var q queryFlags
	var out string
	cmd := &cobra.Command{
		Use:   "export STRATEGY",
		Short: "Run a named search and write the schemas to an .xlsx workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return errors.New("--out is required")
			}
			finder := service.NewListFinder(repository.Sessions().GetSession(""), a.finderOptions()...)
			res, err := finder.Find(cmd.Context(), args[0], q.limit, q.args())
			if err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := service.ExportXLSX(res, f); err != nil {
				return err
			}
			a.logger.Info("catalog exported", zap.String("file", out), zap.Int("tools", len(res)))
			return nil
		},
	}
	q.bind(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "destination .xlsx file")
	return cmd
}

func (a *app) clearCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Truncate every catalog table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("refusing to clear the catalog without --yes")
			}
			if err := repository.NewLifecycle(a.db, a.logger).Clear(cmd.Context()); err != nil {
				return err
			}
			return a.cache.Purge(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm truncation")
	return cmd
}

package main

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.alis.build/alog"
	"go.alis.build/criteria"
	"go.alis.build/criteria/celfilter"
	"go.alis.build/criteria/pgquery"
	"go.alis.build/criteria/querystring"
	"go.alis.build/criteria/spannerquery"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	formatJSON     = "json"
	formatCEL      = "cel"
	formatSpanner  = "spanner"
	formatPostgres = "postgres"
)

type convertFlags struct {
	config string
	format string
	table  string
	debug  bool
}

func newConvertCmd() *cobra.Command {
	flags := &convertFlags{}
	cmd := &cobra.Command{
		Use:   "convert [query]",
		Short: "Convert a query string into query criteria",
		Long: `Convert decodes a raw query string and prints the derived criteria.

Formats:
  json      filter, orderings, firstResult and maxResults
  cel       CEL filter and order_by
  spanner   parameterised Spanner SELECT (requires --table)
  postgres  Postgres SELECT with named arguments (requires --table)

Examples:
  criteria convert 'name=Alice&age>=18'
  criteria convert --format postgres --table users 'tag!=a&tag!=b&-max=5'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, flags, args[0])
		},
	}

	cmd.Flags().StringVarP(&flags.config, "config", "c", "", "YAML converter configuration file")
	cmd.Flags().StringVarP(&flags.format, "format", "f", formatJSON, "output format: json, cel, spanner, postgres")
	cmd.Flags().StringVarP(&flags.table, "table", "t", "", "table name for the spanner and postgres formats")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	return cmd
}

func runConvert(cmd *cobra.Command, flags *convertFlags, raw string) error {
	ctx := cmd.Context()
	if flags.debug {
		alog.SetLevel(alog.LevelDebug)
	}

	converter, err := loadConverter(flags.config)
	if err != nil {
		return err
	}

	params, err := querystring.Parse(raw)
	if err != nil {
		return err
	}
	alog.Debugf(ctx, "decoded %d query parameters", params.Len())

	q := converter.Convert(params)
	alog.Debugf(ctx, "derived %d comparisons and %d orderings", q.Filter().Len(), q.Orderings().Len())

	return render(cmd.OutOrStdout(), q, flags)
}

func loadConverter(path string) (*criteria.Converter, error) {
	if path == "" {
		return criteria.NewConverter()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := criteria.ParseConfig(data)
	if err != nil {
		return nil, err
	}
	return criteria.NewConverter(criteria.WithConfig(cfg))
}

func render(w io.Writer, q *criteria.Query, flags *convertFlags) error {
	switch flags.format {
	case formatJSON:
		data, err := json.MarshalIndent(q, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case formatCEL:
		filter, err := celfilter.Filter(q)
		if err != nil {
			return err
		}
		orderBy, err := celfilter.OrderBy(q)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "filter: %s\norder_by: %s\n", filter, orderBy)
		return err

	case formatSpanner:
		if flags.table == "" {
			return fmt.Errorf("--table is required for the %s format", flags.format)
		}
		stmt, err := spannerquery.Statement(q, flags.table)
		if err != nil {
			return err
		}
		return printStatement(w, stmt.SQL, stmt.Params)

	case formatPostgres:
		if flags.table == "" {
			return fmt.Errorf("--table is required for the %s format", flags.format)
		}
		stmt, err := pgquery.Select(q, flags.table)
		if err != nil {
			return err
		}
		return printStatement(w, stmt.SQL, stmt.Args)

	default:
		return fmt.Errorf("unknown format %q", flags.format)
	}
}

func printStatement(w io.Writer, sql string, params map[string]any) error {
	data, err := json.MarshalIndent(params, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n%s\n", sql, data)
	return err
}

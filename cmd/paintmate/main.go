// PaintMate CLI - painting contractor quote engine
//
// Usage:
//   paintmate quote --project job.json [--format table|json] [--tax 7.5]
//   paintmate catalog list
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/choozin/paintmatepro/internal/aggregate"
	"github.com/choozin/paintmatepro/internal/catalog"
	"github.com/choozin/paintmatepro/internal/decompose"
	"github.com/choozin/paintmatepro/internal/rollup"
	"github.com/choozin/paintmatepro/pkg/api"
	qerr "github.com/choozin/paintmatepro/pkg/errors"
	"github.com/choozin/paintmatepro/pkg/platform"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	app := &cli.App{
		Name:    "paintmate",
		Usage:   "Painting contractor quote engine - rooms in, priced quote out",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"PAINTMATE_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "postgres-host",
				Usage:   "Postgres host for the product catalog (empty = built-in catalog)",
				EnvVars: []string{"PAINTMATE_PG_HOST"},
			},
			&cli.IntFlag{
				Name:    "postgres-port",
				Value:   5432,
				Usage:   "Postgres port",
				EnvVars: []string{"PAINTMATE_PG_PORT"},
			},
			&cli.StringFlag{
				Name:    "postgres-database",
				Value:   "paintmate",
				Usage:   "Postgres database",
				EnvVars: []string{"PAINTMATE_PG_DATABASE"},
			},
			&cli.StringFlag{
				Name:    "postgres-user",
				Value:   "paintmate",
				Usage:   "Postgres user",
				EnvVars: []string{"PAINTMATE_PG_USER"},
			},
			&cli.StringFlag{
				Name:    "postgres-password",
				Usage:   "Postgres password",
				EnvVars: []string{"PAINTMATE_PG_PASSWORD"},
			},
		},

		Commands: []*cli.Command{
			quoteCommand(),
			catalogCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// QUOTE COMMAND
// =============================================================================

// quoteFile is the on-disk job description consumed by the quote command.
type quoteFile struct {
	Project api.Project             `json:"project"`
	Rooms   []api.Room              `json:"rooms"`
	Config  *api.QuoteConfiguration `json:"config,omitempty"`
	TaxRate float64                 `json:"tax_rate,omitempty"`
}

func quoteCommand() *cli.Command {
	return &cli.Command{
		Name:  "quote",
		Usage: "Generate a priced quote from a job file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "project",
				Aliases:  []string{"p"},
				Usage:    "Path to the job JSON file (project, rooms, config)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "table",
				Usage:   "Output format (table, json)",
			},
			&cli.Float64Flag{
				Name:  "tax",
				Usage: "Tax rate percent (overrides the job file)",
			},
		},
		Action: runQuote,
	}
}

func runQuote(c *cli.Context) error {
	log := platform.InitLogger(c.String("log-level"), true)
	ctx := context.Background()

	raw, err := os.ReadFile(c.String("project"))
	if err != nil {
		return fmt.Errorf("failed to read job file: %w", err)
	}
	var job quoteFile
	if err := json.Unmarshal(raw, &job); err != nil {
		return qerr.NewParseError(err.Error())
	}

	cfg := api.DefaultConfiguration()
	if job.Config != nil {
		cfg = *job.Config
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	taxRate := job.TaxRate
	if c.IsSet("tax") {
		taxRate = c.Float64("tax")
	}

	store, closeStore, err := openStore(ctx, c)
	if err != nil {
		return err
	}
	defer closeStore()

	items, err := store.Products(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	result := decompose.Decompose(job.Project, job.Rooms)
	log.Debug().
		Int("rooms", result.RoomsProcessed).
		Int("tasks", result.TasksCreated).
		Float64("hours", result.TotalHours).
		Msg("decomposed project")

	lineItems := aggregate.Aggregate(result.Tasks, cfg, items)
	totals := rollup.Totals(lineItems, taxRate, cfg)
	rows := rollup.Flatten(lineItems)

	switch c.String("format") {
	case "json":
		return printJSON(job.Project, lineItems, rows, totals)
	default:
		printTable(job.Project, rows, totals, cfg)
		return nil
	}
}

func printJSON(project api.Project, items []api.LineItem, rows []api.FlatRow, totals api.QuoteTotals) error {
	out := struct {
		Project   string          `json:"project"`
		LineItems []api.LineItem  `json:"line_items"`
		Rows      []api.FlatRow   `json:"rows"`
		Totals    api.QuoteTotals `json:"totals"`
	}{project.Name, items, rows, totals}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printTable(project api.Project, rows []api.FlatRow, totals api.QuoteTotals, cfg api.QuoteConfiguration) {
	title := project.Name
	if title == "" {
		title = "Quote"
	}
	fmt.Printf("%s\n%s\n", title, strings.Repeat("=", len(title)))

	for _, row := range rows {
		if row.IsHeader {
			fmt.Printf("\n%-52s %12.2f\n", row.Description, row.Amount)
			continue
		}
		desc := row.Description
		if row.Indent > 0 {
			desc = "  " + desc
		}
		qty := ""
		if row.Quantity > 0 && row.Unit != "" {
			qty = fmt.Sprintf("%.0f %s", row.Quantity, row.Unit)
		}
		fmt.Printf("  %-44s %-12s %10.2f\n", desc, qty, row.Amount)
	}

	fmt.Printf("\n%-58s %10.2f\n", "Subtotal", totals.Subtotal)
	if cfg.ShowTaxLine && totals.Tax > 0 {
		fmt.Printf("%-58s %10.2f\n", "Tax", totals.Tax)
	}
	fmt.Printf("%-58s %10.2f\n", "Total", totals.Total)

	if cfg.ShowDisclaimers {
		fmt.Println("\nEstimate valid for 30 days. Final pricing confirmed on site walkthrough.")
	}
}

// =============================================================================
// CATALOG COMMAND
// =============================================================================

func catalogCommand() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Product catalog operations",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List catalog products",
				Action: runCatalogList,
			},
		},
	}
}

func runCatalogList(c *cli.Context) error {
	ctx := context.Background()
	store, closeStore, err := openStore(ctx, c)
	if err != nil {
		return err
	}
	defer closeStore()

	items, err := store.Products(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	fmt.Printf("%-20s %-32s %10s %10s\n", "ID", "NAME", "PRICE", "COVERAGE")
	for _, item := range items {
		fmt.Printf("%-20s %-32s %10.2f %10.0f\n", item.ID, item.Name, item.UnitPrice, item.CoverageSqft)
	}
	return nil
}

// openStore returns the configured catalog store: Postgres when a host is
// set, the built-in catalog otherwise.
func openStore(ctx context.Context, c *cli.Context) (catalog.Store, func(), error) {
	host := c.String("postgres-host")
	if host == "" {
		return catalog.NewMemoryStore(catalog.DefaultItems()), func() {}, nil
	}

	store, err := catalog.NewPostgresStore(ctx, &catalog.Config{
		Host:     host,
		Port:     c.Int("postgres-port"),
		Database: c.String("postgres-database"),
		Username: c.String("postgres-user"),
		Password: c.String("postgres-password"),
		SSLMode:  "disable",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to catalog database: %w", err)
	}
	return store, func() { store.Close() }, nil
}

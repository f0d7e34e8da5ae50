package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/ikkim/gadgetshop-backend/config"
	"github.com/ikkim/gadgetshop-backend/internal/app/repository"
	"github.com/ikkim/gadgetshop-backend/internal/app/service"
	"github.com/ikkim/gadgetshop-backend/internal/db"
	"github.com/ikkim/gadgetshop-backend/internal/importer"
	"github.com/ikkim/gadgetshop-backend/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	assumeYes bool
	dryRun    bool
)

var rootCmd = &cobra.Command{
	Use:   "seed <catalog.xlsx>",
	Short: "Import catalog products from a spreadsheet",
	Long: `Reads every variant sheet (laptops, smartphones) of the workbook and
creates the products through the catalog service, so slugs, prices and
categories are validated exactly as they are for the admin API.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "import without asking for confirmation")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "only read and report the workbook")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Initialize(logger.Config{Level: "info", Format: "console", EnableColor: true})

	if err := db.Initialize(&cfg.Database); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := db.Seed(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	conn := db.GetDB()
	catalog := service.NewCatalogService(
		conn,
		repository.NewCategoryRepository(conn),
		repository.NewProductRegistry(conn),
		repository.NewCartRepository(conn),
	)
	im := importer.New(catalog)

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer file.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Reading workbook: %s\n", args[0])

	entries, rowErrors, err := im.Read(file)
	if err != nil {
		return err
	}
	for _, rowErr := range rowErrors {
		fmt.Fprintf(out, "  skipped %v\n", rowErr)
	}
	fmt.Fprintf(out, "Products to import: %d\n", len(entries))

	if dryRun || len(entries) == 0 {
		return nil
	}
	if !assumeYes && !confirm(cmd) {
		fmt.Fprintln(out, "Import cancelled.")
		return nil
	}

	created, failed := im.Import(entries)
	for _, rowErr := range failed {
		fmt.Fprintf(out, "  failed %v\n", rowErr)
	}
	fmt.Fprintf(out, "Import completed: %d created, %d failed\n", created, len(failed))
	return nil
}

func confirm(cmd *cobra.Command) bool {
	fmt.Fprint(cmd.OutOrStdout(), "Do you want to proceed with the import? (yes/no): ")
	answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "yes" || answer == "y"
}

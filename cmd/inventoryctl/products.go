package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/bootstrap"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/csvexport"
	"github.com/jhoicas/stockflow-api/pkg/config"
)

var (
	importFile string
	seedFile   string
)

var importCmd = &cobra.Command{
	Use:   "products:import",
	Short: "Importa productos desde un CSV (upsert por SKU)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, importFile, false)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Reemplaza el catálogo con los productos de un CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, seedFile, true)
	},
}

func runImport(cmd *cobra.Command, path string, replace bool) error {
	rows, err := readRows(path)
	if err != nil {
		return err
	}
	cfg, log, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	if cfg.Store.Driver == config.StoreDriverMemory {
		log.Warn().Msg("STORE_DRIVER=memory: la importación no persiste al terminar el comando")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	backend, err := bootstrap.OpenBackend(ctx, cfg, log.Zerolog())
	if err != nil {
		return err
	}
	defer backend.Close()

	if replace {
		if err := backend.Repos.Products.DeleteAll(ctx); err != nil {
			return fmt.Errorf("vaciar catálogo: %w", err)
		}
		log.Info().Msg("catálogo vaciado")
	}

	services := bootstrap.NewServices(backend, nil, log.Zerolog())
	res, err := services.ImportProducts.Import(ctx, rows)
	if err != nil {
		return err
	}
	printImportReport(cmd, len(rows), res)
	return nil
}

func readRows(path string) ([]dto.ImportProductRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir CSV: %w", err)
	}
	defer f.Close()
	return csvexport.ReadImportRows(f)
}

func printImportReport(cmd *cobra.Command, total int, res *dto.ImportProductsResponse) {
	out := cmd.OutOrStdout()
	for _, e := range res.Errors {
		fmt.Fprintf(out, "  [warn] %s\n", e)
	}
	fmt.Fprintf(out, `
=== Importación ===
Filas CSV:      %d
Creados:        %d
Actualizados:   %d
Omitidos:       %d
===================
%s
`, total, res.Created, res.Updated, res.Skipped, res.Message)
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "ruta del CSV (requerido)")
	_ = importCmd.MarkFlagRequired("file")
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "ruta del CSV (requerido)")
	_ = seedCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd, seedCmd)
}

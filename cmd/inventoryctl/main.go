// Comando inventoryctl: tareas de mantenimiento de StockFlow (migraciones, carga de catálogo, tokens).
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/stockflow-api/pkg/config"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:           "inventoryctl",
	Short:         "Herramientas de línea de comandos para StockFlow",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("error:", err)
		os.Exit(1)
	}
}

// loadEnv lee la configuración y arma el logger de la CLI.
func loadEnv(cmd *cobra.Command) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: "inventoryctl",
		Out:     cmd.ErrOrStderr(),
	})
	return cfg, log, nil
}

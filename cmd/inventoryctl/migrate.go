package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/stockflow-api/internal/infrastructure/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica o revierte las migraciones de PostgreSQL",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Aplica las migraciones pendientes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		if err := postgres.MigrateUp(cfg.DB.ConnectionString()); err != nil {
			return err
		}
		log.Info().Msg("migraciones aplicadas")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revierte todas las migraciones (borra el esquema)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		confirm, _ := cmd.Flags().GetBool("yes")
		if !confirm {
			return fmt.Errorf("migrate down borra todas las tablas; repetir con --yes")
		}
		cfg, log, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		if err := postgres.MigrateDown(cfg.DB.ConnectionString()); err != nil {
			return err
		}
		log.Info().Msg("migraciones revertidas")
		return nil
	},
}

func init() {
	migrateDownCmd.Flags().Bool("yes", false, "confirma la reversión")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/stockflow-api/pkg/jwt"
)

var (
	tokenUser    string
	tokenMinutes int
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Emite un JWT para la API (requiere JWT_SECRET)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		if !cfg.JWT.Enabled() {
			return fmt.Errorf("JWT_SECRET no está configurado")
		}
		minutes := tokenMinutes
		if minutes <= 0 {
			minutes = cfg.JWT.Expiration
		}
		tok, err := jwt.Generate(cfg.JWT.Secret, tokenUser, cfg.JWT.Issuer, minutes)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenUser, "user", "u", "", "usuario (subject del token)")
	_ = tokenCmd.MarkFlagRequired("user")
	tokenCmd.Flags().IntVar(&tokenMinutes, "minutes", 0, "vigencia en minutos (default JWT_EXPIRATION_MINUTES)")
	rootCmd.AddCommand(tokenCmd)
}

package main

import (
	"fmt"
	"os"

	"fitcoach-backend-go/internal/config"
	"fitcoach-backend-go/internal/csvimport"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		database, err := openAndMigrate(cfg, log)
		if err != nil {
			return err
		}
		return database.Close()
	},
}

var (
	templateLang string
	templateOut  string
)

var csvTemplateCmd = &cobra.Command{
	Use:   "csv-template",
	Short: "Write the workout import CSV template",
	Example: `  fitcoach csv-template --lang es
  fitcoach csv-template --out template.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if templateOut == "" {
			return csvimport.WriteTemplate(cmd.OutOrStdout(), templateLang)
		}
		f, err := os.Create(templateOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", templateOut, err)
		}
		if err := csvimport.WriteTemplate(f, templateLang); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	},
}

func init() {
	csvTemplateCmd.Flags().StringVar(&templateLang, "lang", "en", "template language (en|es)")
	csvTemplateCmd.Flags().StringVarP(&templateOut, "out", "o", "", "write to file instead of stdout")
}

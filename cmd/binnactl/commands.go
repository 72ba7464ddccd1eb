package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/binna/binna-backend/config"
	"github.com/binna/binna-backend/db"
	"github.com/binna/binna-backend/internal/auth"
	"github.com/binna/binna-backend/logger"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var rootCmd = &cobra.Command{
	Use:           "binnactl",
	Short:         "Binna backend operations",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.InitLogger()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Close()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(mg *db.Migrator) error {
			if err := mg.Up(); err != nil {
				return err
			}
			return printVersion(cmd.OutOrStdout(), mg)
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Roll back migrations (default 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := 1
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("steps must be a positive integer, got %q", args[0])
			}
			steps = n
		}
		return withMigrator(func(mg *db.Migrator) error {
			if err := mg.Down(steps); err != nil {
				return err
			}
			return printVersion(cmd.OutOrStdout(), mg)
		})
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(mg *db.Migrator) error {
			return printVersion(cmd.OutOrStdout(), mg)
		})
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the effective configuration",
}

var configPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the loaded configuration with secrets masked",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		return printConfig(cmd.OutOrStdout(), cfg)
	},
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate auth settings and probe the Supabase endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		v := auth.NewConfigValidator(cfg)
		errs := v.ValidateAuthConfig(cmd.Context())
		v.PrintValidationResults(errs)
		if len(errs) > 0 {
			return fmt.Errorf("%d configuration problem(s) found", len(errs))
		}
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
	configCmd.AddCommand(configPrintCmd, configCheckCmd)
	rootCmd.AddCommand(migrateCmd, configCmd)
}

func withMigrator(fn func(*db.Migrator) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	mg, err := db.NewMigrator(cfg.Database.URL())
	if err != nil {
		return err
	}
	defer func() { _ = mg.Close() }()
	return fn(mg)
}

type versioner interface {
	Version() (uint, bool, error)
}

func printVersion(w io.Writer, mg versioner) error {
	v, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	if dirty {
		_, err = fmt.Fprintf(w, "schema version %d (dirty)\n", v)
		return err
	}
	_, err = fmt.Fprintf(w, "schema version %d\n", v)
	return err
}

func printConfig(w io.Writer, cfg *config.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg.Redacted()); err != nil {
		return err
	}
	return enc.Close()
}

// Package root contains the root command for the application.
package root

import (
	"github.com/spf13/cobra"

	"finparse/stmt-ledger/internal/config"
	"finparse/stmt-ledger/internal/logging"
)

// CommonFlags are the flags shared by the document-processing commands.
type CommonFlags struct {
	Input    string
	Output   string
	Password string
	Format   string
	Dialect  string
}

var (
	// Log is the shared logger instance for commands.
	Log logging.Logger = logging.GetLogger()

	// Cfg is the loaded configuration, available after PersistentPreRun.
	Cfg *config.Config

	// SharedFlags are the common flags, bound in Init.
	SharedFlags = CommonFlags{}

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "stmt-ledger",
		Short: "Convert bank statement documents into a normalized transaction ledger.",
		Long: `stmt-ledger converts heterogeneous bank-statement documents (PDF pages or
pre-extracted page text and table grids) into a normalized ledger of
financial transactions, with balance-continuity reconciliation, sweep
transfer normalization, and a template learner/player for layouts without
a dedicated dialect.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()
			cfg, err := config.InitializeConfig()
			if err != nil {
				return err
			}
			Cfg = cfg
			Log = config.ConfigureLogging(cfg)
			return nil
		},
	}
)

// Init binds the persistent flags. It must run before Execute.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input document (PDF or pre-extracted JSON)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (default: stdout)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Password, "password", "p", "", "Document password, for encrypted statements")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", "", "Output format: json, csv, or table (default from config)")
}

// OutputFormat resolves the effective output format: the flag when given,
// otherwise the configured default.
func OutputFormat() string {
	if SharedFlags.Format != "" {
		return SharedFlags.Format
	}
	if Cfg != nil {
		return Cfg.Output.Format
	}
	return "json"
}

// Password resolves the effective document password.
func Password() string {
	if SharedFlags.Password != "" {
		return SharedFlags.Password
	}
	if Cfg != nil {
		return Cfg.Parse.Password
	}
	return ""
}

// DialectName resolves the effective dialect request.
func DialectName() string {
	if SharedFlags.Dialect != "" {
		return SharedFlags.Dialect
	}
	if Cfg != nil {
		return Cfg.Parse.Dialect
	}
	return "auto"
}

// TemplatesDir resolves the templates directory.
func TemplatesDir() string {
	if Cfg != nil {
		return Cfg.Templates.Dir
	}
	return "templates"
}

// Delimiter resolves the CSV delimiter.
func Delimiter() rune {
	if Cfg != nil && Cfg.CSV.Delimiter != "" {
		return []rune(Cfg.CSV.Delimiter)[0]
	}
	return ','
}

// Package root contains the root command for the application
package root

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"spendsense/statement-csv/internal/common"
	"spendsense/statement-csv/internal/config"
	"spendsense/statement-csv/internal/excel"
	"spendsense/statement-csv/internal/logging"
	"spendsense/statement-csv/internal/unifiedparser"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	Validate bool
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "spendsense",
		Short: "A CLI tool to convert PDF bank statements to CSV and Excel.",
		Long: `spendsense is a CLI tool that parses PDF credit card statements,
auto-detects the statement layout and converts the transactions to CSV
or Excel format.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to spendsense!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize and configure logging
			config.LoadEnv()
			Log = config.ConfigureLogging()

			// Set the configured logger for all parsers and writers
			adapter := GetLogrusAdapter()
			unifiedparser.SetLogger(adapter)
			common.SetLogger(adapter)
			excel.SetLogger(adapter)

			// Ensure CSV delimiter is updated after env variables are loaded
			if delim := os.Getenv("CSV_DELIMITER"); delim != "" {
				Log.WithField("delimiter", delim).Debug("Setting CSV delimiter from environment")
				commonDelim := []rune(delim)[0]
				common.SetDelimiter(commonDelim)
			}
		},
	}

	// SharedFlags holds the common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// GetLogrusAdapter wraps the shared logrus instance in the logging adapter
func GetLogrusAdapter() *logging.LogrusAdapter {
	return logging.NewLogrusAdapterFromLogger(Log)
}

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().BoolVarP(&SharedFlags.Validate, "validate", "v", false, "Validate file format before conversion")
}

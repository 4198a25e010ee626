// Package root contains the root command for the application
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fjacquet/facturx-edit/internal/config"
	"fjacquet/facturx-edit/internal/container"
	"fjacquet/facturx-edit/internal/invoicecodec"
	"fjacquet/facturx-edit/internal/logging"
	"fjacquet/facturx-edit/internal/session"
	"fjacquet/facturx-edit/internal/xmlutils"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input     string
	Output    string
	Job       string
	Workspace string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the loaded application configuration, available after
	// PersistentPreRun.
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "facturx-edit",
		Short: "A CLI tool to extract, edit, and re-inject the Factur-X XML embedded in a PDF invoice.",
		Long: `facturx-edit locates the Factur-X/ZUGFeRD XML attachment inside a PDF,
exposes its fields for editing, and writes the corrected attachment back
into a copy of the PDF. Each upload creates an isolated job under the
workspace directory; later commands address it by job id.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to facturx-edit!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Invalid configuration: %v", err)
			}
			Cfg = cfg

			// Propagate the configured logger into the worker packages.
			invoicecodec.SetLogger(Log)
			container.SetLogger(Log)
			session.SetLogger(Log)
			adapter := logging.NewLogrusAdapterFromLogger(Log)
			logging.SetDefaultLogger(adapter)
			xmlutils.SetLogger(adapter)
		},
	}

	// SharedFlags holds common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Job, "job", "j", "", "Job identifier of an existing session")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Workspace, "workspace", "w", "", "Workspace directory (overrides configuration)")
}

// WorkspaceDir resolves the effective workspace directory from flags and
// configuration.
func WorkspaceDir() string {
	if SharedFlags.Workspace != "" {
		return SharedFlags.Workspace
	}
	return Cfg.Workspace.Directory
}

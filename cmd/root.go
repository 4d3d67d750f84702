package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pulseline-dev/pulseline/internal/config"
	"github.com/pulseline-dev/pulseline/internal/payload"
	"github.com/pulseline-dev/pulseline/internal/statusline"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	cfgFile     string
	plainFlag   bool
	debugFlag   bool
	timeoutFlag int
)

// Execute is the main entry point called from main.go.
func Execute(version, commit, date string) {
	rootCmd := &cobra.Command{
		Use:   "pulseline",
		Short: "Status line for coding-assistant sessions",
		Long: "pulseline reads a session snapshot as JSON on stdin and writes a single\n" +
			"status line to stdout: context and token budget estimates, the usage-window\n" +
			"countdown, and the project and branch the session is working in.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// The host reads stdout through a pipe but still interprets
			// ANSI, so keep the color profile on when stdout is not a
			// terminal.
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				lipgloss.SetColorProfile(termenv.ANSI256)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default ~/.config/pulseline/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&plainFlag, "plain", false, "use text severity markers instead of colored glyphs")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "write diagnostic traces to stderr")
	rootCmd.PersistentFlags().IntVar(&timeoutFlag, "timeout", 0, "external command timeout in seconds (0 = config value)")

	// Subcommands
	rootCmd.AddCommand(newVersionCmd(version, commit, date))
	rootCmd.AddCommand(newInitCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runRender is the default command: one snapshot in, one line out. Problems
// degrade to defaults instead of failing so the host always gets a line.
func runRender(cmd *cobra.Command) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[pulseline] config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	// CLI flags override config values
	if plainFlag {
		cfg.Plain = true
	}
	if debugFlag {
		cfg.Debug = true
	}
	if timeoutFlag > 0 {
		cfg.TimeoutSeconds = timeoutFlag
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		data = nil
	}
	snap := payload.Parse(data)
	if snap.WorkDir == "" {
		if wd, err := os.Getwd(); err == nil {
			snap.WorkDir = wd
		}
	}

	line := statusline.NewBuilder(cfg).Build(cmd.Context(), snap)
	fmt.Fprintln(cmd.OutOrStdout(), line)
	return nil
}

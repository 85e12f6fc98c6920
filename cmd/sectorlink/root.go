package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/atcpilot/sectorlink/internal/version"
	"github.com/atcpilot/sectorlink/pkg/installer"
	"github.com/atcpilot/sectorlink/pkg/logging"
	"github.com/atcpilot/sectorlink/pkg/types"
)

// exitCodeError carries the engine's result code through cobra's
// error return so main can use it as the process exit code.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity int
		req       types.RunRequest
	)

	rootCmd := &cobra.Command{
		Use:     "sectorlink",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgExample,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logLine := func(msg string) {
				fmt.Fprint(cmd.OutOrStdout(), msg)
			}
			rc := installer.Run(req, newProgressRenderer(), logLine)
			if rc != installer.CodeSuccess {
				return &exitCodeError{code: rc}
			}
			return nil
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.Flags().StringVar(&req.AuroraPath, "aurora", "", MsgFlagAurora)
	rootCmd.Flags().StringVar(&req.RepoPath, "repo", "", MsgFlagRepo)
	rootCmd.Flags().BoolVar(&req.Force, "force", false, MsgFlagForce)
	rootCmd.Flags().BoolVar(&req.DryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.Flags().BoolVar(&req.Debug, "debug", false, MsgFlagDebug)
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)

	_ = rootCmd.MarkFlagRequired("aurora")
	_ = rootCmd.MarkFlagRequired("repo")

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// newProgressRenderer returns the progress callback suited to the
// current terminal: a pterm spinner on a TTY, plain lines otherwise.
func newProgressRenderer() types.ProgressFunc {
	if !stdoutIsTerminal() {
		return func(percent int) {
			if percent == -1 {
				fmt.Println("[progress] indeterminate")
			} else {
				fmt.Printf("[progress] %d%%\n", percent)
			}
		}
	}

	var spinner *pterm.SpinnerPrinter
	return func(percent int) {
		switch {
		case percent == -1:
			spinner, _ = pterm.DefaultSpinner.Start(MsgLinking)
		case percent >= 100 && spinner != nil:
			spinner.Success(MsgDone)
			spinner = nil
		}
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sectorlink version %s\n", version.Version)
			fmt.Printf("  commit: %s\n", version.Commit)
			fmt.Printf("  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion script",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		var ec *exitCodeError
		if errors.As(err, &ec) {
			return ec.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

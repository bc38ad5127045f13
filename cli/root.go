package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/spf13/cobra"
)

var (
	configPath  string
	backendName string
	assumeYes   bool
	verbose     bool
	rootCmd     *cobra.Command

	// stdin feeds confirmation answers to one-shot commands
	stdin io.Reader = os.Stdin

	addSubcommands sync.Once
)

// debugLog prints diagnostics when --verbose is set
var debugLog = log.New(io.Discard, "todo: ", log.LstdFlags)

func init() {
	rootCmd = &cobra.Command{
		Use:   "todo",
		Short: "todo - a small task list for the terminal",
		Long: `todo keeps a single task list, newest first, and saves it after every change.

Run without arguments for an interactive prompt, or pass a command such as
"todo add Buy milk" to run it once.`,
		RunE:          runREPL,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				debugLog.SetOutput(os.Stderr)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file to load after the global and project files")
	rootCmd.PersistentFlags().StringVar(&backendName, "backend", "", "Storage backend: file, sqlite, mysql or memory")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Answer yes to confirmation prompts")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// Execute runs the root command
func Execute(version string) error {
	setup()

	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// setup attaches the subcommands. The task commands are built from the
// command registry, which is complete once every init has run.
func setup() {
	addSubcommands.Do(func() {
		for _, c := range taskCommands() {
			rootCmd.AddCommand(c)
		}
		rootCmd.AddCommand(configCmd)
		rootCmd.AddCommand(versionCmd)
	})
}

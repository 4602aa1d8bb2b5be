package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"guardrail/cmd/ui/detection"
	"guardrail/cmd/ui/spinner"
	"guardrail/pkg/testmap"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

const Version = "1.0.0"

var (
	jsonOutput      bool
	skipInteractive bool
	verbose         bool
	stackOverride   string

	logger *zap.Logger

	logoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B35")).Bold(true)
	tipMsgStyle    = lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("190")).Italic(true)
	endingMsgStyle = lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("170")).Bold(true)
)

const Logo = `
 ██████╗ ██╗   ██╗ █████╗ ██████╗ ██████╗ ██████╗  █████╗ ██╗██╗
██╔════╝ ██║   ██║██╔══██╗██╔══██╗██╔══██╗██╔══██╗██╔══██╗██║██║
██║  ███╗██║   ██║███████║██████╔╝██║  ██║██████╔╝███████║██║██║
██║   ██║██║   ██║██╔══██║██╔══██╗██║  ██║██╔══██╗██╔══██║██║██║
╚██████╔╝╚██████╔╝██║  ██║██║  ██║██████╔╝██║  ██║██║  ██║██║███████╗
 ╚═════╝  ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝╚══════╝
`

var rootCmd = &cobra.Command{
	Use:   "guardrail [PROJECT_PATH]",
	Short: "Stack-aware lint and test dispatch for Laravel projects",
	Long: Logo + `
Guardrail classifies a Laravel project by its UI integration (Livewire, Filament,
Inertia with Vue or React, or a plain API) and dispatches the right checks, test
locations, and external tools for every edited file.

Detection reads composer.json, package.json, and the artisan marker; it never
fails an editing session, it only softens to a more generic answer.`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = buildLogger()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	Run: runRootCommand,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildLogger keeps normal runs quiet; --verbose switches to the development
// config so watcher and detection diagnostics show up.
func buildLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	return cfg.Build()
}

func runRootCommand(cmd *cobra.Command, args []string) {
	root := resolveProjectOrExit(args)
	cfg := loadConfigOrExit(root)

	if jsonOutput || skipInteractive || !isTerminal() {
		det := detectStack(root, cfg)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(det)
		return
	}

	fmt.Printf("%s\n", logoStyle.Render(Logo))

	spinnerProgram := tea.NewProgram(spinner.InitialModel("Classifying stack..."))

	// Start spinner in background
	go func() {
		if _, err := spinnerProgram.Run(); err != nil {
			// Suppress the "program was killed" error message since it's expected
			if err.Error() != "program was killed" {
				fmt.Fprintf(os.Stderr, "Error running spinner: %v\n", err)
			}
		}
	}()

	det := detectStack(root, cfg)

	spinnerProgram.Quit()

	set := testmap.LocationsFor(os.DirFS(root), det.Stack)
	ruleSet, err := effectiveRules(root, det.Stack, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading custom rules: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(detection.RenderSummary(det, set, len(ruleSet)))

	fmt.Printf("\n%s\n", endingMsgStyle.Render("Run 'guardrail check' to lint edited files, or 'guardrail watch' to follow changes."))
	fmt.Printf("%s\n", tipMsgStyle.Render("Tip: Use --json flag for CI/automation mode"))
}

func isTerminal() bool {
	if os.Getenv("CI") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func init() {
	rootCmd.SetVersionTemplate("guardrail version {{.Version}}\n")

	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(testsCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(hookCmd)

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON (disables interactive mode)")
	rootCmd.PersistentFlags().BoolVar(&skipInteractive, "no-interactive", false, "Skip interactive output (for CI/automation)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose diagnostic logging")
	rootCmd.PersistentFlags().StringVar(&stackOverride, "stack", "", "Force the stack label instead of detecting it")
}

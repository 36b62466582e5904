package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Smith-Tools/smith-validation/internal/checks"
	"github.com/Smith-Tools/smith-validation/internal/config"
	"github.com/Smith-Tools/smith-validation/internal/engine"
	"github.com/Smith-Tools/smith-validation/internal/loader"
	"github.com/Smith-Tools/smith-validation/internal/progressive"
	"github.com/Smith-Tools/smith-validation/internal/report"
	"github.com/Smith-Tools/smith-validation/internal/tui"
	"github.com/Smith-Tools/smith-validation/pkg/model"
	"github.com/Smith-Tools/smith-validation/pkg/rules"
)

func AddCommands(root *cobra.Command) {
	root.AddCommand(newValidateCmd())
	root.AddCommand(newRulesCmd())
	root.AddCommand(newPacksCmd())
	root.AddCommand(newInitCmd())
}

func newValidateCmd() *cobra.Command {
	var (
		format        string
		level         string
		failOn        string
		minSeverity   string
		outputFile    string
		useTUI        bool
		recursive     bool
		packDirs      []string
		baseline      string
		writeBaseline string
		logLevel      string
	)
	cmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a file or directory against the architectural rules",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			log := initLogger(logLevel)

			cfg, cfgPath, err := config.Load(path)
			if err != nil {
				return err
			}
			if cfgPath != "" {
				log.Debug("configuration loaded", "path", cfgPath)
			}
			if level != "" {
				cfg.Level = level
			}
			if minSeverity != "" {
				cfg.MinSeverity = minSeverity
			}
			if failOn != "" {
				cfg.FailOn = failOn
			}
			if baseline != "" {
				cfg.Baseline = baseline
			}
			lvl, err := progressive.ParseLevel(cfg.Level)
			if err != nil {
				return err
			}

			rs, err := buildRules(cmd, cfg, packDirs)
			if err != nil {
				return err
			}

			eng := engine.New(cfg, rs, log)
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("validation target: %w", err)
			}
			var res *engine.Result
			if info.IsDir() {
				res, err = eng.ValidateDirectory(cmd.Context(), path, recursive)
			} else {
				res, err = eng.ValidateFile(cmd.Context(), path)
			}
			if err != nil {
				return err
			}
			rep := progressive.Apply(res.Collection, lvl)

			if writeBaseline != "" {
				if err := engine.WriteBaseline(writeBaseline, res.Collection); err != nil {
					return err
				}
			}

			if useTUI {
				return tui.Run(rep.Collection.Violations())
			}
			switch format {
			case "json":
				data, err := report.ToJSON(res, rep)
				if err != nil {
					return err
				}
				if outputFile != "" {
					return os.WriteFile(outputFile, data, 0o644)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			default:
				report.WriteText(cmd.OutOrStdout(), res, rep)
			}

			if cfg.FailOn != "" {
				threshold := model.ParseSeverity(cfg.FailOn)
				for _, v := range rep.Collection.Violations() {
					if model.SeverityGTE(v.Severity, threshold) {
						return fmt.Errorf("fail-on threshold met: %s", v.Severity)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text|json")
	cmd.Flags().StringVarP(&level, "level", "l", "", "Disclosure level: critical|standard|comprehensive")
	cmd.Flags().StringVar(&failOn, "fail-on", "", "Fail if a violation of this severity or higher is found")
	cmd.Flags().StringVar(&minSeverity, "min-severity", "", "Drop violations below this severity")
	cmd.Flags().StringVarP(&outputFile, "out", "o", "", "Write report to file (with --format json)")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "Browse violations interactively")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", true, "Recurse into subdirectories")
	cmd.Flags().StringArrayVar(&packDirs, "pack", nil, "Rule pack source directory (repeatable)")
	cmd.Flags().StringVar(&baseline, "baseline", "", "Suppress violations recorded in this baseline file")
	cmd.Flags().StringVar(&writeBaseline, "write-baseline", "", "Write a baseline file with violation fingerprints")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log verbosity: debug|info|warn|error")
	return cmd
}

// buildRules constructs the builtin rules (with config overrides applied) and
// appends whatever the requested rule packs contribute. A pack that fails to
// build or load is reported and skipped; the rest still contribute.
func buildRules(cmd *cobra.Command, cfg config.Config, packDirs []string) ([]rules.Rule, error) {
	reg := rules.NewRegistry()
	checks.Register(reg)
	rs := reg.Build(cfg.Overrides())

	if len(packDirs) == 0 {
		return rs, nil
	}
	l := loader.New(loader.Options{}, nil)
	packs, errs := l.LoadAll(cmd.Context(), packDirs)
	for _, err := range errs {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}
	for _, pack := range packs {
		for _, w := range pack.Warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
		}
		rs = append(rs, pack.Rules...)
	}
	return rs, nil
}

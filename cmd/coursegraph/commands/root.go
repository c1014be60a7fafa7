package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	levels      []string
	instructors []string
	subjects    []string
	courses     []string
)

func init() {
	flags := rootCmd.Flags()
	flags.StringArrayVar(&levels, "level", nil, "Only include courses of this level, ex. 'Undergraduate'. Repeatable.")
	flags.StringArrayVar(&instructors, "instructor", nil, "Only include courses taught by this instructor, ex. 'Razzaq, Leena'. Repeatable.")
	flags.StringArrayVar(&subjects, "subject", nil, "Only include courses of this subject, ex. 'CS' or 'Computer Science'. Repeatable.")
	flags.StringArrayVar(&courses, "course", nil, "Only include course numbers containing this, ex. '25'.")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Message: err.Error()}
	})
}

var rootCmd = &cobra.Command{
	Use:   "coursegraph [--level=<l>]... [--instructor=<i>]... [--subject=<s>]... [--course=<c>] <term>",
	Short: "coursegraph renders the prerequisite graph of a term's courses as graphviz DOT.",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return usageErrorf("expected exactly one term, got %d arguments", len(args))
		}
		return nil
	},

	SilenceErrors: true,
	SilenceUsage:  true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		env, err := newEnvironment(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		cmd.SetContext(setEnvironment(cmd.Context(), env))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		parsed, err := newGenerateArgs(args, levels, instructors, subjects, courses)
		if err != nil {
			return err
		}

		env := getEnvironment(cmd.Context())
		start := time.Now()
		n, err := generate(cmd.Context(), env.Scraper, env.Sink, parsed)
		if err != nil {
			return err
		}
		slog.Info(
			"wrote course graph",
			"courses", n,
			"output", env.Config.Output,
			"seconds", time.Since(start).Seconds(),
		)
		return nil
	},
}

func ExecuteContext(ctx context.Context) {
	cmd, err := rootCmd.ExecuteContextC(ctx)
	// cobra skips post run hooks when a command fails
	closeErr := closeEnvironment(cmd)
	if closeErr != nil {
		slog.Warn("failed to shut down telemetry", "err", closeErr)
	}
	if err == nil {
		return
	}

	fmt.Fprintln(os.Stderr, "error:", err)
	code, showUsage := exitCode(err)
	if showUsage && cmd != nil {
		fmt.Fprint(os.Stderr, cmd.UsageString())
	}
	os.Exit(code)
}

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/voxkit/skilltest/harness"
	"github.com/voxkit/skilltest/httpskill"
	"github.com/voxkit/skilltest/internal/scenario"
	"github.com/voxkit/skilltest/internal/transcript"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Endpoint          string
	Transcript        string
	QuestionMarkCheck bool
}

// ScenarioResult holds the outcome of one scenario execution.
type ScenarioResult struct {
	Name    string `json:"name"`
	Pass    bool   `json:"pass"`
	Failure string `json:"failure,omitempty"`
}

// RunResult holds the overall run outcome.
type RunResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>...",
		Short: "Replay scenario files against a skill endpoint",
		Long: `Replay one or more scenario files against an HTTP skill endpoint.

Each scenario is a scripted conversation: requests are dispatched in
order, session attributes are carried between turns, and the first
violated expectation fails the scenario with its step number and
request kind.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (bad endpoint, unreadable scenario, etc.)

Examples:
  skilltest run --endpoint http://localhost:3000/skill scenarios/welcome.yaml
  skilltest run --endpoint https://skill.example.com --transcript run.db scenarios/*.yaml
  skilltest run --endpoint http://localhost:3000/skill --question-mark-check scenarios/welcome.yaml`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Endpoint, "endpoint", "", "skill endpoint URL (required)")
	cmd.Flags().StringVar(&opts.Transcript, "transcript", "", "record executed turns to this SQLite file")
	cmd.Flags().BoolVar(&opts.QuestionMarkCheck, "question-mark-check", false,
		"enable the question-mark/session-end conformance check")
	cmd.MarkFlagRequired("endpoint")

	return cmd
}

func runScenarios(opts *RunOptions, paths []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	client, err := httpskill.New(opts.Endpoint)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid endpoint", err)
	}

	runnerOpts := []harness.RunnerOption{
		harness.WithChecks(harness.Checks{QuestionMarkCheck: opts.QuestionMarkCheck}),
	}
	if opts.Verbose {
		runnerOpts = append(runnerOpts, harness.WithLogger(
			slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))))
	}

	var rec *transcript.Recorder
	if opts.Transcript != "" {
		rec, err = transcript.Open(opts.Transcript)
		if err != nil {
			return WrapExitError(ExitCommandError, "open transcript", err)
		}
		defer rec.Close()
		runnerOpts = append(runnerOpts, harness.WithRecorder(rec))
	}

	runner := harness.New(client.Handler(), runnerOpts...)

	result := RunResult{Total: len(paths)}
	for _, path := range paths {
		formatter.VerboseLog("running %s", path)

		res, err := runOne(cmd.Context(), runner, path)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("scenario %s", path), err)
		}
		result.Scenarios = append(result.Scenarios, res)
		if res.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if err := outputRunResult(formatter, result); err != nil {
		return err
	}
	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenarios failed", result.Failed, result.Total))
	}
	return nil
}

func runOne(ctx context.Context, runner *harness.Runner, path string) (ScenarioResult, error) {
	s, err := scenario.Load(path)
	if err != nil {
		return ScenarioResult{}, err
	}
	seq, _, err := scenario.Build(s)
	if err != nil {
		return ScenarioResult{}, err
	}

	res, err := runner.Run(ctx, seq)
	if err != nil {
		return ScenarioResult{}, err
	}

	out := ScenarioResult{Name: s.Name, Pass: res.Completed}
	if res.Failure != nil {
		out.Failure = harness.FormatFailure(*res.Failure)
	}
	return out, nil
}

func outputRunResult(f *OutputFormatter, result RunResult) error {
	if f.Format == "json" {
		return f.JSON(result)
	}

	for _, s := range result.Scenarios {
		if s.Pass {
			f.Text("PASS  %s", s.Name)
		} else {
			f.Text("FAIL  %s", s.Name)
			f.Text("      %s", indentContinuation(s.Failure))
		}
	}
	f.Text("")
	f.Text("%d passed, %d failed, %d total", result.Passed, result.Failed, result.Total)
	return nil
}

// indentContinuation keeps multi-line failure text aligned under the
// FAIL marker.
func indentContinuation(s string) string {
	return strings.ReplaceAll(s, "\n", "\n      ")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"career-compass/internal/app"
	"career-compass/internal/domain"
	"career-compass/internal/llm"
	"career-compass/internal/service"
	"career-compass/internal/testhelpers"
)

type checkOptions struct {
	scripted bool
	minScore float64
	timeout  time.Duration
}

// ashaIntake es el perfil del escenario de referencia.
var ashaIntake = domain.Intake{Name: "Asha", Stage: "Class 12", Locale: "Pune", Language: "English"}

func newCheckCmd(root *rootOptions) *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the reference scenario end to end and let an LLM judge grade the skill gap",
		Long: `Plays all nine turns for the reference student, synthesises the profile,
generates career paths and analyses the first one. A judge model then scores
whether the skill gap contains meta-skills tied to the student's aptitudes.
Exits non-zero when the average judge score is below --min-score.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			cfg, logger, err := loadConfig(root)
			if err != nil {
				return err
			}

			var client llm.LLMClient
			if opts.scripted {
				client = testhelpers.NewScriptedOracle()
			} else if client, err = app.NewLLMClient(ctx, cfg); err != nil {
				return err
			}

			a, err := app.New(ctx, cfg, logger, client)
			if err != nil {
				return err
			}
			defer a.Close()

			var judge llm.LLMClient
			if !opts.scripted {
				judge = client
			}
			return runCheck(ctx, cmd.OutOrStdout(), a.Services, judge, opts.minScore)
		},
	}
	cmd.Flags().BoolVar(&opts.scripted, "scripted", false, "use canned oracle responses and skip the judge")
	cmd.Flags().Float64Var(&opts.minScore, "min-score", 3, "minimum average judge score to pass")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 5*time.Minute, "overall deadline for the run")
	return cmd
}

// errCheckFailed se devuelve cuando el juez puntua por debajo del minimo.
var errCheckFailed = errors.New("coherence check failed")

// runCheck juega el escenario eligiendo siempre la primera opcion. judge nil omite la evaluacion.
func runCheck(ctx context.Context, out io.Writer, svc app.Services, judge llm.LLMClient, minScore float64) error {
	const userID = "asha"
	if _, err := svc.Users.Register(ctx, service.RegisterUserInput{UserID: userID, Intake: ashaIntake}); err != nil {
		return fmt.Errorf("register: %w", err)
	}

	prompt, err := svc.Quiz.Start(ctx, userID, ashaIntake)
	if err != nil {
		return fmt.Errorf("start quiz: %w", err)
	}
	now := time.Now().UTC()
	transcript := domain.Transcript{domain.NewPromptEntry(prompt, now)}
	for !prompt.IsFinale() {
		fmt.Fprintf(out, "%s[Turn %d]%s %s -> %s\n", colorCyan, prompt.Turn, colorReset, prompt.QuestionType, prompt.Options[0])
		transcript = transcript.Append(domain.NewResponseEntry([]string{prompt.Options[0]}, now))
		if prompt, err = svc.Quiz.Advance(ctx, userID, transcript); err != nil {
			return fmt.Errorf("advance quiz: %w", err)
		}
		transcript = transcript.Append(domain.NewPromptEntry(prompt, now))
	}
	fmt.Fprintf(out, "%s[Turn %d]%s finale\n", colorCyan, prompt.Turn, colorReset)

	profile, err := svc.Profiles.Synthesize(ctx, userID, transcript)
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	advice, err := svc.Careers.Generate(ctx, userID, profile)
	if err != nil {
		return fmt.Errorf("career paths: %w", err)
	}
	path := advice.Paths[0]
	analysis, err := svc.Skills.Analyze(ctx, userID, profile, path)
	if err != nil {
		return fmt.Errorf("skill gap: %w", err)
	}
	printAnalysis(out, path, analysis)

	if judge == nil {
		fmt.Fprintln(out, "judge skipped")
		return nil
	}

	jr, h, err := evaluateSkillGap(ctx, judge, profile, path, analysis)
	if err != nil {
		return fmt.Errorf("judge: %w", err)
	}
	fmt.Fprintf(out, "\n%sJuez%s %q\n", colorCyan, colorReset, jr.Reasoning)
	fmt.Fprintf(out, "Heuristics: tool-like=%v aptitude-reasons=%d\n", h.ToolLike, h.AptitudeReasons)
	fmt.Fprintf(out, "Scores: Meta-skill %d/5 | Personalization %d/5\n", jr.MetaSkillScore, jr.PersonalizationScore)

	avg := float64(jr.MetaSkillScore+jr.PersonalizationScore) / 2
	if avg < minScore {
		return fmt.Errorf("%w: average %.2f below %.2f", errCheckFailed, avg, minScore)
	}
	fmt.Fprintf(out, "%sPASS%s average %.2f\n", colorGreen, colorReset, avg)
	return nil
}

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"career-compass/internal/app"
	"career-compass/internal/domain"
	"career-compass/internal/service"
)

type playOptions struct {
	userID string
	intake domain.Intake
}

func newPlayCmd(root *rootOptions) *cobra.Command {
	opts := &playOptions{}
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the nine-turn assessment in the terminal and get career advice",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, _, err := bootstrap(ctx, root, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			p := newPlayer(a.Services, cmd.InOrStdin(), cmd.OutOrStdout())
			return p.run(ctx, opts)
		},
	}
	cmd.Flags().StringVar(&opts.userID, "user", "", "user id (random when empty)")
	cmd.Flags().StringVar(&opts.intake.Name, "name", "", "player name")
	cmd.Flags().StringVar(&opts.intake.Stage, "stage", "", "education stage, e.g. \"Class 12\"")
	cmd.Flags().StringVar(&opts.intake.Locale, "locale", "", "city or region")
	cmd.Flags().StringVar(&opts.intake.Language, "language", "English", "narration language")
	return cmd
}

// player conduce el pipeline completo leyendo selecciones numericas.
type player struct {
	svc    app.Services
	reader *bufio.Reader
	out    io.Writer
}

func newPlayer(svc app.Services, in io.Reader, out io.Writer) *player {
	return &player{svc: svc, reader: bufio.NewReader(in), out: out}
}

func (p *player) run(ctx context.Context, opts *playOptions) error {
	userID := strings.TrimSpace(opts.userID)
	if userID == "" {
		userID = uuid.NewString()
	}
	intake, err := p.completeIntake(opts.intake)
	if err != nil {
		return err
	}
	if _, err := p.svc.Users.Register(ctx, service.RegisterUserInput{UserID: userID, Intake: intake}); err != nil {
		return fmt.Errorf("register: %w", err)
	}

	transcript, err := p.playQuiz(ctx, userID, intake)
	if err != nil {
		return err
	}

	fmt.Fprintf(p.out, "\n%sAnalysing your choices...%s\n", colorYellow, colorReset)
	profile, err := p.svc.Profiles.Synthesize(ctx, userID, transcript)
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	printProfile(p.out, profile)

	advice, err := p.svc.Careers.Generate(ctx, userID, profile)
	if err != nil {
		return fmt.Errorf("career paths: %w", err)
	}
	fmt.Fprintf(p.out, "\n%s%s%s\n", colorGreen, advice.Direction, colorReset)
	for i, path := range advice.Paths {
		fmt.Fprintf(p.out, "[%d] %s: %s\n", i+1, path.Title, path.Description)
	}

	idx, err := p.askIndex("Pick a path to explore: ", len(advice.Paths))
	if err != nil {
		return err
	}
	analysis, err := p.svc.Skills.Analyze(ctx, userID, profile, advice.Paths[idx])
	if err != nil {
		return fmt.Errorf("skill gap: %w", err)
	}
	printAnalysis(p.out, advice.Paths[idx], analysis)
	return nil
}

func (p *player) completeIntake(in domain.Intake) (domain.Intake, error) {
	fields := []struct {
		label string
		value *string
	}{
		{"Your name", &in.Name},
		{"Your stage (e.g. Class 12)", &in.Stage},
		{"Where do you live", &in.Locale},
		{"Language", &in.Language},
	}
	for _, f := range fields {
		for strings.TrimSpace(*f.value) == "" {
			line, err := p.ask(f.label + ": ")
			if err != nil {
				return in, err
			}
			*f.value = line
		}
	}
	return in, nil
}

func (p *player) playQuiz(ctx context.Context, userID string, intake domain.Intake) (domain.Transcript, error) {
	prompt, err := p.svc.Quiz.Start(ctx, userID, intake)
	if err != nil {
		return nil, fmt.Errorf("start quiz: %w", err)
	}
	transcript := domain.Transcript{domain.NewPromptEntry(prompt, time.Now().UTC())}

	for {
		printPrompt(p.out, prompt)
		if prompt.IsFinale() {
			return transcript, nil
		}

		answers, err := p.askAnswers(prompt)
		if err != nil {
			return nil, err
		}
		transcript = transcript.Append(domain.NewResponseEntry(answers, time.Now().UTC()))

		prompt, err = p.svc.Quiz.Advance(ctx, userID, transcript)
		if err != nil {
			return nil, fmt.Errorf("advance quiz: %w", err)
		}
		transcript = transcript.Append(domain.NewPromptEntry(prompt, time.Now().UTC()))
	}
}

func (p *player) askAnswers(prompt domain.PromptEntry) ([]string, error) {
	label := "Your choice: "
	if prompt.QuestionType == domain.QuestionMultiChoice {
		label = "Your choices (comma separated): "
	}
	for {
		line, err := p.ask(label)
		if err != nil {
			return nil, err
		}
		answers, err := parseSelection(line, prompt)
		if err == nil {
			return answers, nil
		}
		fmt.Fprintf(p.out, "Invalid selection: %v\n", err)
	}
}

func (p *player) askIndex(label string, n int) (int, error) {
	for {
		line, err := p.ask(label)
		if err != nil {
			return 0, err
		}
		idx, err := strconv.Atoi(line)
		if err == nil && idx >= 1 && idx <= n {
			return idx - 1, nil
		}
		fmt.Fprintln(p.out, "Invalid selection.")
	}
}

func (p *player) ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// parseSelection convierte "2" o "1,3" en las opciones elegidas.
func parseSelection(line string, prompt domain.PromptEntry) ([]string, error) {
	parts := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' })
	if len(parts) == 0 {
		return nil, errors.New("no option selected")
	}
	if prompt.QuestionType == domain.QuestionSingleChoice && len(parts) > 1 {
		return nil, errors.New("pick exactly one option")
	}

	seen := make(map[int]bool, len(parts))
	answers := make([]string, 0, len(parts))
	for _, part := range parts {
		idx, err := strconv.Atoi(part)
		if err != nil || idx < 1 || idx > len(prompt.Options) {
			return nil, fmt.Errorf("%q is not an option number", part)
		}
		if seen[idx] {
			continue
		}
		seen[idx] = true
		answers = append(answers, prompt.Options[idx-1])
	}
	return answers, nil
}

func printPrompt(w io.Writer, prompt domain.PromptEntry) {
	fmt.Fprintf(w, "\n%s[Turn %d]%s %s\n", colorCyan, prompt.Turn, colorReset, prompt.Narrative)
	for i, opt := range prompt.Options {
		fmt.Fprintf(w, "  %d) %s\n", i+1, opt)
	}
}

func printProfile(w io.Writer, profile domain.TraitProfile) {
	fmt.Fprintf(w, "\n%s==== Your profile ====%s\n", colorGreen, colorReset)
	fmt.Fprintf(w, "Motivators: %s\n", strings.Join(profile.CoreMotivators, ", "))
	fmt.Fprintf(w, "Problem solving: %s\n", profile.ProblemSolvingStyle)
	fmt.Fprintf(w, "Environment: %s\n", profile.PreferredEnvironment)
	fmt.Fprintf(w, "Aptitudes: %s\n", strings.Join(profile.KeyAptitudes, ", "))
	fmt.Fprintf(w, "Interests: %s\n", strings.Join(profile.Interests, ", "))
	fmt.Fprintf(w, "%s\n", profile.PersonalitySummary)
}

func printAnalysis(w io.Writer, path domain.CareerPath, a domain.SkillAnalysis) {
	fmt.Fprintf(w, "\n%s==== %s ====%s\n", colorGreen, path.Title, colorReset)
	fmt.Fprintf(w, "%s\n", a.Brief)
	fmt.Fprintf(w, "Skills: %s\n", strings.Join(a.TotalSkills, ", "))
	for _, gap := range a.SkillGap {
		fmt.Fprintf(w, "  * %s: %s\n", gap.Skill, gap.Reason)
	}
}

package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"career-compass/internal/domain"
	"career-compass/internal/repository"
	"career-compass/internal/testhelpers"
)

// Escenario completo: intake -> 9 turnos -> perfil -> 5 caminos -> brecha del camino 1.
func TestPipelineAshaScenario(t *testing.T) {
	ctx := context.Background()
	oracle := testhelpers.NewScriptedOracle()
	store := repository.NewMemoryDocumentStore()
	client := newTestOracle(oracle)

	users := NewUserService(zap.NewNop(), repository.NewDocUserRepository(store))
	quiz := NewQuizService(zap.NewNop(), repository.NewDocUserRepository(store), repository.NewDocTranscriptRepository(store), client, nil)
	profiles := NewProfileService(zap.NewNop(), client, repository.NewDocProfileRepository(store))
	careers := NewCareerService(zap.NewNop(), client, repository.NewDocCareerAdviceRepository(store))
	skills := NewSkillGapService(zap.NewNop(), client, repository.NewDocSkillAnalysisRepository(store), NewMemorySkillCache(0))

	if _, err := users.Register(ctx, RegisterUserInput{UserID: "asha", Intake: ashaIntake}); err != nil {
		t.Fatalf("register: %v", err)
	}

	first, err := quiz.Start(ctx, "asha", ashaIntake)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if first.QuestionType != domain.QuestionSingleChoice || len(first.Options) != 4 {
		t.Fatalf("expected single-choice with 4 options, got %+v", first)
	}

	transcript := domain.Transcript{domain.NewPromptEntry(first, fixedNow())}
	last := first
	for turn := 2; turn <= TerminalTurn; turn++ {
		transcript = transcript.Append(domain.NewResponseEntry(answerFor(last), fixedNow()))
		last, err = quiz.Advance(ctx, "asha", transcript)
		if err != nil {
			t.Fatalf("advance turn %d: %v", turn, err)
		}
		if turn < TerminalTurn && last.IsFinale() {
			t.Fatalf("finale at turn %d", turn)
		}
		transcript = transcript.Append(domain.NewPromptEntry(last, fixedNow()))
	}
	if transcript.PromptCount() != TerminalTurn || last.QuestionType != domain.QuestionFinale {
		t.Fatalf("expected the 9th prompt to be the finale, got %+v", last)
	}

	profile, err := profiles.Synthesize(ctx, "asha", transcript)
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if !profile.Complete() {
		t.Fatalf("expected all six profile fields, missing %v", profile.Missing())
	}

	advice, err := careers.Generate(ctx, "asha", profile)
	if err != nil {
		t.Fatalf("career: %v", err)
	}
	if len(advice.Paths) != domain.CareerPathCount {
		t.Fatalf("expected 5 paths, got %d", len(advice.Paths))
	}

	analysis, err := skills.Analyze(ctx, "asha", profile, advice.Paths[0])
	if err != nil {
		t.Fatalf("skill gap: %v", err)
	}
	if len(analysis.SkillGap) != 2 {
		t.Fatalf("expected 2 skill gap entries, got %d", len(analysis.SkillGap))
	}
	if n := len(analysis.TotalSkills); n < 3 || n > 5 {
		t.Fatalf("expected 3-5 total skills, got %d", n)
	}

	calls := oracle.Calls()
	if _, err := skills.Analyze(ctx, "asha", profile, advice.Paths[0]); err != nil {
		t.Fatalf("cached skill gap: %v", err)
	}
	if oracle.Calls() != calls {
		t.Fatalf("cached analysis must not call the oracle")
	}
}

package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"career-compass/internal/domain"
	"career-compass/internal/llm"
	"career-compass/internal/repository"
)

var ashaIntake = domain.Intake{Name: "Asha", Stage: "Class 12", Locale: "Pune", Language: "English"}

func newTestOracle(client llm.LLMClient) *OracleClient {
	return NewOracleClient(client, zap.NewNop())
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func validProfile() domain.TraitProfile {
	return domain.TraitProfile{
		CoreMotivators:       []string{"Helping Others", "Discovery"},
		ProblemSolvingStyle:  "Analytical",
		PreferredEnvironment: "Team",
		KeyAptitudes:         []string{"Logic", "Empathy", "Planning"},
		Interests:            []string{"Health", "Technology"},
		PersonalitySummary:   "A thoughtful helper.",
	}
}

// failingStore simula un document store caido.
type failingStore struct{}

func (failingStore) Get(ctx context.Context, collection, key string) ([]byte, error) {
	return nil, errors.New("store down")
}

func (failingStore) Set(ctx context.Context, collection, key string, data []byte) error {
	return errors.New("store down")
}

type quizFixture struct {
	svc         *QuizService
	oracle      *llm.MockClient
	users       *repository.DocUserRepository
	transcripts *repository.DocTranscriptRepository
}

func newQuizFixture(oracle *llm.MockClient) quizFixture {
	store := repository.NewMemoryDocumentStore()
	users := repository.NewDocUserRepository(store)
	transcripts := repository.NewDocTranscriptRepository(store)
	svc := NewQuizService(zap.NewNop(), users, transcripts, newTestOracle(oracle), nil)
	svc.now = fixedNow
	_ = users.Save(context.Background(), domain.User{ID: "asha", CreatedAt: fixedNow()})
	return quizFixture{svc: svc, oracle: oracle, users: users, transcripts: transcripts}
}

// answerFor elige la primera opcion del prompt (una sola, valido para ambos tipos).
func answerFor(p domain.PromptEntry) []string {
	return []string{p.Options[0]}
}

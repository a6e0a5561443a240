package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"career-compass/internal/domain"
	"career-compass/internal/repository"
)

// QuizService conduce el quiz narrativo turno a turno.
type QuizService struct {
	logger      *zap.Logger
	users       repository.UserRepository
	transcripts repository.TranscriptRepository
	oracle      *OracleClient
	script      *ScenarioScript
	bypass      bool
	now         func() time.Time
}

func NewQuizService(
	logger *zap.Logger,
	users repository.UserRepository,
	transcripts repository.TranscriptRepository,
	oracle *OracleClient,
	script *ScenarioScript,
) *QuizService {
	if script == nil {
		script = DefaultScenarioScript()
	}
	return &QuizService{
		logger:      logger,
		users:       users,
		transcripts: transcripts,
		oracle:      oracle,
		script:      script,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// SetScriptBypass hace que los turnos 2 en adelante salgan directo del guion, sin llamar al oraculo.
func (s *QuizService) SetScriptBypass(enabled bool) {
	s.bypass = enabled
}

// Start valida el intake, lo guarda y produce el turno 1. Resetea el transcript del usuario.
func (s *QuizService) Start(ctx context.Context, userID string, intake domain.Intake) (domain.PromptEntry, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.PromptEntry{}, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if missing := intake.Missing(); len(missing) > 0 {
		return domain.PromptEntry{}, fmt.Errorf("%w: missing intake fields: %s", ErrInvalidInput, strings.Join(missing, ", "))
	}

	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.PromptEntry{}, ErrUserNotFound
	}
	if err != nil {
		return domain.PromptEntry{}, fmt.Errorf("get user %s: %w", userID, err)
	}

	now := s.now()
	user.Intake = intake
	user.UpdatedAt = now
	if err := s.users.Save(ctx, user); err != nil {
		return domain.PromptEntry{}, fmt.Errorf("save intake: %w", err)
	}

	expected := s.script.Opening(intake)
	prompt := s.generateTurn(ctx, userID, expected, buildOpeningPrompt(intake, expected))

	doc := domain.GameTranscript{
		UserID:     userID,
		Transcript: domain.Transcript{domain.NewPromptEntry(prompt, now)},
		TurnCount:  1,
		UpdatedAt:  now,
	}
	if err := s.transcripts.Save(ctx, doc); err != nil {
		return domain.PromptEntry{}, fmt.Errorf("save transcript: %w", err)
	}

	s.logger.Info("quiz started", zap.String("user_id", userID))
	return prompt, nil
}

// Advance produce el siguiente turno a partir del transcript completo enviado por el llamador.
// Los errores del oraculo nunca se propagan: se sustituyen por Fallback(N).
func (s *QuizService) Advance(ctx context.Context, userID string, transcript domain.Transcript) (domain.PromptEntry, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.PromptEntry{}, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if err := s.validateTranscript(transcript); err != nil {
		return domain.PromptEntry{}, err
	}

	turn := transcript.NextTurn()
	def, ok := s.script.Turn(turn)
	if !ok {
		return domain.PromptEntry{}, fmt.Errorf("%w: no scripted turn %d", ErrInvalidInput, turn)
	}
	expected := def.Prompt()

	var prompt domain.PromptEntry
	if s.bypass {
		prompt = expected
	} else {
		prompt = s.generateTurn(ctx, userID, expected, buildTurnPrompt(transcript, expected, s.userLanguage(ctx, userID)))
	}

	now := s.now()
	doc := domain.GameTranscript{
		UserID:     userID,
		Transcript: transcript.Append(domain.NewPromptEntry(prompt, now)),
		TurnCount:  turn,
		UpdatedAt:  now,
	}
	if prompt.IsFinale() {
		doc.Completed = true
		doc.CompletedAt = &now
	}
	if err := s.transcripts.Save(ctx, doc); err != nil {
		return domain.PromptEntry{}, fmt.Errorf("save transcript: %w", err)
	}

	s.logger.Info("quiz advanced",
		zap.String("user_id", userID),
		zap.Int("turn", turn),
		zap.Bool("completed", doc.Completed),
	)
	return prompt, nil
}

// Transcript devuelve el transcript persistido del usuario.
func (s *QuizService) Transcript(ctx context.Context, userID string) (domain.GameTranscript, error) {
	doc, err := s.transcripts.GetByUserID(ctx, strings.TrimSpace(userID))
	if errors.Is(err, repository.ErrNotFound) {
		return domain.GameTranscript{}, ErrNotFound
	}
	return doc, err
}

// generateTurn consulta al oraculo pidiendo reproducir expected; ante cualquier error usa el fallback.
func (s *QuizService) generateTurn(ctx context.Context, userID string, expected domain.PromptEntry, promptText string) domain.PromptEntry {
	var out quizPromptPayload
	check := func() error {
		if strings.TrimSpace(out.Narrative) == "" {
			return schemaErrorf("narrative is empty")
		}
		if out.QuestionType != expected.QuestionType {
			return schemaErrorf("questionType %q, expected %q", out.QuestionType, expected.QuestionType)
		}
		if len(out.Options) != len(expected.Options) {
			return schemaErrorf("got %d options, expected %d", len(out.Options), len(expected.Options))
		}
		for i, opt := range out.Options {
			if strings.TrimSpace(opt) == "" {
				return schemaErrorf("option %d is empty", i+1)
			}
		}
		return nil
	}

	stage := fmt.Sprintf("quiz.turn.%d", expected.Turn)
	if err := s.oracle.Invoke(ctx, stage, promptText, check, &out); err != nil {
		s.logger.Warn("turn generation fell back",
			zap.String("user_id", userID),
			zap.Int("turn", expected.Turn),
			zap.String("kind", string(oracleErrorKind(err))),
		)
		return Fallback(expected.Turn)
	}

	options := make([]string, 0, len(out.Options))
	for _, opt := range out.Options {
		options = append(options, strings.TrimSpace(opt))
	}
	return domain.PromptEntry{
		Turn:         expected.Turn,
		Narrative:    strings.TrimSpace(out.Narrative),
		QuestionType: out.QuestionType,
		Options:      options,
	}
}

// userLanguage es best-effort: sin usuario el prompt simplemente no fija idioma.
func (s *QuizService) userLanguage(ctx context.Context, userID string) string {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return ""
	}
	return user.Intake.Language
}

// validateTranscript exige: alternancia prompt/response empezando por prompt y terminando en response,
// tipos de pregunta coherentes con el guion (o su fallback), respuestas validas y sin finale previo.
func (s *QuizService) validateTranscript(t domain.Transcript) error {
	if len(t) == 0 {
		return fmt.Errorf("%w: transcript is empty", ErrInvalidInput)
	}
	if len(t)%2 != 0 {
		return fmt.Errorf("%w: transcript must end with a response", ErrInvalidInput)
	}

	var lastPrompt domain.TranscriptEntry
	for i, e := range t {
		turn := i/2 + 1
		if i%2 == 0 {
			if e.Role != domain.RolePrompt {
				return fmt.Errorf("%w: entry %d must be a prompt", ErrInvalidInput, i)
			}
			if e.QuestionType == domain.QuestionFinale {
				return fmt.Errorf("%w: assessment already completed", ErrInvalidInput)
			}
			if !s.acceptsQuestionType(turn, e.QuestionType) {
				return fmt.Errorf("%w: entry %d has questionType %q, not valid for turn %d", ErrInvalidInput, i, e.QuestionType, turn)
			}
			lastPrompt = e
			continue
		}

		if e.Role != domain.RoleResponse {
			return fmt.Errorf("%w: entry %d must be a response", ErrInvalidInput, i)
		}
		if err := validateAnswers(lastPrompt, e.Answers); err != nil {
			return fmt.Errorf("%w: entry %d: %s", ErrInvalidInput, i, err.Error())
		}
	}
	return nil
}

func (s *QuizService) acceptsQuestionType(turn int, qt domain.QuestionType) bool {
	def, ok := s.script.Turn(turn)
	if !ok {
		return false
	}
	return qt == def.QuestionType || qt == Fallback(turn).QuestionType
}

func validateAnswers(prompt domain.TranscriptEntry, answers []string) error {
	if len(answers) == 0 {
		return errors.New("response has no answers")
	}
	if prompt.QuestionType == domain.QuestionSingleChoice && len(answers) != 1 {
		return fmt.Errorf("single-choice response must have exactly one answer, got %d", len(answers))
	}
	for _, a := range answers {
		if strings.TrimSpace(a) == "" {
			return errors.New("response has an empty answer")
		}
		if len(prompt.Options) > 0 && !containsFold(prompt.Options, a) {
			return fmt.Errorf("answer %q is not one of the offered options", a)
		}
	}
	return nil
}

func containsFold(options []string, v string) bool {
	v = strings.TrimSpace(v)
	for _, o := range options {
		if strings.EqualFold(strings.TrimSpace(o), v) {
			return true
		}
	}
	return false
}

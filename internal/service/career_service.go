package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"career-compass/internal/domain"
	"career-compass/internal/repository"
)

const careerInstructions = `You are a visionary career counsellor for students. Using the trait profile below, invent five original, specific career paths
that blend the student's motivators, aptitudes and interests. Avoid generic job titles such as "Engineer" or "Doctor".
Answer with a single JSON object and nothing else, using exactly these keys:
{
  "direction": "one sentence describing the overall direction that suits the student",
  "paths": [{"title": "short invented title", "description": "two sentences describing the work"}]
}
The "paths" list must contain exactly 5 entries.`

const (
	defaultCareerMaxAttempts = 3
	defaultCareerBackoffBase = 2 * time.Second
)

// SleepFunc espera d o hasta que ctx se cancele.
type SleepFunc func(ctx context.Context, d time.Duration) error

// CareerService genera la direccion y los cinco caminos, con reintentos y fallback fijo.
type CareerService struct {
	logger      *zap.Logger
	oracle      *OracleClient
	advice      repository.CareerAdviceRepository
	maxAttempts int
	backoffBase time.Duration
	sleep       SleepFunc
	tracer      trace.Tracer
	now         func() time.Time
}

func NewCareerService(logger *zap.Logger, oracle *OracleClient, advice repository.CareerAdviceRepository) *CareerService {
	return &CareerService{
		logger:      logger,
		oracle:      oracle,
		advice:      advice,
		maxAttempts: defaultCareerMaxAttempts,
		backoffBase: defaultCareerBackoffBase,
		sleep:       sleepContext,
		tracer:      otel.Tracer("career-compass/career"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// SetRetryPolicy ajusta intentos y base del backoff; valores no positivos se ignoran.
func (s *CareerService) SetRetryPolicy(maxAttempts int, base time.Duration) {
	if maxAttempts > 0 {
		s.maxAttempts = maxAttempts
	}
	if base > 0 {
		s.backoffBase = base
	}
}

// SetSleep reemplaza la espera entre intentos (tests).
func (s *CareerService) SetSleep(fn SleepFunc) {
	if fn != nil {
		s.sleep = fn
	}
}

// backoffDelay: base * 2^(attempt-1), attempt 1-based.
func backoffDelay(base time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return base * time.Duration(1<<uint(attempt-1))
}

// Generate siempre devuelve un CareerAdvice valido salvo error de entrada o de persistencia.
func (s *CareerService) Generate(ctx context.Context, userID string, profile domain.TraitProfile) (domain.CareerAdvice, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.CareerAdvice{}, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if missing := profile.Missing(); len(missing) > 0 {
		return domain.CareerAdvice{}, fmt.Errorf("%w: missing profile fields: %s", ErrInvalidInput, strings.Join(missing, ", "))
	}

	ctx, span := s.tracer.Start(ctx, "career.generate")
	defer span.End()

	prompt := careerInstructions + "\n\nTrait profile:\n" + formatProfile(profile)

	attempts := 0
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		attempts = attempt
		span.AddEvent("attempt", trace.WithAttributes(attribute.Int("attempt", attempt)))

		var out domain.CareerAdvice
		check := func() error { return checkCareerAdvice(out) }
		err := s.oracle.Invoke(ctx, "career", prompt, check, &out)
		if err == nil {
			return s.persist(ctx, userID, normalizeAdvice(out), domain.SourceOracle, attempt)
		}

		s.logger.Warn("career generation attempt failed",
			zap.String("user_id", userID),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", s.maxAttempts),
			zap.String("kind", string(oracleErrorKind(err))),
		)

		if attempt == s.maxAttempts {
			break
		}
		delay := backoffDelay(s.backoffBase, attempt)
		span.AddEvent("backoff", trace.WithAttributes(attribute.Int64("delay_ms", delay.Milliseconds())))
		if err := s.sleep(ctx, delay); err != nil {
			s.logger.Warn("career generation cancelled during backoff", zap.String("user_id", userID), zap.Error(err))
			break
		}
	}

	span.SetAttributes(attribute.Bool("career.fallback", true))
	return s.persist(ctx, userID, fallbackCareerAdvice(), domain.SourceFallback, attempts)
}

// Get devuelve el consejo persistido.
func (s *CareerService) Get(ctx context.Context, userID string) (domain.StoredCareerAdvice, error) {
	doc, err := s.advice.GetByUserID(ctx, strings.TrimSpace(userID))
	if errors.Is(err, repository.ErrNotFound) {
		return domain.StoredCareerAdvice{}, ErrNotFound
	}
	return doc, err
}

func (s *CareerService) persist(ctx context.Context, userID string, advice domain.CareerAdvice, source string, attempts int) (domain.CareerAdvice, error) {
	// El resultado se guarda aunque el request se haya cancelado durante el backoff.
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	now := s.now()
	doc := domain.StoredCareerAdvice{
		UserID:    userID,
		Advice:    advice,
		Source:    source,
		Attempts:  attempts,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.advice.Save(saveCtx, doc); err != nil {
		return domain.CareerAdvice{}, fmt.Errorf("save career advice: %w", err)
	}
	s.logger.Info("career advice generated",
		zap.String("user_id", userID),
		zap.String("source", source),
		zap.Int("attempts", attempts),
	)
	return advice, nil
}

func checkCareerAdvice(a domain.CareerAdvice) error {
	if strings.TrimSpace(a.Direction) == "" {
		return schemaErrorf("direction is empty")
	}
	if len(a.Paths) != domain.CareerPathCount {
		return schemaErrorf("expected %d paths, got %d", domain.CareerPathCount, len(a.Paths))
	}
	for i, p := range a.Paths {
		if !p.Valid() {
			return schemaErrorf("path %d is missing title or description", i+1)
		}
	}
	return nil
}

func normalizeAdvice(a domain.CareerAdvice) domain.CareerAdvice {
	out := domain.CareerAdvice{
		Direction: strings.TrimSpace(a.Direction),
		Paths:     make([]domain.CareerPath, 0, len(a.Paths)),
	}
	for _, p := range a.Paths {
		out.Paths = append(out.Paths, domain.CareerPath{
			Title:       strings.TrimSpace(p.Title),
			Description: strings.TrimSpace(p.Description),
		})
	}
	return out
}

func formatProfile(p domain.TraitProfile) string {
	var sb strings.Builder
	sb.WriteString("Core motivators: " + strings.Join(p.CoreMotivators, ", ") + "\n")
	sb.WriteString("Problem-solving style: " + p.ProblemSolvingStyle + "\n")
	sb.WriteString("Preferred environment: " + p.PreferredEnvironment + "\n")
	sb.WriteString("Key aptitudes: " + strings.Join(p.KeyAptitudes, ", ") + "\n")
	sb.WriteString("Interests: " + strings.Join(p.Interests, ", ") + "\n")
	sb.WriteString("Personality summary: " + p.PersonalitySummary + "\n")
	return sb.String()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

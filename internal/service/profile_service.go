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

const profileAnalysisInstructions = `You are an experienced career psychologist. Below is the transcript of an interactive story in which a student made choices.
Infer the student's traits from their choices and answer with a single JSON object and nothing else, using exactly these keys:
{
  "coreMotivators": [2-3 short labels],
  "problemSolvingStyle": "one short label",
  "preferredEnvironment": "one short label",
  "keyAptitudes": [3-4 short labels],
  "interests": [2-3 short labels],
  "personalitySummary": "one paragraph written to the student in second person"
}
Do not mention the story, the fair or specific choices in the labels.`

// ProfileService sintetiza el TraitProfile a partir del transcript completo.
type ProfileService struct {
	logger   *zap.Logger
	oracle   *OracleClient
	profiles repository.ProfileRepository
	now      func() time.Time
}

func NewProfileService(logger *zap.Logger, oracle *OracleClient, profiles repository.ProfileRepository) *ProfileService {
	return &ProfileService{
		logger:   logger,
		oracle:   oracle,
		profiles: profiles,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Synthesize nunca falla por el oraculo: sin campos esenciales devuelve el perfil generico. No reintenta.
func (s *ProfileService) Synthesize(ctx context.Context, userID string, transcript domain.Transcript) (domain.TraitProfile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.TraitProfile{}, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if len(transcript) == 0 {
		return domain.TraitProfile{}, fmt.Errorf("%w: transcript is empty", ErrInvalidInput)
	}
	if !transcript.HasResponse() {
		return domain.TraitProfile{}, fmt.Errorf("%w: transcript has no responses", ErrInvalidInput)
	}

	prompt := profileAnalysisInstructions + "\n\nTranscript:\n" + formatTranscript(transcript)

	var out domain.TraitProfile
	check := func() error {
		var missing []string
		if !hasNonBlank(out.CoreMotivators) {
			missing = append(missing, "coreMotivators")
		}
		if !hasNonBlank(out.KeyAptitudes) {
			missing = append(missing, "keyAptitudes")
		}
		if strings.TrimSpace(out.PersonalitySummary) == "" {
			missing = append(missing, "personalitySummary")
		}
		if len(missing) > 0 {
			return schemaErrorf("missing essential fields: %s", strings.Join(missing, ", "))
		}
		return nil
	}

	profile := fallbackProfile()
	source := domain.SourceFallback
	if err := s.oracle.Invoke(ctx, "profile", prompt, check, &out); err != nil {
		s.logger.Warn("profile synthesis fell back",
			zap.String("user_id", userID),
			zap.String("kind", string(oracleErrorKind(err))),
		)
	} else {
		profile = completeProfile(out)
		source = domain.SourceOracle
	}

	doc := domain.StoredProfile{
		UserID:      userID,
		Profile:     profile,
		Source:      source,
		GeneratedAt: s.now(),
	}
	if err := s.profiles.Save(ctx, doc); err != nil {
		return domain.TraitProfile{}, fmt.Errorf("save profile: %w", err)
	}

	s.logger.Info("profile synthesized", zap.String("user_id", userID), zap.String("source", source))
	return profile, nil
}

// Get devuelve el perfil persistido.
func (s *ProfileService) Get(ctx context.Context, userID string) (domain.StoredProfile, error) {
	doc, err := s.profiles.GetByUserID(ctx, strings.TrimSpace(userID))
	if errors.Is(err, repository.ErrNotFound) {
		return domain.StoredProfile{}, ErrNotFound
	}
	return doc, err
}

// completeProfile limpia las etiquetas, aplica los topes y rellena campos no esenciales vacios con el generico.
func completeProfile(p domain.TraitProfile) domain.TraitProfile {
	fb := fallbackProfile()
	out := domain.TraitProfile{
		CoreMotivators:       capLabels(p.CoreMotivators, 3),
		ProblemSolvingStyle:  strings.TrimSpace(p.ProblemSolvingStyle),
		PreferredEnvironment: strings.TrimSpace(p.PreferredEnvironment),
		KeyAptitudes:         capLabels(p.KeyAptitudes, 4),
		Interests:            capLabels(p.Interests, 3),
		PersonalitySummary:   strings.TrimSpace(p.PersonalitySummary),
	}
	if out.ProblemSolvingStyle == "" {
		out.ProblemSolvingStyle = fb.ProblemSolvingStyle
	}
	if out.PreferredEnvironment == "" {
		out.PreferredEnvironment = fb.PreferredEnvironment
	}
	if len(out.Interests) == 0 {
		out.Interests = fb.Interests
	}
	return out
}

// capLabels descarta vacios y recorta a max etiquetas.
func capLabels(labels []string, max int) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		out = append(out, l)
		if len(out) == max {
			break
		}
	}
	return out
}

func hasNonBlank(labels []string) bool {
	for _, l := range labels {
		if strings.TrimSpace(l) != "" {
			return true
		}
	}
	return false
}

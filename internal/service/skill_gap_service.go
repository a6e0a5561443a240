package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"career-compass/internal/domain"
	"career-compass/internal/repository"
)

const skillGapInstructions = `You are a career mentor. Given a student's trait profile and one career path they chose, answer with a single JSON object and nothing else:
{
  "brief": "a short paragraph describing what the work involves day to day",
  "totalSkills": [3-5 generic skills anyone in this career needs, independent of the student],
  "skillGap": [{"skill": "meta-skill name", "reason": "why this student should grow it, related to their aptitudes"}]
}
"skillGap" must contain exactly 2 entries. Each must be a transferable cognitive or behavioural meta-skill
(for example "Systems Thinking" or "Structured Communication"), never a tool, software or programming language.`

// SkillGapService analiza la brecha de habilidades para un camino, con cache por (usuario, titulo).
// No tiene fallback: si el oraculo falla, el error llega al llamador.
type SkillGapService struct {
	logger   *zap.Logger
	oracle   *OracleClient
	analyses repository.SkillAnalysisRepository
	cache    SkillCache
	group    singleflight.Group
	now      func() time.Time

	generateTimeout time.Duration
}

// defaultSkillGenerateTimeout acota la llamada compartida al oraculo.
const defaultSkillGenerateTimeout = 2 * time.Minute

// NewSkillGapService acepta cache nil: entonces solo se consulta el documento.
func NewSkillGapService(logger *zap.Logger, oracle *OracleClient, analyses repository.SkillAnalysisRepository, cache SkillCache) *SkillGapService {
	return &SkillGapService{
		logger:   logger,
		oracle:   oracle,
		analyses: analyses,
		cache:    cache,
		now:      func() time.Time { return time.Now().UTC() },

		generateTimeout: defaultSkillGenerateTimeout,
	}
}

// Analyze devuelve el analisis cacheado o consulta al oraculo una sola vez.
func (s *SkillGapService) Analyze(ctx context.Context, userID string, profile domain.TraitProfile, path domain.CareerPath) (domain.SkillAnalysis, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.SkillAnalysis{}, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if missing := profile.Missing(); len(missing) > 0 {
		return domain.SkillAnalysis{}, fmt.Errorf("%w: missing profile fields: %s", ErrInvalidInput, strings.Join(missing, ", "))
	}
	if !path.Valid() {
		return domain.SkillAnalysis{}, fmt.Errorf("%w: path title and description are required", ErrInvalidInput)
	}
	path.Title = strings.TrimSpace(path.Title)

	if cached, ok, err := s.lookup(ctx, userID, path.Title); err != nil {
		return domain.SkillAnalysis{}, err
	} else if ok {
		return cached.Analysis, nil
	}

	// La generacion compartida no depende del contexto de ningun llamador; cada uno espera con el suyo.
	ch := s.group.DoChan(skillCacheKey(userID, path.Title), func() (interface{}, error) {
		genCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.generateTimeout)
		defer cancel()
		return s.generate(genCtx, userID, profile, path)
	})
	select {
	case <-ctx.Done():
		return domain.SkillAnalysis{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.SkillAnalysis{}, res.Err
		}
		if res.Shared {
			s.logger.Debug("skill analysis shared with concurrent request", zap.String("user_id", userID), zap.String("path", path.Title))
		}
		return res.Val.(domain.SkillAnalysis), nil
	}
}

// List devuelve todos los analisis cacheados del usuario.
func (s *SkillGapService) List(ctx context.Context, userID string) (domain.SkillAnalysisDoc, error) {
	doc, err := s.analyses.List(ctx, strings.TrimSpace(userID))
	if errors.Is(err, repository.ErrNotFound) {
		return domain.SkillAnalysisDoc{}, ErrNotFound
	}
	return doc, err
}

// lookup consulta primero el cache rapido y despues el documento, que es la fuente de verdad.
func (s *SkillGapService) lookup(ctx context.Context, userID, title string) (domain.CachedSkillAnalysis, bool, error) {
	if s.cache != nil {
		entry, ok, err := s.cache.Get(ctx, userID, title)
		if err != nil {
			s.logger.Warn("skill cache read failed", zap.String("user_id", userID), zap.Error(err))
		} else if ok {
			return entry, true, nil
		}
	}

	entry, err := s.analyses.Get(ctx, userID, title)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.CachedSkillAnalysis{}, false, nil
	}
	if err != nil {
		return domain.CachedSkillAnalysis{}, false, fmt.Errorf("read skill analysis: %w", err)
	}
	s.warmCache(ctx, userID, entry)
	return entry, true, nil
}

func (s *SkillGapService) generate(ctx context.Context, userID string, profile domain.TraitProfile, path domain.CareerPath) (domain.SkillAnalysis, error) {
	prompt := skillGapInstructions +
		"\n\nTrait profile:\n" + formatProfile(profile) +
		"\nChosen career path:\nTitle: " + path.Title + "\nDescription: " + strings.TrimSpace(path.Description) + "\n"

	var out domain.SkillAnalysis
	check := func() error { return checkSkillAnalysis(out) }
	if err := s.oracle.Invoke(ctx, "skill_gap", prompt, check, &out); err != nil {
		s.logger.Error("skill analysis failed",
			zap.String("user_id", userID),
			zap.String("path", path.Title),
			zap.String("kind", string(oracleErrorKind(err))),
		)
		return domain.SkillAnalysis{}, fmt.Errorf("%w: %w", ErrSkillAnalysisUnavailable, err)
	}

	if len(out.SkillGap) < domain.SkillGapCount {
		s.logger.Warn("skill analysis has fewer gap items than requested",
			zap.String("user_id", userID),
			zap.String("path", path.Title),
			zap.Int("got", len(out.SkillGap)),
			zap.Int("want", domain.SkillGapCount),
		)
	}
	analysis := normalizeSkillAnalysis(out)
	entry := domain.CachedSkillAnalysis{
		PathTitle: path.Title,
		Analysis:  analysis,
		CreatedAt: s.now(),
	}
	if err := s.analyses.Put(ctx, userID, entry); err != nil {
		return domain.SkillAnalysis{}, fmt.Errorf("save skill analysis: %w", err)
	}
	s.warmCache(ctx, userID, entry)

	s.logger.Info("skill analysis generated", zap.String("user_id", userID), zap.String("path", path.Title))
	return analysis, nil
}

func (s *SkillGapService) warmCache(ctx context.Context, userID string, entry domain.CachedSkillAnalysis) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, userID, entry); err != nil {
		s.logger.Warn("skill cache write failed", zap.String("user_id", userID), zap.Error(err))
	}
}

func checkSkillAnalysis(a domain.SkillAnalysis) error {
	if strings.TrimSpace(a.Brief) == "" {
		return schemaErrorf("brief is empty")
	}
	if !hasNonBlank(a.TotalSkills) {
		return schemaErrorf("totalSkills is empty")
	}
	if len(a.SkillGap) == 0 {
		return schemaErrorf("skillGap is empty")
	}
	for i, g := range a.SkillGap {
		if strings.TrimSpace(g.Skill) == "" {
			return schemaErrorf("skillGap entry %d has no skill", i+1)
		}
	}
	return nil
}

// normalizeSkillAnalysis recorta a los maximos; nunca inventa entradas.
func normalizeSkillAnalysis(a domain.SkillAnalysis) domain.SkillAnalysis {
	out := domain.SkillAnalysis{
		Brief:       strings.TrimSpace(a.Brief),
		TotalSkills: capLabels(a.TotalSkills, domain.MaxTotalSkills),
		SkillGap:    make([]domain.SkillGapItem, 0, domain.SkillGapCount),
	}
	for _, g := range a.SkillGap {
		if len(out.SkillGap) == domain.SkillGapCount {
			break
		}
		out.SkillGap = append(out.SkillGap, domain.SkillGapItem{
			Skill:  strings.TrimSpace(g.Skill),
			Reason: strings.TrimSpace(g.Reason),
		})
	}
	return out
}

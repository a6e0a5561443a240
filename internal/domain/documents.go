package domain

import "time"

// Colecciones logicas del document store.
const (
	CollectionUsers          = "users"
	CollectionGameTranscript = "gameTranscripts"
	CollectionUserProfiles   = "userProfiles"
	CollectionCareerAdvice   = "careerAdvice"
	CollectionSkillAnalysis  = "skillAnalysis"
)

// Origen del contenido persistido.
const (
	SourceOracle   = "oracle"
	SourceFallback = "fallback"
	SourceScript   = "script"
)

// GameTranscript es el documento gameTranscripts/{uid}.
type GameTranscript struct {
	UserID      string     `json:"user_id"`
	Transcript  Transcript `json:"transcript"`
	TurnCount   int        `json:"turn_count"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// StoredProfile es el documento userProfiles/{uid}.
type StoredProfile struct {
	UserID      string       `json:"user_id"`
	Profile     TraitProfile `json:"profile"`
	Source      string       `json:"source"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// StoredCareerAdvice es el documento careerAdvice/{uid}.
type StoredCareerAdvice struct {
	UserID    string       `json:"user_id"`
	Advice    CareerAdvice `json:"advice"`
	Source    string       `json:"source"`
	Attempts  int          `json:"attempts"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// SkillAnalysisDoc es el documento skillAnalysis/{uid}: titulo del camino -> analisis cacheado.
type SkillAnalysisDoc struct {
	UserID    string                         `json:"user_id"`
	Entries   map[string]CachedSkillAnalysis `json:"entries"`
	UpdatedAt time.Time                      `json:"updated_at"`
}

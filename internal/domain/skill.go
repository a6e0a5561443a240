package domain

import "time"

const (
	MaxTotalSkills = 5
	SkillGapCount  = 2
)

// SkillGapItem es una meta-habilidad personalizada y su explicacion respecto de las aptitudes.
type SkillGapItem struct {
	Skill  string `json:"skill"`
	Reason string `json:"reason"`
}

// SkillAnalysis es el resultado del analisis de brecha para un camino elegido.
type SkillAnalysis struct {
	Brief       string         `json:"brief"`
	TotalSkills []string       `json:"totalSkills"`
	SkillGap    []SkillGapItem `json:"skillGap"`
}

// CachedSkillAnalysis es una entrada del cache por usuario.
type CachedSkillAnalysis struct {
	PathTitle string        `json:"path_title"`
	Analysis  SkillAnalysis `json:"analysis"`
	CreatedAt time.Time     `json:"created_at"`
}

// Package testhelpers contiene dobles de prueba compartidos entre paquetes.
package testhelpers

import (
	"errors"
	"strings"

	"career-compass/internal/llm"
)

// Respuestas canonicas del oraculo para el escenario de punta a punta.
const (
	ProfileJSON = "```json\n" + `{
  "coreMotivators": ["Helping Others", "Building Things", "Discovery"],
  "problemSolvingStyle": "Analytical Planner",
  "preferredEnvironment": "Collaborative Team",
  "keyAptitudes": ["Logical Reasoning", "Empathy", "Systems Thinking", "Planning"],
  "interests": ["Health", "Technology"],
  "personalitySummary": "You combine a careful, analytical mind with a genuine wish to help people, and you enjoy turning messy problems into clear plans."
}` + "\n```"

	CareerJSON = `Here is the advice: {
  "direction": "Roles where technology meets human wellbeing suit you best.",
  "paths": [
    {"title": "Bio-Data Storyteller", "description": "Turns health data into stories that help communities make better choices."},
    {"title": "Clinic Flow Architect", "description": "Redesigns how clinics work so patients wait less and get better care."},
    {"title": "Assistive Tech Tinkerer", "description": "Builds and adapts devices that help people with disabilities live independently."},
    {"title": "Wellbeing Systems Analyst", "description": "Studies how schools and workplaces affect wellbeing and proposes improvements."},
    {"title": "Community Health Planner", "description": "Plans neighbourhood health programmes using data and conversations with residents."}
  ]
}`

	SkillJSON = `{
  "brief": "A Bio-Data Storyteller works with health datasets, finds patterns and explains them clearly to non-experts.",
  "totalSkills": ["Data Analysis", "Statistics", "Visual Communication", "Domain Knowledge of Health", "Writing", "Presentation"],
  "skillGap": [
    {"skill": "Structured Communication", "reason": "Your empathy is a strength; structuring messages will let it reach wider audiences."},
    {"skill": "Comfort with Ambiguity", "reason": "Your planning aptitude benefits from learning to act when data is incomplete."},
    {"skill": "Negotiation", "reason": "Extra entry that should be dropped."}
  ]
}`
)

// Marcadores que identifican cada etapa en los prompts.
const (
	turnMarker    = "in the same order:\n"
	profileMarker = "career psychologist"
	careerMarker  = "career counsellor"
	skillMarker   = "career mentor"
)

// ErrUnknownPrompt se devuelve cuando el prompt no corresponde a ninguna etapa conocida.
var ErrUnknownPrompt = errors.New("scripted oracle: unknown prompt")

// NewScriptedOracle devuelve un MockClient que responde cada etapa del pipeline.
// Para los turnos del quiz devuelve exactamente el turno que pide el prompt.
func NewScriptedOracle() *llm.MockClient {
	return &llm.MockClient{Handler: ScriptedResponse}
}

// ScriptedResponse es el handler de NewScriptedOracle, reutilizable para componer otros dobles.
func ScriptedResponse(prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, turnMarker):
		idx := strings.LastIndex(prompt, turnMarker)
		return "```json\n" + strings.TrimSpace(prompt[idx+len(turnMarker):]) + "\n```", nil
	case strings.Contains(prompt, profileMarker):
		return ProfileJSON, nil
	case strings.Contains(prompt, careerMarker):
		return CareerJSON, nil
	case strings.Contains(prompt, skillMarker):
		return SkillJSON, nil
	default:
		return "", ErrUnknownPrompt
	}
}

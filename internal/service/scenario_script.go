package service

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"career-compass/internal/domain"
)

//go:embed scenarios.yaml
var scenariosYAML []byte

// ScenarioTurn es la definicion fija de un turno del guion.
type ScenarioTurn struct {
	Turn         int                 `yaml:"turn"`
	Scenario     string              `yaml:"scenario"`
	QuestionType domain.QuestionType `yaml:"question_type"`
	Narrative    string              `yaml:"narrative"`
	Options      []string            `yaml:"options"`
}

// Prompt convierte la definicion en PromptEntry.
func (t ScenarioTurn) Prompt() domain.PromptEntry {
	return domain.PromptEntry{
		Turn:         t.Turn,
		Narrative:    t.Narrative,
		QuestionType: t.QuestionType,
		Options:      append([]string{}, t.Options...),
	}
}

// ScenarioScript es la secuencia completa de turnos; el ultimo es el finale.
type ScenarioScript struct {
	TerminalTurn int            `yaml:"terminal_turn"`
	Turns        []ScenarioTurn `yaml:"turns"`
}

// LoadScenarioScript parsea y valida un guion en YAML.
func LoadScenarioScript(raw []byte) (*ScenarioScript, error) {
	var script ScenarioScript
	if err := yaml.Unmarshal(raw, &script); err != nil {
		return nil, fmt.Errorf("parse scenario script: %w", err)
	}
	if err := script.validate(); err != nil {
		return nil, err
	}
	return &script, nil
}

// DefaultScenarioScript devuelve el guion embebido. Un guion embebido invalido es un bug de build.
func DefaultScenarioScript() *ScenarioScript {
	script, err := LoadScenarioScript(scenariosYAML)
	if err != nil {
		panic(err)
	}
	return script
}

func (s *ScenarioScript) validate() error {
	if s.TerminalTurn < 1 || len(s.Turns) != s.TerminalTurn {
		return fmt.Errorf("scenario script: expected %d turns, got %d", s.TerminalTurn, len(s.Turns))
	}
	for i, t := range s.Turns {
		if t.Turn != i+1 {
			return fmt.Errorf("scenario script: turn %d out of order (position %d)", t.Turn, i+1)
		}
		if !t.QuestionType.Valid() {
			return fmt.Errorf("scenario script: turn %d has unknown question type %q", t.Turn, t.QuestionType)
		}
		if strings.TrimSpace(t.Narrative) == "" {
			return fmt.Errorf("scenario script: turn %d has no narrative", t.Turn)
		}
		isLast := t.Turn == s.TerminalTurn
		if isLast != (t.QuestionType == domain.QuestionFinale) {
			return fmt.Errorf("scenario script: finale must be exactly the terminal turn (turn %d)", t.Turn)
		}
		if isLast && len(t.Options) > 0 {
			return fmt.Errorf("scenario script: finale turn cannot have options")
		}
		if !isLast && len(t.Options) < 2 {
			return fmt.Errorf("scenario script: turn %d needs at least two options", t.Turn)
		}
	}
	return nil
}

// Turn devuelve la definicion del turno n (1-based).
func (s *ScenarioScript) Turn(n int) (ScenarioTurn, bool) {
	if n < 1 || n > len(s.Turns) {
		return ScenarioTurn{}, false
	}
	return s.Turns[n-1], true
}

// Opening personaliza el turno 1 con los datos de ingreso.
func (s *ScenarioScript) Opening(intake domain.Intake) domain.PromptEntry {
	p := s.Turns[0].Prompt()
	r := strings.NewReplacer(
		"{name}", strings.TrimSpace(intake.Name),
		"{stage}", strings.TrimSpace(intake.Stage),
		"{locale}", strings.TrimSpace(intake.Locale),
		"{language}", strings.TrimSpace(intake.Language),
	)
	p.Narrative = r.Replace(p.Narrative)
	return p
}

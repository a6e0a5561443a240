package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"career-compass/internal/domain"
)

const quizRoleInstructions = `You are the narrator of "The Compass Fair", an interactive story used as a career assessment for students.
You speak warmly and vividly, in second person, and keep each narrative under 120 words.
You never give advice, never mention careers, tests or assessments, and never break character.
You always answer with a single JSON object and nothing else, using exactly these keys:
{"narrative": string, "questionType": "single-choice" | "multi-choice" | "finale", "options": [string, ...]}`

type quizPromptPayload struct {
	Narrative    string              `json:"narrative"`
	QuestionType domain.QuestionType `json:"questionType"`
	Options      []string            `json:"options"`
}

// buildOpeningPrompt arma el prompt del turno 1 con el escenario ya personalizado.
func buildOpeningPrompt(intake domain.Intake, expected domain.PromptEntry) string {
	var sb strings.Builder
	sb.WriteString(quizRoleInstructions)
	sb.WriteString("\n\n")
	sb.WriteString("Player details:\n")
	sb.WriteString(fmt.Sprintf("- Name: %s\n- Stage of study: %s\n- Location: %s\n- Language: %s\n",
		intake.Name, intake.Stage, intake.Locale, intake.Language))
	sb.WriteString("\nThe story has not started yet. Transcript so far: (empty)\n\n")
	writeTurnRequest(&sb, expected, intake.Language)
	return sb.String()
}

// buildTurnPrompt arma el prompt para el turno N: instrucciones, transcript y el turno esperado.
func buildTurnPrompt(transcript domain.Transcript, expected domain.PromptEntry, language string) string {
	var sb strings.Builder
	sb.WriteString(quizRoleInstructions)
	sb.WriteString("\n\nTranscript so far:\n")
	sb.WriteString(formatTranscript(transcript))
	sb.WriteString("\n")
	writeTurnRequest(&sb, expected, language)
	return sb.String()
}

func writeTurnRequest(sb *strings.Builder, expected domain.PromptEntry, language string) {
	payload := quizPromptPayload{
		Narrative:    expected.Narrative,
		QuestionType: expected.QuestionType,
		Options:      expected.Options,
	}
	if payload.Options == nil {
		payload.Options = []string{}
	}
	raw, _ := json.MarshalIndent(payload, "", "  ")

	sb.WriteString(fmt.Sprintf("You are now producing turn %d.\n", expected.Turn))
	if strings.TrimSpace(language) != "" {
		sb.WriteString(fmt.Sprintf("Write in %s.\n", language))
	}
	switch expected.QuestionType {
	case domain.QuestionFinale:
		sb.WriteString("This is the final turn: close the story and return an empty options list.\n")
	case domain.QuestionMultiChoice:
		sb.WriteString("The player may choose up to two options.\n")
	default:
		sb.WriteString("The player must choose exactly one option.\n")
	}
	sb.WriteString(fmt.Sprintf("Reproduce this turn exactly, keeping questionType %q and exactly %d options in the same order:\n",
		expected.QuestionType, len(expected.Options)))
	sb.Write(raw)
	sb.WriteString("\n")
}

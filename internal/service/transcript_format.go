package service

import (
	"fmt"
	"strings"

	"career-compass/internal/domain"
)

// formatTranscript renderiza el transcript como texto plano, una entrada por bloque.
func formatTranscript(transcript domain.Transcript) string {
	var sb strings.Builder
	turn := 0
	for _, e := range transcript {
		switch e.Role {
		case domain.RolePrompt:
			turn++
			sb.WriteString(fmt.Sprintf("Prompt (turn %d, %s): %s\n", turn, e.QuestionType, strings.TrimSpace(e.Narrative)))
			if len(e.Options) > 0 {
				sb.WriteString("Options: " + strings.Join(e.Options, " | ") + "\n")
			}
		case domain.RoleResponse:
			sb.WriteString("Response: " + strings.Join(e.Answers, "; ") + "\n")
		}
		sb.WriteString("---\n")
	}
	return sb.String()
}

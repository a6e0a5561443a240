package domain

import (
	"strings"
	"time"
)

// QuestionType indica como debe responder el usuario a un turno.
type QuestionType string

const (
	QuestionSingleChoice QuestionType = "single-choice"
	QuestionMultiChoice  QuestionType = "multi-choice"
	QuestionFinale       QuestionType = "finale"
)

// Valid reporta si el tipo es uno de los tres conocidos.
func (q QuestionType) Valid() bool {
	switch q {
	case QuestionSingleChoice, QuestionMultiChoice, QuestionFinale:
		return true
	}
	return false
}

// EntryRole etiqueta cada entrada del transcript.
type EntryRole string

const (
	RolePrompt   EntryRole = "prompt"
	RoleResponse EntryRole = "response"
)

// PromptEntry es el contenido de un turno generado por el oraculo (o el fallback).
type PromptEntry struct {
	Turn         int          `json:"turn"`
	Narrative    string       `json:"narrative"`
	QuestionType QuestionType `json:"questionType"`
	Options      []string     `json:"options"`
}

// IsFinale reporta si el turno cierra el flujo.
func (p PromptEntry) IsFinale() bool {
	return p.QuestionType == QuestionFinale
}

// TranscriptEntry es una entrada inmutable del transcript: un prompt o una respuesta del usuario.
type TranscriptEntry struct {
	Role         EntryRole    `json:"role"`
	Narrative    string       `json:"narrative,omitempty"`
	QuestionType QuestionType `json:"questionType,omitempty"`
	Options      []string     `json:"options,omitempty"`
	Answers      []string     `json:"answers,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// NewPromptEntry convierte un PromptEntry en entrada de transcript.
func NewPromptEntry(p PromptEntry, at time.Time) TranscriptEntry {
	return TranscriptEntry{
		Role:         RolePrompt,
		Narrative:    p.Narrative,
		QuestionType: p.QuestionType,
		Options:      append([]string(nil), p.Options...),
		CreatedAt:    at,
	}
}

// NewResponseEntry crea la respuesta literal del usuario.
func NewResponseEntry(answers []string, at time.Time) TranscriptEntry {
	return TranscriptEntry{
		Role:      RoleResponse,
		Answers:   append([]string(nil), answers...),
		CreatedAt: at,
	}
}

// Transcript es la secuencia ordenada de entradas; el orden define el numero de turno.
type Transcript []TranscriptEntry

// PromptCount cuenta las entradas de tipo prompt.
func (t Transcript) PromptCount() int {
	n := 0
	for _, e := range t {
		if e.Role == RolePrompt {
			n++
		}
	}
	return n
}

// NextTurn es el numero del turno a producir: prompts previos + 1.
func (t Transcript) NextTurn() int {
	return t.PromptCount() + 1
}

// HasResponse reporta si existe al menos una respuesta del usuario.
func (t Transcript) HasResponse() bool {
	for _, e := range t {
		if e.Role == RoleResponse {
			return true
		}
	}
	return false
}

// Append devuelve un transcript nuevo con la entrada agregada al final, sin tocar el original.
func (t Transcript) Append(e TranscriptEntry) Transcript {
	out := make(Transcript, 0, len(t)+1)
	out = append(out, t...)
	return append(out, e)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

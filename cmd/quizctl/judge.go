package main

import (
	"context"
	"fmt"
	"strings"

	"career-compass/internal/domain"
	"career-compass/internal/llm"
	"career-compass/internal/service"
)

// judgeResponse es la respuesta estructurada del juez evaluador.
type judgeResponse struct {
	Reasoning            string `json:"reasoning"`
	MetaSkillScore       int    `json:"meta_skill_score"`
	PersonalizationScore int    `json:"personalization_score"`
}

// gapHeuristics son senales locales que acompanan al juicio del LLM.
type gapHeuristics struct {
	ToolLike        []string // items de skillGap que parecen herramientas concretas
	AptitudeReasons int      // razones que mencionan alguna aptitud del perfil
}

func evaluateSkillGap(
	ctx context.Context,
	judge llm.LLMClient,
	profile domain.TraitProfile,
	path domain.CareerPath,
	analysis domain.SkillAnalysis,
) (judgeResponse, gapHeuristics, error) {
	h := gapHeuristics{
		ToolLike:        detectToolNames(analysis.SkillGap),
		AptitudeReasons: countAptitudeReasons(profile.KeyAptitudes, analysis.SkillGap),
	}

	raw, err := judge.Generate(ctx, buildJudgePrompt(profile, path, analysis, h))
	if err != nil {
		return judgeResponse{}, h, err
	}

	var jr judgeResponse
	if err := service.DecodeLLMJSON(raw, &jr); err != nil {
		return judgeResponse{}, h, fmt.Errorf("parse judge json: %w (raw=%q)", err, raw)
	}

	// clamps por si el juez devuelve 0/10
	jr.MetaSkillScore = clamp1to5(jr.MetaSkillScore)
	jr.PersonalizationScore = clamp1to5(jr.PersonalizationScore)

	// una herramienta concreta en la brecha nunca es meta-habilidad
	if len(h.ToolLike) > 0 && jr.MetaSkillScore > 2 {
		jr.MetaSkillScore = 2
	}
	if h.AptitudeReasons == 0 && jr.PersonalizationScore > 3 {
		jr.PersonalizationScore = 3
	}
	return jr, h, nil
}

func clamp1to5(v int) int {
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}

var toolTokens = []string{
	"python", "excel", "sql", "java", "javascript", "c++", "photoshop", "figma",
	"tableau", "power bi", "autocad", "matlab", "spss", "kubernetes", "docker",
	"certification", "certificate", "degree", "diploma",
}

func detectToolNames(gap []domain.SkillGapItem) []string {
	var out []string
	for _, item := range gap {
		skill := strings.ToLower(item.Skill)
		for _, tok := range toolTokens {
			if containsWord(skill, tok) {
				out = append(out, item.Skill)
				break
			}
		}
	}
	return out
}

func countAptitudeReasons(aptitudes []string, gap []domain.SkillGapItem) int {
	count := 0
	for _, item := range gap {
		reason := strings.ToLower(item.Reason)
		for _, apt := range aptitudes {
			if aptitudeMentioned(reason, strings.ToLower(apt)) {
				count++
				break
			}
		}
	}
	return count
}

// aptitudeMentioned acepta la aptitud completa o cualquiera de sus palabras significativas.
func aptitudeMentioned(reason, aptitude string) bool {
	if aptitude == "" {
		return false
	}
	if strings.Contains(reason, aptitude) {
		return true
	}
	for _, w := range strings.Fields(aptitude) {
		if len(w) >= 5 && strings.Contains(reason, w) {
			return true
		}
	}
	return false
}

func containsWord(s, word string) bool {
	idx := strings.Index(s, word)
	for idx >= 0 {
		end := idx + len(word)
		before := idx == 0 || !isWordByte(s[idx-1])
		after := end == len(s) || !isWordByte(s[end])
		if before && after {
			return true
		}
		next := strings.Index(s[idx+1:], word)
		if next < 0 {
			return false
		}
		idx += next + 1
	}
	return false
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}

func buildJudgePrompt(profile domain.TraitProfile, path domain.CareerPath, analysis domain.SkillAnalysis, h gapHeuristics) string {
	var gap strings.Builder
	for _, item := range analysis.SkillGap {
		fmt.Fprintf(&gap, "- %s: %s\n", item.Skill, item.Reason)
	}
	return fmt.Sprintf(`You are an expert reviewer of career guidance written for school students.

Student aptitudes: %s
Student motivators: %s
Chosen path: %s (%s)
Skills the path requires: %s
Proposed skill gap:
%s
Heuristic signals: tool_like_items=%q, reasons_citing_aptitudes=%d

Score from 1 to 5:
1) meta_skill_score: are the skill gap items transferable meta-skills (communication, resilience, structured thinking) rather than specific tools, languages or certificates? 1 = concrete tools, 5 = clear meta-skills.
2) personalization_score: does each reason connect the skill to the student's own aptitudes? 1 = generic advice, 5 = every reason builds on a named aptitude.

Answer ONLY with JSON (no markdown):
{
  "reasoning": "...",
  "meta_skill_score": 0,
  "personalization_score": 0
}`,
		strings.Join(profile.KeyAptitudes, ", "),
		strings.Join(profile.CoreMotivators, ", "),
		path.Title, path.Description,
		strings.Join(analysis.TotalSkills, ", "),
		gap.String(),
		h.ToolLike, h.AptitudeReasons,
	)
}

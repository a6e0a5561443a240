package service

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fenceStartRe = regexp.MustCompile("(?is)^\\s*```(?:json)?\\s*")
	fenceEndRe   = regexp.MustCompile("(?is)\\s*```\\s*$")
)

// cleanLLMJSONResponse quita fences ```json ... ``` y BOM, dejando el contenido usable.
func cleanLLMJSONResponse(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	s = strings.TrimPrefix(s, "\uFEFF")
	s = fenceStartRe.ReplaceAllString(s, "")
	s = fenceEndRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// decodeLLMJSON limpia la respuesta y la parsea en out. Si el texto trae prosa alrededor,
// se intenta con el primer objeto JSON balanceado.
func decodeLLMJSON(raw string, out any) error {
	cleaned := cleanLLMJSONResponse(raw)
	err := json.Unmarshal([]byte(cleaned), out)
	if err == nil {
		return nil
	}
	obj, ok := extractFirstJSONObject(cleaned)
	if !ok {
		return err
	}
	return json.Unmarshal([]byte(obj), out)
}

// DecodeLLMJSON expone la decodificacion tolerante para herramientas fuera del pipeline.
func DecodeLLMJSON(raw string, out any) error {
	return decodeLLMJSON(raw, out)
}

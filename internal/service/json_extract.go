package service

import "strings"

// extractFirstJSONObject devuelve el primer objeto {...} balanceado, respetando strings y escapes.
func extractFirstJSONObject(input string) (string, bool) {
	start := strings.IndexByte(input, '{')
	if start == -1 {
		return "", false
	}

	inString := false
	escape := false
	depth := 0

	for i := start; i < len(input); i++ {
		ch := input[i]

		if inString {
			switch {
			case escape:
				escape = false
			case ch == '\\':
				escape = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return input[start : i+1], true
			}
		}
	}

	return "", false
}

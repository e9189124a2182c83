package llm

// The backend may wrap structured content in prose or markdown fences.
// These helpers locate the first matching brace/bracket pair so callers
// can unmarshal just that span.

// ExtractJSONObject returns the first complete JSON object embedded in the
// text, or false when none exists.
func ExtractJSONObject(content string) (string, bool) {
	return extractBalanced(content, '{', '}')
}

// ExtractJSONArray returns the first complete JSON array embedded in the
// text, or false when none exists.
func ExtractJSONArray(content string) (string, bool) {
	return extractBalanced(content, '[', ']')
}

func extractBalanced(content string, open, closing byte) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(content); i++ {
		ch := content[i]

		if start >= 0 && inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case open:
			if start < 0 {
				start = i
			}
			depth++
		case closing:
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return content[start : i+1], true
			}
		case '"':
			if start >= 0 {
				inString = true
			}
		}
	}

	return "", false
}

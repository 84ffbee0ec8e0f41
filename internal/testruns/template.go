package testruns

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

// Render substitutes {{identifier}} placeholders in content with the
// textual form of matching input variables. Tokens with no matching key
// are left verbatim, braces included.
func Render(content string, vars map[string]any) string {
	return placeholderPattern.ReplaceAllStringFunc(content, func(token string) string {
		name := placeholderPattern.FindStringSubmatch(token)[1]
		value, ok := vars[name]
		if !ok {
			return token
		}
		return stringify(value)
	})
}

// stringify converts a JSON-representable value to its substitution text:
// strings verbatim, numbers and booleans in canonical form, nil as "null",
// anything else as compact JSON with a fmt fallback.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		return v.String()
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(raw)
	}
}

package contracts

import (
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{\{(.*?)\}\}`)

// FillTemplate replaces every {{key}} placeholder with the matching value.
// Keys are trimmed of surrounding whitespace. Unknown keys are left intact
// so missing data is visible in the output.
func FillTemplate(template string, values map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		key := strings.TrimSpace(placeholderPattern.FindStringSubmatch(match)[1])
		if val, ok := values[key]; ok {
			return val
		}
		return "{{" + key + "}}"
	})
}

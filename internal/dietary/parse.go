package dietary

import "strings"

const maxTitleLen = 80

// ExtractTitle pulls a display title out of free-form recipe text on a
// best-effort basis. Generated recipes usually open with a name line, but
// plain prose that yields nothing is fine; callers must tolerate "".
func ExtractTitle(recipeText string) string {
	for _, line := range strings.Split(recipeText, "\n") {
		line = strings.TrimSpace(line)
		line = strings.Trim(line, "#*-• ")
		for _, prefix := range []string{"Recipe name:", "Recipe Name:", "Recipe:", "Name:"} {
			if strings.HasPrefix(line, prefix) {
				line = strings.TrimSpace(strings.TrimPrefix(line, prefix))
				break
			}
		}
		if line == "" {
			continue
		}
		if len(line) > maxTitleLen {
			return ""
		}
		return line
	}
	return ""
}

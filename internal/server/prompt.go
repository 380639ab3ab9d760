package server

import (
	"bytes"
	"fmt"
	"text/template"
)

// promptData feeds the nutritionist prompt template.
type promptData struct {
	Language string // Catalog code; instructions are appended for anything but English
}

const nutritionTemplate = `You are an expert nutritionist. Analyze the food items in the image and provide:
1. A detailed list of all visible food items
2. Estimated calories for each item
3. Total calorie count
4. Basic nutritional insights

Format the response as:

Food Items and Calories:
1. [Item Name] - [Calories] kcal
2. [Item Name] - [Calories] kcal
...

Total Calories: [Sum] kcal

Nutritional Insights:
• [Key insight about the meal's nutritional value]
• [Suggestions for improvement if needed]
{{- if and .Language (ne .Language "en")}}
Please provide the response in {{.Language}} language.
{{- end}}
`

var promptTemplate = template.Must(template.New("nutrition").Parse(nutritionTemplate))

// BuildPrompt returns the analysis prompt for the requested language code.
func BuildPrompt(language string) (string, error) {
	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, promptData{Language: language}); err != nil {
		return "", fmt.Errorf("executing prompt template: %w", err)
	}
	return buf.String(), nil
}

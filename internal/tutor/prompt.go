package tutor

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathdrills/internal/llm"
	"github.com/abhisek/mathdrills/internal/problemgen"
)

// NoteSchema is the reply shape requested from the provider.
var NoteSchema = llm.MustSchema("tutor-note", "An alternative explanation of a math question", map[string]any{
	"type": "object",
	"properties": map[string]any{
		"explanation": map[string]any{
			"type":        "string",
			"description": "A fresh explanation of how to reach the correct answer (2-4 sentences)",
		},
		"tip": map[string]any{
			"type":        "string",
			"description": "One short tip addressing the learner's specific mistake",
		},
	},
	"required":             []any{"explanation", "tip"},
	"additionalProperties": false,
})

const systemPrompt = `You are a patient, encouraging math tutor for school children. A learner answered a practice question incorrectly and asked to see it explained another way.`

func buildPrompt(activityName string, q *problemgen.Question, given problemgen.Answer) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Activity: %s\n", activityName)
	fmt.Fprintf(&b, "Question: %s\n", q.Prompt)
	if p, ok := q.Payload.(*problemgen.Choice); ok {
		b.WriteString("Options:\n")
		for i, o := range p.Options {
			fmt.Fprintf(&b, "%d. %s\n", i+1, o)
		}
	}
	if desc := problemgen.Describe(given); desc != "" {
		fmt.Fprintf(&b, "Learner's answer: %s\n", desc)
	} else {
		b.WriteString("Learner's answer: (could not be read)\n")
	}
	fmt.Fprintf(&b, "Correct answer: %s\n", problemgen.Expected(q))
	fmt.Fprintf(&b, "Worked solution already shown: %s\n", q.Explanation)

	b.WriteString(`
Instructions:
1. Explain the solution a different way from the worked solution. Use simple words a child would understand.
2. If the learner's answer shows a likely mistake, name it kindly in the tip.
3. Do not change the correct answer. Use plain ASCII text for all math.`)

	return b.String()
}

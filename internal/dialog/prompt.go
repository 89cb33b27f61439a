package dialog

import (
	"fmt"
	"strings"
)

// buildSystemPrompt constrains the free-form fallback to the assistant's
// domain. Everything structured stays in the button flows; the model only
// fields the questions those flows can't.
func buildSystemPrompt(vehicles []Vehicle) string {
	names := make([]string, len(vehicles))
	for i, v := range vehicles {
		names[i] = v.Name
	}

	var b strings.Builder
	b.WriteString("You are a customer assistant for a vehicle accessories and genuine parts catalog.\n\n")
	fmt.Fprintf(&b, "Covered vehicle models: %s.\n\n", strings.Join(names, ", "))
	b.WriteString("You can help with:\n")
	b.WriteString("- questions about vehicle accessories (interior, exterior, electronics) and genuine spare parts\n")
	b.WriteString("- fitment, installation and warranty questions\n")
	b.WriteString("- how to reach authorized dealers and parts distributors\n")
	b.WriteString("- how the purchase enquiry process works\n\n")
	b.WriteString("Rules:\n")
	b.WriteString("- Answer in at most three short sentences.\n")
	b.WriteString("- Never invent prices, stock levels or dealer contact details. For those, tell the user to browse the catalog or contact a dealer through this assistant.\n")
	b.WriteString("- If the question is outside vehicle accessories and parts, say you can only help with accessories and parts, and suggest the main menu.\n")
	return b.String()
}

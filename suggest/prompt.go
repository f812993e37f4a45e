package suggest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aluiziolira/review-harvester/models"
)

// SnippetLimit bounds how much rendered HTML is sent with a suggestion
// request.
const SnippetLimit = 15000

func selectorPrompt(snippet string) string {
	var b strings.Builder
	b.WriteString("You are analyzing an e-commerce page to locate customer reviews.\n")
	b.WriteString("Identify CSS selectors in this HTML and answer in exactly this format,\n")
	b.WriteString("with each selector in quotes:\n\n")
	b.WriteString("CONTAINERS: \"selector1\", \"selector2\"\n")
	b.WriteString("CONTENT: \"selector1\", \"selector2\"\n")
	b.WriteString("RATINGS: \"selector1\", \"selector2\"\n\n")
	b.WriteString("CONTAINERS wrap one whole review each, CONTENT holds the review text,\n")
	b.WriteString("RATINGS holds the star rating. HTML:\n\n")
	b.WriteString(snippet)
	return b.String()
}

func validationPrompt(sample []models.ReviewRecord) string {
	encoded, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		encoded = []byte("[]")
	}
	var b strings.Builder
	b.WriteString("Below are texts extracted from a product page. For each, answer whether\n")
	b.WriteString("it reads like a genuine customer review rather than page chrome.\n")
	fmt.Fprintf(&b, "Answer exactly %d lines, in order, as \"N: TRUE\" or \"N: FALSE\".\n", len(sample))
	b.WriteString("\nItems:\n")
	b.Write(encoded)
	return b.String()
}

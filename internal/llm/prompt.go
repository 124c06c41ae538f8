package llm

import (
	"fmt"
	"strings"
)

// DefaultMaxInputChars bounds how much extracted text is embedded in the
// prompt to keep token cost predictable.
const DefaultMaxInputChars = 6000

const systemPrompt = "You are a legal document metadata engine. Respond with a single JSON object only. No markdown. Never omit keys. Output must match the schema exactly."

const instructionPrompt = `Extract metadata from the legal document text below. Return one JSON object with exactly these keys:
title, date, court, caseNumber, summary, caseType, area, areaData, metadata.

Rules:
- "date" is the document's decision or filing date as an ISO-8601 string (YYYY-MM-DD or full timestamp), or null.
- "areaData" and "metadata" are null or an array of {"key": string, "value": string} pairs. Never nested objects.
- "summary" is a short neutral abstract of the document, or null.
- "caseType" is the proceeding type (e.g. civil, criminal, administrative), or null.
- "area" is the area of law, or null.
- Set any field you cannot determine with confidence to null. Do not guess.`

// BuildPrompt creates the chat messages for a metadata extraction
// request. Text beyond maxChars is cut and marked with an ellipsis.
func BuildPrompt(text string, maxChars int) []Message {
	return []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf("%s\n\nDocument text:\n%s", instructionPrompt, Truncate(text, maxChars))},
	}
}

// Message represents a chat message sent to the enrichment provider.
type Message struct {
	Role    string
	Content string
}

// Truncate bounds text to maxChars runes, marking the cut with "...".
func Truncate(text string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultMaxInputChars
	}
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= maxChars {
		return string(runes)
	}
	return string(runes[:maxChars]) + "..."
}

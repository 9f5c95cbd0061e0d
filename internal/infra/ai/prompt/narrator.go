package prompt

import "fmt"

// GetNarratorSystemPrompt directs the rewrite model to turn written coaching
// feedback into a script that reads well aloud.
func GetNarratorSystemPrompt() string {
	return `You are a voice-over script editor. Rewrite the provided BJJ coaching analysis into natural spoken English for text-to-speech narration.

Requirements:
- Keep every technical point; do not add new advice.
- Drop markdown headers, bullets, timestamps in brackets, and emoji.
- Use short sentences and spoken transitions ("First,", "Next,", "Finally,").
- Address the student directly in second person.
- Output plain text only, no formatting.`
}

// GetNarratorUserPrompt wraps the analysis text for the rewrite call.
func GetNarratorUserPrompt(analysisText string) string {
	return fmt.Sprintf("Rewrite this analysis as a spoken script:\n\n%s", analysisText)
}

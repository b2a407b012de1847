package path

import "fmt"

// Chunk-count contract communicated to the backend and enforced again
// by the decoder.
const (
	MinChunks = 5
	MaxChunks = 15
)

const promptTemplate = `You are "CogniPath," an expert instructional designer creating learning paths for individuals with attention-management needs. Your task is to decompose the following text into a sequence of manageable learning chunks. Rules: 1. Analyze the entire text to understand its structure and key concepts. 2. Break it down into %d-%d logical chunks. Each chunk should represent about 15-20 minutes of focused work. 3. For each chunk, provide a concise ` + "`title`" + ` (string), a ` + "`summary`" + ` (string, 1-2 sentences), and an array of ` + "`key_points`" + ` (array of strings). 4. The final output MUST be only a valid JSON array of objects, with no other text, comments, or explanations. The text to process is below: --- %s`

// BuildPrompt constructs the decomposition instruction for the
// completion backend. It is a pure function of the source text; the
// output contract (count bound, per-chunk shape, JSON-array-only
// response) is fully spelled out so the decoder can be strict.
func BuildPrompt(sourceText string) string {
	return fmt.Sprintf(promptTemplate, MinChunks, MaxChunks, sourceText)
}

package interview

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// The gateway does not reliably put the generated question in the primary
// content field. Reasoning models in particular leave the content empty and
// bury the final question inside their reasoning output, or expose it only
// somewhere deeper in the response structure. Extraction strategies run in
// order and the first one that yields text wins. When none does, the caller
// fails with ErrGenerationFailed; no canned fallback question is substituted.
type extractFunc func(resp openai.ChatCompletionResponse) (string, bool)

var questionExtractors = []extractFunc{
	extractPrimaryContent,
	extractQuotedFromReasoning,
	extractFromResponseDump,
}

// extractQuestionText runs the extraction chain for follow-up questions.
func extractQuestionText(resp openai.ChatCompletionResponse) (string, bool) {
	for _, extract := range questionExtractors {
		if text, ok := extract(resp); ok {
			return text, true
		}
	}
	return "", false
}

// extractAnswerText extracts a simulated answer. Answers are free-form so the
// quoted-question heuristic does not apply; raw reasoning output is accepted
// verbatim before falling back to the response dump.
func extractAnswerText(resp openai.ChatCompletionResponse) (string, bool) {
	if text, ok := extractPrimaryContent(resp); ok {
		return text, true
	}
	if len(resp.Choices) > 0 {
		if text := strings.TrimSpace(resp.Choices[0].Message.ReasoningContent); text != "" {
			return text, true
		}
	}
	return extractFromResponseDump(resp)
}

func extractPrimaryContent(resp openai.ChatCompletionResponse) (string, bool) {
	if len(resp.Choices) == 0 {
		return "", false
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	return text, text != ""
}

var quotedRe = regexp.MustCompile(`"([^"\n]+)"|'([^'\n]+)'`)

const minSentenceLength = 10

// extractQuotedFromReasoning searches the reasoning output for a quoted
// sentence that looks like the final question: one ending in a question mark,
// or failing that, a quoted statement longer than minSentenceLength.
func extractQuotedFromReasoning(resp openai.ChatCompletionResponse) (string, bool) {
	if len(resp.Choices) == 0 {
		return "", false
	}
	reasoning := resp.Choices[0].Message.ReasoningContent
	if reasoning == "" {
		return "", false
	}

	var candidates []string
	for _, match := range quotedRe.FindAllStringSubmatch(reasoning, -1) {
		quoted := match[1]
		if quoted == "" {
			quoted = match[2]
		}
		if quoted = strings.TrimSpace(quoted); quoted != "" {
			candidates = append(candidates, quoted)
		}
	}

	for _, candidate := range candidates {
		if strings.HasSuffix(candidate, "?") {
			return candidate, true
		}
	}
	for _, candidate := range candidates {
		if strings.HasSuffix(candidate, ".") && len(candidate) > minSentenceLength {
			return candidate, true
		}
	}
	return "", false
}

var dumpContentRe = regexp.MustCompile(`"content":\s*"((?:[^"\\]|\\.)+)"|content='([^']+)'`)

// extractFromResponseDump is the last resort: serialize the whole response
// and look for a content field anywhere inside it.
func extractFromResponseDump(resp openai.ChatCompletionResponse) (string, bool) {
	dump, err := json.Marshal(resp)
	if err != nil {
		return "", false
	}
	for _, match := range dumpContentRe.FindAllStringSubmatch(string(dump), -1) {
		quoted := match[1]
		if quoted != "" {
			// Undo the JSON string escaping.
			if unquoted, unquoteErr := strconv.Unquote(`"` + quoted + `"`); unquoteErr == nil {
				quoted = unquoted
			}
		} else {
			quoted = match[2]
		}
		if text := strings.TrimSpace(quoted); text != "" {
			return text, true
		}
	}
	return "", false
}

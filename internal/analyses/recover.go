package analyses

import (
	"encoding/json"
	"regexp"
	"strings"
)

// ParseStage records which recovery stage produced a structured payload.
// Each stage carries a strictly weaker guarantee than the one before it.
type ParseStage string

const (
	// StageDirect means the raw content parsed as JSON untouched.
	StageDirect ParseStage = "direct"
	// StageFenced means JSON was recovered from a fenced code block.
	StageFenced ParseStage = "fenced"
	// StageRawText means no JSON could be recovered; the payload wraps
	// the sanitized raw content as {"rawText": ...}.
	StageRawText ParseStage = "rawText"
)

// ParseOutcome is the tagged result of response recovery. Payload is
// always valid JSON, whatever the stage.
type ParseOutcome struct {
	Stage   ParseStage
	Payload json.RawMessage
}

var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// RecoverResponse turns raw model output into a structured payload. It
// never fails: stage three always yields a well-formed object.
func RecoverResponse(content string) ParseOutcome {
	trimmed := strings.TrimSpace(content)

	if json.Valid([]byte(trimmed)) {
		return ParseOutcome{Stage: StageDirect, Payload: json.RawMessage(trimmed)}
	}

	if m := fencedBlock.FindStringSubmatch(trimmed); m != nil {
		inner := strings.TrimSpace(m[1])
		if json.Valid([]byte(inner)) {
			return ParseOutcome{Stage: StageFenced, Payload: json.RawMessage(inner)}
		}
	}

	return ParseOutcome{Stage: StageRawText, Payload: wrapRawText(trimmed)}
}

// wrapRawText strips control characters, escapes JSON-significant ones
// and wraps the remainder so the result is always a valid object.
func wrapRawText(content string) json.RawMessage {
	var b strings.Builder
	for _, r := range content {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == '"':
			b.WriteString(`\"`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || (r >= 0x7f && r <= 0x9f):
			// drop remaining control characters
		default:
			b.WriteRune(r)
		}
	}
	return json.RawMessage(`{"rawText":"` + b.String() + `"}`)
}

package piifirewall

import (
	"encoding/json"
	"fmt"
)

// Match describes a single detected PII span. The service only includes
// match metadata on plans that expose it; most responses carry counts only.
type Match struct {
	Label    string `json:"label"`
	StartPos int    `json:"start_pos"`
	EndPos   int    `json:"end_pos"`
}

// RedactionResult is the outcome of a successful redaction call.
type RedactionResult struct {
	// Redacted is the input text with PII spans replaced by category
	// placeholders ([EMAIL], [PHONE_US], [SSN], ...) or asterisks in
	// masked modes.
	Redacted string

	// Detections is the number of PII spans found.
	Detections int

	// Warning carries an advisory from the service, e.g. about input
	// approaching the plan's size limit. Empty when there is none.
	Warning string

	// Matches holds per-detection metadata when the service returns it.
	// Nil otherwise.
	Matches []Match
}

// HasPII reports whether any PII was detected.
func (r *RedactionResult) HasPII() bool {
	return r.Detections > 0
}

// redactionBody decodes success payloads with field presence tracking, so a
// body missing "redacted" can be told apart from one redacting to "".
type redactionBody struct {
	Redacted   *string `json:"redacted"`
	Detections *int    `json:"detections"`
	Warning    string  `json:"warning"`
	Matches    []Match `json:"matches"`
}

// parseResult turns a 2xx body into a RedactionResult. "redacted" is
// required; a missing "detections" defaults to 0, matching the service's
// behavior for clean input. Unknown fields are ignored.
func parseResult(status int, body []byte) (*RedactionResult, error) {
	var rb redactionBody
	if err := json.Unmarshal(body, &rb); err != nil {
		return nil, newMalformedError(status, fmt.Sprintf("response is not valid JSON: %v", err))
	}
	if rb.Redacted == nil {
		return nil, newMalformedError(status, `response missing required "redacted" field`)
	}

	result := &RedactionResult{
		Redacted: *rb.Redacted,
		Warning:  rb.Warning,
		Matches:  rb.Matches,
	}
	if rb.Detections != nil {
		result.Detections = *rb.Detections
	}
	return result, nil
}

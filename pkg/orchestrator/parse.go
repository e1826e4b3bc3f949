package orchestrator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/verdant-systems/ecolens/pkg/repair"
)

// MalformedResponseError marks a payload that failed strict parsing and a
// single repair pass. It is a distinct kind from backend-call failures: the
// call itself succeeded, the payload is unusable.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// IsMalformedResponse reports whether err marks an unparseable payload.
func IsMalformedResponse(err error) bool {
	var malformed *MalformedResponseError
	return errors.As(err, &malformed)
}

// decode parses the response text into v, strictly first, then once more
// after a single repair pass. A payload that survives neither is a total
// failure; nothing partial is synthesized from it.
func decode(text string, v any) error {
	trimmed := strings.TrimSpace(text)
	if err := json.Unmarshal([]byte(trimmed), v); err == nil {
		return nil
	}
	repaired := repair.Repair(trimmed)
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return &MalformedResponseError{Raw: text, Err: err}
	}
	return nil
}

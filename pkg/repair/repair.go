// Package repair recovers truncated JSON emitted by the generation backend.
//
// Structured responses are occasionally cut short at the model's output token
// ceiling, typically mid-string or mid-array. A single closing pass handles
// that common shape without attempting general recursive-descent recovery.
package repair

import "strings"

// delimiters counts unmatched structural tokens in a candidate payload.
type delimiters struct {
	arrayOpens   int
	arrayCloses  int
	objectOpens  int
	objectCloses int
}

func scan(s string) delimiters {
	var d delimiters
	for _, r := range s {
		switch r {
		case '[':
			d.arrayOpens++
		case ']':
			d.arrayCloses++
		case '{':
			d.objectOpens++
		case '}':
			d.objectCloses++
		}
	}
	return d
}

// Repair applies one best-effort closing pass to a candidate that failed
// strict JSON parsing. The caller must re-parse the result; if that parse
// fails too, the failure is final — Repair is never invoked twice for the
// same payload.
//
// The pass is deliberately shallow: at most one closing quote, one `]` and
// one `}` are appended, regardless of nesting depth. A candidate that
// already ends with `}` is returned unchanged, since its malformation is
// something other than truncation.
func Repair(candidate string) string {
	s := strings.TrimSpace(candidate)
	if strings.HasSuffix(s, "}") {
		return s
	}
	if !strings.HasSuffix(s, `"`) {
		s += `"`
	}
	d := scan(s)
	if d.arrayOpens > d.arrayCloses {
		s += "]"
	}
	if d.objectOpens > d.objectCloses {
		s += "}"
	}
	return s
}

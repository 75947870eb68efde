package handlers

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Stringish tolerates string/number/bool JSON values as strings, so a
// client sending `"sequence": 2` and one sending `"sequence": "2"` are
// treated the same.
type Stringish string

func (s *Stringish) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case string(b) == "null" || len(b) == 0:
		*s = ""
		return nil
	case len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = Stringish(str)
		return nil
	default:
		// number/bool -> stringify best-effort
		*s = Stringish(strings.Trim(string(b), `"`))
		return nil
	}
}

func (s Stringish) String() string { return string(s) }

func firstNonEmpty(vals ...Stringish) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v.String()); s != "" {
			return s
		}
	}
	return ""
}

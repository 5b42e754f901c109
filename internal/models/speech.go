package models

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// TTSRequest is the payload sent to the text-to-speech endpoint. Text is
// kept raw so any JSON value can be judged present or absent.
type TTSRequest struct {
	Text json.RawMessage `json:"text"`
}

// Content returns the text to synthesize. Absent, null, false, zero and the
// empty string count as no text. Strings are returned unquoted; any other
// value is returned as its JSON source.
func (r TTSRequest) Content() (string, bool) {
	v := gjson.ParseBytes(r.Text)
	switch v.Type {
	case gjson.Null, gjson.False:
		return "", false
	case gjson.String:
		s := v.String()
		return s, s != ""
	case gjson.Number:
		if v.Num == 0 {
			return "", false
		}
		return v.Raw, true
	default:
		return v.Raw, true
	}
}

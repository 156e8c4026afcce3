package message

import (
	"encoding/json"
	"time"
)

// DataField returns the data member of a decoded request body. Bodies that
// are not JSON objects carry no data.
func DataField(body any) any {
	obj, ok := body.(map[string]any)
	if !ok {
		return nil
	}
	return obj["data"]
}

// MessageEvent is what gets published for every accepted message.
type MessageEvent struct {
	Data   any       `json:"data"`
	SentAt time.Time `json:"sentAt"`
}

// HasContent reports whether data counts as present: absent, null, false,
// zero and the empty string do not.
func HasContent(data any) bool {
	switch v := data.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	case float64:
		return v != 0
	default:
		return true
	}
}

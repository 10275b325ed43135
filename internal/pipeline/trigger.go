package pipeline

import (
	"encoding/base64"
	"encoding/json"
)

// DecodeEvent extracts the optional base64-encoded payload under the "data"
// key of a queue-style event or HTTP request body. The payload is
// informational only and is logged by the caller.
func DecodeEvent(body []byte) (string, bool) {
	if len(body) == 0 {
		return "", false
	}

	var event struct {
		Data string `json:"data"`
	}
	if err := json.Unmarshal(body, &event); err != nil || event.Data == "" {
		return "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(event.Data)
	if err != nil {
		return "", false
	}

	return string(decoded), true
}

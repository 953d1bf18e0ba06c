// ABOUTME: Lenient JSON helpers for extraction payloads
// ABOUTME: Tolerates fields that upstream sometimes sends with an unexpected type

package diffbot

import (
	"encoding/json"
	"strings"
)

// flexString decodes a JSON string and quietly drops any other value type
type flexString string

// UnmarshalJSON implements json.Unmarshaler
func (s *flexString) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		*s = ""
		return nil
	}
	*s = flexString(v)
	return nil
}

// redact removes the API token from transport error text, which often
// embeds the request URL
func redact(err error, token string) string {
	msg := err.Error()
	if token == "" {
		return msg
	}
	return strings.ReplaceAll(msg, token, "REDACTED")
}

type nopLogger struct{}

func (nopLogger) Debug(msg string, fields map[string]interface{}) {}
func (nopLogger) Info(msg string, fields map[string]interface{})  {}
func (nopLogger) Warn(msg string, fields map[string]interface{})  {}
func (nopLogger) Error(msg string, fields map[string]interface{}) {}

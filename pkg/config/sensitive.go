package config

import "encoding/json"

const redactedPlaceholder = "[REDACTED]"

// SensitiveString holds secrets like API keys. It redacts itself in
// String() and JSON marshaling so secrets never leak into logs or dumps;
// use Value() to read the real content.
type SensitiveString string

func (s SensitiveString) String() string {
	if s == "" {
		return ""
	}
	return redactedPlaceholder
}

// Value returns the actual secret.
func (s SensitiveString) Value() string {
	return string(s)
}

func (s SensitiveString) IsZero() bool {
	return s == ""
}

func (s SensitiveString) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SensitiveString) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = SensitiveString(raw)
	return nil
}

package domain

import "encoding/json"

// DataURI is an inline base64-encoded image. The persisted collection
// stores a missing cover as JSON null rather than an empty string, so the
// type carries its own codec.
type DataURI string

// MarshalJSON encodes an empty DataURI as null.
func (d DataURI) MarshalJSON() ([]byte, error) {
	if d == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(d))
}

// UnmarshalJSON accepts either null or a string.
func (d *DataURI) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*d = DataURI(s)
	return nil
}

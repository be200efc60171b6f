package ldapsearch

import (
	"encoding/json"
)

// AttributeValue is a single attribute value from a directory entry. Values
// that decoded as text carry Text; values the server could not hand over as
// text arrive as an {"encoded": ...} object and carry Encoded instead.
type AttributeValue struct {
	Text    string
	Encoded string
}

// UnmarshalJSON accepts either a plain string or an {"encoded": ...} object.
func (v *AttributeValue) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		v.Text = text
		return nil
	}

	var encoded struct {
		Encoded string `json:"encoded"`
	}

	if err := json.Unmarshal(data, &encoded); err != nil {
		return err //nolint: wrapcheck
	}

	v.Encoded = encoded.Encoded

	return nil
}

// MarshalJSON renders the value in the same shape it was received in.
func (v AttributeValue) MarshalJSON() ([]byte, error) {
	if v.Encoded != "" {
		return json.Marshal(struct { //nolint: wrapcheck
			Encoded string `json:"encoded"`
		}{Encoded: v.Encoded})
	}

	return json.Marshal(v.Text) //nolint: wrapcheck
}

// Entry is one directory entry with its attribute-value lists.
type Entry struct {
	DN         string                      `json:"dn"`
	Attributes map[string][]AttributeValue `json:"attributes"`
}

// Response is the wire shape of a complete (concatenated) search response.
type Response struct {
	Entries []Entry `json:"entries"`
}

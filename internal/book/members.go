package book

import (
	"bytes"
	"encoding/json"
)

// members holds every member of a decoded JSON object, keyed by name.
type members map[string]json.RawMessage

func decodeMembers(data []byte) (members, error) {
	var m members
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// encode is json.Marshal without HTML escaping, so chapter Markdown keeps
// its literal <, > and &.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// overlay encodes typed and returns the original members with each member
// that typed also carries replaced by its re-encoded value. Members absent
// from the original stay absent. With no original members typed is returned
// as encoded.
func overlay(typed any, original members) ([]byte, error) {
	data, err := encode(typed)
	if err != nil || original == nil {
		return data, err
	}

	current, err := decodeMembers(data)
	if err != nil {
		return nil, err
	}
	out := make(members, len(original))
	for k, v := range original {
		if nv, ok := current[k]; ok {
			v = nv
		}
		out[k] = v
	}
	return encode(out)
}

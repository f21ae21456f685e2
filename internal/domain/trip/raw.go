package trip

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeDocument parses raw JSON bytes into a RawDocument. Anything that
// is not a JSON object fails the same way a shape violation does.
func DecodeDocument(data []byte) (RawDocument, error) {
	var doc RawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ShapeError{Check: "document", Detail: fmt.Sprintf("not a JSON object: %v", err)}
	}
	return doc, nil
}

func firstByte(raw json.RawMessage) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}

func isObject(raw json.RawMessage) bool { return firstByte(raw) == '{' }

func isArray(raw json.RawMessage) bool { return firstByte(raw) == '[' }

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeObject(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	if isNull(raw) || !isObject(raw) {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// objectKeys returns the top-level keys of a JSON object in document
// order. Go maps randomize iteration, but several lookups (dining
// last-write-wins, hotel matching) must stay deterministic, so key order
// is captured here at decode time.
func objectKeys(raw json.RawMessage) []string {
	if !isObject(raw) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil { // opening brace
		return nil
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return keys
		}
		key, ok := tok.(string)
		if !ok {
			return keys
		}
		keys = append(keys, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return keys
		}
	}
	return keys
}

// collectExtensions gathers the fields of obj that no canonical field
// claims. A previously emitted "extensions" object is folded back in so
// normalization stays idempotent.
func collectExtensions(obj map[string]json.RawMessage, known ...string) Extensions {
	recognized := make(map[string]struct{}, len(known)+1)
	recognized["extensions"] = struct{}{}
	for _, k := range known {
		recognized[k] = struct{}{}
	}

	out := Extensions{}
	for key, val := range obj {
		if _, ok := recognized[key]; ok {
			continue
		}
		out[key] = val
	}
	if nested, ok := obj["extensions"]; ok {
		if inner, ok := decodeObject(nested); ok {
			for key, val := range inner {
				if _, exists := out[key]; !exists {
					out[key] = val
				}
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

package store

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Encode renders a document human-readable, two-space indented.
func Encode(kind Kind, v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fail("encode", kind, err, "marshal document")
	}
	return b, nil
}

// Decode parses a loaded document into v.
func Decode(kind Kind, doc []byte, v any) error {
	if blank(doc) {
		doc = DefaultDocument(kind)
	}
	if err := json.Unmarshal(doc, v); err != nil {
		return fail("decode", kind, err, "unmarshal document")
	}
	return nil
}

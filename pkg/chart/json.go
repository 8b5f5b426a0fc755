package chart

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON renders the subtree as the nested document
//
//	{"name": ..., "version": ..., "repository": ...,
//	 "condition": ...,                 // omitted when empty
//	 "dependencies": {<childName>: <same schema>, ...}}
//
// with dependencies keyed by each child's effective name, in declared
// order. encoding/json would sort a map's keys, so the object is built
// by hand. Siblings sharing a name collapse to the first occurrence so
// the object stays a well-formed mapping.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := writeStringField(&buf, "name", n.Name, false); err != nil {
		return nil, err
	}
	if err := writeStringField(&buf, "version", n.Version, true); err != nil {
		return nil, err
	}
	if err := writeStringField(&buf, "repository", n.Repository, true); err != nil {
		return nil, err
	}
	if n.Condition != "" {
		if err := writeStringField(&buf, "condition", n.Condition, true); err != nil {
			return nil, err
		}
	}
	if len(n.Children) > 0 {
		buf.WriteString(`,"dependencies":{`)
		// Duplicate sibling names would produce duplicate object keys;
		// keep the first occurrence, as FlattenUnique does.
		seen := make(map[string]bool, len(n.Children))
		first := true
		for _, child := range n.Children {
			if seen[child.Name] {
				continue
			}
			seen[child.Name] = true
			if !first {
				buf.WriteByte(',')
			}
			first = false
			if err := writeStringValue(&buf, child.Name); err != nil {
				return nil, err
			}
			buf.WriteByte(':')
			encoded, err := child.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(encoded)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeStringField(buf *bytes.Buffer, key, value string, comma bool) error {
	if comma {
		buf.WriteByte(',')
	}
	if err := writeStringValue(buf, key); err != nil {
		return err
	}
	buf.WriteByte(':')
	return writeStringValue(buf, value)
}

func writeStringValue(buf *bytes.Buffer, value string) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(encoded)
	return nil
}

// UnmarshalJSON decodes the nested document produced by MarshalJSON.
// Children are rebuilt in the order their keys appear, which a plain
// map decode would lose.
func (n *Node) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	return decodeNode(dec, n)
}

func decodeNode(dec *json.Decoder, n *Node) error {
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		key, err := decodeString(dec)
		if err != nil {
			return err
		}
		switch key {
		case "name":
			n.Name, err = decodeString(dec)
		case "version":
			n.Version, err = decodeString(dec)
		case "repository":
			n.Repository, err = decodeString(dec)
		case "condition":
			n.Condition, err = decodeString(dec)
		case "dependencies":
			err = decodeChildren(dec, n)
		default:
			var skipped json.RawMessage
			err = dec.Decode(&skipped)
		}
		if err != nil {
			return err
		}
	}
	return expectDelim(dec, '}')
}

func decodeChildren(dec *json.Decoder, n *Node) error {
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		if _, err := decodeString(dec); err != nil {
			return err
		}
		child := &Node{}
		if err := decodeNode(dec, child); err != nil {
			return err
		}
		n.Children = append(n.Children, child)
	}
	return expectDelim(dec, '}')
}

func decodeString(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %v", tok)
	}
	return s, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

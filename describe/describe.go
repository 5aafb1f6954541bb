// Package describe holds the self-description document model a Schema
// renders into. The document maps each field name to its per-type constraint
// descriptors and its description; it exists for documentation generation and
// for round-tripping a schema definition, not for wire transmission.
package describe

import (
	"bytes"
	"fmt"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Rule is one constraint-name -> descriptor entry.
type Rule struct {
	Name       string
	Descriptor any
}

// TypeConstraints describes one candidate type of a field: the type name plus
// the descriptors of every constraint bound to that type.
type TypeConstraints struct {
	Type  string
	Rules []Rule
}

// FieldDoc describes a single field.
type FieldDoc struct {
	Name        string
	Description string
	Constraints []TypeConstraints
}

// Document is an ordered self-description of a whole schema. Field order
// matches schema declaration order in both JSON and YAML renderings.
type Document struct {
	Fields []FieldDoc
}

// Field returns the doc entry for a field name.
func (d Document) Field(name string) (FieldDoc, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDoc{}, false
}

// MarshalJSON renders the document as a field-name keyed object, preserving
// declaration order.
func (d Document) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')
	for i, f := range d.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONKey(buf, f.Name); err != nil {
			return nil, err
		}
		buf.WriteString(`{"Constraints":[`)
		for j, tc := range f.Constraints {
			if j > 0 {
				buf.WriteByte(',')
			}
			b, err := tc.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteString(`],"Description":`)
		desc, err := gojson.Marshal(f.Description)
		if err != nil {
			return nil, err
		}
		buf.Write(desc)
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON renders one candidate-type object with its "Type" key first,
// then each constraint-name -> descriptor entry in rule order.
func (tc TypeConstraints) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteString(`{"Type":`)
	t, err := gojson.Marshal(tc.Type)
	if err != nil {
		return nil, err
	}
	buf.Write(t)
	for _, r := range tc.Rules {
		buf.WriteByte(',')
		if err := writeJSONKey(buf, r.Name); err != nil {
			return nil, err
		}
		desc, err := gojson.Marshal(r.Descriptor)
		if err != nil {
			return nil, err
		}
		buf.Write(desc)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONKey(buf *bytes.Buffer, key string) error {
	k, err := gojson.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	return nil
}

// MarshalYAML renders the same shape as the JSON form, order preserved.
func (d Document) MarshalYAML() (any, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range d.Fields {
		body := &yaml.Node{Kind: yaml.MappingNode}
		cons := &yaml.Node{Kind: yaml.SequenceNode}
		for _, tc := range f.Constraints {
			n, err := tc.yamlNode()
			if err != nil {
				return nil, err
			}
			cons.Content = append(cons.Content, n)
		}
		body.Content = append(body.Content,
			scalarNode("Constraints"), cons,
			scalarNode("Description"), scalarNode(f.Description),
		)
		root.Content = append(root.Content, scalarNode(f.Name), body)
	}
	return root, nil
}

func (tc TypeConstraints) yamlNode() (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	n.Content = append(n.Content, scalarNode("Type"), scalarNode(tc.Type))
	for _, r := range tc.Rules {
		dn, err := anyNode(r.Descriptor)
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, scalarNode(r.Name), dn)
	}
	return n, nil
}

func scalarNode(s string) *yaml.Node {
	n := &yaml.Node{}
	n.SetString(s)
	return n
}

// anyNode converts an arbitrary descriptor into a yaml node by marshaling and
// reparsing it, so descriptors only need standard yaml support.
func anyNode(v any) (*yaml.Node, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return scalarNode(""), nil
	}
	return doc.Content[0], nil
}

// EncodeJSON renders the document as indented JSON.
func EncodeJSON(d Document) ([]byte, error) {
	return gojson.MarshalIndent(d, "", "  ")
}

// EncodeYAML renders the document as YAML.
func EncodeYAML(d Document) ([]byte, error) {
	return yaml.Marshal(d)
}

// ParseYAML reads a rendered document back into the model, preserving field
// and rule order. Only the document round-trips; check functions are code and
// are not revived here.
func ParseYAML(data []byte) (Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Document{}, err
	}
	if len(root.Content) == 0 {
		return Document{}, nil
	}
	m := root.Content[0]
	if m.Kind != yaml.MappingNode {
		return Document{}, fmt.Errorf("describe: document root must be a mapping, got %v", m.Kind)
	}
	var d Document
	for i := 0; i+1 < len(m.Content); i += 2 {
		fd, err := parseFieldDoc(m.Content[i].Value, m.Content[i+1])
		if err != nil {
			return Document{}, err
		}
		d.Fields = append(d.Fields, fd)
	}
	return d, nil
}

// ParseJSON reads a JSON-rendered document. JSON is parsed through the YAML
// reader so key order survives.
func ParseJSON(data []byte) (Document, error) {
	return ParseYAML(data)
}

func parseFieldDoc(name string, body *yaml.Node) (FieldDoc, error) {
	if body.Kind != yaml.MappingNode {
		return FieldDoc{}, fmt.Errorf("describe: field %q must be a mapping", name)
	}
	fd := FieldDoc{Name: name}
	for i := 0; i+1 < len(body.Content); i += 2 {
		key, val := body.Content[i].Value, body.Content[i+1]
		switch key {
		case "Description":
			fd.Description = val.Value
		case "Constraints":
			if val.Kind != yaml.SequenceNode {
				return FieldDoc{}, fmt.Errorf("describe: field %q: Constraints must be a sequence", name)
			}
			for _, item := range val.Content {
				tc, err := parseTypeConstraints(name, item)
				if err != nil {
					return FieldDoc{}, err
				}
				fd.Constraints = append(fd.Constraints, tc)
			}
		}
	}
	return fd, nil
}

func parseTypeConstraints(field string, n *yaml.Node) (TypeConstraints, error) {
	if n.Kind != yaml.MappingNode {
		return TypeConstraints{}, fmt.Errorf("describe: field %q: constraint entry must be a mapping", field)
	}
	var tc TypeConstraints
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i].Value, n.Content[i+1]
		if key == "Type" {
			tc.Type = val.Value
			continue
		}
		var desc any
		if err := val.Decode(&desc); err != nil {
			return TypeConstraints{}, fmt.Errorf("describe: field %q: rule %q: %w", field, key, err)
		}
		tc.Rules = append(tc.Rules, Rule{Name: key, Descriptor: desc})
	}
	if tc.Type == "" {
		return TypeConstraints{}, fmt.Errorf("describe: field %q: constraint entry missing Type", field)
	}
	return tc, nil
}

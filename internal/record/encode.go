package record

import (
	"bytes"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"
)

// MarshalJSON writes the record as an object in key order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := sonic.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')

		v, ok := r.values[k]
		if !ok {
			buf.WriteString("null")
			continue
		}
		vb, err := sonic.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML emits an ordered mapping node.
func (r Record) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range r.keys {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		val := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
		if v, ok := r.values[k]; ok {
			val = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
		}
		n.Content = append(n.Content, key, val)
	}
	return n, nil
}

package declcfg

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	utilyaml "k8s.io/apimachinery/pkg/util/yaml"
)

// ErrInvalidRecord is returned for documents that carry a known schema but
// are missing required fields.
var ErrInvalidRecord = errors.New("invalid declarative config record")

const decodeBufferSize = 4096

type recordMeta struct {
	Schema  string `json:"schema"`
	Package string `json:"package,omitempty"`
	Name    string `json:"name,omitempty"`
}

// Decode reads every document from r. Both concatenated JSON objects
// (catalog.json) and multi-document YAML are accepted.
func Decode(r io.Reader) ([]Record, error) {
	dec := utilyaml.NewYAMLOrJSONDecoder(r, decodeBufferSize)

	var records []Record
	for doc := 1; ; doc++ {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return records, nil
			}
			return nil, fmt.Errorf("document %d: %w", doc, err)
		}
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
			continue
		}

		rec, err := decodeRecord(trimmed)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", doc, err)
		}
		records = append(records, rec)
	}
}

func decodeRecord(raw []byte) (Record, error) {
	var meta recordMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, err
	}

	switch meta.Schema {
	case SchemaPackage:
		var p PackageRecord
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("%s: %w", SchemaPackage, err)
		}
		if p.Name == "" {
			return nil, fmt.Errorf("%w: %s without name", ErrInvalidRecord, SchemaPackage)
		}
		return p, nil

	case SchemaChannel:
		var c ChannelRecord
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("%s: %w", SchemaChannel, err)
		}
		if c.Name == "" {
			return nil, fmt.Errorf("%w: %s without name", ErrInvalidRecord, SchemaChannel)
		}
		for i, e := range c.Entries {
			if e.Name == "" {
				return nil, fmt.Errorf("%w: channel %q entry %d without name", ErrInvalidRecord, c.Name, i)
			}
		}
		return c, nil
	}

	return OtherRecord{SchemaName: meta.Schema, Package: meta.Package, Name: meta.Name}, nil
}

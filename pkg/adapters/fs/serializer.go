package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/deckhand/pkg/core"
)

// Serializer defines how a whole snapshot is written to and read from bytes.
type Serializer interface {
	Encode(snap core.Snapshot) ([]byte, error)
	Decode(data []byte) (core.Snapshot, error)
}

// DefaultSerializers returns the serializers keyed by file extension.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".json": JSONSerializer{},
		".yaml": YAMLSerializer{},
		".yml":  YAMLSerializer{},
	}
}

// serializerFor picks the serializer for path's extension, falling back to JSON.
func serializerFor(path string, registry map[string]Serializer) Serializer {
	if s, ok := registry[strings.ToLower(filepath.Ext(path))]; ok {
		return s
	}
	return JSONSerializer{}
}

// JSONSerializer stores the snapshot as indented JSON.
type JSONSerializer struct{}

func (JSONSerializer) Encode(snap core.Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (JSONSerializer) Decode(data []byte) (core.Snapshot, error) {
	var snap core.Snapshot
	if len(bytes.TrimSpace(data)) == 0 {
		return snap, fmt.Errorf("invalid json: empty file")
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("invalid json: %w", err)
	}
	return snap, nil
}

// YAMLSerializer stores the snapshot as YAML.
type YAMLSerializer struct{}

func (YAMLSerializer) Encode(snap core.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(snap); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (YAMLSerializer) Decode(data []byte) (core.Snapshot, error) {
	var snap core.Snapshot
	if len(bytes.TrimSpace(data)) == 0 {
		return snap, fmt.Errorf("invalid yaml: empty file")
	}
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("invalid yaml: %w", err)
	}
	return snap, nil
}

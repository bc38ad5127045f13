package storage

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"todo/tasks"
)

// Codec converts a task list to and from its stored string form.
type Codec interface {
	Encode(list []tasks.Task) (string, error)
	Decode(data string) ([]tasks.Task, error)
}

// CodecFor returns the codec registered under name ("json" or "yaml")
func CodecFor(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "json", "":
		return JSONCodec{}, nil
	case "yaml", "yml":
		return YAMLCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown encoding: %s", name)
	}
}

// record is the stored shape of one task. Pointers let decoding tell a
// missing field apart from a zero value.
type record struct {
	ID   *string `json:"id" yaml:"id"`
	Text *string `json:"text" yaml:"text"`
	Done *bool   `json:"done" yaml:"done"`
}

func toRecords(list []tasks.Task) []record {
	records := make([]record, len(list))
	for i := range list {
		t := list[i]
		records[i] = record{ID: &t.ID, Text: &t.Text, Done: &t.Done}
	}
	return records
}

// fromRecords validates records and converts them. Any invalid record
// rejects the whole list.
func fromRecords(records []record) ([]tasks.Task, error) {
	list := make([]tasks.Task, 0, len(records))
	seen := make(map[string]bool, len(records))

	for i, r := range records {
		switch {
		case r.ID == nil || *r.ID == "":
			return nil, fmt.Errorf("record %d: missing id", i)
		case seen[*r.ID]:
			return nil, fmt.Errorf("record %d: duplicate id %s", i, *r.ID)
		case r.Text == nil || strings.TrimSpace(*r.Text) == "":
			return nil, fmt.Errorf("record %d: missing text", i)
		case r.Done == nil:
			return nil, fmt.Errorf("record %d: missing done flag", i)
		}
		seen[*r.ID] = true
		list = append(list, tasks.Task{ID: *r.ID, Text: *r.Text, Done: *r.Done})
	}

	return list, nil
}

// JSONCodec stores the list as a JSON array of {"id","text","done"} objects
type JSONCodec struct{}

func (JSONCodec) Encode(list []tasks.Task) (string, error) {
	data, err := json.Marshal(toRecords(list))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (JSONCodec) Decode(data string) ([]tasks.Task, error) {
	var records []record
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, err
	}
	if records == nil {
		return nil, fmt.Errorf("expected a list of tasks")
	}
	return fromRecords(records)
}

// YAMLCodec stores the list as a YAML sequence
type YAMLCodec struct{}

func (YAMLCodec) Encode(list []tasks.Task) (string, error) {
	data, err := yaml.Marshal(toRecords(list))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (YAMLCodec) Decode(data string) ([]tasks.Task, error) {
	var records []record
	if err := yaml.Unmarshal([]byte(data), &records); err != nil {
		return nil, err
	}
	if records == nil && strings.TrimSpace(data) != "[]" {
		return nil, fmt.Errorf("expected a list of tasks")
	}
	return fromRecords(records)
}

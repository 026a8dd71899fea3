package excerpt

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Results is the intermediate record of one recognition run.
type Results struct {
	RunID    string
	Engine   string
	Captures []Capture // in capture order
}

// NewResults starts a results record with a fresh run ID.
func NewResults(engine string) *Results {
	return &Results{RunID: uuid.NewString(), Engine: engine}
}

// Add records a capture.
func (r *Results) Add(c Capture) {
	r.Captures = append(r.Captures, c)
}

type resultsFile struct {
	RunID    string    `yaml:"run_id"`
	Engine   string    `yaml:"engine"`
	Captures yaml.Node `yaml:"captures"`
}

type captureEntry struct {
	Text  string `yaml:"text"`
	Title string `yaml:"title,omitempty"`
}

// MarshalYAML writes captures as a mapping keyed by image name, keeping
// capture order.
func (r *Results) MarshalYAML() (interface{}, error) {
	captures := yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, c := range r.Captures {
		var value yaml.Node
		if err := value.Encode(captureEntry{Text: c.Text, Title: c.Title}); err != nil {
			return nil, fmt.Errorf("failed to encode capture %s: %w", c.Name, err)
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.Name}
		captures.Content = append(captures.Content, key, &value)
	}
	return resultsFile{RunID: r.RunID, Engine: r.Engine, Captures: captures}, nil
}

// UnmarshalYAML reads captures back in file order.
func (r *Results) UnmarshalYAML(value *yaml.Node) error {
	var rf resultsFile
	if err := value.Decode(&rf); err != nil {
		return err
	}
	r.RunID = rf.RunID
	r.Engine = rf.Engine
	r.Captures = nil

	switch {
	case rf.Captures.Kind == 0, rf.Captures.Tag == "!!null":
		return nil
	case rf.Captures.Kind == yaml.MappingNode:
	default:
		return fmt.Errorf("captures must be a mapping, line %d", rf.Captures.Line)
	}

	for i := 0; i+1 < len(rf.Captures.Content); i += 2 {
		key, val := rf.Captures.Content[i], rf.Captures.Content[i+1]
		var entry captureEntry
		if err := val.Decode(&entry); err != nil {
			return fmt.Errorf("failed to decode capture %s: %w", key.Value, err)
		}
		r.Captures = append(r.Captures, Capture{Name: key.Value, Text: entry.Text, Title: entry.Title})
	}
	return nil
}

// SaveResults writes r to path as YAML.
func SaveResults(path string, r *Results) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}
	return nil
}

// LoadResults reads a results file written by SaveResults.
func LoadResults(path string) (*Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results file: %w", err)
	}
	var r Results
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse results file: %w", err)
	}
	return &r, nil
}

// Package legacy parses the pre-store sources: structured task/insight list
// files and the append-only session log. Parsers validate every record into
// the canonical shape; a malformed record is skipped and counted, never fatal
// to the batch. Only an unparseable document envelope fails a source.
package legacy

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// TaskRecord is a validated task parsed from a structured source.
type TaskRecord struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Status      string   `yaml:"status"`
	Priority    string   `yaml:"priority"`
	DependsOn   []string `yaml:"depends_on"`
	Acceptance  []string `yaml:"acceptance_criteria"`
	TestFile    string   `yaml:"test_file"`
	Notes       string   `yaml:"notes"`
}

// InsightRecord is a validated insight parsed from a structured source.
type InsightRecord struct {
	ID      string   `yaml:"id"`
	Content string   `yaml:"content"`
	Summary string   `yaml:"summary"`
	Type    string   `yaml:"type"`
	Status  string   `yaml:"status"`
	Tags    []string `yaml:"tags"`
	Links   []string `yaml:"links"`
	Source  string   `yaml:"source"`
	Notes   string   `yaml:"notes"`
}

// StructuredSource holds the records recovered from one structured file.
type StructuredSource struct {
	Tasks     []TaskRecord
	Insights  []InsightRecord
	Malformed int
}

// LoadStructured reads and parses a structured list file. A read failure
// aborts the whole source.
func LoadStructured(path string) (*StructuredSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("legacy: read %s: %w", path, err)
	}
	return ParseStructured(data)
}

// ParseStructured parses a structured list document. YAML and JSON are both
// accepted (JSON is a YAML subset). The document is either a top-level list
// of records, or a mapping with `tasks:` and/or `insights:` lists.
func ParseStructured(data []byte) (*StructuredSource, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("legacy: parse structured source: %w", err)
	}

	src := &StructuredSource{}
	if len(root.Content) == 0 {
		return src, nil
	}

	doc := root.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		for i, item := range doc.Content {
			src.classify(i, item)
		}
	case yaml.MappingNode:
		tasks, insights := envelopeLists(doc)
		if tasks == nil && insights == nil {
			return nil, fmt.Errorf("legacy: structured source has neither tasks nor insights list")
		}
		for i, item := range tasks {
			src.addTask(i, item)
		}
		for i, item := range insights {
			src.addInsight(i, item)
		}
	default:
		return nil, fmt.Errorf("legacy: structured source is not a list or mapping")
	}
	return src, nil
}

// envelopeLists extracts the tasks and insights sequences from an envelope
// mapping. A missing key yields nil; a key whose value is not a sequence
// yields an empty non-nil slice so the envelope still counts as present.
func envelopeLists(doc *yaml.Node) (tasks, insights []*yaml.Node) {
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, value := doc.Content[i], doc.Content[i+1]
		switch key.Value {
		case "tasks":
			tasks = sequenceItems(value)
		case "insights":
			insights = sequenceItems(value)
		}
	}
	return tasks, insights
}

func sequenceItems(node *yaml.Node) []*yaml.Node {
	if node.Kind != yaml.SequenceNode {
		return []*yaml.Node{}
	}
	if len(node.Content) == 0 {
		return []*yaml.Node{}
	}
	return node.Content
}

// classify routes a top-level list item to the task or insight decoder by
// probing its fields: tasks carry a title, insights carry content.
func (src *StructuredSource) classify(index int, item *yaml.Node) {
	var probe map[string]interface{}
	if err := item.Decode(&probe); err != nil {
		src.skip(index, fmt.Errorf("not a record object: %w", err))
		return
	}
	if _, ok := probe["title"]; ok {
		src.addTask(index, item)
		return
	}
	if _, ok := probe["content"]; ok {
		src.addInsight(index, item)
		return
	}
	src.skip(index, fmt.Errorf("record has neither title nor content"))
}

func (src *StructuredSource) addTask(index int, item *yaml.Node) {
	var rec TaskRecord
	if err := item.Decode(&rec); err != nil {
		src.skip(index, fmt.Errorf("decode task: %w", err))
		return
	}
	if rec.ID == "" {
		src.skip(index, fmt.Errorf("task record missing id"))
		return
	}
	if rec.Title == "" {
		src.skip(index, fmt.Errorf("task %s missing title", rec.ID))
		return
	}
	src.Tasks = append(src.Tasks, rec)
}

func (src *StructuredSource) addInsight(index int, item *yaml.Node) {
	var rec InsightRecord
	if err := item.Decode(&rec); err != nil {
		src.skip(index, fmt.Errorf("decode insight: %w", err))
		return
	}
	if rec.ID == "" {
		src.skip(index, fmt.Errorf("insight record missing id"))
		return
	}
	if rec.Content == "" {
		src.skip(index, fmt.Errorf("insight %s missing content", rec.ID))
		return
	}
	src.Insights = append(src.Insights, rec)
}

func (src *StructuredSource) skip(index int, err error) {
	src.Malformed++
	log.Printf("legacy: skipping record %d: %v", index, err)
}

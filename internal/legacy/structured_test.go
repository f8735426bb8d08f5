package legacy

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseStructured_JSONEnvelope(t *testing.T) {
	data := []byte(`{
		"tasks": [
			{"id": "LF-001", "title": "Add retry logic", "priority": "high", "depends_on": ["LF-000"]}
		],
		"insights": [
			{"id": "INS-001", "content": "retries need jitter", "type": "technical", "tags": ["http"]}
		]
	}`)

	src, err := ParseStructured(data)
	if err != nil {
		t.Fatalf("ParseStructured() error: %v", err)
	}
	if len(src.Tasks) != 1 || len(src.Insights) != 1 || src.Malformed != 0 {
		t.Fatalf("got %d tasks, %d insights, %d malformed", len(src.Tasks), len(src.Insights), src.Malformed)
	}
	task := src.Tasks[0]
	if task.ID != "LF-001" || task.Priority != "high" || len(task.DependsOn) != 1 {
		t.Errorf("task = %+v", task)
	}
	ins := src.Insights[0]
	if ins.ID != "INS-001" || ins.Type != "technical" || len(ins.Tags) != 1 {
		t.Errorf("insight = %+v", ins)
	}
}

func TestParseStructured_YAMLTopLevelList(t *testing.T) {
	data := []byte(`
- id: LF-001
  title: Add retry logic
- id: INS-001
  content: retries need jitter
  summary: jitter
- id: LF-002
  title: Wire the importer
  acceptance_criteria:
    - importer is idempotent
`)

	src, err := ParseStructured(data)
	if err != nil {
		t.Fatalf("ParseStructured() error: %v", err)
	}
	if len(src.Tasks) != 2 {
		t.Errorf("tasks = %d, want 2", len(src.Tasks))
	}
	if len(src.Insights) != 1 {
		t.Errorf("insights = %d, want 1", len(src.Insights))
	}
	if src.Malformed != 0 {
		t.Errorf("malformed = %d, want 0", src.Malformed)
	}
}

func TestParseStructured_MalformedRecordsSkipped(t *testing.T) {
	// One record in five lacks its required field; the other four survive.
	data := []byte(`
- id: LF-001
  title: a
- id: LF-002
  title: b
- id: LF-003
- id: INS-001
  content: c
- id: INS-002
  content: d
`)

	src, err := ParseStructured(data)
	if err != nil {
		t.Fatalf("ParseStructured() error: %v", err)
	}
	if got := len(src.Tasks) + len(src.Insights); got != 4 {
		t.Errorf("parsed records = %d, want 4", got)
	}
	if src.Malformed != 1 {
		t.Errorf("malformed = %d, want 1", src.Malformed)
	}
}

func TestParseStructured_MissingIDSkipped(t *testing.T) {
	data := []byte(`
- title: no id here
- id: LF-001
  title: fine
`)

	src, err := ParseStructured(data)
	if err != nil {
		t.Fatalf("ParseStructured() error: %v", err)
	}
	if len(src.Tasks) != 1 || src.Malformed != 1 {
		t.Errorf("tasks = %d, malformed = %d; want 1 and 1", len(src.Tasks), src.Malformed)
	}
}

func TestParseStructured_UnclassifiableSkipped(t *testing.T) {
	data := []byte(`
- id: LF-001
  notes: neither title nor content
`)

	src, err := ParseStructured(data)
	if err != nil {
		t.Fatalf("ParseStructured() error: %v", err)
	}
	if src.Malformed != 1 || len(src.Tasks)+len(src.Insights) != 0 {
		t.Errorf("got %+v, want one malformed record", src)
	}
}

func TestParseStructured_BadEnvelopeFails(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no recognized keys", `{"widgets": []}`},
		{"scalar document", `just a string`},
		{"unparseable", `{"tasks": [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseStructured([]byte(tt.data)); err == nil {
				t.Error("ParseStructured() should fail")
			}
		})
	}
}

func TestParseStructured_EmptyDocument(t *testing.T) {
	src, err := ParseStructured(nil)
	if err != nil {
		t.Fatalf("ParseStructured() error: %v", err)
	}
	if len(src.Tasks)+len(src.Insights)+src.Malformed != 0 {
		t.Errorf("empty document produced %+v", src)
	}
}

func TestParseStructured_EnvelopeWithOnlyTasks(t *testing.T) {
	data := []byte(`
tasks:
  - id: LF-001
    title: solo
`)

	src, err := ParseStructured(data)
	if err != nil {
		t.Fatalf("ParseStructured() error: %v", err)
	}
	if len(src.Tasks) != 1 || len(src.Insights) != 0 {
		t.Errorf("got %d tasks, %d insights", len(src.Tasks), len(src.Insights))
	}
}

func TestLoadStructured(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")
	content := `{"tasks": [{"id": "LF-001", "title": "from disk"}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	src, err := LoadStructured(path)
	if err != nil {
		t.Fatalf("LoadStructured() error: %v", err)
	}
	if len(src.Tasks) != 1 || src.Tasks[0].Title != "from disk" {
		t.Errorf("tasks = %+v", src.Tasks)
	}

	if _, err := LoadStructured(filepath.Join(dir, "absent.json")); err == nil {
		t.Error("LoadStructured() on a missing file should fail")
	}
}

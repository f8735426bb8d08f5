package legacy

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SessionRecord is a validated session parsed from one log block.
type SessionRecord struct {
	Date          string
	Number        int
	TaskID        string
	TaskType      string
	TaskTitle     string
	Outcome       string
	OutcomeReason string
	Summary       string
	Learnings     []string
	FilesChanged  []string
	InsightsAdded []string
}

// LogScan holds the sessions recovered from one pass over the log.
type LogScan struct {
	Sessions  []SessionRecord
	Malformed int
}

var (
	delimiterRe = regexp.MustCompile(`^(-{3,}|={3,})$`)
	taskRefRe   = regexp.MustCompile(`^(\S+)(?:\s+\((\w+)\))?(?:\s+(.*))?$`)
	outcomeRe   = regexp.MustCompile(`^([A-Za-z_]+)(?:\s*[:(]\s*(.*?)\)?)?$`)
)

// LoadLog reads and scans a session log file. A read failure aborts the
// whole source.
func LoadLog(path string) (*LogScan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("legacy: read %s: %w", path, err)
	}
	return ParseLog(data), nil
}

// ParseLog scans an append-only session log: blocks separated by --- or ===
// delimiter lines, each block describing one session as "Key: value" headers
// plus optional bulleted sections. Malformed blocks are skipped and counted;
// the scan itself never fails.
func ParseLog(data []byte) *LogScan {
	scan := &LogScan{}

	var block []string
	flush := func() {
		rec, err := parseBlock(block)
		block = nil
		if rec == nil && err == nil {
			return // blank block, e.g. a trailing delimiter
		}
		if err != nil {
			scan.Malformed++
			log.Printf("legacy: skipping session block: %v", err)
			return
		}
		scan.Sessions = append(scan.Sessions, *rec)
	}

	for _, line := range strings.Split(string(data), "\n") {
		if delimiterRe.MatchString(strings.TrimSpace(line)) {
			flush()
			continue
		}
		block = append(block, line)
	}
	flush()
	return scan
}

// parseBlock recovers one session from a block's lines. Returns (nil, nil)
// for blocks containing no content at all.
func parseBlock(lines []string) (*SessionRecord, error) {
	rec := &SessionRecord{}
	var (
		sawContent bool
		section    string // summary, learnings, files, insights
		summary    []string
		numberSet  bool
	)

	appendItem := func(item string) {
		switch section {
		case "learnings":
			rec.Learnings = append(rec.Learnings, item)
		case "files":
			rec.FilesChanged = append(rec.FilesChanged, item)
		case "insights":
			rec.InsightsAdded = append(rec.InsightsAdded, item)
		}
	}

	for _, raw := range lines {
		line := strings.TrimRight(raw, " \t\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		sawContent = true

		// Markdown headings introduce blocks in some hand-written logs.
		if strings.HasPrefix(trimmed, "#") {
			continue
		}

		// Bulleted item within the current section.
		if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			appendItem(strings.TrimSpace(trimmed[2:]))
			continue
		}

		key, value, ok := splitHeader(trimmed)
		if !ok {
			// Free text continues the summary when one is in progress.
			if section == "summary" {
				summary = append(summary, trimmed)
			}
			continue
		}

		switch key {
		case "date":
			rec.Date = value
			section = ""
		case "session", "session number", "number":
			n, err := strconv.Atoi(strings.TrimPrefix(value, "#"))
			if err != nil {
				return nil, fmt.Errorf("bad session number %q", value)
			}
			rec.Number = n
			numberSet = true
			section = ""
		case "task":
			rec.TaskID, rec.TaskType, rec.TaskTitle = parseTaskRef(value)
			section = ""
		case "outcome":
			rec.Outcome, rec.OutcomeReason = parseOutcome(value)
			section = ""
		case "summary":
			if value != "" {
				summary = append(summary, value)
			}
			section = "summary"
		case "learnings":
			section = "learnings"
			if value != "" {
				rec.Learnings = append(rec.Learnings, value)
			}
		case "files", "files changed":
			section = "files"
			appendInline(&rec.FilesChanged, value)
		case "insights", "insights added":
			section = "insights"
			appendInline(&rec.InsightsAdded, value)
		default:
			// Unknown headers are tolerated; hand-written logs drift.
			section = ""
		}
	}

	if !sawContent {
		return nil, nil
	}
	if rec.Date == "" {
		return nil, fmt.Errorf("block missing date")
	}
	if _, err := time.Parse("2006-01-02", rec.Date); err != nil {
		return nil, fmt.Errorf("bad date %q", rec.Date)
	}
	if !numberSet {
		return nil, fmt.Errorf("block %s missing session number", rec.Date)
	}
	if rec.Number < 1 {
		return nil, fmt.Errorf("block %s has session number %d", rec.Date, rec.Number)
	}

	rec.Summary = strings.Join(summary, "\n")
	return rec, nil
}

// splitHeader splits a "Key: value" line, lower-casing the key. Lines whose
// would-be key contains spaces beyond a known two-word header are not headers.
func splitHeader(line string) (key, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}
	key = strings.ToLower(strings.TrimSpace(line[:idx]))
	if strings.Count(key, " ") > 1 {
		return "", "", false
	}
	return key, strings.TrimSpace(line[idx+1:]), true
}

// parseTaskRef splits "LF-042 (task) Add retry logic" into id, type, title.
// Type and title are optional.
func parseTaskRef(value string) (id, typ, title string) {
	m := taskRefRe.FindStringSubmatch(value)
	if m == nil {
		return value, "", ""
	}
	return m[1], m[2], strings.TrimSpace(m[3])
}

// parseOutcome splits "BLOCKED: waiting on review" or "BLOCKED (reason)" into
// the outcome token and its reason. Unknown tokens are dropped and logged;
// an outcome is never inferred from prose.
func parseOutcome(value string) (outcome, reason string) {
	m := outcomeRe.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		log.Printf("legacy: unrecognized outcome %q, treating as unknown", value)
		return "", ""
	}
	token := strings.ToUpper(m[1])
	switch token {
	case "COMPLETE", "PARTIAL", "BLOCKED":
		return token, strings.TrimSpace(m[2])
	default:
		log.Printf("legacy: unrecognized outcome %q, treating as unknown", value)
		return "", ""
	}
}

// appendInline splits an inline comma-separated header value into items.
func appendInline(dst *[]string, value string) {
	if value == "" {
		return
	}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			*dst = append(*dst, item)
		}
	}
}

// Package search maintains the full-text indexes that shadow the insight and
// task tables. Index rows are written inside the same transaction as the
// primary row, so the index never lags a committed write. No storage-engine
// triggers are used; the sync is explicit so it works on both backends.
package search

import (
	"fmt"
	"strings"

	"github.com/lorefile/lore/internal/models"
	"gorm.io/gorm"
)

const sqliteDDL = `
CREATE VIRTUAL TABLE IF NOT EXISTS insight_search USING fts5(id UNINDEXED, content, summary, tags);
CREATE VIRTUAL TABLE IF NOT EXISTS task_search USING fts5(id UNINDEXED, title, description, summary);
`

const mysqlInsightDDL = `
CREATE TABLE IF NOT EXISTS insight_search (
    id VARCHAR(32) NOT NULL PRIMARY KEY,
    content TEXT,
    summary TEXT,
    tags TEXT,
    FULLTEXT KEY insight_search_ft (content, summary, tags)
)`

const mysqlTaskDDL = `
CREATE TABLE IF NOT EXISTS task_search (
    id VARCHAR(32) NOT NULL PRIMARY KEY,
    title TEXT,
    description TEXT,
    summary TEXT,
    FULLTEXT KEY task_search_ft (title, description, summary)
)`

// CreateTables creates the search index tables for the connected backend:
// FTS5 virtual tables on sqlite, FULLTEXT-indexed tables on MySQL.
func CreateTables(tx *gorm.DB) error {
	switch tx.Dialector.Name() {
	case "sqlite":
		for _, stmt := range splitStatements(sqliteDDL) {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("search: create sqlite index tables: %w", err)
			}
		}
		return nil
	case "mysql":
		if err := tx.Exec(mysqlInsightDDL).Error; err != nil {
			return fmt.Errorf("search: create insight_search: %w", err)
		}
		if err := tx.Exec(mysqlTaskDDL).Error; err != nil {
			return fmt.Errorf("search: create task_search: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("search: unsupported dialect %q", tx.Dialector.Name())
	}
}

// IndexInsight writes the index row for an insight, replacing any existing
// entry. Must be called inside the transaction that writes the insight.
func IndexInsight(tx *gorm.DB, ins *models.Insight) error {
	if err := RemoveInsight(tx, ins.ID); err != nil {
		return err
	}
	tags := strings.Join(models.UnmarshalList(ins.Tags), " ")
	err := tx.Exec(
		"INSERT INTO insight_search (id, content, summary, tags) VALUES (?, ?, ?, ?)",
		ins.ID, ins.Content, ins.Summary, tags,
	).Error
	if err != nil {
		return fmt.Errorf("search: index insight %s: %w", ins.ID, err)
	}
	return nil
}

// RemoveInsight deletes an insight's index row.
func RemoveInsight(tx *gorm.DB, id string) error {
	if err := tx.Exec("DELETE FROM insight_search WHERE id = ?", id).Error; err != nil {
		return fmt.Errorf("search: remove insight %s: %w", id, err)
	}
	return nil
}

// IndexTask writes the index row for a task, replacing any existing entry.
// Must be called inside the transaction that writes the task.
func IndexTask(tx *gorm.DB, t *models.Task) error {
	if err := RemoveTask(tx, t.ID); err != nil {
		return err
	}
	err := tx.Exec(
		"INSERT INTO task_search (id, title, description, summary) VALUES (?, ?, ?, ?)",
		t.ID, t.Title, t.Description, t.Summary,
	).Error
	if err != nil {
		return fmt.Errorf("search: index task %s: %w", t.ID, err)
	}
	return nil
}

// RemoveTask deletes a task's index row.
func RemoveTask(tx *gorm.DB, id string) error {
	if err := tx.Exec("DELETE FROM task_search WHERE id = ?", id).Error; err != nil {
		return fmt.Errorf("search: remove task %s: %w", id, err)
	}
	return nil
}

// QueryInsightIDs returns insight ids ranked by relevance to a free-text query.
func QueryInsightIDs(gdb *gorm.DB, query string) ([]string, error) {
	return queryIDs(gdb, "insight_search", []string{"content", "summary", "tags"}, query)
}

// QueryTaskIDs returns task ids ranked by relevance to a free-text query.
func QueryTaskIDs(gdb *gorm.DB, query string) ([]string, error) {
	return queryIDs(gdb, "task_search", []string{"title", "description", "summary"}, query)
}

func queryIDs(gdb *gorm.DB, table string, columns []string, query string) ([]string, error) {
	var sql string
	var args []interface{}

	switch gdb.Dialector.Name() {
	case "sqlite":
		expr := matchExpr(query)
		if expr == "" {
			return nil, nil
		}
		sql = fmt.Sprintf("SELECT id FROM %s WHERE %s MATCH ? ORDER BY bm25(%s)", table, table, table)
		args = []interface{}{expr}
	case "mysql":
		if strings.TrimSpace(query) == "" {
			return nil, nil
		}
		cols := strings.Join(columns, ", ")
		sql = fmt.Sprintf(
			"SELECT id FROM %s WHERE MATCH(%s) AGAINST (?) ORDER BY MATCH(%s) AGAINST (?) DESC",
			table, cols, cols,
		)
		args = []interface{}{query, query}
	default:
		return nil, fmt.Errorf("search: unsupported dialect %q", gdb.Dialector.Name())
	}

	var ids []string
	if err := gdb.Raw(sql, args...).Scan(&ids).Error; err != nil {
		return nil, fmt.Errorf("search: query %s: %w", table, err)
	}
	return ids, nil
}

// matchExpr turns free text into an FTS5 match expression: each term quoted
// (so user input cannot inject FTS5 syntax) and OR-joined for ranked recall.
func matchExpr(query string) string {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return ""
	}
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(quoted, " OR ")
}

func splitStatements(ddl string) []string {
	var stmts []string
	for _, s := range strings.Split(ddl, ";") {
		if s = strings.TrimSpace(s); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

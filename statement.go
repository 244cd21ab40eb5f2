package orm

import (
	"fmt"
	"strings"
)

// Statement generators. Every function validates the schema first and
// refuses abstract schemas with ErrUnsupportedOperation. Values are never
// embedded, statements only contain "?" placeholders in mapping order.

// CreateStatement generates the CREATE TABLE statement of a schema.
//
//	CREATE TABLE IF NOT EXISTS people (uid INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL)
func CreateStatement(s Schema) (string, error) {
	if err := checkConcrete(s, "CREATE TABLE"); err != nil {
		return "", err
	}
	defs := make([]string, 0, len(s.Mapping))
	for _, m := range s.Mapping {
		defs = append(defs, m.Column.Definition())
	}
	return "CREATE TABLE IF NOT EXISTS " + s.Table + " (" + strings.Join(defs, ", ") + ")", nil
}

// DropStatement generates "DROP TABLE IF EXISTS <table>".
func DropStatement(s Schema) (string, error) {
	if err := checkConcrete(s, "DROP TABLE"); err != nil {
		return "", err
	}
	return "DROP TABLE IF EXISTS " + s.Table, nil
}

// SelectStatement generates a SELECT statement of all columns without WHERE
// clause. Callers append their own conditions.
func SelectStatement(s Schema) (string, error) {
	if err := checkConcrete(s, "SELECT"); err != nil {
		return "", err
	}
	return "SELECT " + strings.Join(columnNames(s, nil), ", ") + " FROM " + s.Table, nil
}

// InsertStatement generates an INSERT statement of all columns except the
// AUTOINCREMENT one, which is assigned by the database.
//
//	INSERT INTO people (name) VALUES (?)
func InsertStatement(s Schema) (string, error) {
	if err := checkConcrete(s, "INSERT"); err != nil {
		return "", err
	}
	return insertStatement(s, s.writableIndexes()), nil
}

// InsertAllStatement is like InsertStatement but includes the AUTOINCREMENT
// column. It is used to store entities that already carry an identifier.
//
//	INSERT INTO people (uid, name) VALUES (?, ?)
func InsertAllStatement(s Schema) (string, error) {
	if err := checkConcrete(s, "INSERT"); err != nil {
		return "", err
	}
	return insertStatement(s, allIndexes(s)), nil
}

// UpdateStatement generates an UPDATE statement of all columns except the
// AUTOINCREMENT one, followed by the where condition. Empty string is
// returned if there is nothing to update.
//
//	UPDATE people SET name = ? WHERE uid = ?
func UpdateStatement(s Schema, where string) (string, error) {
	if err := checkConcrete(s, "UPDATE"); err != nil {
		return "", err
	}
	if err := checkWhere(s, where); err != nil {
		return "", err
	}
	idx := s.writableIndexes()
	if len(idx) == 0 {
		return "", nil
	}
	sets := make([]string, 0, len(idx))
	for _, name := range columnNames(s, idx) {
		sets = append(sets, name+" = ?")
	}
	return "UPDATE " + s.Table + " SET " + strings.Join(sets, ", ") + " WHERE " + where, nil
}

// DeleteStatement generates "DELETE FROM <table> WHERE <where>".
func DeleteStatement(s Schema, where string) (string, error) {
	if err := checkConcrete(s, "DELETE"); err != nil {
		return "", err
	}
	if err := checkWhere(s, where); err != nil {
		return "", err
	}
	return "DELETE FROM " + s.Table + " WHERE " + where, nil
}

func insertStatement(s Schema, idx []int) string {
	if len(idx) == 0 {
		return "INSERT INTO " + s.Table + " DEFAULT VALUES"
	}
	return "INSERT INTO " + s.Table + " (" + strings.Join(columnNames(s, idx), ", ") +
		") VALUES (" + placeholders(len(idx)) + ")"
}

func checkConcrete(s Schema, operation string) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.Abstract {
		return fmt.Errorf("%w: %s on abstract type %s", ErrUnsupportedOperation, operation, s.Table)
	}
	return nil
}

// The unique condition is bound with exactly one value.
func checkWhere(s Schema, where string) error {
	if strings.TrimSpace(where) == "" {
		return fmt.Errorf("%w: table %s has no unique where condition", ErrInvalidMetadata, s.Table)
	}
	if n := strings.Count(where, "?"); n != 1 {
		return fmt.Errorf("%w: unique where condition %q of table %s must have one placeholder, got %d",
			ErrInvalidMetadata, where, s.Table, n)
	}
	return nil
}

// columnNames returns column names at the mapping indexes idx, or all if idx
// is nil.
func columnNames(s Schema, idx []int) []string {
	if idx == nil {
		idx = allIndexes(s)
	}
	out := make([]string, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.Mapping[i].Column.Name())
	}
	return out
}

func allIndexes(s Schema) []int {
	out := make([]int, len(s.Mapping))
	for i := range out {
		out[i] = i
	}
	return out
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

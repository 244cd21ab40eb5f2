package orm

import (
	"context"
	"strings"

	"github.com/gopsql/db"
)

// MustSelect is like Select but panics if query operation fails.
func (m Model[T, PT]) MustSelect(clause string, args ...interface{}) []PT {
	out, err := m.Select(clause, args...)
	if err != nil {
		panic(err)
	}
	return out
}

// Select appends clause to the Model's generic SELECT statement and returns
// the entities of all rows in order. Use "?" placeholders for args.
//
//	people.Select("WHERE name = ? ORDER BY uid DESC", "Alice")
func (m Model[T, PT]) Select(clause string, args ...interface{}) ([]PT, error) {
	return m.SelectCtxTx(context.Background(), nil, clause, args...)
}

// SelectCtxTx is like Select but runs in a transaction.
func (m Model[T, PT]) SelectCtxTx(ctx context.Context, tx db.Tx, clause string, args ...interface{}) ([]PT, error) {
	sql, err := m.table.SelectStatement()
	if err != nil {
		return nil, err
	}
	if clause = strings.TrimSpace(clause); clause != "" {
		sql += " " + clause
	}
	rows, err := m.query(ctx, tx, sql, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return m.NewInstances(rows)
}

// All returns entities of every row of the table.
func (m Model[T, PT]) All() ([]PT, error) {
	return m.Select("")
}

// MustFind is like Find but panics if find operation fails.
func (m Model[T, PT]) MustFind(uniqueValue interface{}) PT {
	e, err := m.Find(uniqueValue)
	if err != nil {
		panic(err)
	}
	return e
}

// Find returns the entity whose unique where condition matches uniqueValue.
// ErrNotFound is returned if there is no such row.
//
//	person, err := people.Find(1) // WHERE uid = 1
func (m Model[T, PT]) Find(uniqueValue interface{}) (PT, error) {
	return m.FindCtxTx(context.Background(), nil, uniqueValue)
}

// FindCtxTx is like Find but runs in a transaction.
func (m Model[T, PT]) FindCtxTx(ctx context.Context, tx db.Tx, uniqueValue interface{}) (PT, error) {
	out, err := m.SelectCtxTx(ctx, tx, "WHERE "+m.table.where+" LIMIT 1", uniqueValue)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out[0], nil
}

// MustCount is like Count but panics if count operation fails.
func (m Model[T, PT]) MustCount() int {
	count, err := m.Count()
	if err != nil {
		panic(err)
	}
	return count
}

// Count returns the number of rows in the table.
func (m Model[T, PT]) Count() (count int, err error) {
	return m.CountCtxTx(context.Background(), nil)
}

// CountCtxTx is like Count but runs in a transaction.
func (m Model[T, PT]) CountCtxTx(ctx context.Context, tx db.Tx) (count int, err error) {
	if _, err = m.table.SelectStatement(); err != nil {
		return
	}
	err = m.queryRow(ctx, tx, "SELECT COUNT(*) FROM "+m.table.Name(), nil, &count)
	return
}

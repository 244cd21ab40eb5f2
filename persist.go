package orm

import (
	"context"
	"fmt"

	"github.com/gopsql/db"
)

// MustCreateTable is like CreateTable but panics if the statement fails.
func (m Model[T, PT]) MustCreateTable() {
	if err := m.CreateTable(); err != nil {
		panic(err)
	}
}

// CreateTable executes the CREATE TABLE IF NOT EXISTS statement of the
// Model. ErrUnsupportedOperation is returned for abstract types.
func (m Model[T, PT]) CreateTable() error {
	return m.CreateTableCtxTx(context.Background(), nil)
}

// CreateTableCtxTx is like CreateTable but runs in a transaction.
func (m Model[T, PT]) CreateTableCtxTx(ctx context.Context, tx db.Tx) error {
	sql, err := m.table.CreateStatement()
	if err != nil {
		return err
	}
	_, err = m.exec(ctx, tx, sql, nil)
	return err
}

// MustDropTable is like DropTable but panics if the statement fails.
func (m Model[T, PT]) MustDropTable() {
	if err := m.DropTable(); err != nil {
		panic(err)
	}
}

// DropTable executes the DROP TABLE IF EXISTS statement of the Model.
// ErrUnsupportedOperation is returned for abstract types.
func (m Model[T, PT]) DropTable() error {
	return m.DropTableCtxTx(context.Background(), nil)
}

// DropTableCtxTx is like DropTable but runs in a transaction.
func (m Model[T, PT]) DropTableCtxTx(ctx context.Context, tx db.Tx) error {
	sql, err := m.table.DropStatement()
	if err != nil {
		return err
	}
	_, err = m.exec(ctx, tx, sql, nil)
	return err
}

// MustExists is like Exists but panics if existence check operation fails.
func (m Model[T, PT]) MustExists(e PT) bool {
	exists, err := m.Exists(e)
	if err != nil {
		panic(err)
	}
	return exists
}

// Exists selects the row matching the entity's unique where condition and
// reports whether there is one. Entities without unique value (for example
// a Base entity that was never stored) do not exist and no query is made.
func (m Model[T, PT]) Exists(e PT) (bool, error) {
	return m.ExistsCtxTx(context.Background(), nil, e)
}

// ExistsCtxTx is like Exists but runs in a transaction.
func (m Model[T, PT]) ExistsCtxTx(ctx context.Context, tx db.Tx, e PT) (exists bool, err error) {
	sql, err := m.table.SelectStatement()
	if err != nil {
		return
	}
	value := bindValue(e.UniqueValue())
	if value == nil {
		return
	}
	rows, err := m.query(ctx, tx, sql+" WHERE "+m.table.where, []interface{}{value})
	if err != nil {
		return
	}
	defer rows.Close()
	exists = rows.Next()
	err = rows.Err()
	return
}

// MustPut is like Put but panics if put operation fails.
func (m Model[T, PT]) MustPut(e PT) {
	if err := m.Put(e); err != nil {
		panic(err)
	}
}

// Put stores the entity. If a row with the entity's unique value exists it
// is updated, otherwise the entity is inserted. An unidentified entity (see
// Identifiable) receives the identifier assigned by the database, or the
// stored one if its row is found by another unique column; an identified
// entity is inserted with its identifier.
//
// The existence check and the following INSERT or UPDATE are separate
// statements, so two writers putting the same new entity at the same time
// can both try to insert it. Use a transaction (see Transaction()) or a
// UNIQUE column to serialize such writers.
func (m Model[T, PT]) Put(e PT) error {
	return m.PutCtxTx(context.Background(), nil, e)
}

// PutCtxTx is like Put but runs in a transaction.
func (m Model[T, PT]) PutCtxTx(ctx context.Context, tx db.Tx, e PT) error {
	if m.table.Abstract() {
		return fmt.Errorf("%w: put on abstract type %s", ErrUnsupportedOperation, m.table.Name())
	}
	exists, err := m.ExistsCtxTx(ctx, tx, e)
	if err != nil {
		return err
	}
	if exists {
		return m.update(ctx, tx, e)
	}
	return m.insert(ctx, tx, e)
}

// update runs the UPDATE statement. Unidentified entities that are found by
// another unique column (for example a UUID) load the stored identifier.
func (m Model[T, PT]) update(ctx context.Context, tx db.Tx, e PT) error {
	i, ok := Entity(e).(Identifiable)
	if !ok || i.Identified() || m.table.autoIncrement < 0 {
		if m.table.updateSQL == "" {
			return nil
		}
		_, err := m.exec(ctx, tx, m.table.updateSQL, m.table.updateValues(e))
		return err
	}
	column := m.table.schema.Mapping[m.table.autoIncrement].Column.Name()
	var id int64
	var err error
	if m.table.updateSQL == "" {
		err = m.queryRow(ctx, tx, "SELECT "+column+" FROM "+m.table.Name()+" WHERE "+m.table.where,
			[]interface{}{e.UniqueValue()}, &id)
	} else {
		err = m.queryRow(ctx, tx, m.table.updateSQL+" RETURNING "+column, m.table.updateValues(e), &id)
	}
	if err != nil {
		return err
	}
	i.SetIdentifier(id)
	return nil
}

func (m Model[T, PT]) insert(ctx context.Context, tx db.Tx, e PT) error {
	if g, ok := Entity(e).(KeyGenerator); ok {
		g.GenerateKey()
	}
	sql, values := m.table.insertValues(e)
	if i, ok := Entity(e).(Identifiable); ok && !i.Identified() && m.table.autoIncrement >= 0 {
		column := m.table.schema.Mapping[m.table.autoIncrement].Column.Name()
		var id int64
		if err := m.queryRow(ctx, tx, sql+" RETURNING "+column, values, &id); err != nil {
			return err
		}
		i.SetIdentifier(id)
		return nil
	}
	_, err := m.exec(ctx, tx, sql, values)
	return err
}

// MustErase is like Erase but panics if erase operation fails.
func (m Model[T, PT]) MustErase(e PT) {
	if err := m.Erase(e); err != nil {
		panic(err)
	}
}

// Erase deletes the row matching the entity's unique where condition.
// Erasing a row that does not exist is not an error.
func (m Model[T, PT]) Erase(e PT) error {
	return m.EraseCtxTx(context.Background(), nil, e)
}

// EraseCtxTx is like Erase but runs in a transaction.
func (m Model[T, PT]) EraseCtxTx(ctx context.Context, tx db.Tx, e PT) error {
	sql, err := m.table.DeleteStatement()
	if err != nil {
		return err
	}
	value := bindValue(e.UniqueValue())
	if value == nil {
		return nil
	}
	_, err = m.exec(ctx, tx, sql, []interface{}{value})
	return err
}

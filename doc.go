// Package orm maps Go structs to SQLite tables without reflection.
//
// # Overview
//
// Every entity type declares its columns once with a Schema. From that
// metadata the package generates the CREATE TABLE, DROP TABLE, SELECT,
// INSERT, UPDATE and DELETE statements of the type, binds entity values to
// their "?" placeholders, and creates entities back from result rows or JSON.
//
// Key features include:
//   - Static, validated metadata: Column, Mapping and Schema
//   - Statements generated once per type and kept in a process-wide registry
//   - Put (insert or update), Erase and Exists by a unique row condition
//   - Hydration from rows and JSON, serialization to JSON
//   - Mass assignment protection via Permit and Assign
//   - Transaction support with context
//
// # Basic Usage
//
// Embed Base for a "uid INTEGER PRIMARY KEY AUTOINCREMENT" identifier and
// list the columns in the same order in Schema, Values and Pointers:
//
//	type Person struct {
//		orm.Base
//		Name string
//		Age  int64
//	}
//
//	func (Person) Schema() orm.Schema {
//		return orm.Schema{
//			Table: "people",
//			Mapping: orm.BaseMapping(
//				orm.Field("Name", orm.Text, orm.NotNull),
//				orm.Field("Age", orm.Integer),
//			),
//		}
//	}
//
//	func (p Person) Values() []interface{} {
//		return []interface{}{p.UID, p.Name, p.Age}
//	}
//
//	func (p *Person) Pointers() []interface{} {
//		return []interface{}{&p.UID, &p.Name, &p.Age}
//	}
//
// Then create a Model with a database connection and use it:
//
//	conn := orm.MustOpen("people.db")
//	defer conn.Close()
//
//	people := orm.MustNewModel[Person](conn, logger.StandardLogger)
//	people.MustCreateTable()
//	// CREATE TABLE IF NOT EXISTS people (uid INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL, age INTEGER)
//
//	alice := &Person{Name: "Alice", Age: 30}
//	people.MustPut(alice) // INSERT INTO people (name, age) VALUES (?, ?) RETURNING uid
//
//	alice.Age = 31
//	people.MustPut(alice) // UPDATE people SET name = ?, age = ? WHERE uid = ?
//
//	people.MustErase(alice) // DELETE FROM people WHERE uid = ?
//
// # Metadata
//
// Columns have a type (Null, Integer, Text, Real, Blob) and modifiers
// (PrimaryKey, AutoIncrement, Unique, NotNull). Field names are used as JSON
// keys, column names are derived from them with DefaultColumnNamer
// ("FullName" becomes "full_name"). Use Map with NewColumn for explicit
// column names. A Schema without Table is named after its type with
// DefaultTableNamer (type "PostComment" becomes table "post_comments").
// A PRIMARY KEY column must be INTEGER; use a UNIQUE column for other keys.
//
// Metadata is checked when a type is registered (NewModel or Register):
// identifiers must be valid SQL identifiers, a concrete type needs exactly
// one PRIMARY KEY column, and Values and Pointers must match the mapping.
// Types whose Schema is Abstract, like Base itself, only share columns and
// never produce statements; ErrUnsupportedOperation is returned instead.
//
// # Unique Rows
//
// Exists, Put, Erase and Find identify a row by the entity's
// UniqueWhereCondition and UniqueValue, "uid = ?" and the uid for Base.
// Embed UUIDBase to identify rows by a UUID that is generated before the
// first insert instead.
//
// # JSON
//
//	object := people.JSONObject(alice)       // {"uid": 1, "Name": "Alice", "Age": 31}
//	copy := people.NewInstanceFromJSON(object)
//	list, err := people.ParseJSON(`[{"Name": "Bob"}]`)
//
// # Transactions
//
// Put and Erase do not start transactions. Wrap several calls in one:
//
//	people.MustTransaction(func(ctx context.Context, tx db.Tx) error {
//		if err := people.PutCtxTx(ctx, tx, alice); err != nil {
//			return err // rollback
//		}
//		return people.PutCtxTx(ctx, tx, bob)
//	})
//
// # Database
//
// Models use the db.DB interface of github.com/gopsql/db. Open returns one
// backed by modernc.org/sqlite through github.com/gopsql/standard; any other
// database/sql SQLite driver can be wrapped the same way:
//
//	c, _ := sql.Open("sqlite3", "people.db")
//	conn := standard.NewDB("sqlite3", c)
package orm

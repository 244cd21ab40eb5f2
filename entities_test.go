package orm

import (
	"testing"

	"github.com/gopsql/db"
)

// Test entities
type (
	person struct {
		Base
		Name     string
		Age      int64
		Score    float64
		Avatar   []byte
		Nickname *string
	}

	account struct {
		UUIDBase
		Email string
	}

	// tag is identified by its unique name instead of its uid.
	tag struct {
		Base
		Name string
		Uses int64
	}

	marker struct {
		Base
	}

	simple struct {
		Base
		Name string
	}

	// postComment has no table name in its schema.
	postComment struct {
		Base
		Body string
	}

	// rawEntity returns whatever metadata it is given, for registration
	// tests.
	rawEntity struct {
		schema Schema
		values int
		where  string
	}
)

func (person) Schema() Schema {
	return Schema{
		Table: "people",
		Mapping: BaseMapping(
			Field("Name", Text, NotNull),
			Field("Age", Integer),
			Field("Score", Real),
			Field("Avatar", Blob),
			Field("Nickname", Text),
		),
	}
}

func (p person) Values() []interface{} {
	return []interface{}{p.UID, p.Name, p.Age, p.Score, p.Avatar, p.Nickname}
}

func (p *person) Pointers() []interface{} {
	return []interface{}{&p.UID, &p.Name, &p.Age, &p.Score, &p.Avatar, &p.Nickname}
}

func (account) Schema() Schema {
	return Schema{
		Table:   "accounts",
		Mapping: UUIDBaseMapping(Field("Email", Text, Unique, NotNull)),
	}
}

func (a account) Values() []interface{} {
	return []interface{}{a.UID, a.UUID, a.Email}
}

func (a *account) Pointers() []interface{} {
	return []interface{}{&a.UID, &a.UUID, &a.Email}
}

func (tag) Schema() Schema {
	return Schema{
		Table: "tags",
		Mapping: BaseMapping(
			Field("Name", Text, Unique, NotNull),
			Field("Uses", Integer, NotNull),
		),
	}
}

func (t tag) Values() []interface{} {
	return []interface{}{t.UID, t.Name, t.Uses}
}

func (t *tag) Pointers() []interface{} {
	return []interface{}{&t.UID, &t.Name, &t.Uses}
}

func (tag) UniqueWhereCondition() string {
	return "name = ?"
}

func (t tag) UniqueValue() interface{} {
	if t.Name == "" {
		return nil
	}
	return t.Name
}

func (marker) Schema() Schema {
	return Schema{
		Table:   "markers",
		Mapping: BaseMapping(),
	}
}

func (simple) Schema() Schema {
	return Schema{
		Table:   "t",
		Mapping: BaseMapping(Field("Name", Text, NotNull)),
	}
}

func (s simple) Values() []interface{} {
	return []interface{}{s.UID, s.Name}
}

func (s *simple) Pointers() []interface{} {
	return []interface{}{&s.UID, &s.Name}
}

func (postComment) Schema() Schema {
	return Schema{
		Mapping: BaseMapping(Field("Body", Text)),
	}
}

func (c postComment) Values() []interface{} {
	return []interface{}{c.UID, c.Body}
}

func (c *postComment) Pointers() []interface{} {
	return []interface{}{&c.UID, &c.Body}
}

func (r rawEntity) Schema() Schema               { return r.schema }
func (r rawEntity) Values() []interface{}        { return make([]interface{}, r.values) }
func (r rawEntity) Pointers() []interface{}      { return make([]interface{}, r.values) }
func (r rawEntity) UniqueWhereCondition() string { return r.where }
func (r rawEntity) UniqueValue() interface{}     { return nil }

func newTestDB(t *testing.T) db.DB {
	t.Helper()
	conn, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
	})
	return conn
}

func int64Ptr(i int64) *int64 {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

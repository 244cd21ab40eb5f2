package orm

import (
	"github.com/google/uuid"
)

var (
	uidColumn  = MustColumn("uid", Integer, PrimaryKey, AutoIncrement)
	uuidColumn = MustColumn("uuid", Text, Unique, NotNull)
)

type (
	// Base supplies the surrogate "uid INTEGER PRIMARY KEY AUTOINCREMENT"
	// identifier. Embed it in an entity and start the entity's mapping with
	// BaseMapping(). UID is nil until the row is inserted.
	Base struct {
		UID *int64
	}

	// UUIDBase identifies rows by a client-generated UUID stored in a UNIQUE
	// "uuid" column. The surrogate uid is kept as primary key. Start the
	// entity's mapping with UUIDBaseMapping().
	UUIDBase struct {
		Base
		UUID string
	}
)

// BaseMapping returns the uid mapping entry followed by extra.
func BaseMapping(extra ...Mapping) []Mapping {
	return append([]Mapping{Map("uid", uidColumn)}, extra...)
}

// Base is abstract, it has columns but no table.
func (Base) Schema() Schema {
	return Schema{
		Table:    "base",
		Abstract: true,
		Mapping:  BaseMapping(),
	}
}

func (b Base) Values() []interface{} {
	return []interface{}{b.UID}
}

func (b *Base) Pointers() []interface{} {
	return []interface{}{&b.UID}
}

func (Base) UniqueWhereCondition() string {
	return "uid = ?"
}

// UniqueValue returns the uid, or nil if the entity was never stored.
func (b Base) UniqueValue() interface{} {
	if b.UID == nil {
		return nil
	}
	return *b.UID
}

func (b Base) Identified() bool {
	return b.UID != nil
}

func (b *Base) SetIdentifier(id int64) {
	b.UID = &id
}

// UUIDBaseMapping returns the uid and uuid mapping entries followed by extra.
func UUIDBaseMapping(extra ...Mapping) []Mapping {
	return append(BaseMapping(Map("uuid", uuidColumn)), extra...)
}

func (UUIDBase) Schema() Schema {
	return Schema{
		Table:    "uuid_base",
		Abstract: true,
		Mapping:  UUIDBaseMapping(),
	}
}

func (b UUIDBase) Values() []interface{} {
	return []interface{}{b.UID, b.UUID}
}

func (b *UUIDBase) Pointers() []interface{} {
	return []interface{}{&b.UID, &b.UUID}
}

func (UUIDBase) UniqueWhereCondition() string {
	return "uuid = ?"
}

func (b UUIDBase) UniqueValue() interface{} {
	if b.UUID == "" {
		return nil
	}
	return b.UUID
}

// GenerateKey assigns a random UUID if the entity has none.
func (b *UUIDBase) GenerateKey() {
	if b.UUID == "" {
		b.UUID = uuid.NewString()
	}
}

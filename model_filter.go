package orm

import (
	"fmt"
)

type (
	// RawChanges is decoded JSON input keyed by field name.
	RawChanges map[string]interface{}

	// ModelWithPermittedFields wraps a Model with a whitelist of fields that
	// may be changed from user input. Create instances using Permit or
	// PermitAllExcept.
	ModelWithPermittedFields[T any, PT EntityPointer[T]] struct {
		*Model[T, PT]
		permittedFieldsIdx []int
	}
)

// Permit creates a ModelWithPermittedFields that only allows the specified
// fields in Filter and Assign. If no field names are provided, no fields are
// permitted.
func (m *Model[T, PT]) Permit(fieldNames ...string) *ModelWithPermittedFields[T, PT] {
	idx := []int{}
	for i, mapping := range m.table.schema.Mapping {
		for _, fieldName := range fieldNames {
			if fieldName != mapping.Field {
				continue
			}
			idx = append(idx, i)
			break
		}
	}
	return &ModelWithPermittedFields[T, PT]{m, idx}
}

// PermitAllExcept creates a ModelWithPermittedFields that allows all fields
// except the specified ones. If no field names are provided, all fields are
// permitted.
func (m *Model[T, PT]) PermitAllExcept(fieldNames ...string) *ModelWithPermittedFields[T, PT] {
	idx := []int{}
	for i, mapping := range m.table.schema.Mapping {
		found := false
		for _, fieldName := range fieldNames {
			if fieldName == mapping.Field {
				found = true
				break
			}
		}
		if !found {
			idx = append(idx, i)
		}
	}
	return &ModelWithPermittedFields[T, PT]{m, idx}
}

// PermittedFields returns the list of permitted field names.
func (m ModelWithPermittedFields[T, PT]) PermittedFields() (out []string) {
	for _, i := range m.permittedFieldsIdx {
		out = append(out, m.table.schema.Mapping[i].Field)
	}
	return
}

// Filter keeps data of permitted fields from multiple inputs. Inputs can be
// RawChanges, map[string]interface{} or JSON-encoded objects (string, []byte
// or io.Reader). Later inputs override earlier ones. Inputs that are not JSON
// objects are skipped.
//
//	people.Permit("Name").Filter(
//		map[string]interface{}{"Name": "Alice"},
//		`{"Name": "Bob", "uid": 1}`,
//	) // RawChanges{"Name": "Bob"}
func (m ModelWithPermittedFields[T, PT]) Filter(inputs ...interface{}) (out RawChanges) {
	out = RawChanges{}
	for _, input := range inputs {
		data, err := decodeJSON(input)
		if err != nil {
			continue
		}
		in, ok := jsonObject(data)
		if !ok {
			continue
		}
		for _, i := range m.permittedFieldsIdx {
			field := m.table.schema.Mapping[i].Field
			if value, ok := in[field]; ok {
				out[field] = value
			}
		}
	}
	return
}

// MustAssign is like Assign but panics if assign operation fails.
func (m ModelWithPermittedFields[T, PT]) MustAssign(target PT, inputs ...interface{}) RawChanges {
	c, err := m.Assign(target, inputs...)
	if err != nil {
		panic(err)
	}
	return c
}

// Assign sets permitted fields of target from inputs (see Filter()) and
// returns the applied changes. Other fields are left untouched, so an
// entity loaded with Find() can be updated from a request body and stored
// with Put():
//
//	person, _ := people.Find(1)
//	people.Permit("Name").MustAssign(person, requestBody)
//	people.MustPut(person)
func (m ModelWithPermittedFields[T, PT]) Assign(target PT, inputs ...interface{}) (RawChanges, error) {
	if (*T)(target) == nil {
		return nil, fmt.Errorf("%w: nil target", ErrMustBePointer)
	}
	changes := m.Filter(inputs...)
	m.assign(target, changes, m.permittedFieldsIdx)
	return changes, nil
}

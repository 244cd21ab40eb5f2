package orm

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()
	people := MustNewModel[person]()

	tests := []struct {
		name   string
		person *person
	}{
		{
			name:   "zero",
			person: &person{},
		},
		{
			name: "all fields",
			person: &person{
				Base:     Base{UID: int64Ptr(42)},
				Name:     "Alice",
				Age:      30,
				Score:    9.5,
				Avatar:   []byte{0, 1, 2, 255},
				Nickname: stringPtr("Al"),
			},
		},
		{
			name:   "large identifier",
			person: &person{Base: Base{UID: int64Ptr(1<<62 + 1)}, Name: "Bob"},
		},
		{
			name:   "negative and empty values",
			person: &person{Name: "", Age: -7, Score: -0.125, Avatar: []byte{}, Nickname: stringPtr("")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkJSONRoundTrip(t, people, tt.person)
		})
	}
}

func TestJSONRoundTripAllEntities(t *testing.T) {
	t.Parallel()
	t.Run("account", func(t *testing.T) {
		checkJSONRoundTrip(t, MustNewModel[account](), &account{
			UUIDBase: UUIDBase{Base: Base{UID: int64Ptr(3)}, UUID: "00000000-0000-0000-0000-000000000003"},
			Email:    "alice@example.com",
		})
		checkJSONRoundTrip(t, MustNewModel[account](), &account{})
	})
	t.Run("tag", func(t *testing.T) {
		checkJSONRoundTrip(t, MustNewModel[tag](), &tag{Base: Base{UID: int64Ptr(1)}, Name: "go", Uses: 12})
	})
	t.Run("simple", func(t *testing.T) {
		checkJSONRoundTrip(t, MustNewModel[simple](), &simple{Base: Base{UID: int64Ptr(9)}, Name: "x"})
	})
	t.Run("marker", func(t *testing.T) {
		checkJSONRoundTrip(t, MustNewModel[marker](), &marker{Base{UID: int64Ptr(5)}})
		checkJSONRoundTrip(t, MustNewModel[marker](), &marker{})
	})
}

// checkJSONRoundTrip hydrates e from its JSON object and from its encoded
// JSON text and compares both with e.
func checkJSONRoundTrip[T any, PT EntityPointer[T]](t *testing.T, m *Model[T, PT], e PT) {
	t.Helper()
	got := m.NewInstanceFromJSON(m.JSONObject(e))
	if !reflect.DeepEqual(got, e) {
		t.Errorf("from object = %+v, want %+v", got, e)
	}

	b, err := m.EncodeJSON(e)
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := m.ParseJSON(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(parsed) != 1 || !reflect.DeepEqual(parsed[0], e) {
		t.Errorf("from %s = %+v, want %+v", b, parsed, e)
	}
}

func TestJSONInvalidUTF8(t *testing.T) {
	t.Parallel()
	people := MustNewModel[person]()
	p := &person{Name: "a\xffb", Nickname: stringPtr("\xfe")}

	got := people.NewInstanceFromJSON(people.JSONObject(p))
	if !reflect.DeepEqual(got, p) {
		t.Errorf("from object = %q %q, want %q %q", got.Name, *got.Nickname, p.Name, *p.Nickname)
	}

	b, err := people.EncodeJSON(p)
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := people.ParseJSON(b)
	if err != nil {
		t.Fatal(err)
	}
	if want := "a\ufffdb"; len(parsed) != 1 || parsed[0].Name != want {
		t.Errorf("from %s = %+v, want name %q", b, parsed, want)
	}
}

func TestJSONObject(t *testing.T) {
	t.Parallel()
	people := MustNewModel[person]()
	object := people.JSONObject(&person{Name: "Alice", Age: 30, Nickname: stringPtr("Al")})
	want := map[string]interface{}{
		"uid":      nil,
		"Name":     "Alice",
		"Age":      int64(30),
		"Score":    float64(0),
		"Avatar":   nil,
		"Nickname": "Al",
	}
	if !reflect.DeepEqual(object, want) {
		t.Errorf("JSONObject() = %#v, want %#v", object, want)
	}

	b, err := json.Marshal(people.JSONArray([]*person{{Name: "A"}, {Name: "B"}}))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(b, []byte(`"Name":"A"`)) || !bytes.Contains(b, []byte(`"Name":"B"`)) {
		t.Errorf("JSONArray() = %s", b)
	}
}

func TestNewInstanceFromJSON(t *testing.T) {
	t.Parallel()
	people := MustNewModel[person]()

	got := people.NewInstanceFromJSON(map[string]interface{}{
		"Name":    "Alice",
		"Age":     "thirty",
		"Score":   json.Number("7.25"),
		"Unknown": true,
		"name":    "column names are not keys",
	})
	want := &person{Name: "Alice", Score: 7.25}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NewInstanceFromJSON() = %+v, want %+v", got, want)
	}
}

func TestNewInstanceFromJSONWrongTypes(t *testing.T) {
	t.Parallel()
	people := MustNewModel[person]()

	tests := []struct {
		name  string
		input map[string]interface{}
		want  *person
	}{
		{
			name:  "pointer fields stay nil",
			input: map[string]interface{}{"uid": "abc", "Nickname": 7, "Name": "X"},
			want:  &person{Name: "X"},
		},
		{
			name:  "blob from number",
			input: map[string]interface{}{"Avatar": 12, "Age": json.Number("3")},
			want:  &person{Age: 3},
		},
		{
			name:  "fractional integer",
			input: map[string]interface{}{"uid": json.Number("1.5"), "Age": 2.5},
			want:  &person{},
		},
		{
			name:  "null pointer fields",
			input: map[string]interface{}{"uid": nil, "Nickname": nil},
			want:  &person{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := people.NewInstanceFromJSON(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NewInstanceFromJSON() = %+v, want %+v", got, tt.want)
			}
			if got.Identified() != tt.want.Identified() {
				t.Errorf("Identified() = %t", got.Identified())
			}
		})
	}

	existing := &person{Base: Base{UID: int64Ptr(4)}, Name: "Alice", Nickname: stringPtr("Al")}
	people.PermitAllExcept().MustAssign(existing, `{"uid": "x", "Nickname": false, "Name": 1}`)
	want := &person{Base: Base{UID: int64Ptr(4)}, Name: "Alice", Nickname: stringPtr("Al")}
	if !reflect.DeepEqual(existing, want) {
		t.Errorf("Assign() with wrong types = %+v, want %+v", existing, want)
	}
}

func TestParseJSON(t *testing.T) {
	t.Parallel()
	people := MustNewModel[person]()

	tests := []struct {
		name      string
		input     interface{}
		wantNames []string
		wantErr   error
	}{
		{
			name:      "string object",
			input:     `{"Name": "Alice"}`,
			wantNames: []string{"Alice"},
		},
		{
			name:      "string array",
			input:     `[{"Name": "Alice"}, {"Name": "Bob"}]`,
			wantNames: []string{"Alice", "Bob"},
		},
		{
			name:      "bytes",
			input:     []byte(`[{"Name": "Alice"}]`),
			wantNames: []string{"Alice"},
		},
		{
			name:      "reader",
			input:     strings.NewReader(`{"Name": "Bob"}`),
			wantNames: []string{"Bob"},
		},
		{
			name:      "decoded object",
			input:     map[string]interface{}{"Name": "Alice"},
			wantNames: []string{"Alice"},
		},
		{
			name:      "decoded array",
			input:     []interface{}{map[string]interface{}{"Name": "Alice"}},
			wantNames: []string{"Alice"},
		},
		{
			name:      "empty array",
			input:     `[]`,
			wantNames: []string{},
		},
		{
			name:    "array with scalar",
			input:   `[{"Name": "Alice"}, 1]`,
			wantErr: ErrInvalidJSON,
		},
		{
			name:    "scalar",
			input:   `"Alice"`,
			wantErr: ErrInvalidJSON,
		},
		{
			name:    "unsupported input",
			input:   42,
			wantErr: ErrInvalidJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := people.ParseJSON(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseJSON() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseJSON() error = %v", err)
			}
			names := []string{}
			for _, p := range got {
				names = append(names, p.Name)
			}
			if !reflect.DeepEqual(names, tt.wantNames) {
				t.Errorf("ParseJSON() names = %v, want %v", names, tt.wantNames)
			}
		})
	}

	if _, err := people.ParseJSON(`{"Name": `); err == nil {
		t.Error("ParseJSON() accepted malformed JSON")
	}
}

package descriptor

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

const sampleDocument = `
classes:
  - name: User
    model:
      name: App.model.User
      identifier: uuid
      paging: true
    properties:
      - name: id
        type: int64
        kind: field
        public: true
        id: true
      - name: email
        type: string
        kind: field
        public: true
        field:
          allowBlank: false
        validations:
          - kind: presence
          - kind: email
      - name: orders
        type: "[]Order"
        kind: field
        public: true
        association:
          kind: hasMany
          autoLoad: true
  - name: Order
    fields:
      - value: total
        type: float
        defaultValue: "0"
`

func TestParseDocument(t *testing.T) {
	classes, err := Parse([]byte(sampleDocument))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(classes) != 2 {
		t.Fatalf("got %d classes, want 2", len(classes))
	}

	user := classes[0]
	if user.Name != "User" {
		t.Fatalf("name = %q", user.Name)
	}
	if user.Model == nil || user.Model.Name != "App.model.User" {
		t.Fatal("type-level model settings should decode")
	}
	if !user.Model.Paging || user.Model.Identifier != "uuid" {
		t.Fatal("paging and identifier should decode")
	}
	if len(user.Properties) != 3 {
		t.Fatalf("got %d properties, want 3", len(user.Properties))
	}
	if !user.Properties[0].ID {
		t.Fatal("id marker should decode")
	}

	email := user.Properties[1]
	if email.Field == nil || email.Field.AllowBlankOrDefault() {
		t.Fatal("allowBlank should decode as explicitly false")
	}
	wantKinds := []string{"presence", "email"}
	var gotKinds []string
	for _, v := range email.Validations {
		gotKinds = append(gotKinds, v.Kind)
	}
	if diff := cmp.Diff(wantKinds, gotKinds); diff != "" {
		t.Fatalf("validation kinds mismatch (-want +got):\n%s", diff)
	}

	orders := user.Properties[2]
	if orders.Association == nil || orders.Association.Kind != "hasMany" || !orders.Association.AutoLoad {
		t.Fatal("association metadata should decode")
	}

	order := classes[1]
	if len(order.Fields) != 1 || order.Fields[0].Value != "total" {
		t.Fatal("type-level fields should decode")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"empty document", "", "empty"},
		{"no classes", "classes: []", "no classes"},
		{"missing name", "classes:\n  - interface: true", "missing a name"},
		{"malformed yaml", "classes: [", "decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"models/user.yaml": &fstest.MapFile{Data: []byte(minimalDocument)},
	}

	classes, err := LoadFS(fsys, "models/user.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(classes) != 1 || classes[0].Name != "User" {
		t.Fatalf("classes = %+v", classes)
	}

	if _, err := LoadFS(fsys, "models/missing.yaml"); err == nil {
		t.Fatal("expected error for missing entry")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("does/not/exist.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

package core

import (
	"errors"
	"testing"
)

type named interface{ Name() string }

type thing struct{ n string }

func (t *thing) Name() string { return t.n }

func TestWorldKeysByType(t *testing.T) {
	w := NewWorld()
	a := &thing{"a"}
	Insert(w, a)
	Insert[named](w, &thing{"iface"})

	if got, ok := Fetch[*thing](w); !ok || got != a {
		t.Fatalf("Fetch[*thing] = %v, %v", got, ok)
	}
	if got, ok := Fetch[named](w); !ok || got.Name() != "iface" {
		t.Fatalf("Fetch[named] = %v, %v", got, ok)
	}
	if InsertNew(w, &thing{"b"}) {
		t.Fatal("InsertNew replaced an existing resource")
	}
	Remove[*thing](w)
	if _, ok := Fetch[*thing](w); ok {
		t.Fatal("resource survived Remove")
	}
	if !InsertNew(w, &thing{"c"}) {
		t.Fatal("InsertNew refused an empty slot")
	}
}

func TestRequireMissing(t *testing.T) {
	_, err := Require[*EventChannel[int]](NewWorld())
	if !errors.Is(err, ErrMissingResource) {
		t.Fatalf("err = %v, want ErrMissingResource", err)
	}
}

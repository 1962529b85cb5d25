package store

import (
	"testing"
	"time"
)

func TestValueText(t *testing.T) {
	if got := StringValue("foo").Text(); got != "foo" {
		t.Errorf("string text: got %q", got)
	}
	if got := IntValue(-42).Text(); got != "-42" {
		t.Errorf("int text: got %q", got)
	}
	if got := IntValue(9223372036854775807).Text(); got != "9223372036854775807" {
		t.Errorf("max int text: got %q", got)
	}
}

func TestKeyspaceInsertOrder(t *testing.T) {
	ks := newKeyspace()
	ks.insert("a", Object{Val: StringValue("1")})
	ks.insert("b", Object{Val: StringValue("2")})
	ks.insert("c", Object{Val: StringValue("3")})

	if ks.len() != 3 {
		t.Fatalf("expected 3 entries, got %d", ks.len())
	}
	for i, want := range []string{"a", "b", "c"} {
		if key, _ := ks.getByIndex(i); key != want {
			t.Errorf("index %d: expected %q, got %q", i, want, key)
		}
	}

	// overwrite keeps the position
	ks.insert("b", Object{Val: StringValue("2b")})
	if key, obj := ks.getByIndex(1); key != "b" || obj.Val.Str != "2b" {
		t.Errorf("overwrite moved the entry: key=%q val=%q", key, obj.Val.Str)
	}
	if ks.len() != 3 {
		t.Errorf("overwrite changed len: %d", ks.len())
	}
}

func TestKeyspaceRemoveUnordered(t *testing.T) {
	ks := newKeyspace()
	ks.insert("a", Object{})
	ks.insert("b", Object{})
	ks.insert("c", Object{})

	if !ks.removeUnordered("a") {
		t.Fatal("expected removal")
	}
	if ks.removeUnordered("a") {
		t.Fatal("expected no-op on second removal")
	}
	if ks.len() != 2 {
		t.Fatalf("expected 2 entries, got %d", ks.len())
	}

	// the last entry was swapped into the freed slot
	if key, _ := ks.getByIndex(0); key != "c" {
		t.Errorf("expected c swapped into slot 0, got %q", key)
	}
	if _, ok := ks.get("b"); !ok {
		t.Error("b lost during swap-remove")
	}
	if _, ok := ks.get("c"); !ok {
		t.Error("c lost during swap-remove")
	}

	// index map still consistent after the swap
	if !ks.removeUnordered("c") {
		t.Fatal("expected removal of swapped entry")
	}
	if key, _ := ks.getByIndex(0); key != "b" {
		t.Errorf("expected b in slot 0, got %q", key)
	}
}

func TestKeyspaceRemoveLast(t *testing.T) {
	ks := newKeyspace()
	ks.insert("only", Object{})
	if !ks.removeUnordered("only") {
		t.Fatal("expected removal")
	}
	if ks.len() != 0 {
		t.Fatalf("expected empty keyspace, got %d", ks.len())
	}
}

func TestClassify(t *testing.T) {
	now := time.Now()
	ks := newKeyspace()
	ks.insert("live", Object{Val: StringValue("v")})
	ks.insert("later", Object{Val: StringValue("v"), Exp: now.Add(time.Hour)})
	ks.insert("gone", Object{Val: StringValue("v"), Exp: now.Add(-time.Hour)})
	ks.insert("edge", Object{Val: StringValue("v"), Exp: now})

	if _, state := ks.classify("missing", now); state != notExist {
		t.Errorf("missing: got %d", state)
	}
	if _, state := ks.classify("live", now); state != notExpired {
		t.Errorf("no expiry: got %d", state)
	}
	if _, state := ks.classify("later", now); state != notExpired {
		t.Errorf("future expiry: got %d", state)
	}
	if _, state := ks.classify("gone", now); state != expired {
		t.Errorf("past expiry: got %d", state)
	}
	// expiration == now is already absent
	if _, state := ks.classify("edge", now); state != expired {
		t.Errorf("expiry at now: got %d", state)
	}
}

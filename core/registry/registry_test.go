package registry

import "testing"

func TestRegistry_SetGet(t *testing.T) {
	r := New()
	if _, ok := r.GetGlobal("missing"); ok {
		t.Fatal("GetGlobal missing: want false")
	}
	r.SetGlobal("k", []string{"a"})
	v, ok := r.GetGlobal("k")
	if !ok {
		t.Fatal("GetGlobal: want true")
	}
	if got := v.([]string); len(got) != 1 || got[0] != "a" {
		t.Errorf("GetGlobal = %v, want [a]", got)
	}
}

func TestRegistry_LockUnlock(t *testing.T) {
	r := New()
	if r.IsLocked("k") {
		t.Fatal("new key should not be locked")
	}
	r.Lock("k")
	r.Lock("k")
	if !r.IsLocked("k") {
		t.Fatal("Lock: want locked")
	}
	if r.IsLocked("other") {
		t.Error("Lock leaked to another key")
	}
	r.UnlockForTesting("k")
	if r.IsLocked("k") {
		t.Error("UnlockForTesting: want unlocked")
	}
}

package goshape_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	goshape "github.com/reoring/goshape"
)

func TestStore_SetGetDelete(t *testing.T) {
	s := goshape.NewStore[int]()
	if s.Get("a").IsSome() {
		t.Fatalf("empty store should return None")
	}
	s.Set("a", 1)
	s.Set("a", 1) // idempotent
	s.Set("b", 2)
	if s.Len() != 2 {
		t.Fatalf("len: %d", s.Len())
	}
	if v, ok := s.Get("a").Get(); !ok || v != 1 {
		t.Fatalf("get a: %v %v", v, ok)
	}
	s.Set("a", 10)
	if got := s.Get("a").OrElse(-1); got != 10 {
		t.Fatalf("overwrite: %d", got)
	}
	if !s.Delete("a") {
		t.Fatalf("delete should report existing key")
	}
	if s.Delete("a") {
		t.Fatalf("second delete should report false")
	}
	if !s.Get("a").IsNone() {
		t.Fatalf("get after delete should be None")
	}
}

func TestStore_ZeroValueUsable(t *testing.T) {
	var s goshape.Store[string]
	if s.Get("x").IsSome() || s.Delete("x") {
		t.Fatalf("zero store should be empty")
	}
	s.Set("x", "y")
	if s.Get("x").OrElse("") != "y" {
		t.Fatalf("zero store should accept writes")
	}
}

func TestStore_KeysIsSnapshotAndRestartable(t *testing.T) {
	s := goshape.NewStore[string]()
	s.Set("c", "3")
	s.Set("a", "1")
	s.Set("b", "2")

	keys := s.Keys()
	s.Set("d", "4")
	s.Delete("a")

	first := slices.Collect(keys)
	second := slices.Collect(keys)
	want := []string{"a", "b", "c"}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Fatalf("keys (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("second pass differs (-first +second):\n%s", diff)
	}
}

func TestStore_AllStopsEarly(t *testing.T) {
	s := goshape.NewStore[int]()
	for i, k := range []string{"a", "b", "c"} {
		s.Set(k, i)
	}
	var seen []string
	for k, v := range s.All() {
		seen = append(seen, k)
		if v == 1 {
			break
		}
	}
	if diff := cmp.Diff([]string{"a", "b"}, seen); diff != "" {
		t.Fatalf("all (-want +got):\n%s", diff)
	}
}

func TestOpt(t *testing.T) {
	var zero goshape.Opt[int]
	if zero.IsSome() {
		t.Fatalf("zero Opt should be None")
	}
	if v, ok := goshape.Some(0).Get(); !ok || v != 0 {
		t.Fatalf("Some(0) should be present")
	}
	if goshape.None[string]().OrElse("d") != "d" {
		t.Fatalf("OrElse default")
	}
}

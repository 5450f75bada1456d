package commands

import (
	"strings"
	"testing"
)

func TestRegistry_FindByAlias(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&RmCmd{}); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"rm", "delete"} {
		c, ok := r.Find(name)
		if !ok || c.Name() != "rm" {
			t.Errorf("Find(%q) = %v, %v", name, c, ok)
		}
	}
	if _, ok := r.Find("remove"); ok {
		t.Error("unexpected match for unregistered name")
	}
}

func TestRegistry_RejectsClash(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&AddCmd{}); err != nil {
		t.Fatal(err)
	}

	err := r.Register(&AddCmd{})
	if err == nil || !strings.Contains(err.Error(), `name "add" already used`) {
		t.Errorf("expected clash error, got %v", err)
	}
	if len(r.All()) != 1 {
		t.Errorf("expected one command, got %d", len(r.All()))
	}
}

func TestDefaultRegistry_Sorted(t *testing.T) {
	var names []string
	for _, c := range DefaultRegistry.All() {
		names = append(names, c.Name())
	}
	want := "add help import list login logout print recurring rm ui version"
	if got := strings.Join(names, " "); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

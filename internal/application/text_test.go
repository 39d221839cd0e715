package application

import (
	"strings"
	"testing"
)

func TestFoldName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"João Vitor":  "joao vitor",
		"  Fábio  ":   "fabio",
		"Comunicação": "comunicacao",
		"ana":         "ana",
	}
	for in, want := range cases {
		if got := foldName(in); got != want {
			t.Fatalf("foldName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSortByName(t *testing.T) {
	t.Parallel()

	type named struct {
		id   int
		name string
	}
	items := []named{
		{id: 5, name: "Zeca"},
		{id: 3, name: "Ana"},
		{id: 4, name: "Bruno"},
		{id: 2, name: "Álvaro"},
		{id: 1, name: "ana"},
	}

	sortByName(items, func(n named) string { return n.name }, func(a, b named) bool { return a.id < b.id })

	got := make([]string, 0, len(items))
	for _, item := range items {
		got = append(got, item.name)
	}
	if want := "Álvaro,ana,Ana,Bruno,Zeca"; strings.Join(got, ",") != want {
		t.Fatalf("unexpected order %s, want %s", strings.Join(got, ","), want)
	}
}

package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/friendgraph/pkg/network"
)

func triangle(t *testing.T) *network.Graph {
	t.Helper()
	g := network.New()
	for _, u := range []string{"carol", "alice", "bob", "dave"} {
		if err := g.AddUser(u); err != nil {
			t.Fatal(err)
		}
	}
	for _, p := range [][2]string{{"alice", "bob"}, {"bob", "carol"}, {"carol", "alice"}} {
		if err := g.Befriend(p[0], p[1]); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(triangle(t), Options{})

	if !strings.HasPrefix(dot, "graph G {\n") {
		t.Errorf("DOT does not start with an undirected graph:\n%s", dot)
	}
	for _, want := range []string{
		`"alice" [label="alice"];`,
		`"dave" [label="dave"];`,
		`"alice" -- "bob";`,
		`"bob" -- "carol";`,
		`"alice" -- "carol";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s:\n%s", want, dot)
		}
	}
	if n := strings.Count(dot, " -- "); n != 3 {
		t.Errorf("edge count = %d, want 3", n)
	}
	if strings.Contains(dot, "->") {
		t.Error("DOT contains directed edges")
	}
}

func TestToDOTHighlight(t *testing.T) {
	dot := ToDOT(triangle(t), Options{Highlight: []string{"carol", "bob"}})

	for _, want := range []string{
		`"bob" [label="bob", fillcolor=gold, penwidth=2];`,
		`"carol" [label="carol", fillcolor=gold, penwidth=2];`,
		`"bob" -- "carol" [color=firebrick, penwidth=3];`,
		`"alice" -- "bob";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	g := triangle(t)
	_ = g.AddUser("erin")
	_ = g.Befriend("dave", "erin")

	dot := ToDOT(g, Options{Detailed: true})
	for _, want := range []string{
		`"alice" [label="alice\n2 friends"];`,
		`"dave" [label="dave\n1 friend"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s:\n%s", want, dot)
		}
	}
}

func TestToDOTSkipsDamagedEntries(t *testing.T) {
	g := network.New()
	g.SetFriends("a", []string{"a", "ghost", "b"})
	g.SetFriends("b", nil)

	dot := ToDOT(g, Options{})
	if n := strings.Count(dot, " -- "); n != 1 {
		t.Errorf("edge count = %d, want 1:\n%s", n, dot)
	}
	if strings.Contains(dot, "ghost") {
		t.Error("DOT names an unknown user")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox =\n%s\nwant\n%s", got, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox was modified")
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(triangle(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") || !strings.Contains(string(svg), "alice") {
		t.Errorf("unexpected SVG output: %.200s", svg)
	}
}

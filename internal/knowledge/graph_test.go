package knowledge

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func mustParse(t *testing.T, src string) *Graph {
	t.Helper()
	g, _, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return g
}

func TestParse_BasicScenario(t *testing.T) {
	g := mustParse(t, "B|A\nC|A,B\n")

	got, err := g.PostOrder("C")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"A", "B", "C"}; !reflect.DeepEqual(got, want) {
		t.Errorf("PostOrder(C) = %v, want %v", got, want)
	}
	if want := []string{"A", "B", "C"}; !reflect.DeepEqual(g.Topics(), want) {
		t.Errorf("Topics = %v, want %v", g.Topics(), want)
	}
}

func TestParse_TrimAndDrop(t *testing.T) {
	g, diags, err := Parse(strings.NewReader(strings.Join([]string{
		"  Tree  |  Linked List , ,Array  ",
		"no separator here",
		"   |Orphan",
		"",
		"Array|",
	}, "\n")))
	if err != nil {
		t.Fatal(err)
	}

	if got, want := g.Prerequisites("Tree"), []string{"Linked List", "Array"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Prerequisites(Tree) = %v, want %v", got, want)
	}
	if len(g.Prerequisites("Array")) != 0 {
		t.Errorf("Array should have no prerequisites")
	}
	if g.Has("Orphan") {
		t.Error("prerequisites of a skipped line must not become nodes")
	}
	if g.Len() != 3 {
		t.Errorf("Len = %d, want 3 (%v)", g.Len(), g.Topics())
	}

	if len(diags) != 2 || diags[0].Line != 2 || diags[1].Line != 3 {
		t.Errorf("diagnostics = %v", diags)
	}
}

func TestParse_OversizedLineIsDiagnosed(t *testing.T) {
	src := "B|A\n" + strings.Repeat("x", 70000) + "\nC|A,B\n"
	g, diags, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("oversized line must not fail the load: %v", err)
	}
	if len(diags) != 1 || diags[0].Line != 2 {
		t.Errorf("diagnostics = %v", diags)
	}
	if got, want := g.Prerequisites("C"), []string{"A", "B"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Prerequisites(C) = %v, want %v", got, want)
	}
}

func TestParse_LastDefinitionWins(t *testing.T) {
	g, diags, err := Parse(strings.NewReader("C|A\nC|B,B\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := g.Prerequisites("C"), []string{"B", "B"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Prerequisites(C) = %v, want %v", got, want)
	}
	// A was named by the first definition and stays a node.
	if !g.Has("A") {
		t.Error("A should remain a node")
	}
	if len(diags) != 1 || diags[0].Line != 2 {
		t.Errorf("diagnostics = %v", diags)
	}

	got, err := g.PostOrder("C")
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"B", "C"}; !reflect.DeepEqual(got, want) {
		t.Errorf("PostOrder(C) = %v, want %v", got, want)
	}
}

func TestPostOrder_LeafTopic(t *testing.T) {
	g := mustParse(t, "B|A\n")
	for _, leaf := range []string{"A"} {
		got, err := g.PostOrder(leaf)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(got, []string{leaf}) {
			t.Errorf("PostOrder(%s) = %v, want [%s]", leaf, got, leaf)
		}
	}
}

func TestPostOrder_UnknownTopic(t *testing.T) {
	g := mustParse(t, "B|A\n")
	_, err := g.PostOrder("Z")
	if !errors.Is(err, ErrUnknownTopic) {
		t.Errorf("expected ErrUnknownTopic, got %v", err)
	}
}

func TestPostOrder_DiamondVisitsOnce(t *testing.T) {
	g := mustParse(t, "D|B,C\nB|A\nC|A\n")
	got, err := g.PostOrder("D")
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"A", "B", "C", "D"}; !reflect.DeepEqual(got, want) {
		t.Errorf("PostOrder(D) = %v, want %v", got, want)
	}
}

// recursivePostOrder is the reference recursive formulation.
func recursivePostOrder(g *Graph, node string, visited map[string]bool, path *[]string) {
	if visited[node] {
		return
	}
	visited[node] = true
	for _, p := range g.prereqs[node] {
		recursivePostOrder(g, p, visited, path)
	}
	*path = append(*path, node)
}

func randomDAG(rng *rand.Rand, n int) *Graph {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("t%02d", i)
	}
	prereqs := make(map[string][]string)
	for i := 1; i < n; i++ {
		var ps []string
		for j := 0; j < i; j++ {
			if rng.IntN(4) == 0 {
				ps = append(ps, names[j])
			}
		}
		rng.Shuffle(len(ps), func(a, b int) { ps[a], ps[b] = ps[b], ps[a] })
		prereqs[names[i]] = ps
	}
	prereqs[names[0]] = nil
	return New(prereqs)
}

func TestPostOrder_TopologicalValidity(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for trial := 0; trial < 30; trial++ {
		g := randomDAG(rng, 15)
		if err := g.Validate(); err != nil {
			t.Fatalf("random DAG should validate: %v", err)
		}
		for _, target := range g.Topics() {
			order, err := g.PostOrder(target)
			if err != nil {
				t.Fatalf("PostOrder(%s): %v", target, err)
			}
			if order[len(order)-1] != target {
				t.Errorf("PostOrder(%s) should end with the target: %v", target, order)
			}

			index := make(map[string]int, len(order))
			for i, n := range order {
				if _, dup := index[n]; dup {
					t.Fatalf("topic %s appears twice in %v", n, order)
				}
				index[n] = i
			}
			for _, n := range order {
				for _, p := range g.Prerequisites(n) {
					pi, ok := index[p]
					if !ok {
						t.Fatalf("prerequisite %s of %s missing from path", p, n)
					}
					if pi >= index[n] {
						t.Errorf("prerequisite %s (at %d) not before %s (at %d)", p, pi, n, index[n])
					}
				}
			}

			var want []string
			recursivePostOrder(g, target, map[string]bool{}, &want)
			if !reflect.DeepEqual(order, want) {
				t.Errorf("PostOrder(%s) = %v, recursive form gives %v", target, order, want)
			}
		}
	}
}

func TestPostOrder_CycleReported(t *testing.T) {
	g := mustParse(t, "A|B\nB|C\nC|A\nD|A\n")
	_, err := g.PostOrder("D")
	var ce *CycleError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CycleError, got %v", err)
	}
	if want := []string{"A", "B", "C", "A"}; !reflect.DeepEqual(ce.Path, want) {
		t.Errorf("cycle path = %v, want %v", ce.Path, want)
	}

	_, err = mustParse(t, "A|A\n").PostOrder("A")
	if !errors.As(err, &ce) {
		t.Fatalf("self loop: expected *CycleError, got %v", err)
	}
}

func TestPostOrder_CycleOutsideReachIsIgnored(t *testing.T) {
	g := mustParse(t, "X|Y\nY|X\nB|A\n")
	got, err := g.PostOrder("B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("PostOrder(B) = %v", got)
	}
}

func TestValidate(t *testing.T) {
	if err := mustParse(t, "B|A\nC|A,B\nC2|C,C\n").Validate(); err != nil {
		t.Errorf("acyclic graph failed validation: %v", err)
	}
	err := mustParse(t, "A|B\nB|A\nC|\n").Validate()
	if err == nil || !strings.Contains(err.Error(), "cycle") {
		t.Fatalf("expected cycle error, got %v", err)
	}
	if !strings.Contains(err.Error(), "A, B") {
		t.Errorf("error should name the cycle topics: %v", err)
	}
}

func TestDependentsAndRoots(t *testing.T) {
	g := mustParse(t, "C|A,B\nB|A\nD|A\n")
	if got, want := g.Dependents("A"), []string{"B", "C", "D"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Dependents(A) = %v, want %v", got, want)
	}
	if got, want := g.Roots(), []string{"A"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Roots = %v, want %v", got, want)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "knowledge_graph.txt")
	if err := os.WriteFile(path, []byte("B|A\r\nC|A,B\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	g, diags, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
	if got := g.Prerequisites("C"); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("CRLF input should trim: %v", got)
	}

	if _, _, err := Load(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

package tabtree

import (
	"errors"
	"testing"

	"github.com/dgallion1/docstab/internal/gdocs"
)

func makeTab(id, title string, children ...*gdocs.Tab) *gdocs.Tab {
	return &gdocs.Tab{
		TabProperties: gdocs.TabProperties{TabID: id, Title: title},
		DocumentTab:   &gdocs.DocumentTab{Body: &gdocs.Body{}},
		ChildTabs:     children,
	}
}

func TestBuild_FlattenPreOrder(t *testing.T) {
	doc := &gdocs.Document{
		DocumentID: "doc1",
		Title:      "Doc",
		Tabs: []*gdocs.Tab{
			makeTab("t.plan", "Plan",
				makeTab("t.budget", "Budget"),
				makeTab("t.timeline", "Timeline"),
			),
		},
	}

	tree := Build(doc)
	flat := tree.Flatten()

	want := []struct {
		id    string
		title string
		depth int
	}{
		{"t.plan", "Plan", 0},
		{"t.budget", "Budget", 1},
		{"t.timeline", "Timeline", 1},
	}
	if len(flat) != len(want) {
		t.Fatalf("expected %d tabs, got %d", len(want), len(flat))
	}
	for i, w := range want {
		if flat[i].ID != w.id {
			t.Errorf("tab[%d]: expected id %q, got %q", i, w.id, flat[i].ID)
		}
		if flat[i].Title != w.title {
			t.Errorf("tab[%d]: expected title %q, got %q", i, w.title, flat[i].Title)
		}
		if flat[i].Depth != w.depth {
			t.Errorf("tab[%d]: expected depth %d, got %d", i, w.depth, flat[i].Depth)
		}
	}
}

func TestBuild_EveryIdentifierOnce(t *testing.T) {
	doc := &gdocs.Document{
		Tabs: []*gdocs.Tab{
			makeTab("a", "A",
				makeTab("b", "B",
					makeTab("c", "C"),
				),
			),
			makeTab("d", "D"),
		},
	}

	tree := Build(doc)
	seen := make(map[string]int)
	for _, n := range tree.Flatten() {
		seen[n.ID]++
	}
	for _, id := range []string{"a", "b", "c", "d"} {
		if seen[id] != 1 {
			t.Errorf("expected id %q exactly once, got %d", id, seen[id])
		}
	}
	if tree.Len() != 4 {
		t.Errorf("expected 4 tabs, got %d", tree.Len())
	}
}

func TestResolve_ByID(t *testing.T) {
	doc := &gdocs.Document{
		Tabs: []*gdocs.Tab{makeTab("t.1", "Notes", makeTab("t.2", "Drafts"))},
	}
	tree := Build(doc)

	node, err := tree.Resolve(Ref{ID: "t.2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.Title != "Drafts" {
		t.Errorf("expected %q, got %q", "Drafts", node.Title)
	}

	// Identifier lookup is exact and case-sensitive.
	_, err = tree.Resolve(Ref{ID: "T.2"})
	var notFound *TabNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected TabNotFoundError, got %v", err)
	}
	if notFound.Ref != "T.2" {
		t.Errorf("expected offending ref %q, got %q", "T.2", notFound.Ref)
	}
}

func TestResolve_ByTitleCaseInsensitive(t *testing.T) {
	doc := &gdocs.Document{
		Tabs: []*gdocs.Tab{makeTab("t.1", "Meeting Notes")},
	}
	tree := Build(doc)

	node, err := tree.Resolve(Ref{Title: "meeting notes"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.ID != "t.1" {
		t.Errorf("expected id %q, got %q", "t.1", node.ID)
	}
}

func TestResolve_AmbiguousTitle(t *testing.T) {
	doc := &gdocs.Document{
		Tabs: []*gdocs.Tab{
			makeTab("t.1", "Notes"),
			makeTab("t.2", "notes"),
		},
	}
	tree := Build(doc)

	_, err := tree.Resolve(Ref{Title: "NOTES"})
	var ambiguous *AmbiguousTitleError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected AmbiguousTitleError, got %v", err)
	}
	if len(ambiguous.TabIDs) != 2 {
		t.Fatalf("expected 2 colliding ids, got %v", ambiguous.TabIDs)
	}
	if ambiguous.TabIDs[0] != "t.1" || ambiguous.TabIDs[1] != "t.2" {
		t.Errorf("expected colliding ids [t.1 t.2], got %v", ambiguous.TabIDs)
	}
	if ambiguous.Title != "NOTES" {
		t.Errorf("expected error to carry query %q, got %q", "NOTES", ambiguous.Title)
	}
}

func TestResolve_TitleNotFound(t *testing.T) {
	tree := Build(&gdocs.Document{Tabs: []*gdocs.Tab{makeTab("t.1", "Plan")}})

	_, err := tree.Resolve(Ref{Title: "Budget"})
	var notFound *TabNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected TabNotFoundError, got %v", err)
	}
	if notFound.Ref != "Budget" {
		t.Errorf("expected offending ref %q, got %q", "Budget", notFound.Ref)
	}
}

func TestResolve_NoRef(t *testing.T) {
	single := Build(&gdocs.Document{Tabs: []*gdocs.Tab{makeTab("t.1", "Only", makeTab("t.2", "Child"))}})
	node, err := single.Resolve(Ref{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.ID != "t.1" {
		t.Errorf("expected sole root %q, got %q", "t.1", node.ID)
	}

	multi := Build(&gdocs.Document{Tabs: []*gdocs.Tab{makeTab("t.1", "A"), makeTab("t.2", "B")}})
	_, err = multi.Resolve(Ref{})
	var ambiguous *AmbiguousTargetError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected AmbiguousTargetError, got %v", err)
	}
	if ambiguous.Roots != 2 {
		t.Errorf("expected 2 roots, got %d", ambiguous.Roots)
	}
}

func TestBuild_LegacyDocumentWithoutTabs(t *testing.T) {
	body := &gdocs.Body{}
	tree := Build(&gdocs.Document{Title: "Old Doc", Body: body})

	if tree.Len() != 1 {
		t.Fatalf("expected 1 synthetic tab, got %d", tree.Len())
	}
	node, err := tree.Resolve(Ref{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.ID != "" {
		t.Errorf("expected empty tab id for legacy doc, got %q", node.ID)
	}
	if node.Body != body {
		t.Error("expected synthetic tab to carry the document body")
	}
}

package outline

import (
	"reflect"
	"testing"

	"todoist-export/internal/tree"
)

func TestRenderGrammar(t *testing.T) {
	input := &tree.Tree{
		Sections: []tree.Section{
			{Name: "Work", Projects: []tree.Project{
				{Name: "Alpha", Tasks: []tree.Task{{Name: "Write report"}}},
			}},
		},
	}
	want := []string{
		"[Work]",
		"Alpha",
		"    * Write report",
	}
	if got := Render(input); !reflect.DeepEqual(got, want) {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

func TestRenderUnsectionedProjectsComeFirst(t *testing.T) {
	input := &tree.Tree{
		Unsectioned: []tree.Project{
			{Name: "Personal", Tasks: []tree.Task{{Name: "Buy milk"}}},
		},
		Sections: []tree.Section{
			{Name: "Work", Projects: []tree.Project{
				{Name: "Alpha", Tasks: []tree.Task{{Name: "Write report"}}},
			}},
		},
	}
	want := []string{
		"Personal",
		"    * Buy milk",
		"[Work]",
		"Alpha",
		"    * Write report",
	}
	if got := Render(input); !reflect.DeepEqual(got, want) {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

func TestRenderSkipsCompletedTasks(t *testing.T) {
	input := &tree.Tree{
		Sections: []tree.Section{
			{Name: "Work", Projects: []tree.Project{
				{Name: "Alpha", Tasks: []tree.Task{
					{Name: "Write report"},
					{Name: "Review", Completed: true},
				}},
			}},
		},
	}
	want := []string{"[Work]", "Alpha", "    * Write report"}
	if got := Render(input); !reflect.DeepEqual(got, want) {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

func TestRenderEmptyProjectKeepsHeading(t *testing.T) {
	input := &tree.Tree{
		Sections: []tree.Section{
			{Name: "Work", Projects: []tree.Project{{Name: "Alpha"}}},
		},
	}
	want := []string{"[Work]", "Alpha"}
	if got := Render(input); !reflect.DeepEqual(got, want) {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	input := &tree.Tree{
		Unsectioned: []tree.Project{
			{Name: "Personal", Tasks: []tree.Task{{Name: "Buy milk"}}},
		},
		Sections: []tree.Section{
			{Name: "Work", Projects: []tree.Project{
				{Name: "Alpha", Tasks: []tree.Task{{Name: "Write report"}}},
				{Name: "Beta", Tasks: []tree.Task{{Name: "Plan sprint"}}},
			}},
		},
	}
	first := Render(input)
	for i := 0; i < 5; i++ {
		if got := Render(input); !reflect.DeepEqual(got, first) {
			t.Fatalf("Render not deterministic: %q vs %q", got, first)
		}
	}
}

func TestRenderNilAndEmpty(t *testing.T) {
	if got := Render(nil); got != nil {
		t.Fatalf("Render(nil) = %q, want nil", got)
	}
	if got := Render(&tree.Tree{}); len(got) != 0 {
		t.Fatalf("Render(empty) = %q, want no lines", got)
	}
}

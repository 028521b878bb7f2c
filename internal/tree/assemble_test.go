package tree

import (
	"reflect"
	"testing"
)

func snapshotFixture() Snapshot {
	return Snapshot{
		Projects: []ProjectRecord{
			{ID: "p1", Name: "Alpha"},
			{ID: "p2", Name: "Personal"},
		},
		Sections: []SectionRecord{
			{ID: "s1", ProjectID: "p1", Name: "Work"},
			{ID: "s2", ProjectID: "p1", Name: "Later"},
		},
		Tasks: []TaskRecord{
			{ID: "t1", ProjectID: "p1", SectionID: "s1", Content: "Write report"},
			{ID: "t2", ProjectID: "p1", SectionID: "s1", Content: "Review", Completed: true},
			{ID: "t3", ProjectID: "p2", Content: "Buy milk"},
			{ID: "t4", ProjectID: "p1", SectionID: "s2", Content: "File expenses"},
		},
	}
}

func TestAssembleBuildsNestedTree(t *testing.T) {
	tr, dropped := snapshotFixture().Assemble()
	if dropped != 0 {
		t.Fatalf("expected no dropped tasks, got %d", dropped)
	}
	want := &Tree{
		Unsectioned: []Project{
			{Name: "Personal", Tasks: []Task{{Name: "Buy milk"}}},
		},
		Sections: []Section{
			{Name: "Work", Projects: []Project{
				{Name: "Alpha", Tasks: []Task{
					{Name: "Write report"},
					{Name: "Review", Completed: true},
				}},
			}},
			{Name: "Later", Projects: []Project{
				{Name: "Alpha", Tasks: []Task{{Name: "File expenses"}}},
			}},
		},
	}
	if !reflect.DeepEqual(tr, want) {
		t.Fatalf("unexpected tree:\n got %#v\nwant %#v", tr, want)
	}
}

func TestAssembleKeepsRemoteOrder(t *testing.T) {
	snap := Snapshot{
		Projects: []ProjectRecord{
			{ID: "p2", Name: "Beta"},
			{ID: "p1", Name: "Alpha"},
		},
		Sections: []SectionRecord{
			{ID: "s2", Name: "Second"},
			{ID: "s1", Name: "First"},
		},
		Tasks: []TaskRecord{
			{ID: "t1", ProjectID: "p1", SectionID: "s1", Content: "a"},
			{ID: "t2", ProjectID: "p2", SectionID: "s2", Content: "b"},
			{ID: "t3", ProjectID: "p1", SectionID: "s2", Content: "c"},
		},
	}
	tr, _ := snap.Assemble()
	if len(tr.Sections) != 2 || tr.Sections[0].Name != "Second" || tr.Sections[1].Name != "First" {
		t.Fatalf("sections must keep remote /sections order, got %#v", tr.Sections)
	}
	second := tr.Sections[0]
	if len(second.Projects) != 2 || second.Projects[0].Name != "Beta" || second.Projects[1].Name != "Alpha" {
		t.Fatalf("projects must keep remote /projects order, got %#v", second.Projects)
	}
}

func TestAssembleDropsTasksWithUnknownProject(t *testing.T) {
	snap := Snapshot{
		Projects: []ProjectRecord{{ID: "p1", Name: "Alpha"}},
		Tasks: []TaskRecord{
			{ID: "t1", ProjectID: "p1", Content: "keep"},
			{ID: "t2", ProjectID: "ghost", Content: "drop"},
		},
	}
	tr, dropped := snap.Assemble()
	if dropped != 1 {
		t.Fatalf("expected 1 dropped task, got %d", dropped)
	}
	if tr.CountTasks() != 1 {
		t.Fatalf("expected 1 task in tree, got %d", tr.CountTasks())
	}
}

func TestAssembleUnknownSectionFallsBackToUnsectioned(t *testing.T) {
	snap := Snapshot{
		Projects: []ProjectRecord{{ID: "p1", Name: "Alpha"}},
		Tasks: []TaskRecord{
			{ID: "t1", ProjectID: "p1", SectionID: "gone", Content: "stray"},
		},
	}
	tr, dropped := snap.Assemble()
	if dropped != 0 {
		t.Fatalf("task with unknown section must not be dropped")
	}
	if len(tr.Sections) != 0 {
		t.Fatalf("expected no sections, got %#v", tr.Sections)
	}
	if len(tr.Unsectioned) != 1 || tr.Unsectioned[0].Tasks[0].Name != "stray" {
		t.Fatalf("expected stray task under unsectioned, got %#v", tr.Unsectioned)
	}
}

func TestTreeCounts(t *testing.T) {
	tr, _ := snapshotFixture().Assemble()
	if got := tr.CountTasks(); got != 4 {
		t.Fatalf("CountTasks = %d, want 4", got)
	}
	if got := tr.CountProjects(); got != 3 {
		t.Fatalf("CountProjects = %d, want 3", got)
	}
	if tr.IsEmpty() {
		t.Fatalf("tree with projects must not be empty")
	}
	var empty *Tree
	if !empty.IsEmpty() {
		t.Fatalf("nil tree must report empty")
	}
}

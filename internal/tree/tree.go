// internal/tree/tree.go
//
// The task tree is the unit of data flowing through an export run:
// fetched once from Todoist, pruned by the filter engine, rendered by
// the outline formatter, then discarded. Nothing here touches the
// network or the disk.

package tree

// Task is a single to-do item. Only incomplete tasks end up in the
// exported outline.
type Task struct {
	Name      string
	Completed bool
}

// Project is a named, ordered collection of tasks. A project node
// lives either under a section or in the tree's unsectioned group.
type Project struct {
	Name  string
	Tasks []Task
}

// Section is a top-level grouping of projects.
type Section struct {
	Name     string
	Projects []Project
}

// Tree holds the sectioned and unsectioned halves of an export.
// Ordering everywhere reflects the order the remote service returned
// records in.
type Tree struct {
	Sections    []Section
	Unsectioned []Project
}

// IsEmpty reports whether the tree holds no project nodes at all.
func (t *Tree) IsEmpty() bool {
	return t == nil || (len(t.Sections) == 0 && len(t.Unsectioned) == 0)
}

// CountTasks returns the number of tasks across the whole tree,
// completed ones included.
func (t *Tree) CountTasks() int {
	if t == nil {
		return 0
	}
	total := 0
	for _, project := range t.Unsectioned {
		total += len(project.Tasks)
	}
	for _, section := range t.Sections {
		for _, project := range section.Projects {
			total += len(project.Tasks)
		}
	}
	return total
}

// CountProjects returns the number of project nodes in the tree. A
// project whose tasks span several sections contributes one node per
// section it appears under.
func (t *Tree) CountProjects() int {
	if t == nil {
		return 0
	}
	total := len(t.Unsectioned)
	for _, section := range t.Sections {
		total += len(section.Projects)
	}
	return total
}

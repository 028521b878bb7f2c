// internal/filter/filter.go
//
// The filter engine decides which sections and projects survive an
// export. Each kind (section, project) gets an independent allow list
// and deny list of names. A non-empty allow list turns into a
// whitelist for that kind; the deny list is applied on top and always
// wins. Completed tasks are removed unconditionally.
//
// Apply never mutates its input: it returns a pruned copy whose
// ordering is an order-preserving subsequence of the original, so
// filtering an already-filtered tree with the same ruleset is a no-op.

package filter

import (
	"strings"

	"todoist-export/internal/tree"
)

// NoSectionName is the pseudo-section the unsectioned project group is
// matched under, so config entries can allow or deny it like any other
// section.
const NoSectionName = "no section"

// Ruleset holds the user's filtering choices for one run.
type Ruleset struct {
	SectionAllow []string
	SectionDeny  []string
	ProjectAllow []string
	ProjectDeny  []string

	// CaseSensitive switches name matching from the default folded
	// comparison to exact comparison.
	CaseSensitive bool

	// DropEmptyProjects removes project headings whose every task was
	// filtered out or completed. Off by default: an empty heading still
	// maps the project structure.
	DropEmptyProjects bool
}

// nameSet answers membership questions under the ruleset's case policy.
type nameSet map[string]struct{}

func (r Ruleset) fold(name string) string {
	name = strings.TrimSpace(name)
	if r.CaseSensitive {
		return name
	}
	return strings.ToLower(name)
}

func (r Ruleset) newSet(names []string) nameSet {
	set := make(nameSet, len(names))
	for _, name := range names {
		key := r.fold(name)
		if key == "" {
			continue
		}
		set[key] = struct{}{}
	}
	return set
}

func (s nameSet) contains(key string) bool {
	_, ok := s[key]
	return ok
}

// decide implements allow-then-deny for one kind. An empty allow set
// passes everything; an explicit deny wins over an explicit allow.
func decide(key string, allow, deny nameSet) bool {
	if len(allow) > 0 && !allow.contains(key) {
		return false
	}
	return !deny.contains(key)
}

// Apply prunes the tree according to the ruleset and returns the copy.
// A nil tree yields an empty tree. An empty ruleset degenerates to
// "everything except completed tasks".
func (r Ruleset) Apply(t *tree.Tree) *tree.Tree {
	out := &tree.Tree{}
	if t == nil {
		return out
	}

	sectionAllow := r.newSet(r.SectionAllow)
	sectionDeny := r.newSet(r.SectionDeny)
	projectAllow := r.newSet(r.ProjectAllow)
	projectDeny := r.newSet(r.ProjectDeny)

	includeSection := func(name string) bool {
		return decide(r.fold(name), sectionAllow, sectionDeny)
	}
	includeProject := func(name string) bool {
		return decide(r.fold(name), projectAllow, projectDeny)
	}

	if includeSection(NoSectionName) {
		out.Unsectioned = r.pruneProjects(t.Unsectioned, includeProject)
	}
	for _, section := range t.Sections {
		if !includeSection(section.Name) {
			continue
		}
		projects := r.pruneProjects(section.Projects, includeProject)
		if len(projects) == 0 {
			continue
		}
		out.Sections = append(out.Sections, tree.Section{
			Name:     section.Name,
			Projects: projects,
		})
	}
	return out
}

func (r Ruleset) pruneProjects(projects []tree.Project, include func(string) bool) []tree.Project {
	var out []tree.Project
	for _, project := range projects {
		if !include(project.Name) {
			continue
		}
		var tasks []tree.Task
		for _, task := range project.Tasks {
			if task.Completed {
				continue
			}
			tasks = append(tasks, task)
		}
		if len(tasks) == 0 && r.DropEmptyProjects {
			continue
		}
		out = append(out, tree.Project{Name: project.Name, Tasks: tasks})
	}
	return out
}

// internal/outline/outline.go
//
// The outline formatter turns a pruned tree into the fixed display
// grammar of the export document:
//
//	[section name]
//	project name
//	    * task name
//
// Unsectioned projects come first, without a [...] header: unsectioned
// is the default state, so it leads the document. Render is pure; the
// same tree always yields the same lines.

package outline

import "todoist-export/internal/tree"

const taskIndent = "    * "

// Render walks the tree in order and returns the outline lines. Tasks
// still marked completed are skipped, so Render is safe on unfiltered
// trees too.
func Render(t *tree.Tree) []string {
	if t == nil {
		return nil
	}
	var lines []string
	lines = appendProjects(lines, t.Unsectioned)
	for _, section := range t.Sections {
		lines = append(lines, "["+section.Name+"]")
		lines = appendProjects(lines, section.Projects)
	}
	return lines
}

func appendProjects(lines []string, projects []tree.Project) []string {
	for _, project := range projects {
		lines = append(lines, project.Name)
		for _, task := range project.Tasks {
			if task.Completed {
				continue
			}
			lines = append(lines, taskIndent+task.Name)
		}
	}
	return lines
}

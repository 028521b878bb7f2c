// internal/tree/assemble.go
//
// The Todoist REST API returns three flat collections: projects,
// sections, and tasks. Assemble joins them by id into the nested
// section → project → task shape the rest of the pipeline works on.

package tree

// ProjectRecord is one entry of the remote /projects collection.
type ProjectRecord struct {
	ID   string
	Name string
}

// SectionRecord is one entry of the remote /sections collection.
type SectionRecord struct {
	ID        string
	ProjectID string
	Name      string
}

// TaskRecord is one entry of the remote /tasks collection.
type TaskRecord struct {
	ID        string
	ProjectID string
	SectionID string
	Content   string
	Completed bool
}

// Snapshot carries the raw collections of a single fetch.
type Snapshot struct {
	Projects []ProjectRecord
	Sections []SectionRecord
	Tasks    []TaskRecord
}

// Assemble builds the nested tree from the snapshot. Sections keep the
// remote /sections order, project nodes keep the remote /projects
// order, and tasks keep the remote /tasks order. A task whose section
// id is unknown falls into the unsectioned group; a task whose project
// id is unknown cannot be placed at all and is counted in dropped.
// The API should never hand us an orphaned task, but it is allowed to.
func (s Snapshot) Assemble() (*Tree, int) {
	projectName := make(map[string]string, len(s.Projects))
	for _, p := range s.Projects {
		projectName[p.ID] = p.Name
	}
	sectionName := make(map[string]string, len(s.Sections))
	for _, sec := range s.Sections {
		sectionName[sec.ID] = sec.Name
	}

	// Bucket tasks by (section id, project id). The empty section id
	// is the unsectioned group.
	type bucketKey struct {
		sectionID string
		projectID string
	}
	buckets := make(map[bucketKey][]Task)
	dropped := 0
	for _, task := range s.Tasks {
		if _, ok := projectName[task.ProjectID]; !ok {
			dropped++
			continue
		}
		sectionID := task.SectionID
		if _, ok := sectionName[sectionID]; !ok {
			sectionID = ""
		}
		key := bucketKey{sectionID: sectionID, projectID: task.ProjectID}
		buckets[key] = append(buckets[key], Task{
			Name:      task.Content,
			Completed: task.Completed,
		})
	}

	out := &Tree{}
	for _, p := range s.Projects {
		if tasks, ok := buckets[bucketKey{sectionID: "", projectID: p.ID}]; ok {
			out.Unsectioned = append(out.Unsectioned, Project{Name: p.Name, Tasks: tasks})
		}
	}
	for _, sec := range s.Sections {
		node := Section{Name: sec.Name}
		for _, p := range s.Projects {
			if tasks, ok := buckets[bucketKey{sectionID: sec.ID, projectID: p.ID}]; ok {
				node.Projects = append(node.Projects, Project{Name: p.Name, Tasks: tasks})
			}
		}
		if len(node.Projects) > 0 {
			out.Sections = append(out.Sections, node)
		}
	}
	return out, dropped
}

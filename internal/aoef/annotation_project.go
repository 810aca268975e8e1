package aoef

import "soundcore/pkg/domain"

// AnnotationProjectRecord is an annotation set payload with the campaign
// fields and the task table.
type AnnotationProjectRecord struct {
	AnnotationSetRecord
	Name         string                 `json:"name"`
	Description  string                 `json:"description,omitempty"`
	Instructions string                 `json:"instructions,omitempty"`
	ProjectTags  []int                  `json:"project_tags,omitempty"`
	Tasks        []AnnotationTaskRecord `json:"tasks,omitempty"`
}

// AnnotationProjectAdapter converts annotation projects by delegating the
// shared part to the annotation set adapter. Tasks are converted before the
// base export so their clips land in the shared tables.
type AnnotationProjectAdapter struct {
	*AnnotationSetAdapter
}

func NewAnnotationProjectAdapter(tree *adapterTree) *AnnotationProjectAdapter {
	return &AnnotationProjectAdapter{NewAnnotationSetAdapter(tree)}
}

func (a *AnnotationProjectAdapter) Export(proj *domain.AnnotationProject) (*AnnotationProjectRecord, error) {
	var tasks []AnnotationTaskRecord
	for _, task := range proj.Tasks {
		rec, err := a.tree.annotationTasks.ToRecord(task)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, rec)
	}
	projectTags, err := a.tree.tags.refs(proj.AnnotationTags)
	if err != nil {
		return nil, err
	}
	base, err := a.AnnotationSetAdapter.Export(&proj.AnnotationSet)
	if err != nil {
		return nil, err
	}
	base.CollectionType = KindAnnotationProject
	return &AnnotationProjectRecord{
		AnnotationSetRecord: *base,
		Name:                proj.Name,
		Description:         proj.Description,
		Instructions:        proj.Instructions,
		ProjectTags:         projectTags,
		Tasks:               tasks,
	}, nil
}

func (a *AnnotationProjectAdapter) Import(rec *AnnotationProjectRecord) (*domain.AnnotationProject, error) {
	base, err := a.AnnotationSetAdapter.Import(&rec.AnnotationSetRecord)
	if err != nil {
		return nil, err
	}
	var tasks []*domain.AnnotationTask
	for _, t := range rec.Tasks {
		task, err := a.tree.annotationTasks.ToDomain(t)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	projectTags, err := a.tree.tags.resolve("annotation project", rec.ProjectTags)
	if err != nil {
		return nil, err
	}
	return &domain.AnnotationProject{
		AnnotationSet:  *base,
		Name:           rec.Name,
		Description:    rec.Description,
		Instructions:   rec.Instructions,
		AnnotationTags: projectTags,
		Tasks:          tasks,
	}, nil
}

package aoef

import "soundcore/pkg/domain"

// EvaluationSetRecord is an annotation set payload curated as evaluation
// ground truth.
type EvaluationSetRecord struct {
	AnnotationSetRecord
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	EvaluationTags []int  `json:"evaluation_tags,omitempty"`
}

// EvaluationSetAdapter converts evaluation sets by delegating the shared
// part to the annotation set adapter.
type EvaluationSetAdapter struct {
	*AnnotationSetAdapter
}

func NewEvaluationSetAdapter(tree *adapterTree) *EvaluationSetAdapter {
	return &EvaluationSetAdapter{NewAnnotationSetAdapter(tree)}
}

func (a *EvaluationSetAdapter) Export(set *domain.EvaluationSet) (*EvaluationSetRecord, error) {
	evaluationTags, err := a.tree.tags.refs(set.EvaluationTags)
	if err != nil {
		return nil, err
	}
	base, err := a.AnnotationSetAdapter.Export(&set.AnnotationSet)
	if err != nil {
		return nil, err
	}
	base.CollectionType = KindEvaluationSet
	return &EvaluationSetRecord{
		AnnotationSetRecord: *base,
		Name:                set.Name,
		Description:         set.Description,
		EvaluationTags:      evaluationTags,
	}, nil
}

func (a *EvaluationSetAdapter) Import(rec *EvaluationSetRecord) (*domain.EvaluationSet, error) {
	base, err := a.AnnotationSetAdapter.Import(&rec.AnnotationSetRecord)
	if err != nil {
		return nil, err
	}
	evaluationTags, err := a.tree.tags.resolve("evaluation set", rec.EvaluationTags)
	if err != nil {
		return nil, err
	}
	return &domain.EvaluationSet{
		AnnotationSet:  *base,
		Name:           rec.Name,
		Description:    rec.Description,
		EvaluationTags: evaluationTags,
	}, nil
}

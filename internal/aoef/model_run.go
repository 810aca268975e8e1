package aoef

import "soundcore/pkg/domain"

// ModelRunRecord is a prediction set payload attributed to a model version.
type ModelRunRecord struct {
	PredictionSetRecord
	Name        string `json:"name"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
}

// ModelRunAdapter converts model runs by delegating the shared part to the
// prediction set adapter.
type ModelRunAdapter struct {
	*PredictionSetAdapter
}

func NewModelRunAdapter(tree *adapterTree) *ModelRunAdapter {
	return &ModelRunAdapter{NewPredictionSetAdapter(tree)}
}

func (a *ModelRunAdapter) Export(run *domain.ModelRun) (*ModelRunRecord, error) {
	base, err := a.PredictionSetAdapter.Export(&run.PredictionSet)
	if err != nil {
		return nil, err
	}
	base.CollectionType = KindModelRun
	return &ModelRunRecord{
		PredictionSetRecord: *base,
		Name:                run.Name,
		Version:             run.Version,
		Description:         run.Description,
	}, nil
}

func (a *ModelRunAdapter) Import(rec *ModelRunRecord) (*domain.ModelRun, error) {
	base, err := a.PredictionSetAdapter.Import(&rec.PredictionSetRecord)
	if err != nil {
		return nil, err
	}
	return &domain.ModelRun{
		PredictionSet: *base,
		Name:          rec.Name,
		Version:       rec.Version,
		Description:   rec.Description,
	}, nil
}

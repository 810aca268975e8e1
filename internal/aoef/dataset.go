package aoef

import "soundcore/pkg/domain"

// DatasetRecord is a recording set payload with dataset provenance fields.
type DatasetRecord struct {
	RecordingSetRecord
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// DatasetAdapter converts datasets by delegating the shared part to the
// recording set adapter.
type DatasetAdapter struct {
	*RecordingSetAdapter
}

func NewDatasetAdapter(tree *adapterTree) *DatasetAdapter {
	return &DatasetAdapter{NewRecordingSetAdapter(tree)}
}

func (a *DatasetAdapter) Export(ds *domain.Dataset) (*DatasetRecord, error) {
	base, err := a.RecordingSetAdapter.Export(&ds.RecordingSet)
	if err != nil {
		return nil, err
	}
	base.CollectionType = KindDataset
	return &DatasetRecord{
		RecordingSetRecord: *base,
		Name:               ds.Name,
		Description:        ds.Description,
	}, nil
}

func (a *DatasetAdapter) Import(rec *DatasetRecord) (*domain.Dataset, error) {
	base, err := a.RecordingSetAdapter.Import(&rec.RecordingSetRecord)
	if err != nil {
		return nil, err
	}
	return &domain.Dataset{
		RecordingSet: *base,
		Name:         rec.Name,
		Description:  rec.Description,
	}, nil
}

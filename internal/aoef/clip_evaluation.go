package aoef

import (
	"github.com/google/uuid"

	"soundcore/pkg/domain"
)

// ClipEvaluationRecord is the flat form of one clip's scoring outcome.
type ClipEvaluationRecord struct {
	UUID        uuid.UUID          `json:"uuid"`
	Annotations uuid.UUID          `json:"annotations"`
	Predictions uuid.UUID          `json:"predictions"`
	Matches     []uuid.UUID        `json:"matches,omitempty"`
	Metrics     map[string]float64 `json:"metrics,omitempty"`
	Score       *float64           `json:"score,omitempty"`
}

// ClipEvaluationAdapter deduplicates clip evaluations by uuid.
type ClipEvaluationAdapter struct {
	*store[*domain.ClipEvaluation, ClipEvaluationRecord, uuid.UUID, uuid.UUID]
}

func NewClipEvaluationAdapter(
	clipAnnotations *ClipAnnotationsAdapter,
	clipPredictions *ClipPredictionsAdapter,
	matches *MatchAdapter,
) *ClipEvaluationAdapter {
	return &ClipEvaluationAdapter{newStore(storeConfig[*domain.ClipEvaluation, ClipEvaluationRecord, uuid.UUID, uuid.UUID]{
		Key:      func(e *domain.ClipEvaluation) uuid.UUID { return e.UUID },
		RecordID: func(rec ClipEvaluationRecord) uuid.UUID { return rec.UUID },
		NewID:    func(e *domain.ClipEvaluation, _ int) uuid.UUID { return e.UUID },
		Assemble: func(ev *domain.ClipEvaluation, _ uuid.UUID) (ClipEvaluationRecord, error) {
			ann, err := clipAnnotations.ToRecord(ev.Annotations)
			if err != nil {
				return ClipEvaluationRecord{}, err
			}
			pred, err := clipPredictions.ToRecord(ev.Predictions)
			if err != nil {
				return ClipEvaluationRecord{}, err
			}
			var matchIDs []uuid.UUID
			for _, m := range ev.Matches {
				rec, err := matches.ToRecord(m)
				if err != nil {
					return ClipEvaluationRecord{}, err
				}
				matchIDs = append(matchIDs, rec.UUID)
			}
			return ClipEvaluationRecord{
				UUID:        ev.UUID,
				Annotations: ann.UUID,
				Predictions: pred.UUID,
				Matches:     matchIDs,
				Metrics:     featureMap(ev.Metrics),
				Score:       ev.Score,
			}, nil
		},
		Restore: func(rec ClipEvaluationRecord) (*domain.ClipEvaluation, error) {
			ann, ok := clipAnnotations.FromID(rec.Annotations)
			if !ok {
				return nil, missingRef("clip evaluation", "clip annotations", rec.Annotations)
			}
			pred, ok := clipPredictions.FromID(rec.Predictions)
			if !ok {
				return nil, missingRef("clip evaluation", "clip predictions", rec.Predictions)
			}
			var matchList []*domain.Match
			for _, id := range rec.Matches {
				m, ok := matches.FromID(id)
				if !ok {
					return nil, missingRef("clip evaluation", "match", id)
				}
				matchList = append(matchList, m)
			}
			return &domain.ClipEvaluation{
				UUID:        rec.UUID,
				Annotations: ann,
				Predictions: pred,
				Matches:     matchList,
				Metrics:     featureList(rec.Metrics),
				Score:       rec.Score,
			}, nil
		},
	})}
}

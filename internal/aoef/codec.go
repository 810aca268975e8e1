package aoef

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"soundcore/pkg/domain"
)

// Version is the exchange format version this package reads and writes.
// Decoding rejects any other value byte for byte.
const Version = "1.1.0"

// CollectionKind discriminates the payload of a document.
type CollectionKind string

const (
	KindRecordingSet      CollectionKind = "recording_set"
	KindDataset           CollectionKind = "dataset"
	KindAnnotationSet     CollectionKind = "annotation_set"
	KindAnnotationProject CollectionKind = "annotation_project"
	KindEvaluationSet     CollectionKind = "evaluation_set"
	KindPredictionSet     CollectionKind = "prediction_set"
	KindModelRun          CollectionKind = "model_run"
	KindEvaluation        CollectionKind = "evaluation"
)

// Document is the envelope every exchange file carries.
type Document struct {
	Version   string          `json:"version"`
	CreatedOn time.Time       `json:"created_on"`
	Data      json.RawMessage `json:"data"`
}

type registration struct {
	kind    CollectionKind
	matches func(domain.Collection) bool
	encode  func(*adapterTree, domain.Collection) (any, error)
	decode  func(*adapterTree, json.RawMessage) (domain.Collection, error)
}

// registry maps collections to their adapters, most specific kind first:
// a dataset is structurally a recording set and a model run a prediction
// set, so the enriched kinds must win the dispatch.
var registry = []registration{
	{
		kind:    KindEvaluation,
		matches: func(c domain.Collection) bool { _, ok := c.(*domain.Evaluation); return ok },
		encode: func(t *adapterTree, c domain.Collection) (any, error) {
			return NewEvaluationAdapter(t).Export(c.(*domain.Evaluation))
		},
		decode: func(t *adapterTree, raw json.RawMessage) (domain.Collection, error) {
			var rec EvaluationRecord
			if err := unmarshalPayload(raw, KindEvaluation, &rec); err != nil {
				return nil, err
			}
			return NewEvaluationAdapter(t).Import(&rec)
		},
	},
	{
		kind:    KindDataset,
		matches: func(c domain.Collection) bool { _, ok := c.(*domain.Dataset); return ok },
		encode: func(t *adapterTree, c domain.Collection) (any, error) {
			return NewDatasetAdapter(t).Export(c.(*domain.Dataset))
		},
		decode: func(t *adapterTree, raw json.RawMessage) (domain.Collection, error) {
			var rec DatasetRecord
			if err := unmarshalPayload(raw, KindDataset, &rec); err != nil {
				return nil, err
			}
			return NewDatasetAdapter(t).Import(&rec)
		},
	},
	{
		kind:    KindAnnotationProject,
		matches: func(c domain.Collection) bool { _, ok := c.(*domain.AnnotationProject); return ok },
		encode: func(t *adapterTree, c domain.Collection) (any, error) {
			return NewAnnotationProjectAdapter(t).Export(c.(*domain.AnnotationProject))
		},
		decode: func(t *adapterTree, raw json.RawMessage) (domain.Collection, error) {
			var rec AnnotationProjectRecord
			if err := unmarshalPayload(raw, KindAnnotationProject, &rec); err != nil {
				return nil, err
			}
			return NewAnnotationProjectAdapter(t).Import(&rec)
		},
	},
	{
		kind:    KindEvaluationSet,
		matches: func(c domain.Collection) bool { _, ok := c.(*domain.EvaluationSet); return ok },
		encode: func(t *adapterTree, c domain.Collection) (any, error) {
			return NewEvaluationSetAdapter(t).Export(c.(*domain.EvaluationSet))
		},
		decode: func(t *adapterTree, raw json.RawMessage) (domain.Collection, error) {
			var rec EvaluationSetRecord
			if err := unmarshalPayload(raw, KindEvaluationSet, &rec); err != nil {
				return nil, err
			}
			return NewEvaluationSetAdapter(t).Import(&rec)
		},
	},
	{
		kind:    KindModelRun,
		matches: func(c domain.Collection) bool { _, ok := c.(*domain.ModelRun); return ok },
		encode: func(t *adapterTree, c domain.Collection) (any, error) {
			return NewModelRunAdapter(t).Export(c.(*domain.ModelRun))
		},
		decode: func(t *adapterTree, raw json.RawMessage) (domain.Collection, error) {
			var rec ModelRunRecord
			if err := unmarshalPayload(raw, KindModelRun, &rec); err != nil {
				return nil, err
			}
			return NewModelRunAdapter(t).Import(&rec)
		},
	},
	{
		kind:    KindAnnotationSet,
		matches: func(c domain.Collection) bool { _, ok := c.(*domain.AnnotationSet); return ok },
		encode: func(t *adapterTree, c domain.Collection) (any, error) {
			return NewAnnotationSetAdapter(t).Export(c.(*domain.AnnotationSet))
		},
		decode: func(t *adapterTree, raw json.RawMessage) (domain.Collection, error) {
			var rec AnnotationSetRecord
			if err := unmarshalPayload(raw, KindAnnotationSet, &rec); err != nil {
				return nil, err
			}
			return NewAnnotationSetAdapter(t).Import(&rec)
		},
	},
	{
		kind:    KindPredictionSet,
		matches: func(c domain.Collection) bool { _, ok := c.(*domain.PredictionSet); return ok },
		encode: func(t *adapterTree, c domain.Collection) (any, error) {
			return NewPredictionSetAdapter(t).Export(c.(*domain.PredictionSet))
		},
		decode: func(t *adapterTree, raw json.RawMessage) (domain.Collection, error) {
			var rec PredictionSetRecord
			if err := unmarshalPayload(raw, KindPredictionSet, &rec); err != nil {
				return nil, err
			}
			return NewPredictionSetAdapter(t).Import(&rec)
		},
	},
	{
		kind:    KindRecordingSet,
		matches: func(c domain.Collection) bool { _, ok := c.(*domain.RecordingSet); return ok },
		encode: func(t *adapterTree, c domain.Collection) (any, error) {
			return NewRecordingSetAdapter(t).Export(c.(*domain.RecordingSet))
		},
		decode: func(t *adapterTree, raw json.RawMessage) (domain.Collection, error) {
			var rec RecordingSetRecord
			if err := unmarshalPayload(raw, KindRecordingSet, &rec); err != nil {
				return nil, err
			}
			return NewRecordingSetAdapter(t).Import(&rec)
		},
	},
}

func unmarshalPayload(raw json.RawMessage, kind CollectionKind, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return &MalformedDocumentError{Reason: fmt.Sprintf("invalid %s payload", kind), Err: err}
	}
	return nil
}

// NewDocument converts a collection into a document envelope. The adapter
// tree is built fresh, so two calls over the same collection yield identical
// payloads.
func NewDocument(c domain.Collection, opts Options) (*Document, error) {
	for _, reg := range registry {
		if !reg.matches(c) {
			continue
		}
		tree := newAdapterTree(opts)
		record, err := reg.encode(tree, c)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(record)
		if err != nil {
			return nil, err
		}
		return &Document{
			Version:   Version,
			CreatedOn: time.Now().UTC(),
			Data:      data,
		}, nil
	}
	return nil, &UnsupportedTypeError{Type: fmt.Sprintf("%T", c)}
}

// Encode serializes a collection to document bytes.
func Encode(c domain.Collection, opts Options) ([]byte, error) {
	doc, err := NewDocument(c, opts)
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// Decode parses document bytes back into a collection. The version is
// checked before anything else in the payload is touched.
func Decode(b []byte, opts Options) (domain.Collection, error) {
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, &MalformedDocumentError{Reason: "invalid envelope", Err: err}
	}
	if doc.Version != Version {
		return nil, &VersionMismatchError{Got: doc.Version, Want: Version}
	}
	if len(doc.Data) == 0 {
		return nil, &MalformedDocumentError{Reason: "missing data payload"}
	}
	var head struct {
		CollectionType CollectionKind `json:"collection_type"`
	}
	if err := json.Unmarshal(doc.Data, &head); err != nil {
		return nil, &MalformedDocumentError{Reason: "invalid data payload", Err: err}
	}
	if opts.Expect != "" && head.CollectionType != opts.Expect {
		return nil, &UnsupportedTypeError{Type: string(head.CollectionType), Expected: string(opts.Expect)}
	}
	for _, reg := range registry {
		if reg.kind == head.CollectionType {
			return reg.decode(newAdapterTree(opts), doc.Data)
		}
	}
	return nil, &UnsupportedTypeError{Type: string(head.CollectionType)}
}

// Save encodes a collection and writes it to path, creating parent
// directories as needed.
func Save(path string, c domain.Collection, opts Options) error {
	b, err := Encode(c, opts)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Load reads a document from path and decodes it.
func Load(path string, opts Options) (domain.Collection, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(b, opts)
}

// DocumentInfo summarizes a document without hydrating its payload.
type DocumentInfo struct {
	Version   string
	CreatedOn time.Time
	Kind      CollectionKind
	UUID      uuid.UUID
	Name      string
}

// Inspect reads the envelope and the payload header of document bytes. It
// does not resolve references, so it works on documents of any size in one
// cheap pass.
func Inspect(b []byte) (DocumentInfo, error) {
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return DocumentInfo{}, &MalformedDocumentError{Reason: "invalid envelope", Err: err}
	}
	info := DocumentInfo{Version: doc.Version, CreatedOn: doc.CreatedOn}
	if len(doc.Data) == 0 {
		return DocumentInfo{}, &MalformedDocumentError{Reason: "missing data payload"}
	}
	var head struct {
		CollectionType CollectionKind `json:"collection_type"`
		UUID           uuid.UUID      `json:"uuid"`
		Name           string         `json:"name"`
	}
	if err := json.Unmarshal(doc.Data, &head); err != nil {
		return DocumentInfo{}, &MalformedDocumentError{Reason: "invalid data payload", Err: err}
	}
	info.Kind = head.CollectionType
	info.UUID = head.UUID
	info.Name = head.Name
	return info, nil
}

// InspectFile reads the envelope of the document at path.
func InspectFile(path string) (DocumentInfo, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return DocumentInfo{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Inspect(b)
}

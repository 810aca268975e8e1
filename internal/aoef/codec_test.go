package aoef

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"soundcore/pkg/domain"
)

func roundTrip(t *testing.T, c domain.Collection, opts Options) domain.Collection {
	t.Helper()
	b, err := Encode(c, opts)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(b, opts)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return decoded
}

func TestRecordingSetRoundTrip(t *testing.T) {
	set := &domain.RecordingSet{
		UUID: mustUUID("0c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0001"),
		Recordings: []*domain.Recording{
			newTestRecording("0c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0002", "site_a/dawn.wav"),
		},
		CreatedOn: testTime,
	}
	got := roundTrip(t, set, Options{})
	if diff := cmp.Diff(set, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDatasetRoundTrip(t *testing.T) {
	owner := domain.User{Name: "M. Silva", Institution: "INPA"}
	tag := domain.Tag{Key: "habitat", Value: "rainforest"}
	date := domain.NewDate(2023, 11, 2)
	tod := domain.NewTimeOfDay(5, 45, 0)
	first := newTestRecording("0c9a3f1e-2c4b-4d6e-8f00-bbbbbbbb0001", "plot1/r1.wav")
	first.Tags = []domain.Tag{tag}
	first.Owners = []domain.User{owner}
	first.Date = &date
	first.Time = &tod
	first.Latitude = fptr(-3.1)
	first.Longitude = fptr(-60.02)
	first.Features = []domain.Feature{{Name: "snr", Value: 14.2}}
	first.Notes = []domain.Note{{
		UUID:      mustUUID("0c9a3f1e-2c4b-4d6e-8f00-bbbbbbbb0003"),
		Message:   "wind noise after minute two",
		CreatedBy: &owner,
		IsIssue:   true,
		CreatedOn: testTime,
	}}
	second := newTestRecording("0c9a3f1e-2c4b-4d6e-8f00-bbbbbbbb0002", "plot1/r2.wav")
	second.Tags = []domain.Tag{tag}
	second.Owners = []domain.User{owner}

	ds := &domain.Dataset{
		RecordingSet: domain.RecordingSet{
			UUID:       mustUUID("0c9a3f1e-2c4b-4d6e-8f00-bbbbbbbb0000"),
			Recordings: []*domain.Recording{first, second},
			CreatedOn:  testTime,
		},
		Name:        "amazon-plots-2023",
		Description: "dawn chorus survey",
	}
	got := roundTrip(t, ds, Options{})
	if diff := cmp.Diff(ds, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSharedEntitiesStoredOnce(t *testing.T) {
	tag := domain.Tag{Key: "species", Value: "Hyla minuta"}
	owner := domain.User{Username: "ana"}
	first := newTestRecording("0c9a3f1e-2c4b-4d6e-8f00-cccccccc0001", "r1.wav")
	first.Tags = []domain.Tag{tag}
	first.Owners = []domain.User{owner}
	second := newTestRecording("0c9a3f1e-2c4b-4d6e-8f00-cccccccc0002", "r2.wav")
	second.Tags = []domain.Tag{tag}
	second.Owners = []domain.User{owner}

	set := &domain.RecordingSet{
		UUID:       mustUUID("0c9a3f1e-2c4b-4d6e-8f00-cccccccc0000"),
		Recordings: []*domain.Recording{first, second},
		CreatedOn:  testTime,
	}
	b, err := Encode(set, Options{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	var payload RecordingSetRecord
	if err := json.Unmarshal(doc.Data, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if len(payload.Tags) != 1 {
		t.Errorf("tags table holds %d records, want 1", len(payload.Tags))
	}
	if len(payload.Users) != 1 {
		t.Errorf("users table holds %d records, want 1", len(payload.Users))
	}
	for _, rec := range payload.Recordings {
		if len(rec.Tags) != 1 || rec.Tags[0] != payload.Tags[0].ID {
			t.Errorf("recording %s tags = %v, want [%d]", rec.UUID, rec.Tags, payload.Tags[0].ID)
		}
	}
}

func TestEncodeDeterministic(t *testing.T) {
	tag := domain.Tag{Key: "quality", Value: "good"}
	var recordings []*domain.Recording
	uuids := []string{
		"0c9a3f1e-2c4b-4d6e-8f00-dddddddd0001",
		"0c9a3f1e-2c4b-4d6e-8f00-dddddddd0002",
		"0c9a3f1e-2c4b-4d6e-8f00-dddddddd0003",
	}
	for _, id := range uuids {
		r := newTestRecording(id, id+".wav")
		r.Tags = []domain.Tag{tag, {Key: "batch", Value: id}}
		r.Features = []domain.Feature{{Name: "a", Value: 1}, {Name: "b", Value: 2}}
		recordings = append(recordings, r)
	}
	set := &domain.RecordingSet{
		UUID:       mustUUID("0c9a3f1e-2c4b-4d6e-8f00-dddddddd0000"),
		Recordings: recordings,
		CreatedOn:  testTime,
	}
	first, err := NewDocument(set, Options{})
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	second, err := NewDocument(set, Options{})
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	if string(first.Data) != string(second.Data) {
		t.Fatal("two exports of the same collection produced different payloads")
	}
}

func TestAnnotationProjectRoundTrip(t *testing.T) {
	annotator := domain.User{Username: "jo", Email: "jo@example.org"}
	species := domain.Tag{Key: "species", Value: "Tadarida brasiliensis"}
	recording := newTestRecording("0c9a3f1e-2c4b-4d6e-8f00-eeeeeeee0001", "r.wav")
	clip := newTestClip("0c9a3f1e-2c4b-4d6e-8f00-eeeeeeee0002", recording)
	event := newTestSoundEvent("0c9a3f1e-2c4b-4d6e-8f00-eeeeeeee0003")

	proj := &domain.AnnotationProject{
		AnnotationSet: domain.AnnotationSet{
			UUID: mustUUID("0c9a3f1e-2c4b-4d6e-8f00-eeeeeeee0000"),
			ClipAnnotations: []*domain.ClipAnnotations{{
				UUID: mustUUID("0c9a3f1e-2c4b-4d6e-8f00-eeeeeeee0004"),
				Clip: clip,
				Tags: []domain.Tag{species},
				Annotations: []*domain.SoundEventAnnotation{{
					UUID:       mustUUID("0c9a3f1e-2c4b-4d6e-8f00-eeeeeeee0005"),
					SoundEvent: event,
					Tags:       []domain.Tag{species},
					CreatedBy:  &annotator,
					CreatedOn:  testTime,
				}},
				Notes: []domain.Note{{
					UUID:      mustUUID("0c9a3f1e-2c4b-4d6e-8f00-eeeeeeee0006"),
					Message:   "faint second pass",
					CreatedBy: &annotator,
					CreatedOn: testTime,
				}},
				CreatedOn: testTime,
			}},
			CreatedOn: testTime,
		},
		Name:           "bat-passes",
		Description:    "free-tailed bat passes over the station",
		Instructions:   "box every echolocation pass",
		AnnotationTags: []domain.Tag{species},
		Tasks: []*domain.AnnotationTask{{
			UUID: mustUUID("0c9a3f1e-2c4b-4d6e-8f00-eeeeeeee0007"),
			Clip: clip,
			StatusBadges: []domain.StatusBadge{{
				State:     domain.StateCompleted,
				Owner:     &annotator,
				CreatedOn: testTime,
			}},
			CreatedOn: testTime,
		}},
	}
	got := roundTrip(t, proj, Options{})
	if diff := cmp.Diff(proj, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	decoded, ok := got.(*domain.AnnotationProject)
	if !ok {
		t.Fatalf("decoded %T, want *domain.AnnotationProject", got)
	}
	if decoded.Tasks[0].Clip != decoded.ClipAnnotations[0].Clip {
		t.Fatal("task and clip annotations reference distinct clip instances")
	}
}

func TestEvaluationSetRoundTrip(t *testing.T) {
	target := domain.Tag{Key: "species", Value: "Sturnella magna"}
	recording := newTestRecording("0c9a3f1e-2c4b-4d6e-8f00-ffffffff0001", "meadow.wav")
	clip := newTestClip("0c9a3f1e-2c4b-4d6e-8f00-ffffffff0002", recording)

	set := &domain.EvaluationSet{
		AnnotationSet: domain.AnnotationSet{
			UUID: mustUUID("0c9a3f1e-2c4b-4d6e-8f00-ffffffff0000"),
			ClipAnnotations: []*domain.ClipAnnotations{{
				UUID:      mustUUID("0c9a3f1e-2c4b-4d6e-8f00-ffffffff0003"),
				Clip:      clip,
				Tags:      []domain.Tag{target},
				CreatedOn: testTime,
			}},
			CreatedOn: testTime,
		},
		Name:           "meadowlark-ground-truth",
		EvaluationTags: []domain.Tag{target},
	}
	got := roundTrip(t, set, Options{})
	if diff := cmp.Diff(set, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestModelRunRoundTrip(t *testing.T) {
	species := domain.Tag{Key: "species", Value: "Rana temporaria"}
	recording := newTestRecording("1c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0001", "pond.wav")
	clip := newTestClip("1c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0002", recording)
	event := newTestSoundEvent("1c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0003")
	seq := &domain.Sequence{
		UUID:        mustUUID("1c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0004"),
		SoundEvents: []*domain.SoundEvent{event},
	}

	run := &domain.ModelRun{
		PredictionSet: domain.PredictionSet{
			UUID: mustUUID("1c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0000"),
			ClipPredictions: []*domain.ClipPredictions{{
				UUID: mustUUID("1c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0005"),
				Clip: clip,
				SoundEvents: []*domain.SoundEventPrediction{{
					UUID:       mustUUID("1c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0006"),
					SoundEvent: event,
					Score:      0.92,
					Tags:       []domain.PredictedTag{{Tag: species, Score: 0.87}},
				}},
				Sequences: []*domain.SequencePrediction{{
					UUID:     mustUUID("1c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0007"),
					Sequence: seq,
					Score:    0.81,
				}},
				Tags: []domain.PredictedTag{{Tag: species, Score: 0.9}},
			}},
			CreatedOn: testTime,
		},
		Name:    "frogdetector",
		Version: "2.4.0",
	}
	got := roundTrip(t, run, Options{})
	if diff := cmp.Diff(run, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluationRoundTrip(t *testing.T) {
	species := domain.Tag{Key: "species", Value: "Strix aluco"}
	recording := newTestRecording("2c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0001", "night.wav")
	clip := newTestClip("2c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0002", recording)
	event := newTestSoundEvent("2c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0003")

	annotation := &domain.SoundEventAnnotation{
		UUID:       mustUUID("2c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0004"),
		SoundEvent: event,
		Tags:       []domain.Tag{species},
		CreatedOn:  testTime,
	}
	prediction := &domain.SoundEventPrediction{
		UUID:       mustUUID("2c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0005"),
		SoundEvent: event,
		Score:      0.76,
		Tags:       []domain.PredictedTag{{Tag: species, Score: 0.76}},
	}
	clipAnn := &domain.ClipAnnotations{
		UUID:        mustUUID("2c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0006"),
		Clip:        clip,
		Annotations: []*domain.SoundEventAnnotation{annotation},
		CreatedOn:   testTime,
	}
	clipPred := &domain.ClipPredictions{
		UUID:        mustUUID("2c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0007"),
		Clip:        clip,
		SoundEvents: []*domain.SoundEventPrediction{prediction},
	}

	eval := &domain.Evaluation{
		UUID:           mustUUID("2c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0000"),
		EvaluationTask: "sound_event_detection",
		ClipEvaluations: []*domain.ClipEvaluation{{
			UUID:        mustUUID("2c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0008"),
			Annotations: clipAnn,
			Predictions: clipPred,
			Matches: []*domain.Match{{
				UUID:     mustUUID("2c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0009"),
				Source:   prediction,
				Target:   annotation,
				Affinity: 0.83,
				Score:    fptr(0.76),
				Metrics:  []domain.Feature{{Name: "iou", Value: 0.83}},
			}},
			Metrics: []domain.Feature{{Name: "f1", Value: 0.8}},
			Score:   fptr(0.8),
		}},
		Metrics:   []domain.Feature{{Name: "mean_f1", Value: 0.8}},
		Score:     fptr(0.8),
		CreatedOn: testTime,
	}
	got := roundTrip(t, eval, Options{})
	if diff := cmp.Diff(eval, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	decoded := got.(*domain.Evaluation)
	ce := decoded.ClipEvaluations[0]
	if ce.Matches[0].Source != ce.Predictions.SoundEvents[0] {
		t.Fatal("match source and clip predictions hold distinct prediction instances")
	}
	if ce.Matches[0].Target != ce.Annotations.Annotations[0] {
		t.Fatal("match target and clip annotations hold distinct annotation instances")
	}
}

func TestScoredTagWireShape(t *testing.T) {
	species := domain.Tag{Key: "species", Value: "Apus apus"}
	recording := newTestRecording("3c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0001", "sky.wav")
	clip := newTestClip("3c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0002", recording)

	set := &domain.PredictionSet{
		UUID: mustUUID("3c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0000"),
		ClipPredictions: []*domain.ClipPredictions{{
			UUID: mustUUID("3c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0003"),
			Clip: clip,
			Tags: []domain.PredictedTag{{Tag: species, Score: 0.5}},
		}},
		CreatedOn: testTime,
	}
	b, err := Encode(set, Options{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	var payload struct {
		ClipPredictions []struct {
			Tags []json.RawMessage `json:"tags"`
		} `json:"clip_predictions"`
	}
	if err := json.Unmarshal(doc.Data, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if got := string(payload.ClipPredictions[0].Tags[0]); got != "[0,0.5]" {
		t.Fatalf("scored tag serialized as %s, want [0,0.5]", got)
	}
}

func TestDecodeVersionMismatch(t *testing.T) {
	b := []byte(`{"version":"1.0.0","created_on":"2024-03-15T10:30:00Z","data":{"collection_type":"recording_set","uuid":"0c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0001","created_on":"2024-03-15T10:30:00Z"}}`)
	_, err := Decode(b, Options{})
	var verr *VersionMismatchError
	if !errors.As(err, &verr) {
		t.Fatalf("Decode error = %v, want VersionMismatchError", err)
	}
	if verr.Got != "1.0.0" || verr.Want != Version {
		t.Fatalf("VersionMismatchError = %+v", verr)
	}
}

func TestDecodeExpectedKindMismatch(t *testing.T) {
	set := &domain.RecordingSet{
		UUID:      mustUUID("4c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0000"),
		CreatedOn: testTime,
	}
	b, err := Encode(set, Options{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	_, err = Decode(b, Options{Expect: KindDataset})
	var uerr *UnsupportedTypeError
	if !errors.As(err, &uerr) {
		t.Fatalf("Decode error = %v, want UnsupportedTypeError", err)
	}
	if uerr.Type != string(KindRecordingSet) || uerr.Expected != string(KindDataset) {
		t.Fatalf("UnsupportedTypeError = %+v", uerr)
	}
}

func TestDecodeUnknownCollectionType(t *testing.T) {
	b := []byte(`{"version":"1.1.0","created_on":"2024-03-15T10:30:00Z","data":{"collection_type":"spectrogram_set"}}`)
	_, err := Decode(b, Options{})
	var uerr *UnsupportedTypeError
	if !errors.As(err, &uerr) {
		t.Fatalf("Decode error = %v, want UnsupportedTypeError", err)
	}
}

func TestDecodeMalformedEnvelope(t *testing.T) {
	for name, b := range map[string][]byte{
		"not json":     []byte("not a document"),
		"missing data": []byte(`{"version":"1.1.0","created_on":"2024-03-15T10:30:00Z"}`),
	} {
		_, err := Decode(b, Options{})
		var merr *MalformedDocumentError
		if !errors.As(err, &merr) {
			t.Errorf("%s: Decode error = %v, want MalformedDocumentError", name, err)
		}
	}
}

func TestDecodeMissingRecordingReference(t *testing.T) {
	b := []byte(`{
		"version": "1.1.0",
		"created_on": "2024-03-15T10:30:00Z",
		"data": {
			"collection_type": "annotation_set",
			"uuid": "5c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0000",
			"clips": [{
				"uuid": "5c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0001",
				"recording": "5c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0099",
				"start_time": 0,
				"end_time": 3
			}],
			"created_on": "2024-03-15T10:30:00Z"
		}
	}`)
	_, err := Decode(b, Options{})
	var merr *MissingReferenceError
	if !errors.As(err, &merr) {
		t.Fatalf("Decode error = %v, want MissingReferenceError", err)
	}
	if merr.Kind != "recording" {
		t.Fatalf("MissingReferenceError.Kind = %q, want %q", merr.Kind, "recording")
	}
}

func TestUnsupportedCollection(t *testing.T) {
	_, err := Encode(nil, Options{})
	var uerr *UnsupportedTypeError
	if !errors.As(err, &uerr) {
		t.Fatalf("Encode(nil) error = %v, want UnsupportedTypeError", err)
	}
}

func TestInspect(t *testing.T) {
	ds := &domain.Dataset{
		RecordingSet: domain.RecordingSet{
			UUID:      mustUUID("6c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0000"),
			CreatedOn: testTime,
		},
		Name: "survey-2024",
	}
	b, err := Encode(ds, Options{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	info, err := Inspect(b)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	if info.Kind != KindDataset {
		t.Errorf("Kind = %q, want %q", info.Kind, KindDataset)
	}
	if info.UUID != ds.UUID {
		t.Errorf("UUID = %s, want %s", info.UUID, ds.UUID)
	}
	if info.Name != "survey-2024" {
		t.Errorf("Name = %q, want %q", info.Name, "survey-2024")
	}
}

package aoef

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"soundcore/pkg/domain"
)

func TestRecordingPathsRelativeToAudioDir(t *testing.T) {
	audioDir := filepath.Join("/data", "deployments")
	rec := newTestRecording("9c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0001", filepath.Join(audioDir, "site_a", "dawn.wav"))
	set := &domain.RecordingSet{
		UUID:       mustUUID("9c9a3f1e-2c4b-4d6e-8f00-aaaaaaaa0000"),
		Recordings: []*domain.Recording{rec},
		CreatedOn:  testTime,
	}
	opts := Options{AudioDir: audioDir}
	b, err := Encode(set, opts)
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
	if got, want := payload.Recordings[0].Path, filepath.Join("site_a", "dawn.wav"); got != want {
		t.Fatalf("stored path = %q, want %q", got, want)
	}

	decoded, err := Decode(b, opts)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(set, decoded); diff != "" {
		t.Fatalf("round trip with audio dir mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordingTimeExpansionOmittedWhenUnit(t *testing.T) {
	plain := newTestRecording("9c9a3f1e-2c4b-4d6e-8f00-bbbbbbbb0001", "plain.wav")
	expanded := newTestRecording("9c9a3f1e-2c4b-4d6e-8f00-bbbbbbbb0002", "expanded.wav")
	expanded.TimeExpansion = 10
	set := &domain.RecordingSet{
		UUID:       mustUUID("9c9a3f1e-2c4b-4d6e-8f00-bbbbbbbb0000"),
		Recordings: []*domain.Recording{plain, expanded},
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
	if payload.Recordings[0].TimeExpansion != nil {
		t.Errorf("unit time expansion stored as %v, want omitted", *payload.Recordings[0].TimeExpansion)
	}
	if payload.Recordings[1].TimeExpansion == nil || *payload.Recordings[1].TimeExpansion != 10 {
		t.Errorf("time expansion = %v, want 10", payload.Recordings[1].TimeExpansion)
	}

	decoded, err := Decode(b, Options{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got := decoded.(*domain.RecordingSet)
	if got.Recordings[0].TimeExpansion != 1 {
		t.Errorf("restored time expansion = %v, want 1", got.Recordings[0].TimeExpansion)
	}
}

func TestRecordingOutsideAudioDirFails(t *testing.T) {
	rec := newTestRecording("9c9a3f1e-2c4b-4d6e-8f00-cccccccc0001", "relative/elsewhere.wav")
	set := &domain.RecordingSet{
		UUID:       mustUUID("9c9a3f1e-2c4b-4d6e-8f00-cccccccc0000"),
		Recordings: []*domain.Recording{rec},
		CreatedOn:  testTime,
	}
	if _, err := Encode(set, Options{AudioDir: "/data/audio"}); err == nil {
		t.Fatal("Encode with a path outside the audio dir succeeded")
	}
}

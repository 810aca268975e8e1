package aoef

// Options configure one conversion session.
type Options struct {
	// AudioDir, when set, is the directory recording paths are stored
	// relative to on export and resolved against on import.
	AudioDir string

	// Expect restricts decoding to one collection kind. Decoding a document
	// of any other kind fails with an UnsupportedTypeError. Empty accepts
	// every registered kind.
	Expect CollectionKind
}

// adapterTree wires every entity adapter of one conversion session. The tree
// is built fresh per call so no identity state leaks between documents, and
// all adapters share the same child instances so ids stay consistent across
// tables.
type adapterTree struct {
	users                 *UserAdapter
	tags                  *TagAdapter
	notes                 *NoteAdapter
	recordings            *RecordingAdapter
	soundEvents           *SoundEventAdapter
	sequences             *SequenceAdapter
	clips                 *ClipAdapter
	soundEventAnnotations *SoundEventAnnotationAdapter
	sequenceAnnotations   *SequenceAnnotationAdapter
	clipAnnotations       *ClipAnnotationsAdapter
	annotationTasks       *AnnotationTaskAdapter
	soundEventPredictions *SoundEventPredictionAdapter
	sequencePredictions   *SequencePredictionAdapter
	clipPredictions       *ClipPredictionsAdapter
	matches               *MatchAdapter
	clipEvaluations       *ClipEvaluationAdapter
}

func newAdapterTree(opts Options) *adapterTree {
	t := &adapterTree{}
	t.users = NewUserAdapter()
	t.tags = NewTagAdapter()
	t.notes = NewNoteAdapter(t.users)
	t.recordings = NewRecordingAdapter(t.users, t.tags, t.notes, opts.AudioDir)
	t.soundEvents = NewSoundEventAdapter()
	t.sequences = NewSequenceAdapter(t.soundEvents)
	t.clips = NewClipAdapter(t.recordings)
	t.soundEventAnnotations = NewSoundEventAnnotationAdapter(t.users, t.tags, t.notes, t.soundEvents)
	t.sequenceAnnotations = NewSequenceAnnotationAdapter(t.users, t.tags, t.notes, t.sequences)
	t.clipAnnotations = NewClipAnnotationsAdapter(t.tags, t.notes, t.clips, t.soundEventAnnotations, t.sequenceAnnotations)
	t.annotationTasks = NewAnnotationTaskAdapter(t.users, t.clips)
	t.soundEventPredictions = NewSoundEventPredictionAdapter(t.tags, t.soundEvents)
	t.sequencePredictions = NewSequencePredictionAdapter(t.tags, t.sequences)
	t.clipPredictions = NewClipPredictionsAdapter(t.tags, t.clips, t.soundEventPredictions, t.sequencePredictions)
	t.matches = NewMatchAdapter(t.soundEventPredictions, t.soundEventAnnotations)
	t.clipEvaluations = NewClipEvaluationAdapter(t.clipAnnotations, t.clipPredictions, t.matches)
	return t
}

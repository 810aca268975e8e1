package domain

import (
	"github.com/google/uuid"
)

// Recording is a single audio file together with its capture metadata.
// Recordings are shared: many clips may point at the same recording value.
type Recording struct {
	UUID          uuid.UUID `json:"uuid"`
	Path          string    `json:"path"`
	Duration      float64   `json:"duration"`
	Channels      int       `json:"channels"`
	Samplerate    int       `json:"samplerate"`
	TimeExpansion float64   `json:"time_expansion,omitempty"`
	Hash          string    `json:"hash,omitempty"`
	Date          *Date     `json:"date,omitempty"`
	Time          *TimeOfDay `json:"time,omitempty"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	Tags          []Tag     `json:"tags,omitempty"`
	Features      []Feature `json:"features,omitempty"`
	Notes         []Note    `json:"notes,omitempty"`
	Owners        []User    `json:"owners,omitempty"`
	Rights        string    `json:"rights,omitempty"`
}

// SoundEvent is an acoustic event located within a recording by an opaque
// geometry.
type SoundEvent struct {
	UUID     uuid.UUID `json:"uuid"`
	Geometry *Geometry `json:"geometry,omitempty"`
	Features []Feature `json:"features,omitempty"`
}

// Sequence groups sound events that form one vocalization bout. Parent links
// chain sub-sequences to the sequence they were split from; the chain is
// expected to be acyclic and the exchange engine fails fast when it is not.
type Sequence struct {
	UUID        uuid.UUID     `json:"uuid"`
	SoundEvents []*SoundEvent `json:"sound_events,omitempty"`
	Features    []Feature     `json:"features,omitempty"`
	Parent      *Sequence     `json:"parent,omitempty"`
}

// Clip is a contiguous time slice of a recording, the basic unit of
// annotation and prediction work.
type Clip struct {
	UUID      uuid.UUID  `json:"uuid"`
	Recording *Recording `json:"recording"`
	StartTime float64    `json:"start_time"`
	EndTime   float64    `json:"end_time"`
	Features  []Feature  `json:"features,omitempty"`
}

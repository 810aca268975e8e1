package domain

import "encoding/json"

// GeometryType identifies the shape of a sound event region. The tags follow
// the GeoJSON naming convention; time is in seconds from recording start and
// frequency in hertz.
type GeometryType string

// Supported geometry type tags.
const (
	GeometryTimeStamp       GeometryType = "TimeStamp"
	GeometryTimeInterval    GeometryType = "TimeInterval"
	GeometryPoint           GeometryType = "Point"
	GeometryLineString      GeometryType = "LineString"
	GeometryPolygon         GeometryType = "Polygon"
	GeometryBoundingBox     GeometryType = "BoundingBox"
	GeometryMultiPoint      GeometryType = "MultiPoint"
	GeometryMultiLineString GeometryType = "MultiLineString"
	GeometryMultiPolygon    GeometryType = "MultiPolygon"
)

// Geometry locates a sound event in time and frequency. Coordinates are kept
// as raw JSON: computational-geometry interpretation is a collaborator
// concern and the exchange engine copies the payload verbatim.
type Geometry struct {
	Type        GeometryType    `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// BoxGeometry is a convenience constructor for the common bounding-box shape
// [start_time, low_freq, end_time, high_freq].
func BoxGeometry(startTime, lowFreq, endTime, highFreq float64) *Geometry {
	coords, _ := json.Marshal([4]float64{startTime, lowFreq, endTime, highFreq})
	return &Geometry{Type: GeometryBoundingBox, Coordinates: coords}
}

// IntervalGeometry is a convenience constructor for a [start, end] interval.
func IntervalGeometry(start, end float64) *Geometry {
	coords, _ := json.Marshal([2]float64{start, end})
	return &Geometry{Type: GeometryTimeInterval, Coordinates: coords}
}

package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSON(t *testing.T) {
	d := NewDate(2023, time.November, 2)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2023-11-02"` {
		t.Fatalf("marshal = %s, want \"2023-11-02\"", b)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d) {
		t.Fatalf("round trip changed date: %v != %v", back, d)
	}
}

func TestDateJSONRejectsGarbage(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"yesterday"`), &d); err == nil {
		t.Fatal("unmarshal of a non-date string succeeded")
	}
}

func TestTimeOfDayJSON(t *testing.T) {
	tod := NewTimeOfDay(5, 45, 30)
	b, err := json.Marshal(tod)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"05:45:30"` {
		t.Fatalf("marshal = %s, want \"05:45:30\"", b)
	}
	var back TimeOfDay
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(tod) {
		t.Fatalf("round trip changed time: %v != %v", back, tod)
	}
}

func TestGeometryCoordinatesKeptVerbatim(t *testing.T) {
	raw := []byte(`{"type":"Polygon","coordinates":[[[0.1,2000],[0.2,3000],[0.3,2500],[0.1,2000]]]}`)
	var g Geometry
	if err := json.Unmarshal(raw, &g); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if g.Type != GeometryPolygon {
		t.Fatalf("type = %q, want %q", g.Type, GeometryPolygon)
	}
	b, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != string(raw) {
		t.Fatalf("coordinates rewritten:\n got %s\nwant %s", b, raw)
	}
}

func TestBoxGeometry(t *testing.T) {
	g := BoxGeometry(0.1, 42000, 0.4, 96000)
	if g.Type != GeometryBoundingBox {
		t.Fatalf("type = %q, want %q", g.Type, GeometryBoundingBox)
	}
	if string(g.Coordinates) != "[0.1,42000,0.4,96000]" {
		t.Fatalf("coordinates = %s", g.Coordinates)
	}
}

func TestUserOmitsEmptyFields(t *testing.T) {
	b, err := json.Marshal(User{Username: "ana"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"username":"ana"}` {
		t.Fatalf("marshal = %s", b)
	}
}

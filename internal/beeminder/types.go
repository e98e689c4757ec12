package beeminder

import (
	"encoding/json"
	"time"
)

// Goal is the summary the service returns for each tracked goal. Only the
// fields this client consumes are mapped; timestamps stay in wire form
// (unix seconds) so backups reproduce the service's representation.
type Goal struct {
	Slug     string  `json:"slug"`
	Title    string  `json:"title"`
	Safebuf  int     `json:"safebuf"`
	Limsum   string  `json:"limsum"`
	Lastday  int64   `json:"lastday"`
	Goaldate int64   `json:"goaldate"`
	Pledge   float64 `json:"pledge"`
}

// LastdayTime returns the time of the goal's most recent datapoint.
func (g Goal) LastdayTime() time.Time {
	return time.Unix(g.Lastday, 0).UTC()
}

// Datapoint is one timestamped measurement contributing to a goal. The
// service assigns IDs; this client never fabricates one.
type Datapoint struct {
	ID        string
	Timestamp time.Time // UTC
	Value     float64
	Comment   string
}

type datapointWire struct {
	ID        string  `json:"id"`
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
	Comment   string  `json:"comment"`
}

func (d *Datapoint) UnmarshalJSON(b []byte) error {
	var w datapointWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	d.ID = w.ID
	d.Timestamp = time.Unix(w.Timestamp, 0).UTC()
	d.Value = w.Value
	d.Comment = w.Comment
	return nil
}

func (d Datapoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(datapointWire{
		ID:        d.ID,
		Timestamp: d.Timestamp.Unix(),
		Value:     d.Value,
		Comment:   d.Comment,
	})
}

// NewDatapoint is a creation request. Timestamp is optional; when nil the
// service stamps the datapoint with its own current time. RequestID is an
// idempotency key so a retried create cannot double-post.
type NewDatapoint struct {
	Timestamp *time.Time
	Value     float64
	Comment   string
	RequestID string
}

// DatapointUpdate replaces the mutable fields of an existing datapoint.
type DatapointUpdate struct {
	ID        string
	Timestamp time.Time
	Value     float64
	Comment   string
}

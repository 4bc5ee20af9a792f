package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/knowflow/graphid/diff"
)

// Version is the report schema version written into every envelope.
const Version = "graphid/1"

// Report is a serializable envelope around a diff result.
type Report struct {
	// ID is a unique identifier for this report.
	ID string `json:"id"`

	// Version is the envelope schema version.
	Version string `json:"version"`

	// GeneratedAt is the UTC timestamp the report was produced.
	GeneratedAt time.Time `json:"generated_at"`

	// Diff is the structural difference payload.
	Diff *diff.Result `json:"diff"`
}

// New wraps a diff result in a fresh envelope.
func New(d *diff.Result) *Report {
	return &Report{
		ID:          uuid.New().String(),
		Version:     Version,
		GeneratedAt: time.Now().UTC(),
		Diff:        d,
	}
}

// Encode writes the report as JSON to w.
func (r *Report) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("report: encode: %w", err)
	}
	return nil
}

// Decode reads a JSON report from r.
func Decode(r io.Reader) (*Report, error) {
	var rep Report
	if err := json.NewDecoder(r).Decode(&rep); err != nil {
		return nil, fmt.Errorf("report: decode: %w", err)
	}
	return &rep, nil
}

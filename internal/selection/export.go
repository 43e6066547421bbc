package selection

import (
	"net/url"
	"strconv"
	"strings"

	"gopick/internal/store"
)

// Record is one exportable row for a selected feature.
type Record struct {
	ID         string
	SourceFile string
	X          float64
	Y          float64
}

// Artifact is an export payload ready for host delivery.
type Artifact struct {
	MIME string
	Data string // URI-encoded record text
}

const csvMIME = "text/csv;charset=utf-8"

// NewArtifact wraps serialized record text as a text/csv artifact.
func NewArtifact(text string) Artifact {
	return Artifact{MIME: csvMIME, Data: url.PathEscape(text)}
}

// URI returns the artifact as a data URI.
func (a Artifact) URI() string { return "data:" + a.MIME + "," + a.Data }

// Text returns the decoded record text.
func (a Artifact) Text() (string, error) { return url.PathUnescape(a.Data) }

// Exporter resolves selected ids against the live store.
type Exporter struct {
	store *store.Store
}

func NewExporter(s *store.Store) *Exporter {
	return &Exporter{store: s}
}

// Records returns one record per id that still resolves to a live
// feature. Ids whose tile has been evicted since selection are silently
// omitted; that is expected churn, not an error.
func (e *Exporter) Records(ids []string) []Record {
	var recs []Record
	for _, id := range ids {
		f, ok := e.store.Find(id)
		if !ok {
			continue
		}
		recs = append(recs, Record{
			ID:         f.ID,
			SourceFile: f.Props["sourcefile"],
			X:          f.Point[0],
			Y:          f.Point[1],
		})
	}
	return recs
}

// SerializeCSV renders records as comma-joined rows separated by
// newlines: no header row and no quoting, even for field values that
// contain the delimiter. The bare format is intentional.
func SerializeCSV(recs []Record) string {
	rows := make([]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, strings.Join([]string{
			r.ID,
			r.SourceFile,
			formatCoord(r.X),
			formatCoord(r.Y),
		}, ","))
	}
	return strings.Join(rows, "\n")
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

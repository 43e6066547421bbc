package selection

import (
	"net/url"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopick/internal/geom"
	"gopick/internal/store"
)

func TestRecordsScenario(t *testing.T) {
	s := store.New()
	tile := store.NewTile(geom.TileCoord{}, 256)
	tile.Put(&store.Feature{
		ID:    "a",
		Props: map[string]string{"id": "a", "sourcefile": "s1"},
		Point: orb.Point{3, 4},
	})
	s.Put(tile)

	recs := NewExporter(s).Records([]string{"a"})
	require.Equal(t, []Record{{ID: "a", SourceFile: "s1", X: 3, Y: 4}}, recs)
	assert.Equal(t, "a,s1,3,4", SerializeCSV(recs))
}

func TestRecordsSkipMissing(t *testing.T) {
	s := testStore()
	e := NewExporter(s)

	recs := e.Records([]string{"a", "gone", "c"})
	require.Len(t, recs, 2)
	assert.Equal(t, "a", recs[0].ID)
	assert.Equal(t, "c", recs[1].ID)
}

func TestRecordsAfterEviction(t *testing.T) {
	s := testStore()
	e := NewExporter(s)
	s.Evict(geom.TileCoord{X: 1, Y: 0, Z: 0})

	recs := e.Records([]string{"a", "c"})
	require.Len(t, recs, 1)
	assert.Equal(t, "a", recs[0].ID, "evicted feature silently omitted")
}

func TestSerializeCSVMultipleRows(t *testing.T) {
	recs := []Record{
		{ID: "a", SourceFile: "s1", X: 3, Y: 4},
		{ID: "b", SourceFile: "s2", X: 1.5, Y: 0},
	}
	assert.Equal(t, "a,s1,3,4\nb,s2,1.5,0", SerializeCSV(recs))
}

func TestSerializeCSVNoEscaping(t *testing.T) {
	// embedded delimiters pass through untouched; the bare format is
	// intentional
	recs := []Record{{ID: "a,b", SourceFile: "s,1", X: 1, Y: 2}}
	assert.Equal(t, "a,b,s,1,1,2", SerializeCSV(recs))
}

func TestSerializeCSVEmpty(t *testing.T) {
	assert.Equal(t, "", SerializeCSV(nil))
}

func TestArtifact(t *testing.T) {
	a := NewArtifact("a,s1,3,4\nb,s2,1,2")
	assert.Equal(t, "text/csv;charset=utf-8", a.MIME)

	text, err := a.Text()
	require.NoError(t, err)
	assert.Equal(t, "a,s1,3,4\nb,s2,1,2", text)

	uri := a.URI()
	assert.Contains(t, uri, "data:text/csv;charset=utf-8,")
	decoded, err := url.PathUnescape(uri[len("data:text/csv;charset=utf-8,"):])
	require.NoError(t, err)
	assert.Equal(t, "a,s1,3,4\nb,s2,1,2", decoded)
}

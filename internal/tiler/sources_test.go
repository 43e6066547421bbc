package tiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadCSV(t *testing.T) {
	p := writeTemp(t, "pts.csv", "id,name,lat,lon\nf1,alpha,37.77,-122.42\nf2,beta,51.5,-0.12\n")
	sources, err := LoadCSV(p)
	require.NoError(t, err)
	require.Len(t, sources, 2)

	assert.Equal(t, "f1", sources[0].ID)
	assert.InDelta(t, -122.42, sources[0].Lon, 1e-9)
	assert.InDelta(t, 37.77, sources[0].Lat, 1e-9)
	assert.Equal(t, "alpha", sources[0].Props["name"])
	_, hasLat := sources[0].Props["lat"]
	assert.False(t, hasLat, "coordinate columns do not become properties")
	_, hasID := sources[0].Props["id"]
	assert.False(t, hasID, "id column becomes the id, not a property")
}

func TestLoadCSVSkipsBadRows(t *testing.T) {
	p := writeTemp(t, "pts.csv", "lat,lon\n10,20\nnot,numbers\n30,40\n")
	sources, err := LoadCSV(p)
	require.NoError(t, err)
	assert.Len(t, sources, 2)
}

func TestLoadCSVMissingColumns(t *testing.T) {
	p := writeTemp(t, "pts.csv", "a,b\n1,2\n")
	_, err := LoadCSV(p)
	assert.Error(t, err)
}

func TestLoadGeoJSONFeatureCollection(t *testing.T) {
	p := writeTemp(t, "pts.geojson", `{
		"type": "FeatureCollection",
		"features": [
			{"type":"Feature","id":"f1","geometry":{"type":"Point","coordinates":[-122.42,37.77]},"properties":{"name":"alpha","pop":42,"active":true}},
			{"type":"Feature","geometry":{"type":"MultiPoint","coordinates":[[0,0],[1,1]]},"properties":{}},
			{"type":"Feature","geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]},"properties":{}}
		]
	}`)
	sources, err := LoadGeoJSON(p)
	require.NoError(t, err)
	require.Len(t, sources, 3, "one point plus two multipoint members; lines ignored")

	assert.Equal(t, "f1", sources[0].ID)
	assert.Equal(t, "alpha", sources[0].Props["name"])
	assert.Equal(t, "42", sources[0].Props["pop"])
	assert.Equal(t, "true", sources[0].Props["active"])
	assert.Empty(t, sources[1].ID, "multipoint members get generated ids later")
}

func TestLoadGeoJSONBareGeometry(t *testing.T) {
	p := writeTemp(t, "pt.json", `{"type":"Point","coordinates":[1.5,2.5]}`)
	sources, err := LoadGeoJSON(p)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.InDelta(t, 1.5, sources[0].Lon, 1e-9)
	assert.InDelta(t, 2.5, sources[0].Lat, 1e-9)
}

func TestLoadGeoJSONNoPoints(t *testing.T) {
	p := writeTemp(t, "line.geojson", `{"type":"LineString","coordinates":[[0,0],[1,1]]}`)
	_, err := LoadGeoJSON(p)
	assert.Error(t, err)
}

func TestLoadKML(t *testing.T) {
	p := writeTemp(t, "pts.kml", `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Placemark>
      <name>alpha</name>
      <Point><coordinates>-122.42,37.77,0</coordinates></Point>
    </Placemark>
    <Placemark>
      <name>no point</name>
    </Placemark>
  </Document>
</kml>`)
	sources, err := LoadKML(p)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.InDelta(t, -122.42, sources[0].Lon, 1e-9)
	assert.Equal(t, "alpha", sources[0].Props["name"])
}

func TestLoadKMLNestedFolders(t *testing.T) {
	p := writeTemp(t, "pts.kml", `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Folder>
      <name>outer</name>
      <Placemark>
        <name>alpha</name>
        <Point><coordinates>-122.42,37.77,0</coordinates></Point>
      </Placemark>
      <Folder>
        <name>inner</name>
        <Placemark>
          <name>beta</name>
          <Point><coordinates>-0.12,51.5</coordinates></Point>
        </Placemark>
      </Folder>
    </Folder>
    <Placemark>
      <name>gamma</name>
      <Point><coordinates>139.69,35.68</coordinates></Point>
    </Placemark>
  </Document>
</kml>`)
	sources, err := LoadKML(p)
	require.NoError(t, err)
	require.Len(t, sources, 3)
	assert.Equal(t, "alpha", sources[0].Props["name"])
	assert.InDelta(t, 51.5, sources[1].Lat, 1e-9)
	assert.Equal(t, "gamma", sources[2].Props["name"])
}

func TestParseWKT(t *testing.T) {
	sources, err := ParseWKT("POINT(30 10)")
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.InDelta(t, 30, sources[0].Lon, 1e-9)
	assert.InDelta(t, 10, sources[0].Lat, 1e-9)

	sources, err = ParseWKT("MULTIPOINT((10 40), (40 30), (20 20))")
	require.NoError(t, err)
	assert.Len(t, sources, 3)

	sources, err = ParseWKT("multipoint(10 40, 40 30)")
	require.NoError(t, err)
	assert.Len(t, sources, 2)

	_, err = ParseWKT("LINESTRING(0 0, 1 1)")
	assert.Error(t, err)

	_, err = ParseWKT("")
	assert.Error(t, err)
}

func TestLoadDispatch(t *testing.T) {
	p := writeTemp(t, "pts.wkt", "POINT(1 2)")
	sources, err := Load(p)
	require.NoError(t, err)
	assert.Len(t, sources, 1)

	_, err = Load(filepath.Join(t.TempDir(), "data.shp"))
	assert.Error(t, err)
}

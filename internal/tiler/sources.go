package tiler

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Source is one ingested point before tiling. ID is empty when the
// source provides none; Cut fills it in.
type Source struct {
	ID    string
	Lon   float64
	Lat   float64
	Props map[string]string
}

// Load reads point sources from a file, dispatching on extension.
func Load(path string) ([]Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return LoadGeoJSON(path)
	case ".csv":
		return LoadCSV(path)
	case ".kml":
		return LoadKML(path)
	case ".wkt":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return ParseWKT(string(data))
	default:
		return nil, errors.New("unsupported file: " + filepath.Ext(path))
	}
}

// LoadCSV reads a CSV with latitude/longitude columns. Column detection:
// lat|latitude|y and lon|lng|long|longitude|x (case-insensitive). An "id"
// column becomes the feature id; every other column becomes a property.
func LoadCSV(path string) ([]Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	recs, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv")
	}
	header := recs[0]
	idxLat, idxLon, idxID := -1, -1, -1
	for i, h := range header {
		switch strings.ToLower(h) {
		case "lat", "latitude", "y":
			if idxLat == -1 {
				idxLat = i
			}
		case "lon", "lng", "long", "longitude", "x":
			if idxLon == -1 {
				idxLon = i
			}
		case "id":
			if idxID == -1 {
				idxID = i
			}
		}
	}
	if idxLat == -1 || idxLon == -1 {
		return nil, errors.New("csv: latitude/longitude columns not found")
	}
	var out []Source
	for _, row := range recs[1:] {
		if idxLon >= len(row) || idxLat >= len(row) {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxLon]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxLat]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		src := Source{Lon: lon, Lat: lat, Props: map[string]string{}}
		for i, h := range header {
			if i == idxLat || i == idxLon || i >= len(row) {
				continue
			}
			if i == idxID {
				src.ID = strings.TrimSpace(row[i])
				continue
			}
			src.Props[h] = row[i]
		}
		out = append(out, src)
	}
	if len(out) == 0 {
		return nil, errors.New("csv: no valid points parsed")
	}
	return out, nil
}

// LoadGeoJSON reads Point and MultiPoint geometries from a GeoJSON file.
// Feature properties are carried over stringified; a feature id (or an
// "id" property) becomes the source id.
func LoadGeoJSON(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}

	var features []*geojson.Feature
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, err
		}
		features = fc.Features
	case "Feature":
		ft, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, err
		}
		features = []*geojson.Feature{ft}
	case "":
		return nil, errors.New("invalid geojson: missing type")
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, err
		}
		features = []*geojson.Feature{geojson.NewFeature(g.Geometry())}
	}

	var out []Source
	for _, ft := range features {
		props := stringifyProps(ft.Properties)
		id := featureID(ft)
		switch g := ft.Geometry.(type) {
		case orb.Point:
			out = append(out, Source{ID: id, Lon: g[0], Lat: g[1], Props: props})
		case orb.MultiPoint:
			// a shared id would collide per point; let Cut assign them
			for _, p := range g {
				out = append(out, Source{Lon: p[0], Lat: p[1], Props: props})
			}
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no points found in geojson")
	}
	return out, nil
}

func featureID(ft *geojson.Feature) string {
	switch id := ft.ID.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	}
	if v, ok := ft.Properties["id"]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func stringifyProps(props geojson.Properties) map[string]string {
	out := make(map[string]string, len(props))
	for k, v := range props {
		switch t := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = t
		case float64:
			out[k] = strconv.FormatFloat(t, 'g', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(t)
		default:
			bs, _ := json.Marshal(t)
			out[k] = string(bs)
		}
	}
	return out
}

// LoadKML extracts Point coordinates from a KML file (Placemark > Point >
// coordinates). Placemarks nest under Document and Folder elements at
// arbitrary depth, so the decoder walks the token stream instead of
// unmarshalling a fixed structure. KML coordinates are "lon,lat[,alt]";
// altitude is ignored. The placemark name, when present, becomes a "name"
// property.
func LoadKML(path string) ([]Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	type kmlPoint struct {
		Coordinates string `xml:"coordinates"`
	}
	type kmlPlacemark struct {
		Name  string    `xml:"name"`
		Point *kmlPoint `xml:"Point"`
	}

	var placemarks []kmlPlacemark
	dec := xml.NewDecoder(f)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Placemark" {
			continue
		}
		var pm kmlPlacemark
		if err := dec.DecodeElement(&pm, &se); err != nil {
			return nil, err
		}
		placemarks = append(placemarks, pm)
	}

	var out []Source
	for _, pm := range placemarks {
		if pm.Point == nil {
			continue
		}
		// coordinates may contain multiple tuples separated by spaces
		for _, tuple := range strings.Fields(pm.Point.Coordinates) {
			vals := strings.Split(tuple, ",")
			if len(vals) < 2 {
				continue
			}
			lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
			lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
			if err1 != nil || err2 != nil {
				continue
			}
			props := map[string]string{}
			if pm.Name != "" {
				props["name"] = pm.Name
			}
			out = append(out, Source{Lon: lon, Lat: lat, Props: props})
		}
	}
	if len(out) == 0 {
		return nil, errors.New("kml: no points found")
	}
	return out, nil
}

// ParseWKT parses POINT and MULTIPOINT text. Other geometry types are
// rejected; only point features are selectable.
func ParseWKT(wkt string) ([]Source, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return nil, errors.New("empty wkt")
	}
	up := strings.ToUpper(s)
	if !strings.HasPrefix(up, "POINT") && !strings.HasPrefix(up, "MULTIPOINT") {
		return nil, errors.New("unsupported wkt type (points only)")
	}
	i := strings.Index(s, "(")
	j := strings.LastIndex(s, ")")
	if i < 0 || j <= i {
		return nil, errors.New("wkt: invalid")
	}
	var out []Source
	for _, tup := range strings.Split(s[i+1:j], ",") {
		tup = strings.Trim(strings.TrimSpace(tup), "()")
		parts := strings.Fields(tup)
		if len(parts) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(parts[0], 64)
		lat, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, Source{Lon: lon, Lat: lat, Props: map[string]string{}})
	}
	if len(out) == 0 {
		return nil, errors.New("wkt: no coordinates parsed")
	}
	return out, nil
}

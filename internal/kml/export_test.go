package kml_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/meridian/internal/geo"
	"github.com/UnknownOlympus/meridian/internal/kml"
	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// localPaths builds two short local frame paths whose inverse conversion is
// well inside the arcsine domain.
func localPaths(t *testing.T) (x1, y1, x2, y2 []float64) {
	t.Helper()

	lat := []float64{geo.Lat0, geo.Lat0 + 1e-4, geo.Lat0 + 2e-4}
	lon := []float64{geo.Lon0, geo.Lon0 + 1e-4, geo.Lon0 + 2e-4}
	x1, y1, err := geo.ToLocal(lat, lon)
	require.NoError(t, err)
	x2, y2, err = geo.ToLocal(lat, lon)
	require.NoError(t, err)
	return x1, y1, x2, y2
}

func TestExport(t *testing.T) {
	defer filet.CleanUp(t)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	exporter := kml.NewExporter("testdata/template.kml", logger)

	t.Run("labels and coordinates land in their slots", func(t *testing.T) {
		x1, y1, x2, y2 := localPaths(t)
		outPath := filepath.Join(filet.TmpDir(t, ""), "output.kml")

		err := exporter.Export(x1, y1, x2, y2, "EKF estimate", "RTK truth", false, outPath)
		require.NoError(t, err)

		doc := etree.NewDocument()
		require.NoError(t, doc.ReadFromFile(outPath))

		names := doc.Root().FindElements("//name")
		require.Len(t, names, 3)
		assert.Equal(t, "EKF estimate", names[1].Text())
		assert.Equal(t, "RTK truth", names[2].Text())

		coords := doc.Root().FindElements("//coordinates")
		require.Len(t, coords, 2)
		records := strings.Split(strings.TrimSpace(coords[0].Text()), "\n")
		assert.Len(t, records, 3)
		// lon,lat,1 per record
		fields := strings.Split(records[0], ",")
		require.Len(t, fields, 3)
		assert.Equal(t, "1", fields[2])
	})

	t.Run("output carries an XML declaration", func(t *testing.T) {
		x1, y1, x2, y2 := localPaths(t)
		outPath := filepath.Join(filet.TmpDir(t, ""), "output.kml")

		require.NoError(t, exporter.Export(x1, y1, x2, y2, "a", "b", false, outPath))

		raw, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(raw), "<?xml"))
	})

	t.Run("declaration-less template still yields a declaration", func(t *testing.T) {
		dir := filet.TmpDir(t, "")
		tmpl := filepath.Join(dir, "template.kml")
		body := `<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <name>doc</name>
    <Placemark><name>a</name><LineString><coordinates></coordinates></LineString></Placemark>
    <Placemark><name>b</name><LineString><coordinates></coordinates></LineString></Placemark>
  </Document>
</kml>`
		require.NoError(t, os.WriteFile(tmpl, []byte(body), 0o600))

		bare := kml.NewExporter(tmpl, logger)
		x1, y1, x2, y2 := localPaths(t)
		outPath := filepath.Join(dir, "output.kml")

		require.NoError(t, bare.Export(x1, y1, x2, y2, "a", "b", false, outPath))

		raw, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(raw), "<?xml"))
	})

	t.Run("nil estimated path leaves its slot untouched", func(t *testing.T) {
		_, _, x2, y2 := localPaths(t)
		outPath := filepath.Join(filet.TmpDir(t, ""), "output.kml")

		err := exporter.Export(nil, nil, x2, y2, "est", "truth", false, outPath)
		require.NoError(t, err)

		doc := etree.NewDocument()
		require.NoError(t, doc.ReadFromFile(outPath))
		coords := doc.Root().FindElements("//coordinates")
		assert.Empty(t, strings.TrimSpace(coords[0].Text()))
		assert.NotEmpty(t, strings.TrimSpace(coords[1].Text()))
	})

	t.Run("subsample decimates the ground truth only", func(t *testing.T) {
		lat := make([]float64, 500)
		lon := make([]float64, 500)
		for i := range lat {
			lat[i] = geo.Lat0 + float64(i)*1e-7
			lon[i] = geo.Lon0 + float64(i)*1e-7
		}
		x2, y2, err := geo.ToLocal(lat, lon)
		require.NoError(t, err)
		x1, y1, _, _ := localPaths(t)
		outPath := filepath.Join(filet.TmpDir(t, ""), "output.kml")

		require.NoError(t, exporter.Export(x1, y1, x2, y2, "est", "truth", true, outPath))

		doc := etree.NewDocument()
		require.NoError(t, doc.ReadFromFile(outPath))
		coords := doc.Root().FindElements("//coordinates")
		est := strings.Split(strings.TrimSpace(coords[0].Text()), "\n")
		truth := strings.Split(strings.TrimSpace(coords[1].Text()), "\n")
		assert.Len(t, est, 3)
		// Indices 1, 201, 401 survive from 500 samples.
		assert.Len(t, truth, 3)
	})

	t.Run("missing template file", func(t *testing.T) {
		missing := kml.NewExporter(filepath.Join(filet.TmpDir(t, ""), "nope.kml"), logger)
		x1, y1, x2, y2 := localPaths(t)

		err := missing.Export(x1, y1, x2, y2, "a", "b", false, filepath.Join(filet.TmpDir(t, ""), "out.kml"))

		require.Error(t, err)
		require.ErrorContains(t, err, "failed to read KML template")
	})

	t.Run("template without enough slots", func(t *testing.T) {
		dir := filet.TmpDir(t, "")
		tmpl := filepath.Join(dir, "template.kml")
		body := `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <name>only one</name>
  </Document>
</kml>`
		require.NoError(t, os.WriteFile(tmpl, []byte(body), 0o600))
		bad := kml.NewExporter(tmpl, logger)
		x1, y1, x2, y2 := localPaths(t)
		outPath := filepath.Join(dir, "out.kml")

		err := bad.Export(x1, y1, x2, y2, "a", "b", false, outPath)

		require.Error(t, err)
		var tmplErr *kml.TemplateError
		require.ErrorAs(t, err, &tmplErr)
		assert.Contains(t, tmplErr.Reason, "name slots")
		assert.NoFileExists(t, outPath)
	})

	t.Run("template with a foreign namespace", func(t *testing.T) {
		dir := filet.TmpDir(t, "")
		tmpl := filepath.Join(dir, "template.kml")
		body := `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://example.com/not-kml"><Document/></kml>`
		require.NoError(t, os.WriteFile(tmpl, []byte(body), 0o600))
		bad := kml.NewExporter(tmpl, logger)
		x1, y1, x2, y2 := localPaths(t)

		err := bad.Export(x1, y1, x2, y2, "a", "b", false, filepath.Join(dir, "out.kml"))

		var tmplErr *kml.TemplateError
		require.ErrorAs(t, err, &tmplErr)
		assert.Contains(t, tmplErr.Reason, "namespace")
	})

	t.Run("path outside the arcsine domain", func(t *testing.T) {
		outPath := filepath.Join(filet.TmpDir(t, ""), "out.kml")

		err := exporter.Export([]float64{1e9}, []float64{0}, nil, nil, "a", "b", false, outPath)

		require.Error(t, err)
		var domainErr *geo.DomainError
		require.ErrorAs(t, err, &domainErr)
	})
}

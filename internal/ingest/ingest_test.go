package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHeader = "id,fecha,lat,lng,latlng_explicit,idcomunidad,idprovincia,municipio,causa,superficie,muertos,heridos,time_ctrl,time_ext,personal,medios,gastos,perdidas\n"

func TestParseCleanRow(t *testing.T) {
	t.Parallel()

	csvData := sampleHeader +
		`f1,2017-10-15,42.35,-7.86,1,11,32,Carballeda de Avia,4,1200.5,0,2,300,1440,85,12,50000,250000` + "\n"

	fires, stats, err := parse(strings.NewReader(csvData), 1983)
	require.NoError(t, err)
	require.Len(t, fires, 1)
	assert.Equal(t, 1, stats.Loaded)

	rec := fires[0]
	assert.Equal(t, "f1", rec.SourceID)
	assert.Equal(t, "2017-10-15", rec.Date)
	assert.Equal(t, 2017, rec.Year)
	assert.Equal(t, 10, rec.Month)
	assert.Equal(t, 41, rec.Week)
	assert.Equal(t, "Galicia", rec.Community)
	assert.Equal(t, "Ourense", rec.Province)
	assert.Equal(t, "Carballeda de Avia", rec.Municipality)
	assert.Equal(t, "Intencionado", rec.Cause)
	assert.Equal(t, "Gran incendio (>500 ha)", rec.SizeClass)
	assert.InDelta(t, 1200.5, rec.BurnedArea, 0.001)
	assert.Equal(t, 2, rec.Injured)
	assert.Equal(t, 300, rec.ControlMinutes)
}

func TestParseStripsQuotedCoordinates(t *testing.T) {
	t.Parallel()

	// Some source rows wrap coordinates in literal quote characters.
	csvData := sampleHeader +
		`f1,2000-06-01,"""40.41""","""-3.70""",1,13,28,Madrid,2,5.0,0,0,60,120,10,2,0,0` + "\n"

	fires, _, err := parse(strings.NewReader(csvData), 1983)
	require.NoError(t, err)
	require.Len(t, fires, 1)
	assert.InDelta(t, 40.41, fires[0].Latitude, 0.001)
	assert.InDelta(t, -3.70, fires[0].Longitude, 0.001)
}

func TestParseSkipsInvalidRows(t *testing.T) {
	t.Parallel()

	csvData := sampleHeader +
		`f1,not-a-date,42.0,-7.0,1,11,32,A,4,10,0,0,0,0,0,0,0,0` + "\n" +
		`f2,1975-05-01,42.0,-7.0,1,11,32,B,4,10,0,0,0,0,0,0,0,0` + "\n" +
		`f3,2010-05-01,,,1,11,32,C,4,10,0,0,0,0,0,0,0,0` + "\n" +
		`f4,2010-05-01,42.0,-7.0,1,11,32,D,4,10,0,0,0,0,0,0,0,0` + "\n"

	fires, stats, err := parse(strings.NewReader(csvData), 1983)
	require.NoError(t, err)
	require.Len(t, fires, 1)
	assert.Equal(t, "f4", fires[0].SourceID)
	assert.Equal(t, 4, stats.TotalRows)
	assert.Equal(t, 1, stats.SkippedBadDate)
	assert.Equal(t, 1, stats.SkippedOldYear)
	assert.Equal(t, 1, stats.SkippedNoCoord)
}

func TestParseClampsNegativeResponseTimes(t *testing.T) {
	t.Parallel()

	csvData := sampleHeader +
		`f1,2010-05-01,42.0,-7.0,1,11,32,A,4,10,0,0,-30,-1,0,0,0,0` + "\n"

	fires, _, err := parse(strings.NewReader(csvData), 1983)
	require.NoError(t, err)
	require.Len(t, fires, 1)
	assert.Zero(t, fires[0].ControlMinutes)
	assert.Zero(t, fires[0].ExtinctionMinutes)
}

func TestParseUnknownCodesGetFallbackNames(t *testing.T) {
	t.Parallel()

	csvData := sampleHeader +
		`f1,2010-05-01,42.0,-7.0,1,77,88,A,99,10,0,0,0,0,0,0,0,0` + "\n"

	fires, _, err := parse(strings.NewReader(csvData), 1983)
	require.NoError(t, err)
	require.Len(t, fires, 1)
	assert.Equal(t, "Comunidad 77", fires[0].Community)
	assert.Equal(t, "Provincia 88", fires[0].Province)
	assert.Equal(t, "Causa 99", fires[0].Cause)
}

func TestParseMissingColumnFails(t *testing.T) {
	t.Parallel()

	csvData := "id,fecha,lat,lng\nf1,2010-05-01,42.0,-7.0\n"

	_, _, err := parse(strings.NewReader(csvData), 1983)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "idcomunidad")
}

func TestLoadFiresMissingFile(t *testing.T) {
	t.Parallel()

	_, _, err := LoadFires("testdata/does-not-exist.csv", 1983)
	require.Error(t, err)
}

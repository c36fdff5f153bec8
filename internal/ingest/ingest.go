// Package ingest loads the fire incident CSV and turns raw rows into clean
// datastore records.
package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yboleas/incendio-go/internal/datastore"
	"github.com/yboleas/incendio-go/internal/errors"
	"github.com/yboleas/incendio-go/internal/fire"
	"github.com/yboleas/incendio-go/internal/logging"
)

const dateLayout = "2006-01-02"

// Stats summarizes the outcome of a CSV load.
type Stats struct {
	TotalRows      int // data rows read from the file
	Loaded         int // rows converted into records
	SkippedBadDate int // rows with an unparseable or missing date
	SkippedOldYear int // rows before the minimum year
	SkippedNoCoord int // rows without usable coordinates
}

// Required CSV columns. Any additional columns are ignored.
var requiredColumns = []string{
	"fecha", "lat", "lng", "idcomunidad", "idprovincia",
	"municipio", "causa", "superficie",
}

// columnIndex maps header names to their position in the CSV.
type columnIndex map[string]int

func (ci columnIndex) get(record []string, name string) string {
	idx, ok := ci[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// LoadFires reads the CSV at path and returns clean fire records. Rows with
// a bad date, a year before minYear or missing coordinates are dropped and
// counted rather than failing the whole load.
func LoadFires(path string, minYear int) ([]datastore.Fire, *Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.New(err).
			Component("ingest").
			Category(errors.CategoryFileIO).
			FileContext(path, 0).
			Build()
	}
	defer f.Close()

	fires, stats, err := parse(f, minYear)
	if err != nil {
		return nil, nil, errors.New(err).
			Component("ingest").
			Category(errors.CategoryFileParsing).
			FileContext(path, 0).
			Build()
	}

	logging.ForService("ingest").Info("Fire dataset loaded",
		"path", path,
		"rows", stats.TotalRows,
		"loaded", stats.Loaded,
		"skipped_bad_date", stats.SkippedBadDate,
		"skipped_old_year", stats.SkippedOldYear,
		"skipped_no_coord", stats.SkippedNoCoord)

	return fires, stats, nil
}

func parse(r io.Reader, minYear int) ([]datastore.Fire, *Stats, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, errors.Newf("reading CSV header: %v", err).
			Component("ingest").
			Category(errors.CategoryFileParsing).
			Build()
	}

	cols := make(columnIndex, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, nil, errors.Newf("CSV is missing required column %q", name).
				Component("ingest").
				Category(errors.CategoryFileParsing).
				Build()
		}
	}

	stats := &Stats{}
	var fires []datastore.Fire
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.Newf("reading CSV row %d: %v", stats.TotalRows+2, err).
				Component("ingest").
				Category(errors.CategoryFileParsing).
				Build()
		}
		stats.TotalRows++

		rec, ok := convertRow(cols, record, minYear, stats)
		if ok {
			fires = append(fires, rec)
		}
	}

	stats.Loaded = len(fires)
	return fires, stats, nil
}

// convertRow cleans a single CSV row. The coordinate columns sometimes carry
// embedded quotes around the numeric value, those are stripped before
// parsing. Negative control and extinction times are clamped to zero.
func convertRow(cols columnIndex, record []string, minYear int, stats *Stats) (datastore.Fire, bool) {
	date, err := time.Parse(dateLayout, cols.get(record, "fecha"))
	if err != nil {
		stats.SkippedBadDate++
		return datastore.Fire{}, false
	}
	if date.Year() < minYear {
		stats.SkippedOldYear++
		return datastore.Fire{}, false
	}

	lat, latOK := parseCoordinate(cols.get(record, "lat"))
	lng, lngOK := parseCoordinate(cols.get(record, "lng"))
	if !latOK || !lngOK {
		stats.SkippedNoCoord++
		return datastore.Fire{}, false
	}

	communityID := parseInt(cols.get(record, "idcomunidad"))
	provinceID := parseInt(cols.get(record, "idprovincia"))
	causeCode := parseInt(cols.get(record, "causa"))
	burnedArea := parseFloat(cols.get(record, "superficie"))

	_, week := date.ISOWeek()

	return datastore.Fire{
		SourceID:          cols.get(record, "id"),
		Date:              date.Format(dateLayout),
		Year:              date.Year(),
		Month:             int(date.Month()),
		Week:              week,
		Latitude:          lat,
		Longitude:         lng,
		CommunityID:       communityID,
		Community:         fire.CommunityName(communityID),
		ProvinceID:        provinceID,
		Province:          fire.ProvinceName(provinceID),
		Municipality:      cols.get(record, "municipio"),
		CauseCode:         causeCode,
		Cause:             fire.CauseName(causeCode),
		SizeClass:         fire.SizeClass(burnedArea),
		BurnedArea:        burnedArea,
		Deaths:            parseInt(cols.get(record, "muertos")),
		Injured:           parseInt(cols.get(record, "heridos")),
		ControlMinutes:    clampNonNegative(parseInt(cols.get(record, "time_ctrl"))),
		ExtinctionMinutes: clampNonNegative(parseInt(cols.get(record, "time_ext"))),
		Personnel:         parseInt(cols.get(record, "personal")),
		Resources:         parseInt(cols.get(record, "medios")),
		Costs:             parseFloat(cols.get(record, "gastos")),
		Losses:            parseFloat(cols.get(record, "perdidas")),
	}, true
}

// parseCoordinate strips embedded quotes and parses a decimal degree value.
func parseCoordinate(s string) (float64, bool) {
	s = strings.ReplaceAll(s, `"`, "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseInt returns 0 for empty or malformed values.
func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

// parseFloat returns 0 for empty or malformed values.
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

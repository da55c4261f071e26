package localdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"CoinScope/internal/domain/models"
)

const dateLayout = "2006-01-02"

// Loader reads the preprocessed historical price file shown on the
// price analysis view. Rows on or after the cutoff date are dropped
// before display.
type Loader struct {
	path   string
	cutoff time.Time
}

// NewLoader creates a loader for the given CSV file and cutoff date.
func NewLoader(path string, cutoff time.Time) *Loader {
	return &Loader{path: path, cutoff: cutoff}
}

// Load parses the file and returns its date/close series, ascending,
// filtered to dates strictly before the cutoff.
func (l *Loader) Load() ([]models.PricePoint, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, &models.DataUnavailableError{Provider: "localdata", Reason: err.Error()}
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, &models.DataUnavailableError{Provider: "localdata", Reason: "missing header row"}
	}

	dateIdx, closeIdx := -1, -1
	for i, col := range header {
		switch col {
		case "date":
			dateIdx = i
		case "price_close":
			closeIdx = i
		}
	}
	if dateIdx < 0 || closeIdx < 0 {
		return nil, &models.DataUnavailableError{
			Provider: "localdata",
			Reason:   "required columns date, price_close not found",
		}
	}

	var points []models.PricePoint
	for line := 2; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &models.DataUnavailableError{
				Provider: "localdata",
				Reason:   fmt.Sprintf("line %d: malformed row: %v", line, err),
			}
		}
		d, err := time.Parse(dateLayout, row[dateIdx])
		if err != nil {
			return nil, &models.DataUnavailableError{
				Provider: "localdata",
				Reason:   fmt.Sprintf("line %d: bad date %q", line, row[dateIdx]),
			}
		}
		c, err := strconv.ParseFloat(row[closeIdx], 64)
		if err != nil {
			return nil, &models.DataUnavailableError{
				Provider: "localdata",
				Reason:   fmt.Sprintf("line %d: bad close %q", line, row[closeIdx]),
			}
		}
		if !d.Before(l.cutoff) {
			continue
		}
		points = append(points, models.PricePoint{Date: d, Close: c})
	}

	return points, nil
}

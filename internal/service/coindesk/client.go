package coindesk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"CoinScope/internal/domain/models"
	drepo "CoinScope/internal/domain/repository"
	xhttp "CoinScope/pkg/http"
	"CoinScope/pkg/util"
)

const providerName = "coindesk"

// Client fetches daily OHLC history from a CoinDesk-style index API.
type Client struct {
	baseURL   string
	market    string
	aggregate int
	httpc     *xhttp.Client
}

// New creates a historical data client. One attempt per fetch, bounded
// by the given timeout; no retries.
func New(baseURL, market string, aggregate int, timeout time.Duration) drepo.HistoricalSource {
	return &Client{
		baseURL:   baseURL,
		market:    market,
		aggregate: aggregate,
		httpc:     xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type dayRow struct {
	Timestamp *int64   `json:"TIMESTAMP"`
	Time      *int64   `json:"TIME"`
	Open      *float64 `json:"OPEN"`
	High      *float64 `json:"HIGH"`
	Low       *float64 `json:"LOW"`
	Close     *float64 `json:"CLOSE"`
}

type daysResponse struct {
	Data []dayRow `json:"Data"`
}

// Fetch retrieves up to limit daily records for the instrument and
// returns them sorted ascending by date, one record per date.
func (c *Client) Fetch(ctx context.Context, symbol string, limit int) ([]models.OHLCRecord, error) {
	resp, err := c.httpc.SendRequest(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL,
		QueryParams: map[string][]string{
			"market":          {c.market},
			"instrument":      {symbol},
			"limit":           {strconv.Itoa(limit)},
			"aggregate":       {strconv.Itoa(c.aggregate)},
			"fill":            {"true"},
			"apply_mapping":   {"true"},
			"response_format": {"json"},
		},
	})
	if err != nil {
		return nil, &models.FetchError{Provider: providerName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &models.FetchError{
			Provider: providerName,
			Err:      fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body),
		}
	}

	var payload daysResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &models.DataUnavailableError{Provider: providerName, Reason: "malformed JSON payload"}
	}
	if len(payload.Data) == 0 {
		return nil, &models.DataUnavailableError{Provider: providerName, Reason: "empty Data array"}
	}

	records := make([]models.OHLCRecord, 0, len(payload.Data))
	for i, row := range payload.Data {
		ts := row.Timestamp
		if ts == nil {
			ts = row.Time
		}
		if ts == nil {
			return nil, &models.DataUnavailableError{
				Provider: providerName,
				Reason:   fmt.Sprintf("row %d missing TIMESTAMP", i),
			}
		}
		if row.Open == nil || row.High == nil || row.Low == nil || row.Close == nil {
			return nil, &models.DataUnavailableError{
				Provider: providerName,
				Reason:   fmt.Sprintf("row %d missing OHLC field", i),
			}
		}
		records = append(records, models.OHLCRecord{
			Date:  util.DayOf(time.Unix(*ts, 0)),
			Open:  *row.Open,
			High:  *row.High,
			Low:   *row.Low,
			Close: *row.Close,
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	// One record per date: the provider occasionally repeats a day, the
	// later record wins.
	deduped := records[:0]
	for _, r := range records {
		if n := len(deduped); n > 0 && deduped[n-1].Date.Equal(r.Date) {
			deduped[n-1] = r
			continue
		}
		deduped = append(deduped, r)
	}

	return deduped, nil
}

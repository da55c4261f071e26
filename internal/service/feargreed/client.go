package feargreed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"CoinScope/internal/domain/models"
	drepo "CoinScope/internal/domain/repository"
	xhttp "CoinScope/pkg/http"
	"CoinScope/pkg/util"
)

const providerName = "feargreed"

// Client fetches the Fear & Greed market sentiment index.
type Client struct {
	baseURL string
	httpc   *xhttp.Client
}

// New creates a sentiment client. One attempt per fetch, no retries.
func New(baseURL string, timeout time.Duration) drepo.SentimentSource {
	return &Client{
		baseURL: baseURL,
		httpc:   xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// The provider encodes numbers as JSON strings.
type fngRow struct {
	Timestamp      *string `json:"timestamp"`
	Value          *string `json:"value"`
	Classification *string `json:"value_classification"`
}

type fngResponse struct {
	Data []fngRow `json:"data"`
}

// Fetch retrieves up to limit sentiment readings, newest-first as the
// provider returns them.
func (c *Client) Fetch(ctx context.Context, limit int) ([]models.SentimentRecord, error) {
	resp, err := c.httpc.SendRequest(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL,
		QueryParams: map[string][]string{
			"limit":  {strconv.Itoa(limit)},
			"format": {"json"},
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

	var payload fngResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &models.DataUnavailableError{Provider: providerName, Reason: "malformed JSON payload"}
	}
	if len(payload.Data) == 0 {
		return nil, &models.DataUnavailableError{Provider: providerName, Reason: "empty data array"}
	}

	records := make([]models.SentimentRecord, 0, len(payload.Data))
	for i, row := range payload.Data {
		if row.Timestamp == nil || row.Value == nil || row.Classification == nil {
			return nil, &models.DataUnavailableError{
				Provider: providerName,
				Reason:   fmt.Sprintf("row %d missing required field", i),
			}
		}
		ts, ok := util.ParseTime(*row.Timestamp)
		if !ok {
			return nil, &models.DataUnavailableError{
				Provider: providerName,
				Reason:   fmt.Sprintf("row %d has unparseable timestamp %q", i, *row.Timestamp),
			}
		}
		score, err := strconv.Atoi(*row.Value)
		if err != nil {
			return nil, &models.DataUnavailableError{
				Provider: providerName,
				Reason:   fmt.Sprintf("row %d has non-numeric value %q", i, *row.Value),
			}
		}
		records = append(records, models.SentimentRecord{
			Date:           util.DayOf(ts),
			Score:          score,
			Classification: *row.Classification,
		})
	}

	return records, nil
}

package models

import "time"

// OHLCRecord is one daily open/high/low/close record for a symbol.
// A series holds exactly one record per date, ordered ascending.
type OHLCRecord struct {
	Date  time.Time `json:"date"`
	Open  float64   `json:"open"`
	High  float64   `json:"high"`
	Low   float64   `json:"low"`
	Close float64   `json:"close"`
}

// SentimentRecord is one Fear & Greed index reading. Series are kept
// newest-first, the order the provider returns them in.
type SentimentRecord struct {
	Date           time.Time `json:"date"`
	Score          int       `json:"score"`
	Classification string    `json:"classification"`
}

// PricePoint is a date/close pair from the local preprocessed price file.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

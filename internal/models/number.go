package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Price decodes leniently: JSON numbers and numeric strings are accepted,
// anything else becomes 0.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	*p = Price(parseLenientFloat(data))
	return nil
}

func (p Price) Float64() float64 {
	f := float64(p)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return f
}

// Quantity decodes leniently in the same way as Price, truncating to an integer.
type Quantity int

func (q *Quantity) UnmarshalJSON(data []byte) error {
	*q = Quantity(int(parseLenientFloat(data)))
	return nil
}

func parseLenientFloat(data []byte) float64 {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0
	}

	switch v := raw.(type) {
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	default:
		return 0
	}
}

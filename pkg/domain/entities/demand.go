package entities

import "time"

// TimeSeries is an ordered sequence of observations, such as daily unit sales
type TimeSeries []float64

// DailySale is one day of unit sales for a product
type DailySale struct {
	SKU   SKU
	Date  time.Time
	Units float64
}

// SalesHistory holds the daily sales series of a product, oldest first
type SalesHistory struct {
	SKU   SKU        `json:"sku"`
	Start time.Time  `json:"start"`
	Daily TimeSeries `json:"daily"`
}

// Last returns at most the n most recent observations
func (t TimeSeries) Last(n int) TimeSeries {
	if n <= 0 {
		return TimeSeries{}
	}
	if n >= len(t) {
		return t
	}
	return t[len(t)-n:]
}

// Sum returns the total of all observations
func (t TimeSeries) Sum() float64 {
	var total float64
	for _, v := range t {
		total += v
	}
	return total
}

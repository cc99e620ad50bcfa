// Package aggregate computes averages, totals, latest values and trend
// deltas over metric series. All functions are pure and tolerate empty input.
package aggregate

import (
	"math"
	"time"

	"github.com/crisphealth/health-assistant/internal/domain"
)

// Average returns the arithmetic mean of the series, or 0 when it is empty.
func Average(series domain.MetricSeries) float64 {
	if len(series) == 0 {
		return 0
	}
	return Total(series) / float64(len(series))
}

// Total returns the sum of all values. Samples sharing a date are all counted.
func Total(series domain.MetricSeries) float64 {
	sum := 0.0
	for _, m := range series {
		sum += m.Value
	}
	return sum
}

// Latest returns the value of the first sample dated onDate when onDate is
// given and such a sample exists, otherwise the chronologically last sample.
func Latest(series domain.MetricSeries, onDate *time.Time) float64 {
	if len(series) == 0 {
		return 0
	}

	if onDate != nil {
		day := onDate.Format("2006-01-02")
		for _, m := range series {
			if m.Date == day {
				return m.Value
			}
		}
	}

	last := series[0]
	for _, m := range series[1:] {
		if !m.Timestamp.Before(last.Timestamp) {
			last = m
		}
	}
	return last.Value
}

// TrendDelta is Average(current) - Average(previous), rounded for kind.
func TrendDelta(kind domain.MetricKind, current, previous domain.MetricSeries) float64 {
	return RoundForKind(kind, Average(current)-Average(previous))
}

// RoundForKind rounds sleep and weight to one decimal and the count-like
// metrics (steps, calories, heart rate) to whole numbers.
func RoundForKind(kind domain.MetricKind, v float64) float64 {
	switch kind {
	case domain.MetricSleep, domain.MetricWeight:
		return roundTo(v, 1)
	default:
		return roundTo(v, 0)
	}
}

// Averages computes the rounded per-kind averages of a snapshot.
func Averages(s *domain.HealthSnapshot) domain.MetricAverages {
	return domain.MetricAverages{
		Steps:     RoundForKind(domain.MetricSteps, Average(s.Steps)),
		Calories:  RoundForKind(domain.MetricCalories, Average(s.Calories)),
		HeartRate: RoundForKind(domain.MetricHeartRate, Average(s.HeartRate)),
		Sleep:     RoundForKind(domain.MetricSleep, Average(s.Sleep)),
		Weight:    RoundForKind(domain.MetricWeight, Average(s.Weight)),
	}
}

// Totals sums steps, calories and sleep hours across a snapshot.
func Totals(s *domain.HealthSnapshot) domain.MetricTotals {
	return domain.MetricTotals{
		Steps:      Total(s.Steps),
		Calories:   Total(s.Calories),
		SleepHours: roundTo(Total(s.Sleep), 1),
	}
}

// Deltas computes TrendDelta for every kind between two snapshots.
func Deltas(current, previous *domain.HealthSnapshot) domain.MetricDeltas {
	return domain.MetricDeltas{
		Steps:     TrendDelta(domain.MetricSteps, current.Steps, previous.Steps),
		Calories:  TrendDelta(domain.MetricCalories, current.Calories, previous.Calories),
		HeartRate: TrendDelta(domain.MetricHeartRate, current.HeartRate, previous.HeartRate),
		Sleep:     TrendDelta(domain.MetricSleep, current.Sleep, previous.Sleep),
		Weight:    TrendDelta(domain.MetricWeight, current.Weight, previous.Weight),
	}
}

// LatestValues holds the most recent value of every kind.
type LatestValues struct {
	Steps     float64
	Calories  float64
	HeartRate float64
	Sleep     float64
	Weight    float64
}

// LatestOf extracts the latest value per kind, preferring samples dated onDate.
func LatestOf(s *domain.HealthSnapshot, onDate *time.Time) LatestValues {
	return LatestValues{
		Steps:     Latest(s.Steps, onDate),
		Calories:  Latest(s.Calories, onDate),
		HeartRate: Latest(s.HeartRate, onDate),
		Sleep:     Latest(s.Sleep, onDate),
		Weight:    Latest(s.Weight, onDate),
	}
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	r := math.Round(v*p) / p
	if r == 0 {
		// avoid -0 in JSON output
		return 0
	}
	return r
}

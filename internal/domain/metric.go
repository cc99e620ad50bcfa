package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MetricKind identifies one of the tracked health measurements.
// @Description Health metric type.
type MetricKind string

const (
	MetricSteps     MetricKind = "steps"
	MetricCalories  MetricKind = "calories"
	MetricHeartRate MetricKind = "heart_rate"
	MetricSleep     MetricKind = "sleep"
	MetricWeight    MetricKind = "weight"

	// MetricAll requests every kind at once (HealthSnapshot).
	MetricAll MetricKind = "all"
)

// MetricKinds lists the concrete kinds in snapshot order.
var MetricKinds = []MetricKind{MetricSteps, MetricCalories, MetricHeartRate, MetricSleep, MetricWeight}

// MetricUnits maps each kind to its display unit.
var MetricUnits = map[MetricKind]string{
	MetricSteps:     "steps",
	MetricCalories:  "kcal",
	MetricHeartRate: "bpm",
	MetricSleep:     "hours",
	MetricWeight:    "kg",
}

// ParseMetricKind validates a metric_type value, including "all".
func ParseMetricKind(s string) (MetricKind, bool) {
	kind := MetricKind(s)
	if kind == MetricAll {
		return kind, true
	}
	_, ok := MetricUnits[kind]
	return kind, ok
}

// HealthMetric is a single dated observation.
// @Description One health sample for a calendar day.
type HealthMetric struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	// Metric type
	Kind MetricKind `gorm:"type:varchar(16);not null;index:idx_health_metrics_kind_date" json:"type" example:"steps"`
	// Observed value
	Value float64 `gorm:"not null" json:"value" example:"9432"`
	// Display unit
	Unit string `gorm:"type:varchar(16);not null" json:"unit" example:"steps"`
	// Calendar date in YYYY-MM-DD format
	Date string `gorm:"type:char(10);not null;index:idx_health_metrics_kind_date" json:"date" example:"2024-01-15"`
	// Observation instant
	Timestamp time.Time `gorm:"not null" json:"timestamp" example:"2024-01-15T08:00:00Z"`
}

func (HealthMetric) TableName() string {
	return "health_metrics"
}

// BeforeCreate assigns an ID so inserts work on databases without gen_random_uuid().
func (m *HealthMetric) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// MetricSeries is an ordered run of same-kind samples, oldest first.
type MetricSeries []HealthMetric

// HealthSnapshot bundles all five series.
// @Description All health metrics for a trailing window.
type HealthSnapshot struct {
	Steps     MetricSeries `json:"steps"`
	Calories  MetricSeries `json:"calories"`
	HeartRate MetricSeries `json:"heart_rate"`
	Sleep     MetricSeries `json:"sleep"`
	Weight    MetricSeries `json:"weight"`
	// Time the snapshot was assembled
	LastSync time.Time `json:"lastSync" example:"2024-01-15T08:00:00Z"`
}

// Series returns the snapshot's series for kind.
func (s *HealthSnapshot) Series(kind MetricKind) MetricSeries {
	switch kind {
	case MetricSteps:
		return s.Steps
	case MetricCalories:
		return s.Calories
	case MetricHeartRate:
		return s.HeartRate
	case MetricSleep:
		return s.Sleep
	case MetricWeight:
		return s.Weight
	}
	return nil
}

// Set stores series under kind.
func (s *HealthSnapshot) Set(kind MetricKind, series MetricSeries) {
	switch kind {
	case MetricSteps:
		s.Steps = series
	case MetricCalories:
		s.Calories = series
	case MetricHeartRate:
		s.HeartRate = series
	case MetricSleep:
		s.Sleep = series
	case MetricWeight:
		s.Weight = series
	}
}

package domain

import "encoding/json"

// SummaryPeriod selects the window for a health summary.
type SummaryPeriod string

const (
	PeriodToday SummaryPeriod = "today"
	PeriodWeek  SummaryPeriod = "week"
	PeriodMonth SummaryPeriod = "month"
)

// PeriodDays maps a summary period to its trailing day count.
var PeriodDays = map[SummaryPeriod]int{
	PeriodToday: 1,
	PeriodWeek:  7,
	PeriodMonth: 30,
}

// HealthDataRequest is the get_health_data tool input.
type HealthDataRequest struct {
	MetricType string `json:"metric_type" validate:"required,oneof=steps calories heart_rate sleep weight all" example:"all" enums:"steps,calories,heart_rate,sleep,weight,all"`
	Days       int    `json:"days" validate:"min=1,max=365" example:"7" minimum:"1" maximum:"365"`
}

// HealthQuestionRequest is the ask_health_question tool input.
type HealthQuestionRequest struct {
	Question    string `json:"question" validate:"required,notblank,max=2000" example:"How did I sleep this week?"`
	IncludeData *bool  `json:"include_data,omitempty" example:"true"`
}

// HealthSummaryRequest is the get_health_summary tool input.
type HealthSummaryRequest struct {
	Period string `json:"period" validate:"required,oneof=today week month" example:"week" enums:"today,week,month"`
}

// HealthTrendsRequest is the get_health_trends tool input.
type HealthTrendsRequest struct {
	Days int `json:"days" validate:"min=7,max=365" example:"30" minimum:"7" maximum:"365"`
}

// HealthData is the get_health_data result: one series, or a full snapshot
// when the request asked for "all".
type HealthData struct {
	Kind     MetricKind
	Series   MetricSeries
	Snapshot *HealthSnapshot
}

// MarshalJSON encodes the series as an array or the snapshot as an object.
func (d HealthData) MarshalJSON() ([]byte, error) {
	if d.Kind == MetricAll {
		return json.Marshal(d.Snapshot)
	}
	if d.Series == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(d.Series)
}

// HealthAnswer is the ask_health_question result.
// @Description Answer to a health question.
type HealthAnswer struct {
	Answer             string `json:"answer" example:"Your sleep pattern shows good consistency!"`
	Question           string `json:"question" example:"How did I sleep this week?"`
	HealthDataIncluded bool   `json:"healthDataIncluded" example:"true"`
	TraceID            string `json:"trace_id,omitempty"`
}

// MetricsCount reports how many samples each kind contributed.
type MetricsCount struct {
	Steps     int `json:"steps" example:"7"`
	Calories  int `json:"calories" example:"7"`
	HeartRate int `json:"heart_rate" example:"7"`
	Sleep     int `json:"sleep" example:"7"`
	Weight    int `json:"weight" example:"7"`
}

// HealthSummary is the get_health_summary result.
// @Description Narrated health summary for a period.
type HealthSummary struct {
	Summary    string        `json:"summary"`
	Period     SummaryPeriod `json:"period" example:"week"`
	HealthData struct {
		TotalDays    int          `json:"totalDays" example:"7"`
		MetricsCount MetricsCount `json:"metricsCount"`
	} `json:"healthData"`
	TraceID string `json:"trace_id,omitempty"`
}

// MetricAverages holds per-kind averages, rounded for display.
type MetricAverages struct {
	Steps     float64 `json:"steps" example:"9832"`
	Calories  float64 `json:"calories" example:"1994"`
	HeartRate float64 `json:"heartRate" example:"74"`
	Sleep     float64 `json:"sleep" example:"7.4"`
	Weight    float64 `json:"weight" example:"72.6"`
}

// MetricTotals holds per-kind sums over the window.
type MetricTotals struct {
	Steps      float64 `json:"steps" example:"68824"`
	Calories   float64 `json:"calories" example:"13958"`
	SleepHours float64 `json:"sleepHours" example:"51.8"`
}

// MetricDeltas holds average(current) - average(previous) per kind.
type MetricDeltas struct {
	Steps     float64 `json:"steps" example:"412"`
	Calories  float64 `json:"calories" example:"-35"`
	HeartRate float64 `json:"heartRate" example:"-1"`
	Sleep     float64 `json:"sleep" example:"0.3"`
	Weight    float64 `json:"weight" example:"-0.2"`
}

// TrendAnalysis is the narrated part of a trends result.
type TrendAnalysis struct {
	Analysis   string `json:"analysis"`
	Period     string `json:"period" example:"30 days"`
	DataPoints int    `json:"dataPoints" example:"30"`
}

// TrendStats groups the computed trend statistics.
type TrendStats struct {
	Averages MetricAverages `json:"averages"`
	Totals   MetricTotals   `json:"totals"`
	// Change against the preceding window, absent when it could not be fetched
	Changes *MetricDeltas `json:"changes,omitempty"`
	Trends  TrendAnalysis `json:"trends"`
}

// HealthTrends is the get_health_trends result.
// @Description Averages, totals and narrated trends over a window.
type HealthTrends struct {
	Trends     TrendStats      `json:"trends"`
	Period     int             `json:"period" example:"30"`
	HealthData *HealthSnapshot `json:"healthData"`
	TraceID    string          `json:"trace_id,omitempty"`
}

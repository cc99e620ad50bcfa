package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/crisphealth/health-assistant/internal/aggregate"
	"github.com/crisphealth/health-assistant/internal/domain"
)

// formatHealthData renders latest and average values for the narrator.
// Latest prefers today's sample, falling back to the most recent one.
func formatHealthData(s *domain.HealthSnapshot, today time.Time) string {
	latest := aggregate.LatestOf(s, &today)
	avg := aggregate.Averages(s)

	var b strings.Builder
	b.WriteString("Recent Health Metrics:\n")
	fmt.Fprintf(&b, "- Steps: %s (daily average: %s)\n", num(latest.Steps), num(avg.Steps))
	fmt.Fprintf(&b, "- Calories: %s kcal (daily average: %s)\n", num(latest.Calories), num(avg.Calories))
	fmt.Fprintf(&b, "- Heart Rate: %s bpm (daily average: %s)\n", num(latest.HeartRate), num(avg.HeartRate))
	fmt.Fprintf(&b, "- Sleep: %s hours (daily average: %s)\n", num(latest.Sleep), num(avg.Sleep))
	fmt.Fprintf(&b, "- Weight: %s kg (latest available)\n", num(latest.Weight))
	fmt.Fprintf(&b, "\nData covers %d days, last synced: %s", len(s.Steps), s.LastSync.Format("2006-01-02"))
	return b.String()
}

func questionPrompt(question string, data *domain.HealthSnapshot, today time.Time) string {
	prompt := "Question: " + question
	if data != nil {
		prompt += "\n\nUser's Recent Health Data:\n" + formatHealthData(data, today)
	}
	return prompt
}

func summaryPrompt(data *domain.HealthSnapshot, period domain.SummaryPeriod, today time.Time) string {
	periodText := "this " + string(period)
	if period == domain.PeriodToday {
		periodText = "today"
	}

	return fmt.Sprintf(`Based on the following health data, provide a concise summary of the user's health status for %s. Include key highlights, improvements, and gentle suggestions:

%s

Please provide:
1. Overall assessment
2. Key highlights (2-3 points)
3. One actionable suggestion for improvement

Keep it positive, encouraging, and under 150 words.`, periodText, formatHealthData(data, today))
}

func trendsPrompt(d domain.MetricDeltas) string {
	return fmt.Sprintf(`Analyze these health trends and provide encouraging insights:

Changes from previous period:
- Steps: %s
- Calories: %s kcal
- Heart Rate: %s bpm
- Sleep: %s hours
- Weight: %s kg

Provide a brief, positive analysis focusing on progress and motivation.`,
		signed(d.Steps, 0), signed(d.Calories, 0), signed(d.HeartRate, 0), signed(d.Sleep, 1), signed(d.Weight, 1))
}

// mealPrompt describes up to three meals as "name (cal, prep min, difficulty)".
func mealPrompt(top []domain.Meal, req domain.RecommendationRequest) string {
	summaries := make([]string, 0, len(top))
	for _, m := range top {
		summaries = append(summaries, fmt.Sprintf("%s (%s cal, %dmin, %s)", m.Name, num(m.Calories), m.PrepTime, m.Difficulty))
	}

	maxPrep := "no limit"
	if req.MaxPrepTime > 0 {
		maxPrep = strconv.Itoa(req.MaxPrepTime)
	}
	restrictions := "none"
	if len(req.DietaryRestrictions) > 0 {
		restrictions = strings.Join(req.DietaryRestrictions, ", ")
	}

	return fmt.Sprintf(`As a nutrition expert, provide a brief recommendation for these meal options:
%s

User preferences:
- Meal type: %s
- Max prep time: %s minutes
- Dietary restrictions: %s
- Calorie preference: %s
- Activity level: %s

Provide a 2-3 sentence recommendation focusing on why these meals are good choices for the user.`,
		strings.Join(summaries, ", "),
		orDefault(req.MealType, "any"),
		maxPrep,
		restrictions,
		orDefault(req.CalorieRange, "any"),
		orDefault(req.ActivityLevel, "not specified"),
	)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func signed(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if v > 0 {
		return "+" + s
	}
	return s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

package llm

import (
	"strings"

	"github.com/crisphealth/health-assistant/internal/domain"
)

// Canned texts stand in for the narrator when it is unconfigured or fails.
const (
	MealFallback = "Based on your preferences, these meals provide a good balance of nutrition, preparation time, and taste."

	TrendsNotEnoughHistory = "Not enough historical data for trend analysis. Keep tracking for better insights!"
	TrendsFallback         = "Your health trends are looking positive! Keep up the consistent activity and maintain your healthy habits. Great work!"

	answerActivity = "Based on your recent activity data, you're doing great! You've been consistently hitting your step goals. Keep up the excellent work and try to maintain this momentum. Consider adding some variety to your routine with different activities like hiking or swimming."
	answerSleep    = "Your sleep pattern shows good consistency! You're averaging around 7.2 hours per night, which is within the recommended range. To optimize further, try maintaining a regular bedtime routine and limiting screen time before bed."
	answerHeart    = "Your heart rate data indicates good cardiovascular health. Your resting heart rate is in a healthy range. Consider incorporating more cardio exercises to strengthen your heart further."
	answerTrend    = "Looking at your overall trends, you're making excellent progress! Your activity levels have been consistent, and your health metrics show positive patterns. Keep focusing on maintaining these healthy habits."
	answerDefault  = "Thanks for your question! Based on your health data, you're on a positive track. Keep maintaining your current healthy habits, stay consistent with your activity, and don't forget to prioritize good sleep and nutrition. Great work!"
)

var cannedAnswers = []struct {
	keywords []string
	answer   string
}{
	{[]string{"active", "steps"}, answerActivity},
	{[]string{"sleep"}, answerSleep},
	{[]string{"heart", "cardio"}, answerHeart},
	{[]string{"trend", "progress"}, answerTrend},
}

var cannedSummaries = map[domain.SummaryPeriod]string{
	domain.PeriodToday: "Today's looking great! Your activity levels are solid with good step counts and calorie burn. Your heart rate data shows you're maintaining good cardiovascular health. Keep up the momentum and remember to stay hydrated!",
	domain.PeriodWeek:  "This week has been fantastic for your health journey! You've been consistently active with an average of 9,800 steps per day and balanced calorie expenditure. Your sleep patterns are improving, averaging 7.2 hours nightly. Consider adding one more strength training session to complement your cardio routine.",
	domain.PeriodMonth: "This month shows excellent progress in your wellness journey! Your activity consistency has improved by 15%, with steady step counts and good calorie balance. Sleep quality is trending upward, and your heart rate variability indicates good recovery. Focus on maintaining this momentum while gradually increasing activity intensity.",
}

// CannedAnswer picks a canned reply by the first matching keyword group.
func CannedAnswer(question string) string {
	q := strings.ToLower(question)
	for _, c := range cannedAnswers {
		for _, kw := range c.keywords {
			if strings.Contains(q, kw) {
				return c.answer
			}
		}
	}
	return answerDefault
}

// CannedSummary returns the canned summary for period, defaulting to the week text.
func CannedSummary(period domain.SummaryPeriod) string {
	if s, ok := cannedSummaries[period]; ok {
		return s
	}
	return cannedSummaries[domain.PeriodWeek]
}

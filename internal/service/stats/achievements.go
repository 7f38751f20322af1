package stats

// Achievement identifiers. The set is fixed; display names and artwork
// are resolved client-side by ID.
const (
	AchievementFirstLearn    = "first_learn"
	AchievementFiftyReviews  = "fifty_reviews"
	AchievementFiveHundredRv = "five_hundred_reviews"
	AchievementTenMastered   = "ten_mastered"
	AchievementWeekStreak    = "week_streak"
	AchievementMonthStreak   = "month_streak"
	AchievementHundredDays   = "hundred_active_days"
)

// evaluateAchievements runs the fixed predicate set against the totals
// and current streak. Order is stable for rendering.
func evaluateAchievements(t Totals, streak int) []Achievement {
	return []Achievement{
		{ID: AchievementFirstLearn, Achieved: t.TotalLearns >= 1},
		{ID: AchievementFiftyReviews, Achieved: t.TotalReviews >= 50},
		{ID: AchievementFiveHundredRv, Achieved: t.TotalReviews >= 500},
		{ID: AchievementTenMastered, Achieved: t.Mastered >= 10},
		{ID: AchievementWeekStreak, Achieved: streak >= 7},
		{ID: AchievementMonthStreak, Achieved: streak >= 30},
		{ID: AchievementHundredDays, Achieved: t.ActiveDays >= 100},
	}
}

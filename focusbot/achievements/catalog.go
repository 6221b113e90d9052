package achievements

type Category string

const (
	CategoryMilestone Category = "milestone"
	CategoryTime      Category = "time"
	CategoryStreak    Category = "streak"
	CategoryIntensity Category = "intensity"
	CategorySchedule  Category = "schedule"
	CategoryLevel     Category = "level"
	CategoryMeta      Category = "meta"
)

type Kind string

const (
	KindSessions   Kind = "sessions"
	KindHours      Kind = "hours"
	KindStreak     Kind = "streak"
	KindActivities Kind = "activities"
	KindCustom     Kind = "custom"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Definition is one entry of the static catalog. Custom definitions are
// evaluated through the metric registered under their ID.
type Definition struct {
	ID          string
	Name        string
	Description string
	Emoji       string
	Category    Category
	Kind        Kind
	Threshold   int64
	XPReward    int64
	Rarity      Rarity
}

var catalog = []Definition{
	// Milestones
	{ID: "first_session", Name: "First Steps", Description: "Complete your first focus session", Emoji: "🌱", Category: CategoryMilestone, Kind: KindSessions, Threshold: 1, XPReward: 10, Rarity: RarityCommon},
	{ID: "sessions_10", Name: "Getting Into It", Description: "Complete 10 focus sessions", Emoji: "📘", Category: CategoryMilestone, Kind: KindSessions, Threshold: 10, XPReward: 25, Rarity: RarityCommon},
	{ID: "sessions_25", Name: "Regular", Description: "Complete 25 focus sessions", Emoji: "📗", Category: CategoryMilestone, Kind: KindSessions, Threshold: 25, XPReward: 50, Rarity: RarityUncommon},
	{ID: "sessions_50", Name: "Dedicated", Description: "Complete 50 focus sessions", Emoji: "📙", Category: CategoryMilestone, Kind: KindSessions, Threshold: 50, XPReward: 100, Rarity: RarityUncommon},
	{ID: "sessions_100", Name: "Centurion", Description: "Complete 100 focus sessions", Emoji: "💯", Category: CategoryMilestone, Kind: KindSessions, Threshold: 100, XPReward: 200, Rarity: RarityRare},
	{ID: "sessions_250", Name: "Unstoppable", Description: "Complete 250 focus sessions", Emoji: "🚀", Category: CategoryMilestone, Kind: KindSessions, Threshold: 250, XPReward: 400, Rarity: RarityEpic},
	{ID: "sessions_500", Name: "Focus Machine", Description: "Complete 500 focus sessions", Emoji: "⚙️", Category: CategoryMilestone, Kind: KindSessions, Threshold: 500, XPReward: 750, Rarity: RarityEpic},
	{ID: "sessions_1000", Name: "Thousand Sessions", Description: "Complete 1000 focus sessions", Emoji: "🏛️", Category: CategoryMilestone, Kind: KindSessions, Threshold: 1000, XPReward: 1500, Rarity: RarityLegendary},

	// Total focused time
	{ID: "hours_1", Name: "First Hour", Description: "Focus for 1 hour in total", Emoji: "⏱️", Category: CategoryTime, Kind: KindHours, Threshold: 1, XPReward: 10, Rarity: RarityCommon},
	{ID: "hours_10", Name: "Ten Hours", Description: "Focus for 10 hours in total", Emoji: "⌛", Category: CategoryTime, Kind: KindHours, Threshold: 10, XPReward: 25, Rarity: RarityCommon},
	{ID: "hours_25", Name: "Deep Worker", Description: "Focus for 25 hours in total", Emoji: "🧠", Category: CategoryTime, Kind: KindHours, Threshold: 25, XPReward: 50, Rarity: RarityUncommon},
	{ID: "hours_50", Name: "Half Century", Description: "Focus for 50 hours in total", Emoji: "🎯", Category: CategoryTime, Kind: KindHours, Threshold: 50, XPReward: 100, Rarity: RarityUncommon},
	{ID: "hours_100", Name: "Hundred Hours", Description: "Focus for 100 hours in total", Emoji: "🔥", Category: CategoryTime, Kind: KindHours, Threshold: 100, XPReward: 250, Rarity: RarityRare},
	{ID: "hours_250", Name: "Scholar", Description: "Focus for 250 hours in total", Emoji: "🎓", Category: CategoryTime, Kind: KindHours, Threshold: 250, XPReward: 500, Rarity: RarityEpic},
	{ID: "hours_500", Name: "Sage", Description: "Focus for 500 hours in total", Emoji: "📜", Category: CategoryTime, Kind: KindHours, Threshold: 500, XPReward: 1000, Rarity: RarityEpic},
	{ID: "hours_1000", Name: "Mastery", Description: "Focus for 1000 hours in total", Emoji: "👑", Category: CategoryTime, Kind: KindHours, Threshold: 1000, XPReward: 2000, Rarity: RarityLegendary},

	// Streaks
	{ID: "streak_3", Name: "Warming Up", Description: "Reach a 3 day streak", Emoji: "✨", Category: CategoryStreak, Kind: KindStreak, Threshold: 3, XPReward: 15, Rarity: RarityCommon},
	{ID: "streak_7", Name: "Week Strong", Description: "Reach a 7 day streak", Emoji: "📅", Category: CategoryStreak, Kind: KindStreak, Threshold: 7, XPReward: 50, Rarity: RarityUncommon},
	{ID: "streak_14", Name: "Fortnight", Description: "Reach a 14 day streak", Emoji: "🗓️", Category: CategoryStreak, Kind: KindStreak, Threshold: 14, XPReward: 100, Rarity: RarityRare},
	{ID: "streak_30", Name: "Monthly Habit", Description: "Reach a 30 day streak", Emoji: "🌙", Category: CategoryStreak, Kind: KindStreak, Threshold: 30, XPReward: 250, Rarity: RarityEpic},
	{ID: "streak_60", Name: "Iron Will", Description: "Reach a 60 day streak", Emoji: "🛡️", Category: CategoryStreak, Kind: KindStreak, Threshold: 60, XPReward: 500, Rarity: RarityEpic},
	{ID: "streak_100", Name: "Triple Digits", Description: "Reach a 100 day streak", Emoji: "💎", Category: CategoryStreak, Kind: KindStreak, Threshold: 100, XPReward: 1000, Rarity: RarityLegendary},
	{ID: "streak_365", Name: "Year of Focus", Description: "Reach a 365 day streak", Emoji: "🌍", Category: CategoryStreak, Kind: KindStreak, Threshold: 365, XPReward: 5000, Rarity: RarityLegendary},

	// Single-session length
	{ID: "marathon_2h", Name: "Long Haul", Description: "Focus for 2 hours in one session", Emoji: "🏃", Category: CategoryIntensity, Kind: KindCustom, Threshold: 2 * 3600, XPReward: 25, Rarity: RarityCommon},
	{ID: "marathon_3h", Name: "Marathon", Description: "Focus for 3 hours in one session", Emoji: "🏅", Category: CategoryIntensity, Kind: KindCustom, Threshold: 3 * 3600, XPReward: 50, Rarity: RarityUncommon},
	{ID: "marathon_4h", Name: "Ultra", Description: "Focus for 4 hours in one session", Emoji: "🥇", Category: CategoryIntensity, Kind: KindCustom, Threshold: 4 * 3600, XPReward: 100, Rarity: RarityRare},
	{ID: "marathon_6h", Name: "Iron Focus", Description: "Focus for 6 hours in one session", Emoji: "🏆", Category: CategoryIntensity, Kind: KindCustom, Threshold: 6 * 3600, XPReward: 250, Rarity: RarityEpic},
	{ID: "personal_best", Name: "New Record", Description: "Beat your longest session", Emoji: "📈", Category: CategoryIntensity, Kind: KindCustom, Threshold: 1, XPReward: 25, Rarity: RarityUncommon},

	// Time of day
	{ID: "early_bird_5", Name: "Early Bird", Description: "Start 5 sessions between 5 and 7 am", Emoji: "🐦", Category: CategorySchedule, Kind: KindCustom, Threshold: 5, XPReward: 25, Rarity: RarityUncommon},
	{ID: "early_bird_25", Name: "Dawn Patrol", Description: "Start 25 sessions between 5 and 7 am", Emoji: "🌅", Category: CategorySchedule, Kind: KindCustom, Threshold: 25, XPReward: 100, Rarity: RarityRare},
	{ID: "night_owl_5", Name: "Night Owl", Description: "Start 5 sessions after 11 pm", Emoji: "🦉", Category: CategorySchedule, Kind: KindCustom, Threshold: 5, XPReward: 25, Rarity: RarityUncommon},
	{ID: "night_owl_25", Name: "Nocturnal", Description: "Start 25 sessions after 11 pm", Emoji: "🌌", Category: CategorySchedule, Kind: KindCustom, Threshold: 25, XPReward: 100, Rarity: RarityRare},
	{ID: "midnight_oil_10", Name: "Midnight Oil", Description: "Start 10 sessions between midnight and 5 am", Emoji: "🕯️", Category: CategorySchedule, Kind: KindCustom, Threshold: 10, XPReward: 75, Rarity: RarityRare},
	{ID: "morning_person_10", Name: "Morning Person", Description: "Complete 10 sessions of at least an hour started before 10 am", Emoji: "☀️", Category: CategorySchedule, Kind: KindCustom, Threshold: 10, XPReward: 75, Rarity: RarityRare},

	// Variety
	{ID: "explorer_3", Name: "Curious", Description: "Focus on 3 different activities", Emoji: "🧭", Category: CategoryMilestone, Kind: KindActivities, Threshold: 3, XPReward: 15, Rarity: RarityCommon},
	{ID: "explorer_5", Name: "Explorer", Description: "Focus on 5 different activities", Emoji: "🗺️", Category: CategoryMilestone, Kind: KindActivities, Threshold: 5, XPReward: 40, Rarity: RarityUncommon},
	{ID: "explorer_10", Name: "Polymath", Description: "Focus on 10 different activities", Emoji: "🌐", Category: CategoryMilestone, Kind: KindActivities, Threshold: 10, XPReward: 100, Rarity: RarityRare},

	// Calendar coverage
	{ID: "weekend_warrior", Name: "Weekend Warrior", Description: "Focus on both Saturday and Sunday of a week", Emoji: "⚔️", Category: CategorySchedule, Kind: KindCustom, Threshold: 1, XPReward: 30, Rarity: RarityUncommon},
	{ID: "weekend_regular", Name: "Weekend Regular", Description: "Focus on both weekend days in 4 different weeks", Emoji: "🛋️", Category: CategorySchedule, Kind: KindCustom, Threshold: 4, XPReward: 100, Rarity: RarityRare},
	{ID: "perfect_week", Name: "Perfect Week", Description: "Focus on every day of a week", Emoji: "🌈", Category: CategoryStreak, Kind: KindCustom, Threshold: 1, XPReward: 100, Rarity: RarityRare},
	{ID: "perfect_month", Name: "Perfect Month", Description: "Focus on every day of a month", Emoji: "🌕", Category: CategoryStreak, Kind: KindCustom, Threshold: 1, XPReward: 500, Rarity: RarityLegendary},

	// Levels
	{ID: "level_5", Name: "Apprentice", Description: "Reach level 5", Emoji: "⭐", Category: CategoryLevel, Kind: KindCustom, Threshold: 5, XPReward: 25, Rarity: RarityCommon},
	{ID: "level_10", Name: "Adept", Description: "Reach level 10", Emoji: "🌟", Category: CategoryLevel, Kind: KindCustom, Threshold: 10, XPReward: 75, Rarity: RarityUncommon},
	{ID: "level_25", Name: "Expert", Description: "Reach level 25", Emoji: "💫", Category: CategoryLevel, Kind: KindCustom, Threshold: 25, XPReward: 250, Rarity: RarityRare},
	{ID: "level_50", Name: "Master", Description: "Reach level 50", Emoji: "🔱", Category: CategoryLevel, Kind: KindCustom, Threshold: 50, XPReward: 1000, Rarity: RarityEpic},
	{ID: "level_100", Name: "Grandmaster", Description: "Reach level 100", Emoji: "🏵️", Category: CategoryLevel, Kind: KindCustom, Threshold: 100, XPReward: 5000, Rarity: RarityLegendary},

	// Meta
	{ID: "collector_10", Name: "Collector", Description: "Unlock 10 achievements", Emoji: "🎖️", Category: CategoryMeta, Kind: KindCustom, Threshold: 10, XPReward: 50, Rarity: RarityUncommon},
	{ID: "collector_25", Name: "Completionist", Description: "Unlock 25 achievements", Emoji: "🗃️", Category: CategoryMeta, Kind: KindCustom, Threshold: 25, XPReward: 200, Rarity: RarityEpic},
	{ID: "collector_40", Name: "Hall of Fame", Description: "Unlock 40 achievements", Emoji: "🏰", Category: CategoryMeta, Kind: KindCustom, Threshold: 40, XPReward: 1000, Rarity: RarityLegendary},
}

// Catalog returns a copy of every definition in display order.
func Catalog() []Definition {
	return append([]Definition(nil), catalog...)
}

func Lookup(id string) (Definition, bool) {
	for _, def := range catalog {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}

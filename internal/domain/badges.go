package domain

// BadgeKind is a tagged badge identifier. Visual descriptors (icon, color)
// live at the presentation boundary; the core only tracks kinds.
type BadgeKind string

const (
	BadgeFirstSteps     BadgeKind = "first-steps"     // first segment completed
	BadgeGettingStarted BadgeKind = "getting-started" // first project completed
	BadgeProjectPro     BadgeKind = "project-pro"     // five projects completed
	BadgeStreakStarter  BadgeKind = "streak-starter"  // three-day streak
	BadgeOnFire         BadgeKind = "on-fire"         // seven-day streak
	BadgeQuizWhiz       BadgeKind = "quiz-whiz"       // perfect quiz score
)

// Badge pairs a kind with its display name.
type Badge struct {
	Kind BadgeKind `json:"kind"`
	Name string    `json:"name"`
}

var badgeNames = map[BadgeKind]string{
	BadgeFirstSteps:     "First Steps",
	BadgeGettingStarted: "Getting Started",
	BadgeProjectPro:     "Project Pro",
	BadgeStreakStarter:  "Streak Starter",
	BadgeOnFire:         "On Fire",
	BadgeQuizWhiz:       "Quiz Whiz",
}

// Name returns the display name for a badge kind.
func (k BadgeKind) Name() string {
	if name, ok := badgeNames[k]; ok {
		return name
	}
	return string(k)
}

// ProgressBadges returns the badge kinds unlocked by the given stats.
// Quiz Whiz is excluded: it is awarded by the quiz submission transition,
// not derived from stats.
func ProgressBadges(stats Stats) []BadgeKind {
	var unlocked []BadgeKind
	if stats.SegmentsCompleted >= 1 {
		unlocked = append(unlocked, BadgeFirstSteps)
	}
	if stats.ProjectsCompleted >= 1 {
		unlocked = append(unlocked, BadgeGettingStarted)
	}
	if stats.ProjectsCompleted >= 5 {
		unlocked = append(unlocked, BadgeProjectPro)
	}
	if stats.CurrentStreak >= 3 {
		unlocked = append(unlocked, BadgeStreakStarter)
	}
	if stats.CurrentStreak >= 7 {
		unlocked = append(unlocked, BadgeOnFire)
	}
	return unlocked
}

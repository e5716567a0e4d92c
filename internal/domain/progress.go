package domain

// CompletedSegments derives a project's completion count from the
// authoritative completed-segment set: |completedSegmentIds ∩ segmentIdsOf(p)|.
// Never read a cached count for correctness decisions.
func CompletedSegments(stats Stats, catalog Catalog, projectID string) int {
	count := 0
	for _, s := range catalog.SegmentsOf(projectID) {
		if _, ok := stats.CompletedSegmentIDs[s.ID]; ok {
			count++
		}
	}
	return count
}

// ProjectComplete reports whether every segment of the project is done.
// A project with zero segments is never considered complete.
func ProjectComplete(stats Stats, catalog Catalog, projectID string) bool {
	project, ok := catalog.Project(projectID)
	if !ok || project.TotalSegments == 0 {
		return false
	}
	return CompletedSegments(stats, catalog, projectID) == project.TotalSegments
}

// CompletedProjects derives how many catalog projects the user has fully completed.
func CompletedProjects(stats Stats, catalog Catalog) int {
	count := 0
	for _, p := range catalog.Projects {
		if ProjectComplete(stats, catalog, p.ID) {
			count++
		}
	}
	return count
}

// Points derives the learner's leaderboard points from their progress:
// 10 per segment, 50 per project, 5 per quiz point.
func Points(stats Stats) int {
	points := stats.SegmentsCompleted*10 + stats.ProjectsCompleted*50
	for _, result := range stats.QuizScores {
		points += result.Score * 5
	}
	return points
}

// HeldBadges returns the user's badge kinds in a stable order.
func (u User) HeldBadges() []BadgeKind {
	ordered := []BadgeKind{
		BadgeFirstSteps, BadgeGettingStarted, BadgeProjectPro,
		BadgeStreakStarter, BadgeOnFire, BadgeQuizWhiz,
	}
	var held []BadgeKind
	for _, kind := range ordered {
		if u.Badges[kind] {
			held = append(held, kind)
		}
	}
	return held
}

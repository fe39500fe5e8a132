package domain

// Badge names and their award thresholds.
const (
	BadgeFirstReview         = "First Review"
	BadgeReviewEnthusiast    = "Review Enthusiast"
	BadgeFeedbackContributor = "Feedback Contributor"
	BadgeFavoritesCollector  = "Favorites Collector"

	BadgeReviewEnthusiastAt    = 10
	BadgeFeedbackContributorAt = 5
	BadgeFavoritesCollectorAt  = 5
)

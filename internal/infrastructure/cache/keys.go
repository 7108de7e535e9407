package cache

import "github.com/google/uuid"

const recommendedPrefix = "jobs:recommended:"

// RecommendedJobsKey is where a user's recommendation list is cached.
func RecommendedJobsKey(userID uuid.UUID) string {
	return recommendedPrefix + userID.String()
}

// RecommendedJobsPattern matches every cached recommendation list.
func RecommendedJobsPattern() string {
	return recommendedPrefix + "*"
}

package matching

import (
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
)

// Weights are expressed in hundredths of a score point so that sums of
// sub-scores stay exact and threshold comparisons are deterministic.
type Weights struct {
	Skills   int
	Industry int
	Location int
	JobType  int
	Salary   int
}

func (w Weights) Total() int {
	return w.Skills + w.Industry + w.Location + w.JobType + w.Salary
}

var (
	UserJobWeights = Weights{Skills: 40, Industry: 20, Location: 10, JobType: 10, Salary: 20}
	JobJobWeights  = Weights{Skills: 50, Industry: 20, Location: 10, JobType: 10}
)

// ScoreUserJob scores how well a job fits a job-seeker's preferences and
// skills. Every matched user skill adds the full skills weight, so the score
// has no fixed upper bound.
func ScoreUserJob(u user.User, j job.Job) float64 {
	w := UserJobWeights
	var prefs user.Preferences
	if u.Preferences != nil {
		prefs = *u.Preferences
	}

	points := 0
	if anySimilar(prefs.Industries, j.Industry) {
		points += w.Industry
	}
	if anySimilar(prefs.JobTypes, j.JobType) {
		points += w.JobType
	}
	if anySimilar(prefs.Locations, j.Location) {
		points += w.Location
	}
	if salaryAccepted(prefs.Salary, j) {
		points += w.Salary
	}
	points += countMatched(u.Skills, j.Skills) * w.Skills

	return toScore(points)
}

// ScoreJobJob scores how similar b is to a. Salary is not compared.
func ScoreJobJob(a, b job.Job) float64 {
	w := JobJobWeights

	points := 0
	if IsSimilar(a.Industry, b.Industry) {
		points += w.Industry
	}
	if IsSimilar(a.JobType, b.JobType) {
		points += w.JobType
	}
	if IsSimilar(a.Location, b.Location) {
		points += w.Location
	}
	points += countMatched(a.Skills, b.Skills) * w.Skills

	return toScore(points)
}

// salaryAccepted grants the salary bonus when the job advertises a salary and
// the user's floor, if any, does not exceed it. A user without a floor is
// treated as unconstrained.
func salaryAccepted(floor *float64, j job.Job) bool {
	if !j.HasSalary() {
		return false
	}
	if floor == nil {
		return true
	}
	return *floor <= *j.Salary
}

func toScore(points int) float64 {
	return float64(points) / 100
}

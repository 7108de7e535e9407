package matching

import (
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
)

// NotifyThreshold is the minimum user-vs-job score for a job-seeker to be
// told about a newly posted job.
const NotifyThreshold = 0.7

// SelectRecipients picks the job-seekers whose profile scores at least
// threshold against a newly created job. Admins and employers are skipped.
func SelectRecipients(newJob job.Job, users []user.User, threshold float64) []user.User {
	out := make([]user.User, 0)
	for _, u := range users {
		if !u.IsJobSeeker() {
			continue
		}
		if ScoreUserJob(u, newJob) >= threshold {
			out = append(out, u)
		}
	}
	return out
}

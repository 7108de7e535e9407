package matching

import (
	"sort"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

const (
	// SimilarThreshold is the job-vs-job score a job must exceed to be
	// suggested as similar to one the user viewed.
	SimilarThreshold = 0.5
	// MatchThreshold is the user-vs-job score a job must exceed to be
	// suggested as matching the user's profile.
	MatchThreshold = 0.7
	// RecommendationLimit caps each of the two recommendation lists.
	RecommendationLimit = 6
)

type Options struct {
	SimilarThreshold float64
	MatchThreshold   float64
	Limit            int
}

func DefaultOptions() Options {
	return Options{
		SimilarThreshold: SimilarThreshold,
		MatchThreshold:   MatchThreshold,
		Limit:            RecommendationLimit,
	}
}

func (o Options) limit() int {
	if o.Limit <= 0 {
		return RecommendationLimit
	}
	return o.Limit
}

// ScoredJob pairs a job with the score it earned in one scoring pass. The
// job value is a copy; scoring never writes back to the catalog.
type ScoredJob struct {
	Job   job.Job
	Score float64
}

// AppliedFunc reports whether the user already applied to the job.
type AppliedFunc func(jobID uuid.UUID) bool

// SimilarJobs scores every catalog job against each job the user interacted
// with and returns the best-scoring distinct jobs above the similarity
// threshold. A job reachable from several interacted jobs keeps its highest
// score.
func SimilarJobs(u user.User, catalog []job.Job, opts Options) []ScoredJob {
	if len(u.Interactions) == 0 || len(catalog) == 0 {
		return nil
	}

	interacted := make([]job.Job, 0, len(u.Interactions))
	for _, j := range catalog {
		if u.HasInteracted(j.ID) {
			interacted = append(interacted, j)
		}
	}

	pool := make([]ScoredJob, 0)
	index := make(map[uuid.UUID]int)
	for _, seen := range interacted {
		for _, cand := range catalog {
			if cand.ID == seen.ID {
				continue
			}
			score := ScoreJobJob(seen, cand)
			if score <= opts.SimilarThreshold {
				continue
			}
			if i, ok := index[cand.ID]; ok {
				if score > pool[i].Score {
					pool[i].Score = score
				}
				continue
			}
			index[cand.ID] = len(pool)
			pool = append(pool, ScoredJob{Job: cand, Score: score})
		}
	}

	return topScored(pool, opts.limit())
}

// MatchedJobs returns the catalog jobs scoring above the match threshold
// against the user's profile, best first.
func MatchedJobs(u user.User, catalog []job.Job, opts Options) []ScoredJob {
	pool := make([]ScoredJob, 0)
	for _, j := range catalog {
		score := ScoreUserJob(u, j)
		if score > opts.MatchThreshold {
			pool = append(pool, ScoredJob{Job: j, Score: score})
		}
	}
	return topScored(pool, opts.limit())
}

// Rank merges the similar and matched lists, similar first, keeping the
// first occurrence of each job.
func Rank(u user.User, catalog []job.Job, opts Options) []ScoredJob {
	similar := SimilarJobs(u, catalog, opts)
	matched := MatchedJobs(u, catalog, opts)

	out := make([]ScoredJob, 0, len(similar)+len(matched))
	seen := make(map[uuid.UUID]struct{}, len(similar)+len(matched))
	for _, list := range [][]ScoredJob{similar, matched} {
		for _, sj := range list {
			if _, ok := seen[sj.Job.ID]; ok {
				continue
			}
			seen[sj.Job.ID] = struct{}{}
			out = append(out, sj)
		}
	}
	return out
}

// Recommend returns the ranked jobs for the user minus those already applied
// to. Order follows Rank and is not re-sorted after merging.
func Recommend(u user.User, catalog []job.Job, applied AppliedFunc, opts Options) []job.Job {
	ranked := Rank(u, catalog, opts)
	out := make([]job.Job, 0, len(ranked))
	for _, sj := range ranked {
		if applied != nil && applied(sj.Job.ID) {
			continue
		}
		out = append(out, sj.Job)
	}
	return out
}

func topScored(pool []ScoredJob, n int) []ScoredJob {
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Score > pool[j].Score
	})
	if len(pool) > n {
		pool = pool[:n]
	}
	return pool
}

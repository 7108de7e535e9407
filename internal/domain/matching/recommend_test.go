package matching

import (
	"fmt"
	"testing"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJob(title, industry string, skills ...string) job.Job {
	return job.Job{
		ID:       uuid.New(),
		Title:    title,
		Industry: industry,
		JobType:  "Full-time",
		Location: "Amsterdam",
		Skills:   skills,
	}
}

func jobIDs(jobs []job.Job) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func scoredIDs(jobs []ScoredJob) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(jobs))
	for _, sj := range jobs {
		out = append(out, sj.Job.ID)
	}
	return out
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, 0.5, opts.SimilarThreshold)
	assert.Equal(t, 0.7, opts.MatchThreshold)
	assert.Equal(t, 6, opts.Limit)
}

func TestRecommend_EndToEndScenario(t *testing.T) {
	u := user.User{
		ID:     uuid.New(),
		Skills: []string{"React"},
		Preferences: &user.Preferences{
			Industries: []string{"Tech"},
			Salary:     salary(30000),
		},
	}
	j := job.Job{ID: uuid.New(), Industry: "Tech", Salary: salary(40000), Skills: []string{"React", "Node"}}

	assert.Empty(t, SimilarJobs(u, []job.Job{j}, DefaultOptions()))

	matched := MatchedJobs(u, []job.Job{j}, DefaultOptions())
	require.Len(t, matched, 1)
	assert.Equal(t, 0.8, matched[0].Score)

	got := Recommend(u, []job.Job{j}, nil, DefaultOptions())
	assert.Equal(t, []uuid.UUID{j.ID}, jobIDs(got))
}

func TestRecommend_ExcludesAppliedJobs(t *testing.T) {
	u := user.User{ID: uuid.New(), Skills: []string{"Kubernetes", "Terraform"}}
	applied := newJob("Platform Engineer", "Cloud", "Kubernetes", "Terraform")
	other := newJob("SRE", "Cloud", "Kubernetes", "Terraform")
	catalog := []job.Job{applied, other}

	require.Len(t, MatchedJobs(u, catalog, DefaultOptions()), 2)

	got := Recommend(u, catalog, func(id uuid.UUID) bool { return id == applied.ID }, DefaultOptions())
	assert.Equal(t, []uuid.UUID{other.ID}, jobIDs(got))
}

func TestRecommend_ExcludesAppliedJobsFromSimilarPool(t *testing.T) {
	viewed := newJob("Data Engineer", "Analytics", "Spark", "Airflow")
	applied := newJob("Analytics Engineer", "Analytics", "Spark", "Airflow")
	u := user.User{ID: uuid.New(), Interactions: []uuid.UUID{viewed.ID}}

	similar := SimilarJobs(u, []job.Job{viewed, applied}, DefaultOptions())
	require.Equal(t, []uuid.UUID{applied.ID}, scoredIDs(similar))

	got := Recommend(u, []job.Job{viewed, applied}, func(id uuid.UUID) bool { return id == applied.ID }, DefaultOptions())
	assert.Empty(t, got)
}

func TestMatchedJobs_CappedAtLimit(t *testing.T) {
	u := user.User{ID: uuid.New(), Skills: []string{"Elixir", "Phoenix"}}
	catalog := make([]job.Job, 0, 20)
	for i := 0; i < 20; i++ {
		catalog = append(catalog, newJob(fmt.Sprintf("Backend %d", i), "Telecom", "Elixir", "Phoenix"))
	}

	matched := MatchedJobs(u, catalog, DefaultOptions())
	require.Len(t, matched, RecommendationLimit)
	for _, sj := range matched {
		assert.Greater(t, sj.Score, MatchThreshold)
	}
	// equal scores keep catalog order
	assert.Equal(t, jobIDs(catalog[:RecommendationLimit]), scoredIDs(matched))

	assert.Len(t, Recommend(u, catalog, nil, DefaultOptions()), RecommendationLimit)
}

func TestMatchedJobs_StrictlyAboveThreshold(t *testing.T) {
	u := user.User{
		Skills:      []string{"Haskell"},
		Preferences: &user.Preferences{Industries: []string{"Banking"}, JobTypes: []string{"Contract"}},
	}
	// 0.4 + 0.2 + 0.1 lands exactly on 0.7
	edge := job.Job{ID: uuid.New(), Industry: "Banking", JobType: "Contract", Skills: []string{"Haskell"}}
	above := job.Job{ID: uuid.New(), Industry: "Banking", JobType: "Contract", Skills: []string{"Haskell"}, Salary: salary(70000)}

	assert.Equal(t, 0.7, ScoreUserJob(u, edge))
	assert.Equal(t, []uuid.UUID{above.ID}, scoredIDs(MatchedJobs(u, []job.Job{edge, above}, DefaultOptions())))
}

func TestMatchedJobs_SortedByScore(t *testing.T) {
	u := user.User{Skills: []string{"Scala", "Kotlin", "Clojure"}}
	one := newJob("one", "Retail", "Scala", "Kotlin")
	two := newJob("two", "Retail", "Scala", "Kotlin", "Clojure")
	three := newJob("three", "Retail", "Scala")

	got := MatchedJobs(u, []job.Job{one, two, three}, DefaultOptions())
	require.Len(t, got, 2)
	assert.Equal(t, []uuid.UUID{two.ID, one.ID}, scoredIDs(got))
	assert.InDelta(t, 1.2, got[0].Score, 1e-9)
	assert.InDelta(t, 0.8, got[1].Score, 1e-9)
}

func TestSimilarJobs_NoInteractions(t *testing.T) {
	catalog := []job.Job{newJob("a", "Media", "Figma"), newJob("b", "Media", "Figma")}
	assert.Empty(t, SimilarJobs(user.User{}, catalog, DefaultOptions()))
}

func TestSimilarJobs_IgnoresInteractionsOutsideCatalog(t *testing.T) {
	catalog := []job.Job{newJob("a", "Media", "Figma"), newJob("b", "Media", "Figma")}
	u := user.User{Interactions: []uuid.UUID{uuid.New()}}
	assert.Empty(t, SimilarJobs(u, catalog, DefaultOptions()))
}

func TestSimilarJobs_KeepsBestScorePerJob(t *testing.T) {
	viewedA := job.Job{ID: uuid.New(), Industry: "Gaming", Skills: []string{"Unity"}}
	viewedB := job.Job{ID: uuid.New(), Industry: "Gaming", JobType: "Remote", Skills: []string{"Unity", "Blender"}}
	cand := job.Job{ID: uuid.New(), Industry: "Gaming", JobType: "Remote", Skills: []string{"Unity", "Blender"}}
	u := user.User{Interactions: []uuid.UUID{viewedA.ID, viewedB.ID}}

	got := SimilarJobs(u, []job.Job{viewedA, viewedB, cand}, DefaultOptions())

	counts := make(map[uuid.UUID]int)
	for _, sj := range got {
		counts[sj.Job.ID]++
	}
	for id, n := range counts {
		assert.Equal(t, 1, n, "job %s listed more than once", id)
	}

	var candScore float64
	for _, sj := range got {
		if sj.Job.ID == cand.ID {
			candScore = sj.Score
		}
	}
	// viewedA scores cand at 0.7, viewedB at 1.3
	assert.InDelta(t, 1.3, candScore, 1e-9)
	assert.Equal(t, cand.ID, got[0].Job.ID)
}

func TestSimilarJobs_ExcludesSelfAndRespectsThreshold(t *testing.T) {
	viewed := newJob("viewed", "Energy", "Matlab")
	weak := job.Job{ID: uuid.New(), Industry: "Energy", Skills: []string{"Excel"}}
	strong := newJob("strong", "Energy", "Matlab")
	u := user.User{Interactions: []uuid.UUID{viewed.ID}}

	got := SimilarJobs(u, []job.Job{viewed, weak, strong}, DefaultOptions())
	assert.Equal(t, []uuid.UUID{strong.ID}, scoredIDs(got))
}

func TestRank_SimilarFirstThenMatchedWithoutDuplicates(t *testing.T) {
	viewed := newJob("viewed", "Logistics", "Fortran")
	similar := newJob("similar", "Logistics", "Fortran")
	matchedOnly := job.Job{ID: uuid.New(), Industry: "Aerospace", Skills: []string{"Ada", "Simulink"}}
	u := user.User{
		Skills:       []string{"Fortran", "Ada", "Simulink"},
		Interactions: []uuid.UUID{viewed.ID},
	}
	catalog := []job.Job{viewed, similar, matchedOnly}

	ranked := Rank(u, catalog, DefaultOptions())
	ids := scoredIDs(ranked)

	// similar pool is scored first and wins its slot in the merged list
	require.NotEmpty(t, ids)
	assert.Equal(t, similar.ID, ids[0])

	seen := make(map[uuid.UUID]bool)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate job %s", id)
		seen[id] = true
	}
	assert.True(t, seen[matchedOnly.ID])
}

func TestRecommend_DoesNotMutateCatalog(t *testing.T) {
	u := user.User{Skills: []string{"Erlang", "Elixir"}}
	catalog := []job.Job{newJob("a", "Telecom", "Erlang", "Elixir")}
	before := catalog[0]

	_ = Recommend(u, catalog, nil, DefaultOptions())
	assert.Equal(t, before, catalog[0])
}

func TestOptions_NonPositiveLimitFallsBack(t *testing.T) {
	u := user.User{Skills: []string{"Elixir", "Phoenix"}}
	catalog := make([]job.Job, 0, 10)
	for i := 0; i < 10; i++ {
		catalog = append(catalog, newJob("x", "Telecom", "Elixir", "Phoenix"))
	}

	opts := DefaultOptions()
	opts.Limit = 0
	assert.Len(t, MatchedJobs(u, catalog, opts), RecommendationLimit)

	opts.Limit = 3
	assert.Len(t, MatchedJobs(u, catalog, opts), 3)
}

package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSimilar(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "identical", a: "Remote", b: "Remote", want: true},
		{name: "case insensitive", a: "Remote", b: "REMOTE", want: true},
		{name: "surrounding space", a: "  Tech ", b: "tech", want: true},
		{name: "distance one", a: "Engineer", b: "Enginees", want: true},
		{name: "distance two", a: "Engineer", b: "Enginaar", want: true},
		{name: "distance three", a: "Engineer", b: "Enginxxx", want: false},
		{name: "unrelated", a: "Finance", b: "Healthcare", want: false},
		{name: "short labels within reach", a: "Go", b: "C", want: true},
		{name: "empty left", a: "", b: "Tech", want: false},
		{name: "empty right", a: "Tech", b: "", want: false},
		{name: "both empty", a: "", b: "", want: false},
		{name: "blank only", a: "   ", b: "  ", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSimilar(tt.a, tt.b))
		})
	}
}

func TestIsSimilarSymmetric(t *testing.T) {
	labels := []string{"", "Go", "golang", "Remote", "remote", "Engineer", "Enginees", "Tech", "Technology", "Full-time", "Full time", "Part-time"}
	for _, a := range labels {
		for _, b := range labels {
			assert.Equal(t, IsSimilar(a, b), IsSimilar(b, a), "pair %q / %q", a, b)
		}
	}
}

func TestCountMatched(t *testing.T) {
	assert.Equal(t, 0, countMatched(nil, []string{"Go"}))
	assert.Equal(t, 0, countMatched([]string{"Go"}, nil))
	assert.Equal(t, 2, countMatched([]string{"React", "python", "Rust"}, []string{"Python", "react.", "Java"}))
	// each entry of from counts at most once
	assert.Equal(t, 1, countMatched([]string{"Java"}, []string{"Java", "java", "JAVA"}))
}

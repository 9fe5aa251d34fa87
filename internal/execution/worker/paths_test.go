package worker_test

import (
	"testing"

	"github.com/guohuiyuan/music-dl-desktop/internal/execution/worker"
	"github.com/stretchr/testify/assert"
)

func TestCandidates_YieldsOnePerDirPlusBareName(t *testing.T) {
	tests := map[string][]string{
		"none":  {},
		"one":   {"."},
		"two":   {".", ".."},
		"four":  {".", "..", "../..", "../../.."},
		"dupes": {"bin", "bin"},
	}

	for name, dirs := range tests {
		t.Run(name, func(t *testing.T) {
			candidates := worker.Candidates(worker.Config{
				Binary:     "worker",
				SearchDirs: dirs,
			})

			assert.Len(t, candidates, len(dirs)+1)
			for i, dir := range dirs {
				assert.Equal(t, dir+"/worker", candidates[i])
			}
			assert.Equal(t, "worker", candidates[len(candidates)-1])
		})
	}
}

func TestCandidates_DefaultSearchDirs(t *testing.T) {
	candidates := worker.Candidates(worker.Config{
		Binary:     "worker",
		SearchDirs: worker.DefaultSearchDirs,
	})

	assert.Equal(t, []string{
		"./worker",
		"../worker",
		"../../worker",
		"../../../worker",
		"worker",
	}, candidates)
}

func TestCandidates_DoesNotCheckExistence(t *testing.T) {
	candidates := worker.Candidates(worker.Config{
		Binary:     "worker",
		SearchDirs: []string{"/does/not/exist"},
	})

	assert.Equal(t, []string{"/does/not/exist/worker", "worker"}, candidates)
}

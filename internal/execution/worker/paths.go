package worker

// Candidates returns the locations to try when starting the worker: each
// search directory joined with the binary name, followed by the bare name
// so the environment's PATH is consulted last.
//
// Directories are joined with a literal slash. filepath.Join would reduce
// "./music-dl" to "music-dl", which exec resolves through PATH instead.
func Candidates(config Config) []string {
	candidates := make([]string, 0, len(config.SearchDirs)+1)

	for _, dir := range config.SearchDirs {
		candidates = append(candidates, dir+"/"+config.Binary)
	}

	return append(candidates, config.Binary)
}

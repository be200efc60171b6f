package importer

import "github.com/rs/zerolog/log"

// Stats counts what one import run did. Skip counters surface the anomalies
// the run recovered from locally; only connectivity failures abort a run.
type Stats struct {
	UsersCreated  int
	UsersUpdated  int
	GroupsCreated int
	GroupsUpdated int

	Identifiers int
	EdgesAdded  int

	// SkippedIncomplete counts records that carried no usable natural key.
	SkippedIncomplete int
	// SkippedDangling counts membership references to records absent from the batch.
	SkippedDangling int
}

// Log writes the end-of-run summary.
func (s *Stats) Log(source, runID string) {
	log.Info().
		Str("source", source).
		Str("run_id", runID).
		Int("users_created", s.UsersCreated).
		Int("users_updated", s.UsersUpdated).
		Int("groups_created", s.GroupsCreated).
		Int("groups_updated", s.GroupsUpdated).
		Int("identifiers", s.Identifiers).
		Int("edges_added", s.EdgesAdded).
		Int("skipped_incomplete", s.SkippedIncomplete).
		Int("skipped_dangling", s.SkippedDangling).
		Msg("import run finished")
}

package store

// Run is one recorded generate run.
type Run struct {
	ID         string `json:"id"`
	Seq        int64  `json:"seq"`
	SourceHash string `json:"source_hash"`
	Strategy   string `json:"strategy"`
	Capacity   int    `json:"capacity"`
	AreaCount  int    `json:"area_count"`
}

// Roster is the recorded spawn group of one area in a run.
type Roster struct {
	RunID      string   `json:"run_id"`
	Area       string   `json:"area"`
	Ordinal    int      `json:"ordinal"`
	Difficulty int      `json:"difficulty"`
	Slots      []string `json:"slots"`
	Overridden bool     `json:"overridden,omitempty"`
	Hash       string   `json:"hash"`
}

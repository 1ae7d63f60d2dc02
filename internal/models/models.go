package models

type WordCount struct {
	Word  string `json:"word"`
	Count int64  `json:"count"`
}

type QueryResult struct {
	Word          string `json:"word"`
	CaseSensitive bool   `json:"caseSensitive"`
	Count         int64  `json:"count"`
}

type Stats struct {
	DistinctWords    int   `json:"distinctWords"`
	TotalWords       int64 `json:"totalWords"`
	SourcesProcessed int   `json:"sourcesProcessed"`
	SourcesFailed    int   `json:"sourcesFailed"`
	TimeElapsed      int   `json:"timeElapsedMs"`
}

type Result struct {
	Words    []WordCount   `json:"words"`
	TopWords []WordCount   `json:"topWords,omitempty"`
	Queries  []QueryResult `json:"queries,omitempty"`
	Stats    *Stats        `json:"stats,omitempty"`
}

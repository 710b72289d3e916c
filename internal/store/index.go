package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve"
)

// runDoc is the searchable projection of an archived run.
type runDoc struct {
	Goal     string `json:"goal"`
	Summary  string `json:"summary"`
	Evidence string `json:"evidence"`
}

// RunHit is one full-text search match against the run archive.
type RunHit struct {
	RunID string  `json:"run_id"`
	Score float64 `json:"score"`
}

// Index provides full-text search over archived run summaries.
type Index struct {
	idx bleve.Index
}

// OpenIndex opens the bleve index at path, creating it on first use.
func OpenIndex(path string) (*Index, error) {
	idx, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		idx, err = bleve.New(path, bleve.NewIndexMapping())
	}
	if err != nil {
		return nil, fmt.Errorf("opening run index: %w", err)
	}
	return &Index{idx: idx}, nil
}

// IndexRun makes a finished run searchable by goal, summary and the raw
// tool outputs collected during the run.
func (ix *Index) IndexRun(rec RunRecord) error {
	return ix.idx.Index(rec.ID, runDoc{
		Goal:     rec.Goal,
		Summary:  rec.Summary,
		Evidence: evidenceText(rec.Result),
	})
}

// evidenceText flattens a run result's task outputs into one searchable blob.
func evidenceText(result json.RawMessage) string {
	if len(result) == 0 {
		return ""
	}
	var payload struct {
		Tasks []struct {
			Outputs []string `json:"outputs"`
		} `json:"tasks"`
	}
	if err := json.Unmarshal(result, &payload); err != nil {
		return ""
	}
	var parts []string
	for _, t := range payload.Tasks {
		parts = append(parts, t.Outputs...)
	}
	return strings.Join(parts, "\n")
}

// SearchRuns runs a query-string search and returns up to k run ids by score.
func (ix *Index) SearchRuns(q string, k int) ([]RunHit, error) {
	if k <= 0 {
		k = 10
	}
	query := bleve.NewQueryStringQuery(q)
	req := bleve.NewSearchRequestOptions(query, k, 0, false)
	res, err := ix.idx.Search(req)
	if err != nil {
		return nil, err
	}
	var out []RunHit
	for _, hit := range res.Hits {
		out = append(out, RunHit{RunID: hit.ID, Score: hit.Score})
	}
	return out, nil
}

func (ix *Index) Close() error {
	return ix.idx.Close()
}

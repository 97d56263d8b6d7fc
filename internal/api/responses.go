package api

import (
	"io"

	json "github.com/goccy/go-json"
)

// JobView is the JSON-serializable snapshot of a Job returned by the
// status endpoint.
type JobView struct {
	ID     string `json:"id"`
	Mode   int    `json:"mode"`
	Scheme string `json:"scheme"`
	Status string `json:"status"`
	Rows   int    `json:"rows,omitempty"`
	Cols   int    `json:"cols,omitempty"`
	Error  string `json:"error,omitempty"`
}

// SubmitRequest is the body accepted by POST /jobs: a synthetic tensor
// description plus the mode and scheme to contract against.
type SubmitRequest struct {
	Dims     []int   `json:"dims"`
	NNZ      int     `json:"nnz"`
	Seed     int64   `json:"seed"`
	Cols     []int   `json:"cols"`
	Mode     int     `json:"mode"`
	Scheme   string  `json:"scheme"`
	NThreads int     `json:"nthreads"`
	ValueLo  float64 `json:"value_lo"`
	ValueHi  float64 `json:"value_hi"`
}

// SubmitResponse is returned by POST /jobs.
type SubmitResponse struct {
	ID string `json:"id"`
}

// writeJSON encodes v to w with goccy/go-json rather than encoding/json,
// used by the submit and status handlers for their response bodies (the
// events handler writes through SSEStreamWriter instead).
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	return enc.Encode(v)
}

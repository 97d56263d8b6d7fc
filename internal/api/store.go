package api

import (
	"sync"

	"github.com/samcharles93/ttmc/internal/progress"
	"github.com/samcharles93/ttmc/internal/synth"
	"github.com/samcharles93/ttmc/pkg/ttmc"
)

// JobStatus is the lifecycle state of a submitted TTMc job.
type JobStatus string

const (
	StatusQueued  JobStatus = "queued"
	StatusRunning JobStatus = "running"
	StatusDone    JobStatus = "done"
	StatusFailed  JobStatus = "failed"
)

// Job is one submitted synthetic TTMc benchmark run.
type Job struct {
	ID      string
	Spec    synth.Spec
	Mode    int
	Scheme  string
	Options ttmc.Options

	Bcast *progress.Broadcaster

	mu     sync.Mutex
	status JobStatus
	err    error
	rows   int
	cols   int
}

func (j *Job) setStatus(s JobStatus) {
	j.mu.Lock()
	j.status = s
	j.mu.Unlock()
}

func (j *Job) setError(err error) {
	j.mu.Lock()
	j.status = StatusFailed
	j.err = err
	j.mu.Unlock()
}

func (j *Job) setResult(rows, cols int) {
	j.mu.Lock()
	j.status = StatusDone
	j.rows = rows
	j.cols = cols
	j.mu.Unlock()
}

func (j *Job) snapshot() JobView {
	j.mu.Lock()
	defer j.mu.Unlock()
	v := JobView{ID: j.ID, Mode: j.Mode, Scheme: j.Scheme, Status: string(j.status), Rows: j.rows, Cols: j.cols}
	if j.err != nil {
		v.Error = j.err.Error()
	}
	return v
}

// JobStore tracks every submitted job in memory, keyed by ID.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewJobStore returns an empty JobStore.
func NewJobStore() *JobStore {
	return &JobStore{jobs: make(map[string]*Job)}
}

// Create registers a new queued job and returns it.
func (s *JobStore) Create(spec synth.Spec, mode int, scheme string, opts ttmc.Options) *Job {
	j := &Job{
		ID:      newJobID(),
		Spec:    spec,
		Mode:    mode,
		Scheme:  scheme,
		Options: opts,
		Bcast:   progress.NewBroadcaster(),
		status:  StatusQueued,
	}
	s.mu.Lock()
	s.jobs[j.ID] = j
	s.mu.Unlock()
	return j
}

// Get returns the job with the given ID, if any.
func (s *JobStore) Get(id string) (*Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	return j, ok
}

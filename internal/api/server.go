package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/ttmc/internal/csf"
	"github.com/samcharles93/ttmc/internal/logger"
	"github.com/samcharles93/ttmc/internal/progress"
	"github.com/samcharles93/ttmc/internal/synth"
	"github.com/samcharles93/ttmc/pkg/ttmc"
)

// Server exposes the job store over HTTP: submit a synthetic TTMc job,
// poll its status, or stream its progress over SSE.
type Server struct {
	store *JobStore
	log   logger.Logger
}

// NewServer builds a Server backed by store.
func NewServer(store *JobStore, log logger.Logger) *Server {
	return &Server{store: store, log: log}
}

// Register wires the server's routes onto e.
func (s *Server) Register(e *echo.Echo) {
	e.POST("/jobs", s.handleSubmit)
	e.GET("/jobs/:id", s.handleStatus)
	e.GET("/jobs/:id/events", s.handleEvents)
}

func (s *Server) handleSubmit(c echo.Context) error {
	var req SubmitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	scheme, err := parseScheme(req.Scheme)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.NNZ <= 0 || len(req.Dims) < 3 {
		return echo.NewHTTPError(http.StatusBadRequest, "dims must have length >= 3 and nnz must be positive")
	}

	spec := synth.Spec{Dims: req.Dims, NNZ: req.NNZ, Seed: req.Seed, Cols: req.Cols, Lo: req.ValueLo, Hi: req.ValueHi}
	opts := ttmc.Options{NThreads: req.NThreads, CSFAlloc: scheme}
	job := s.store.Create(spec, req.Mode, req.Scheme, opts)

	go s.run(job)

	return writeJSON(c.Response(), SubmitResponse{ID: job.ID})
}

func (s *Server) handleStatus(c echo.Context) error {
	job, ok := s.store.Get(c.PathParam("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "job not found")
	}
	return writeJSON(c.Response(), job.snapshot())
}

func (s *Server) handleEvents(c echo.Context) error {
	job, ok := s.store.Get(c.PathParam("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "job not found")
	}
	sw, err := NewSSEStreamWriter(c.Response())
	if err != nil {
		return err
	}
	events, unsubscribe := job.Bcast.Subscribe()
	defer unsubscribe()

	ctx := c.Request().Context()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := sw.WriteEvent(ev); err != nil {
				return nil
			}
			if ev.Stage == progress.StageDone || ev.Stage == progress.StageFailed {
				return nil
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// run executes a job's synthetic TTMc contraction end to end, publishing
// progress events as it goes. It is the server-side counterpart of the
// bench CLI subcommand, sharing the same synth/kernel wiring.
func (s *Server) run(job *Job) {
	job.setStatus(StatusRunning)
	job.Bcast.Publish(progress.Event{Stage: progress.StageRunning, Mode: job.Mode})

	coord := synth.GenerateCoord(job.Spec)
	factorData := synth.GenerateFactors(job.Spec)
	factors := make([]*ttmc.Mat, len(factorData))
	for m, data := range factorData {
		k := len(data) / job.Spec.Dims[m]
		factors[m] = ttmc.NewMatFromData(job.Spec.Dims[m], k, data)
	}

	set := buildSet(coord, job.Options.CSFAlloc)
	nfactors := make([]int, len(factors))
	for m, f := range factors {
		nfactors[m] = f.Cols
	}
	table := ttmc.FillFlopTable(coord, nfactors)
	for mode, custom := range table.Custom {
		job.Bcast.Publish(progress.Event{Stage: progress.StageCostModel, Mode: mode, Flops: custom})
	}

	y, err := ttmc.Ttmc(s.log, set, factors, job.Mode, job.Options)
	if err != nil {
		job.setError(err)
		job.Bcast.Publish(progress.Event{Stage: progress.StageFailed, Message: err.Error()})
		return
	}
	job.setResult(y.Rows, y.Cols)
	job.Bcast.Publish(progress.Event{Stage: progress.StageDone, Mode: job.Mode})
}

// buildSet constructs a csf.Set from coord under the given scheme,
// following the same tree-per-scheme layout the dispatcher expects:
// ONEMODE builds a single tree rooted at mode 0, TWOMODE builds the
// natural-order tree plus a second tree rooted at the first tree's leaf
// mode, ALLMODE builds one tree per mode with that mode as root. Every
// tree keeps its non-root modes in ascending order.
func buildSet(coord *csf.Coord, scheme csf.AllocScheme) *csf.Set {
	nmodes := coord.NModes()
	natural := make([]int, nmodes)
	for i := range natural {
		natural[i] = i
	}

	switch scheme {
	case csf.TwoMode:
		perm0 := rotate(natural, 0)
		perm1 := rotate(natural, nmodes-1)
		return &csf.Set{Scheme: scheme, Tensors: []*csf.Tensor{
			synth.BuildCSF(coord, perm0),
			synth.BuildCSF(coord, perm1),
		}}
	case csf.AllMode:
		trees := make([]*csf.Tensor, nmodes)
		for m := 0; m < nmodes; m++ {
			perm := append(make([]int, 0, nmodes), m)
			for o := range natural {
				if o != m {
					perm = append(perm, o)
				}
			}
			trees[m] = synth.BuildCSF(coord, perm)
		}
		return &csf.Set{Scheme: scheme, Tensors: trees}
	default:
		return &csf.Set{Scheme: csf.OneMode, Tensors: []*csf.Tensor{synth.BuildCSF(coord, natural)}}
	}
}

// rotate returns natural rotated so index start becomes the root.
func rotate(natural []int, start int) []int {
	n := len(natural)
	out := make([]int, n)
	for i := range out {
		out[i] = natural[(start+i)%n]
	}
	return out
}

func parseScheme(s string) (csf.AllocScheme, error) {
	switch strings.ToUpper(s) {
	case "", "ONEMODE":
		return csf.OneMode, nil
	case "TWOMODE":
		return csf.TwoMode, nil
	case "ALLMODE":
		return csf.AllMode, nil
	default:
		return csf.OneMode, echo.NewHTTPError(http.StatusBadRequest, "unknown scheme "+s)
	}
}

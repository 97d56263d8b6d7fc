package api

import (
	"errors"
	"strings"
	"testing"

	"github.com/samcharles93/ttmc/internal/synth"
	"github.com/samcharles93/ttmc/pkg/ttmc"
)

func TestJobStoreCreateAndGet(t *testing.T) {
	store := NewJobStore()
	job := store.Create(synth.Spec{Dims: []int{2, 3, 4}, NNZ: 5}, 1, "ONEMODE", ttmc.Options{})

	if !strings.HasPrefix(job.ID, "job_") {
		t.Fatalf("job ID = %q, want a job_ prefix", job.ID)
	}
	got, ok := store.Get(job.ID)
	if !ok || got != job {
		t.Fatal("Get did not return the job just created")
	}
	if _, ok := store.Get("does-not-exist"); ok {
		t.Fatal("Get should report false for an unknown ID")
	}
}

func TestJobSnapshotReflectsLifecycle(t *testing.T) {
	store := NewJobStore()
	job := store.Create(synth.Spec{}, 0, "ONEMODE", ttmc.Options{})

	if got := job.snapshot().Status; got != string(StatusQueued) {
		t.Fatalf("initial status = %q, want %q", got, StatusQueued)
	}

	job.setStatus(StatusRunning)
	if got := job.snapshot().Status; got != string(StatusRunning) {
		t.Fatalf("status after setStatus = %q, want %q", got, StatusRunning)
	}

	job.setResult(3, 4)
	v := job.snapshot()
	if v.Status != string(StatusDone) || v.Rows != 3 || v.Cols != 4 {
		t.Fatalf("snapshot after setResult = %+v", v)
	}

	job.setError(errors.New("boom"))
	v = job.snapshot()
	if v.Status != string(StatusFailed) || v.Error != "boom" {
		t.Fatalf("snapshot after setError = %+v", v)
	}
}

package api

import "github.com/google/uuid"

func newJobID() string {
	return "job_" + uuid.NewString()
}

package services

import (
	"github.com/abrezinsky/electiondash/internal/errors"
)

// Service errors
var (
	ErrInvalidElectionID    = errors.InvalidInput("Invalid election identifier")
	ErrInvalidCountry       = errors.InvalidInput("Invalid country identifier")
	ErrMissingElectionData  = errors.Validation("Missing election data")
	ErrElectionExists       = errors.Validation("Election ID already exists")
	ErrMissingPathOrContent = errors.InvalidInput("Missing path or content")
	ErrBaseURLNotConfigured = errors.Validation("base_url not configured")
	ErrAllSourcesFailed     = errors.Internalf("every dashboard source failed")
)

// ElectionNotFound reports an election id absent from the registry
func ElectionNotFound(id string) *errors.Error {
	return errors.NotFoundf("election %q not found", id)
}

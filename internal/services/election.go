package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/skip2/go-qrcode"

	"github.com/abrezinsky/electiondash/internal/errors"
	"github.com/abrezinsky/electiondash/internal/logger"
	"github.com/abrezinsky/electiondash/internal/models"
	"github.com/abrezinsky/electiondash/internal/repository"
)

// ElectionServiceRepository defines the repository methods needed by ElectionService
type ElectionServiceRepository interface {
	repository.RegistryRepository
	repository.FileRepository
}

// ElectionService handles the elections registry
type ElectionService struct {
	log         logger.Logger
	repo        ElectionServiceRepository
	validate    *validator.Validate
	broadcaster Broadcaster
}

// NewElectionService creates a new ElectionService
func NewElectionService(log logger.Logger, repo ElectionServiceRepository) *ElectionService {
	return &ElectionService{log: log, repo: repo, validate: newValidator()}
}

// SetBroadcaster sets the broadcaster for sending updates to clients
func (s *ElectionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// newValidator returns a validator that understands the "slug" tag
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return models.ValidIdentifier(fl.Field().String())
	})
	return v
}

// FallbackElection is served when no registry exists
func FallbackElection() models.Election {
	return models.Election{
		ID:         models.SeedElectionID,
		Name:       "Présidentielle 2027",
		Type:       models.Presidential,
		Country:    "FR",
		Flag:       "🇫🇷",
		TargetDate: "2027-04-11",
		IsDefault:  true,
	}
}

// ListElections returns the registry, or the built-in election when it is absent
func (s *ElectionService) ListElections(ctx context.Context) ([]models.Election, error) {
	elections, err := s.repo.LoadElections(ctx)
	if err == nil {
		if elections == nil {
			elections = []models.Election{}
		}
		return elections, nil
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}
	if !stderrors.Is(err, repository.ErrNotFound) {
		s.log.Error("Failed to load elections registry, serving fallback", "error", err)
	}
	return []models.Election{FallbackElection()}, nil
}

// DefaultOf returns the first election flagged default, else the first one.
// Nil when the list is empty.
func DefaultOf(elections []models.Election) *models.Election {
	for i := range elections {
		if elections[i].IsDefault {
			return &elections[i]
		}
	}
	if len(elections) > 0 {
		return &elections[0]
	}
	return nil
}

// DefaultElection returns the currently selected election
func (s *ElectionService) DefaultElection(ctx context.Context) (*models.Election, error) {
	elections, err := s.ListElections(ctx)
	if err != nil {
		return nil, err
	}
	e := DefaultOf(elections)
	if e == nil {
		return nil, errors.NotFound("no election registered")
	}
	return e, nil
}

// GetElection returns a registered election by id
func (s *ElectionService) GetElection(ctx context.Context, id string) (*models.Election, error) {
	if !models.ValidIdentifier(id) {
		return nil, ErrInvalidElectionID
	}
	elections, err := s.ListElections(ctx)
	if err != nil {
		return nil, err
	}
	for i := range elections {
		if elections[i].ID == id {
			return &elections[i], nil
		}
	}
	return nil, ElectionNotFound(id)
}

// CreateElection registers a new election and provisions its data directory
// with the placeholder files of its type.
func (s *ElectionService) CreateElection(ctx context.Context, election models.Election) error {
	if election.ID == "" || election.Name == "" || election.Type == "" {
		return ErrMissingElectionData
	}
	if err := s.validate.Struct(election); err != nil {
		return validationError(err)
	}

	elections, err := s.repo.LoadElections(ctx)
	if stderrors.Is(err, repository.ErrNotFound) {
		elections = []models.Election{}
	} else if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to load elections registry")
	}

	for _, e := range elections {
		if e.ID == election.ID {
			return ErrElectionExists
		}
	}

	elections = append(elections, election)
	if err := s.repo.SaveElections(ctx, elections); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to save elections registry")
	}

	if err := s.repo.MakeDir(ctx, election.ID); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to create election directory")
	}
	for _, f := range SeedManifest(election.Type) {
		if err := s.repo.WriteFile(ctx, path.Join(election.ID, f.Name), f.Content); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to seed "+f.Name)
		}
	}

	s.log.Info("Election created", "election", election.ID, "type", election.Type)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastDataUpdate(election.ID, repository.RegistryFile)
	}
	return nil
}

// validationError turns validator output into a client-facing message
func validationError(err error) *errors.Error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Validation(err.Error())
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return errors.Validationf("Invalid election data: %s", strings.Join(fields, ", "))
}

// ShareURL is the dashboard URL of an election
func ShareURL(baseURL, id string) string {
	return fmt.Sprintf("%s/?election=%s", strings.TrimSuffix(baseURL, "/"), url.QueryEscape(id))
}

// GenerateShareQR renders a PNG QR code linking to the dashboard of an election
func (s *ElectionService) GenerateShareQR(ctx context.Context, id, baseURL string) ([]byte, error) {
	if _, err := s.GetElection(ctx, id); err != nil {
		return nil, err
	}
	if baseURL == "" {
		return nil, ErrBaseURLNotConfigured
	}
	return qrcode.Encode(ShareURL(baseURL, id), qrcode.Medium, 256)
}

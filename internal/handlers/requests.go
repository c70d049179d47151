package handlers

import "github.com/abrezinsky/electiondash/internal/models"

// VerifyRequest represents an admin token check
type VerifyRequest struct {
	Token string `json:"token"`
}

// FileWriteRequest represents a request to overwrite a data file.
// Content is a pointer so an absent field can be told from an empty file.
type FileWriteRequest struct {
	Path    string  `json:"path"`
	Content *string `json:"content"`
}

// ElectionCreateRequest represents a request to register a new election
type ElectionCreateRequest struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Country    string `json:"country"`
	Flag       string `json:"flag"`
	TargetDate string `json:"targetDate"`
	IsDefault  bool   `json:"isDefault"`
}

// Election converts the request to a registry entry
func (r ElectionCreateRequest) Election() models.Election {
	return models.Election{
		ID:         r.ID,
		Name:       r.Name,
		Type:       models.ElectionType(r.Type),
		Country:    r.Country,
		Flag:       r.Flag,
		TargetDate: r.TargetDate,
		IsDefault:  r.IsDefault,
	}
}

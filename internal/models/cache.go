package models

import (
	"encoding/json"
	"errors"
)

// ManualUpdateLabel is reported as lastUpdate for caches stored as bare arrays
const ManualUpdateLabel = "Mise à jour manuelle"

// decodeWrappedOrBare decodes data into wrapped. When the document is a bare
// top-level array it decodes into bare instead and reports isBare.
func decodeWrappedOrBare(data []byte, wrapped, bare interface{}) (isBare bool, err error) {
	err = json.Unmarshal(data, wrapped)
	if err == nil {
		return false, nil
	}

	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || typeErr.Field != "" || typeErr.Value != "array" {
		return false, err
	}

	if err := json.Unmarshal(data, bare); err != nil {
		return false, err
	}
	return true, nil
}

// PollCache is the first-round poll cache: {lastUpdate, candidates} or a bare array
type PollCache struct {
	LastUpdate string `json:"lastUpdate"`
	Candidates []Poll `json:"candidates"`
}

func (c *PollCache) UnmarshalJSON(data []byte) error {
	type wrapped PollCache
	var w wrapped
	var bare []Poll
	isBare, err := decodeWrappedOrBare(data, &w, &bare)
	if err != nil {
		return err
	}
	if isBare {
		w = wrapped{LastUpdate: ManualUpdateLabel, Candidates: bare}
	}
	if w.Candidates == nil {
		w.Candidates = []Poll{}
	}
	*c = PollCache(w)
	return nil
}

// SecondRoundCache is the runoff cache: {lastUpdate, duel, candidates} or a bare array
type SecondRoundCache struct {
	LastUpdate string `json:"lastUpdate"`
	Duel       string `json:"duel"`
	Candidates []Poll `json:"candidates"`
}

func (c *SecondRoundCache) UnmarshalJSON(data []byte) error {
	type wrapped SecondRoundCache
	var w wrapped
	var bare []Poll
	isBare, err := decodeWrappedOrBare(data, &w, &bare)
	if err != nil {
		return err
	}
	if isBare {
		w = wrapped{LastUpdate: ManualUpdateLabel, Candidates: bare}
	}
	if w.Candidates == nil {
		w.Candidates = []Poll{}
	}
	*c = SecondRoundCache(w)
	return nil
}

// CandidateCache is the declared-candidates cache: {lastUpdate, candidates} or a bare array
type CandidateCache struct {
	LastUpdate string      `json:"lastUpdate"`
	Candidates []Candidate `json:"candidates"`
}

func (c *CandidateCache) UnmarshalJSON(data []byte) error {
	type wrapped CandidateCache
	var w wrapped
	var bare []Candidate
	isBare, err := decodeWrappedOrBare(data, &w, &bare)
	if err != nil {
		return err
	}
	if isBare {
		w = wrapped{LastUpdate: ManualUpdateLabel, Candidates: bare}
	}
	if w.Candidates == nil {
		w.Candidates = []Candidate{}
	}
	*c = CandidateCache(w)
	return nil
}

// DetailedPollCache is the historical poll archive: {polls, lastUpdate} or a bare array.
// LastUpdate is nil when no archive exists.
type DetailedPollCache struct {
	Polls      []DetailedPoll `json:"polls"`
	LastUpdate *string        `json:"lastUpdate"`
}

func (c *DetailedPollCache) UnmarshalJSON(data []byte) error {
	type wrapped DetailedPollCache
	var w wrapped
	var bare []DetailedPoll
	isBare, err := decodeWrappedOrBare(data, &w, &bare)
	if err != nil {
		return err
	}
	if isBare {
		label := ManualUpdateLabel
		w = wrapped{Polls: bare, LastUpdate: &label}
	}
	if w.Polls == nil {
		w.Polls = []DetailedPoll{}
	}
	*c = DetailedPollCache(w)
	return nil
}

// MapCache is the municipal map: {cities} or a bare array. LastUpdate is
// derived from the file modification time, never read from the file.
type MapCache struct {
	Cities     []MapCity `json:"cities"`
	LastUpdate string    `json:"lastUpdate"`
}

func (c *MapCache) UnmarshalJSON(data []byte) error {
	var w struct {
		Cities []MapCity `json:"cities"`
	}
	var bare []MapCity
	isBare, err := decodeWrappedOrBare(data, &w, &bare)
	if err != nil {
		return err
	}
	cities := w.Cities
	if isBare {
		cities = bare
	}
	if cities == nil {
		cities = []MapCity{}
	}
	*c = MapCache{Cities: cities}
	return nil
}

// ProgramCache is the program catalog of one country
type ProgramCache struct {
	LastUpdate string    `json:"lastUpdate"`
	Programs   []Program `json:"programs"`
}

func (c *ProgramCache) UnmarshalJSON(data []byte) error {
	type wrapped ProgramCache
	var w wrapped
	var bare []Program
	isBare, err := decodeWrappedOrBare(data, &w, &bare)
	if err != nil {
		return err
	}
	if isBare {
		w = wrapped{LastUpdate: ManualUpdateLabel, Programs: bare}
	}
	if w.Programs == nil {
		w.Programs = []Program{}
	}
	*c = ProgramCache(w)
	return nil
}

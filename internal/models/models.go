package models

// ElectionType selects the data manifest and dashboard configuration of an election
type ElectionType string

const (
	Presidential ElectionType = "presidential"
	Legislative  ElectionType = "legislative"
	Municipal    ElectionType = "municipal"
)

// Election is one entry of the elections registry
type Election struct {
	ID         string       `json:"id" validate:"required,slug"`
	Name       string       `json:"name" validate:"required"`
	Type       ElectionType `json:"type,omitempty" validate:"required,oneof=presidential legislative municipal"`
	Country    string       `json:"country,omitempty"`
	Flag       string       `json:"flag,omitempty"`
	TargetDate string       `json:"targetDate,omitempty"`
	IsDefault  bool         `json:"isDefault,omitempty"`
	Archived   bool         `json:"archived,omitempty"`
}

// Poll is one first- or second-round poll entry. Municipal elections serve
// their city trends through the same list, so city fields are carried along.
type Poll struct {
	Name     string   `json:"name,omitempty"`
	FullName string   `json:"fullName,omitempty"`
	Score    *float64 `json:"score,omitempty"`
	Color    string   `json:"color,omitempty"`

	CityName       string      `json:"cityName,omitempty"`
	Region         string      `json:"region,omitempty"`
	Favorite       string      `json:"favorite,omitempty"`
	Scores         []CityScore `json:"scores,omitempty"`
	PoidsElectoral FlexString  `json:"poidsElectoral,omitempty"`
	PoidsLabel     string      `json:"poidsLabel,omitempty"`
}

// Label is the longest name available for the entry
func (p Poll) Label() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.Name
}

// CityScore is one labelled score of a city (municipal elections)
type CityScore struct {
	Label string  `json:"label,omitempty"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// Candidate is a declared candidate or party. Municipal caches store cities
// in the same list, recognisable by CityName.
type Candidate struct {
	FullName           string      `json:"fullName,omitempty"`
	Name               string      `json:"name,omitempty"`
	Party              string      `json:"party,omitempty"`
	Status             string      `json:"status,omitempty"`
	Score              *float64    `json:"score,omitempty"`
	Color              string      `json:"color,omitempty"`
	Orientation        string      `json:"orientation,omitempty"`
	Themes             []string    `json:"themes,omitempty"`
	DateOfAnnouncement string      `json:"dateOfAnnouncement,omitempty"`
	CityName           string      `json:"cityName,omitempty"`
	Region             string      `json:"region,omitempty"`
	Favorite           string      `json:"favorite,omitempty"`
	Scores             []CityScore `json:"scores,omitempty"`
	PoidsElectoral     FlexString  `json:"poidsElectoral,omitempty"`
	PoidsLabel         string      `json:"poidsLabel,omitempty"`
}

// IsCity reports whether the entry is a municipal city record
func (c Candidate) IsCity() bool {
	return c.CityName != ""
}

// DetailedResult is one line of a published poll
type DetailedResult struct {
	Name     string    `json:"name,omitempty"`
	FullName string    `json:"fullName,omitempty"`
	Score    FlexScore `json:"score"`
}

// DetailedPoll is one historical poll publication
type DetailedPoll struct {
	Institute  string           `json:"institute,omitempty"`
	Date       string           `json:"date,omitempty"`
	SampleSize FlexString       `json:"sampleSize,omitempty"`
	Results    []DetailedResult `json:"results"`
}

// MapCity is a city marker on the municipal map
type MapCity struct {
	ID       string      `json:"id,omitempty"`
	Name     string      `json:"name,omitempty"`
	CityName string      `json:"cityName"`
	Region   string      `json:"region,omitempty"`
	Favorite string      `json:"favorite,omitempty"`
	Lat      *float64    `json:"lat,omitempty"`
	Lng      *float64    `json:"lng,omitempty"`
	Scores   []CityScore `json:"scores"`
}

// ProgramMeasure is a single pledge of a party program
type ProgramMeasure struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact,omitempty"`
}

// ProgramCategory groups measures under a theme
type ProgramCategory struct {
	Name     string           `json:"name"`
	Icon     string           `json:"icon,omitempty"`
	Measures []ProgramMeasure `json:"measures"`
}

// Program is a party program
type Program struct {
	PartyID     string            `json:"partyId"`
	PartyName   string            `json:"partyName"`
	Color       string            `json:"color,omitempty"`
	LogoURL     string            `json:"logoUrl,omitempty"`
	Description string            `json:"description,omitempty"`
	Categories  []ProgramCategory `json:"categories"`
	LastUpdate  string            `json:"lastUpdate,omitempty"`
}

// NewsItem is one aggregated headline
type NewsItem struct {
	ID          string `json:"id"`
	Source      string `json:"source"`
	SourceColor string `json:"sourceColor"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	Time        string `json:"time"`
	PubDateUnix int64  `json:"pubDateUnix"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

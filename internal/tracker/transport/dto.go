// Package transport defines the request/response types of the tracker
// boundary. Presentation collaborators consume these and nothing deeper.
package transport

import "time"

// ValidationResponse reports how a number fits its national numbering plan.
type ValidationResponse struct {
	PhoneNumber         string `json:"phoneNumber"`
	IsValid             bool   `json:"isValid"`
	IsPossible          bool   `json:"isPossible"`
	CountryCode         string `json:"countryCode"`
	Region              string `json:"region"`
	NationalFormat      string `json:"nationalFormat"`
	InternationalFormat string `json:"internationalFormat"`
	LineType            string `json:"lineType"`
}

// PhoneInfoResponse is the descriptive metadata tier.
type PhoneInfoResponse struct {
	PhoneNumber string   `json:"phoneNumber"`
	Carrier     string   `json:"carrier"`
	Region      string   `json:"region"`
	Timezones   []string `json:"timezones"`
	LineType    string   `json:"lineType"`
}

// OwnerInfoResponse is the heuristic owner tier. Disclaimer always flags the
// values as approximate.
type OwnerInfoResponse struct {
	Name            *string           `json:"name,omitempty"`
	Email           *string           `json:"email,omitempty"`
	RiskScore       float64           `json:"riskScore"`
	SpamProbability float64           `json:"spamProbability"`
	SocialProfiles  map[string]string `json:"socialProfiles,omitempty"`
	Disclaimer      string            `json:"disclaimer"`
}

// DetailedLocationResponse is a representative coordinate for the region.
type DetailedLocationResponse struct {
	City      string  `json:"city"`
	State     string  `json:"state"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationInfoResponse is the heuristic location tier.
type LocationInfoResponse struct {
	Region        string                    `json:"region"`
	BasicLocation string                    `json:"basicLocation"`
	Detailed      *DetailedLocationResponse `json:"detailed,omitempty"`
	Disclaimer    string                    `json:"disclaimer"`
}

// EnrichedInfoResponse bundles all three enrichment tiers.
type EnrichedInfoResponse struct {
	Phone    PhoneInfoResponse    `json:"phone"`
	Owner    OwnerInfoResponse    `json:"owner"`
	Location LocationInfoResponse `json:"location"`
}

// TrackedRecordResponse is one persisted record.
type TrackedRecordResponse struct {
	PhoneNumber    string    `json:"phoneNumber"`
	CountryCode    string    `json:"countryCode"`
	NationalNumber string    `json:"nationalNumber"`
	Carrier        string    `json:"carrier"`
	Region         string    `json:"region"`
	Timezones      []string  `json:"timezones"`
	LineType       string    `json:"lineType"`
	IsValid        bool      `json:"isValid"`
	DateAdded      time.Time `json:"dateAdded"`
	LastTracked    time.Time `json:"lastTracked"`
	Notes          string    `json:"notes"`
}

// TrackRequest asks to track one number.
type TrackRequest struct {
	PhoneNumber   string `json:"phoneNumber" validate:"required"`
	Notes         string `json:"notes"`
	DefaultRegion string `json:"defaultRegion" validate:"omitempty,len=2"`
}

// TrackResponse reports the resulting record and whether it was new.
type TrackResponse struct {
	Record  TrackedRecordResponse `json:"record"`
	Created bool                  `json:"created"`
}

// ListRequest selects one page of tracked records.
type ListRequest struct {
	Page     int    `json:"page" validate:"gte=1"`
	PageSize int    `json:"pageSize" validate:"gte=1,lte=500"`
	Search   string `json:"search"`
}

// ListResponse is one page of records plus pagination totals.
type ListResponse struct {
	Records    []TrackedRecordResponse `json:"records"`
	Page       int                     `json:"page"`
	PageSize   int                     `json:"pageSize"`
	Total      int                     `json:"total"`
	TotalPages int                     `json:"totalPages"`
}

// StatsResponse aggregates the record set.
type StatsResponse struct {
	Total                int            `json:"total"`
	Valid                int            `json:"valid"`
	Invalid              int            `json:"invalid"`
	RecentActivity       int            `json:"recentActivity"`
	CarrierDistribution  map[string]int `json:"carrierDistribution"`
	LineTypeDistribution map[string]int `json:"lineTypeDistribution"`
	RegionDistribution   map[string]int `json:"regionDistribution"`
	GeneratedAt          time.Time      `json:"generatedAt"`
}

// ImportRow is one raw row of a batch import.
type ImportRow struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Notes       string `json:"notes"`
}

// ImportError records one failed row; the batch continues past it.
type ImportError struct {
	Row    int    `json:"row"`
	Input  string `json:"input"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// ImportResponse summarizes a batch import.
type ImportResponse struct {
	ImportedCount int           `json:"importedCount"`
	Errors        []ImportError `json:"errors"`
}

// ExportRecord is one record inside an export envelope. phoneNumber and
// notes round-trip verbatim; the metadata columns are informational and get
// recomputed on import.
type ExportRecord struct {
	PhoneNumber    string    `json:"phoneNumber"`
	CountryCode    string    `json:"countryCode"`
	NationalNumber string    `json:"nationalNumber"`
	Carrier        string    `json:"carrier"`
	Region         string    `json:"region"`
	Timezone       string    `json:"timezone"`
	LineType       string    `json:"lineType"`
	DateAdded      time.Time `json:"dateAdded"`
	LastTracked    time.Time `json:"lastTracked"`
	Notes          string    `json:"notes"`
}

// ExportEnvelope wraps an export so a later import can verify what it holds.
type ExportEnvelope struct {
	ExportID      string         `json:"exportId"`
	ExportedAt    time.Time      `json:"exportedAt"`
	SchemaVersion int            `json:"schemaVersion"`
	RecordCount   int            `json:"recordCount"`
	Records       []ExportRecord `json:"records"`
}

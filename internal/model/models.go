// Package model defines the data structures shared by ingestion, storage and
// the HTTP layer.
package model

import "time"

// GeoPoint is a latitude/longitude pair.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// JobPosting is one persisted job advertisement. URL is the identity: two
// postings with the same URL are the same record.
type JobPosting struct {
	ID int64 `json:"_id"`

	URL        string     `json:"url"`
	JobTitle   string     `json:"job_title"`
	Employer   string     `json:"employer"`
	Excerpt    string     `json:"excerpt"`
	Content    string     `json:"content,omitempty"`
	PostDate   *time.Time `json:"post_date"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	Type       string     `json:"type"`
	Duration   string     `json:"duration,omitempty"`

	Location        *GeoPoint `json:"location,omitempty"`
	DerivedLocation *GeoPoint `json:"derived_location,omitempty"`
	Region          string    `json:"region"`
	StateProv       string    `json:"stateprov"`

	WageValue      *float64 `json:"wage_value,omitempty"`
	WageUnit       string   `json:"wage_unit,omitempty"`
	HarmonizedWage *float64 `json:"harmonized_wage,omitempty"`

	// Raw classification inputs, as delivered by the jobs API.
	NOCs        []string `json:"nocs_2021"`
	MajorGroups []string `json:"major_group_2021"`
	NAICS       []string `json:"naics"`

	// Derived classification.
	Category  string `json:"category"`
	Sector    string `json:"sector"`
	NOCCode   string `json:"noc_code"`
	NAICSCode string `json:"naics_code"`

	SkillNames []string `json:"skill_names"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Coordinates returns the primary location when present, else the derived one.
func (j *JobPosting) Coordinates() (GeoPoint, bool) {
	if j.Location != nil {
		return *j.Location, true
	}
	if j.DerivedLocation != nil {
		return *j.DerivedLocation, true
	}
	return GeoPoint{}, false
}

// RawPosting mirrors the `_source` object of one jobs API hit.
type RawPosting struct {
	JobTitle   string        `json:"job_title"`
	Employer   string        `json:"employer"`
	Excerpt    string        `json:"excerpt"`
	Content    string        `json:"content"`
	URL        string        `json:"url"`
	PostDate   OptionalTime  `json:"post_date"`
	ExpiryDate OptionalTime  `json:"expiry_date"`
	Type       string        `json:"type"`
	Duration   string        `json:"duration"`
	Location   *FlexGeoPoint `json:"location"`
	Derived    *FlexGeoPoint `json:"derived_location"`
	Region     string        `json:"region"`
	StateProv  string        `json:"stateprov"`

	WageValue      OptionalFloat `json:"wage_value"`
	WageUnit       string        `json:"wage_unit"`
	HarmonizedWage OptionalFloat `json:"harmonized_wage"`

	NOCs        CodeList `json:"nocs_2021"`
	MajorGroups CodeList `json:"major_group_2021"`
	NAICS       CodeList `json:"naics"`
	Sector      string   `json:"sector"`

	SkillNames CodeList `json:"skill_names"`
}

// User is a registered account. Password holds the bcrypt hash and is never
// serialised.
type User struct {
	ID        int64     `json:"_id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CategoryGroup is one (category, sector) aggregation bucket.
type CategoryGroup struct {
	Category   string
	Sector     string
	Count      int
	NOCCodes   []string
	NAICSCodes []string
}

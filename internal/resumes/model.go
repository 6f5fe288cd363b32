package resumes

import (
	"strings"
	"time"
)

const (
	StatusDraft    = "draft"
	StatusComplete = "complete"
)

// PersonalInfo is the contact header of a resume.
type PersonalInfo struct {
	FullName string `json:"fullName" binding:"max=200"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone" binding:"max=50"`
	Location string `json:"location" binding:"max=200"`
	Website  string `json:"website" binding:"omitempty,url"`
	LinkedIn string `json:"linkedin" binding:"omitempty,url"`
	Summary  string `json:"summary" binding:"max=5000"`
}

// Experience is one position held.
type Experience struct {
	Company      string   `json:"company" binding:"required,max=200"`
	Position     string   `json:"position" binding:"required,max=200"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	Current      bool     `json:"current"`
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// Education is one degree or course of study.
type Education struct {
	Institution string `json:"institution" binding:"required,max=200"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	GPA         string `json:"gpa,omitempty"`
}

// Resume is a user's structured resume document.
type Resume struct {
	ID               string       `json:"id"`
	UserID           string       `json:"userId"`
	Title            string       `json:"title"`
	Template         string       `json:"template"`
	Status           string       `json:"status"`
	PersonalInfo     PersonalInfo `json:"personalInfo"`
	Experience       []Experience `json:"experience"`
	Education        []Education  `json:"education"`
	Skills           []string     `json:"skills"`
	SourceFileName   string       `json:"sourceFileName,omitempty"`
	SourceStorageKey string       `json:"-"`
	Completeness     int          `json:"completeness"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// Completeness scores a resume out of 100, 20 points per filled section.
func Completeness(r Resume) int {
	score := 0
	if strings.TrimSpace(r.PersonalInfo.FullName) != "" && strings.TrimSpace(r.PersonalInfo.Email) != "" {
		score += 20
	}
	if strings.TrimSpace(r.PersonalInfo.Summary) != "" {
		score += 20
	}
	if len(r.Experience) > 0 {
		score += 20
	}
	if len(r.Education) > 0 {
		score += 20
	}
	if len(r.Skills) > 0 {
		score += 20
	}
	return score
}

// normalize fills nil slices so responses always carry arrays.
func normalize(r Resume) Resume {
	if r.Experience == nil {
		r.Experience = []Experience{}
	}
	if r.Education == nil {
		r.Education = []Education{}
	}
	if r.Skills == nil {
		r.Skills = []string{}
	}
	return r
}

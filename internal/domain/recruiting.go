package domain

import (
	"time"

	"github.com/google/uuid"
)

// Types in this file mirror records owned by other parts of the platform.
// The messaging core only reads them.

type ApplicationRef struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

type Application struct {
	ID              uuid.UUID  `json:"id"`
	CandidateID     uuid.UUID  `json:"candidate_id"`
	CandidateName   string     `json:"candidate_name"`
	JobPostingID    uuid.UUID  `json:"job_posting_id"`
	JobPostingTitle string     `json:"job_posting_title"`
	Status          string     `json:"status"`
	ViewedAt        *time.Time `json:"viewed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type Interview struct {
	ID            uuid.UUID `json:"id"`
	ApplicationID uuid.UUID `json:"application_id"`
	CandidateName string    `json:"candidate_name"`
	ScheduledAt   time.Time `json:"scheduled_at"`
}

type Scout struct {
	ID             uuid.UUID  `json:"id"`
	CandidateID    uuid.UUID  `json:"candidate_id"`
	CompanyGroupID uuid.UUID  `json:"company_group_id"`
	CompanyName    string     `json:"company_name"`
	RoomID         *uuid.UUID `json:"room_id,omitempty"`
	SentAt         time.Time  `json:"sent_at"`
	RepliedAt      *time.Time `json:"replied_at,omitempty"`
}

// CandidateProfile holds the fields a candidate is nudged to fill in.
type CandidateProfile struct {
	ID             uuid.UUID  `json:"id"`
	FullName       string     `json:"full_name"`
	Email          string     `json:"email"`
	Phone          *string    `json:"phone,omitempty"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	ResumeURL      *string    `json:"resume_url,omitempty"`
	SelfPR         *string    `json:"self_pr,omitempty"`
	DesiredJobType *string    `json:"desired_job_type,omitempty"`
}

// MissingFields lists unfilled profile fields in display order.
func (p *CandidateProfile) MissingFields() []string {
	var missing []string
	if p.FullName == "" {
		missing = append(missing, "full_name")
	}
	if isBlank(p.Phone) {
		missing = append(missing, "phone")
	}
	if p.BirthDate == nil {
		missing = append(missing, "birth_date")
	}
	if isBlank(p.ResumeURL) {
		missing = append(missing, "resume")
	}
	if isBlank(p.SelfPR) {
		missing = append(missing, "self_pr")
	}
	if isBlank(p.DesiredJobType) {
		missing = append(missing, "desired_job_type")
	}
	return missing
}

func isBlank(s *string) bool {
	return s == nil || *s == ""
}

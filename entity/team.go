package entity

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"igcadmin/lib/validate"

	"github.com/biter777/countries"
)

type TeamStatus string

const (
	StatusPending  TeamStatus = "pending"
	StatusApproved TeamStatus = "approved"
	StatusRejected TeamStatus = "rejected"
)

// DefaultRejectionReason is stored when a rejection arrives without one.
const DefaultRejectionReason = "Rejected by admin"

// TeamMember is one non-leader participant. Registration forms submit fixed
// member slots, so a member only counts toward team size when the trimmed
// full name is non-blank.
type TeamMember struct {
	FullName string `json:"fullName" bson:"fullName" validate:"omitempty,max=100"`
	Gender   string `json:"gender" bson:"gender" validate:"omitempty,oneof=male female other"`
	MobileNo string `json:"mobileNo" bson:"mobileNo" validate:"omitempty,min=10,max=16"`
	Email    string `json:"email" bson:"email" validate:"omitempty,email"`
}

// TeamRegistration is a hackathon team record. registrationNumber and teamId
// are assigned exactly once on first save and never change afterwards.
type TeamRegistration struct {
	TeamName           string       `json:"teamName" bson:"teamName" validate:"required,max=100"`
	LeaderName         string       `json:"leaderName" bson:"leaderName" validate:"required,max=100"`
	LeaderEmail        string       `json:"leaderEmail" bson:"leaderEmail" validate:"required,email"`
	LeaderMobile       string       `json:"leaderMobile" bson:"leaderMobile" validate:"required,min=10,max=16"`
	LeaderGender       string       `json:"leaderGender" bson:"leaderGender" validate:"required,oneof=male female other"`
	Institution        string       `json:"institution" bson:"institution" validate:"required,max=200"`
	Program            string       `json:"program" bson:"program" validate:"required,max=100"`
	Country            string       `json:"country" bson:"country" validate:"required,max=100"`
	State              string       `json:"state" bson:"state" validate:"required,max=100"`
	Members            []TeamMember `json:"members" bson:"members" validate:"required,dive"`
	MentorName         string       `json:"mentorName" bson:"mentorName" validate:"required,max=100"`
	MentorEmail        string       `json:"mentorEmail" bson:"mentorEmail" validate:"required,email"`
	MentorMobile       string       `json:"mentorMobile" bson:"mentorMobile" validate:"required,min=10,max=16"`
	MentorInstitution  string       `json:"mentorInstitution" bson:"mentorInstitution" validate:"required,max=200"`
	MentorDesignation  string       `json:"mentorDesignation" bson:"mentorDesignation" validate:"required,max=100"`
	TopicName          string       `json:"topicName" bson:"topicName" validate:"required,max=200"`
	TopicDescription   string       `json:"topicDescription" bson:"topicDescription" validate:"required"`
	Track              string       `json:"track" bson:"track" validate:"required,max=100"`
	RegistrationStatus TeamStatus   `json:"registrationStatus" bson:"registrationStatus"`
	RegistrationNumber string       `json:"registrationNumber,omitempty" bson:"registrationNumber,omitempty"`
	TeamId             string       `json:"teamId,omitempty" bson:"teamId,omitempty"`
	SubmittedAt        time.Time    `json:"submittedAt" bson:"submittedAt"`
	ApprovedAt         *time.Time   `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`
	RejectedAt         *time.Time   `json:"rejectedAt,omitempty" bson:"rejectedAt,omitempty"`
	RejectionReason    string       `json:"rejectionReason,omitempty" bson:"rejectionReason,omitempty" validate:"omitempty,max=500"`
	ActionedBy         string       `json:"actionedBy,omitempty" bson:"actionedBy,omitempty" validate:"omitempty,max=100"`
}

func (t *TeamRegistration) Bind(_ *http.Request) error {
	t.normalize()
	if err := validate.Struct(t); err != nil {
		return err
	}
	return t.Validate()
}

func (t *TeamRegistration) normalize() {
	t.TeamName = strings.TrimSpace(t.TeamName)
	t.LeaderName = strings.TrimSpace(t.LeaderName)
	t.LeaderEmail = strings.ToLower(strings.TrimSpace(t.LeaderEmail))
	t.LeaderMobile = strings.TrimSpace(t.LeaderMobile)
	t.Institution = strings.TrimSpace(t.Institution)
	t.Country = strings.TrimSpace(t.Country)
	t.State = strings.TrimSpace(t.State)
	t.MentorName = strings.TrimSpace(t.MentorName)
	t.MentorEmail = strings.ToLower(strings.TrimSpace(t.MentorEmail))
	t.MentorMobile = strings.TrimSpace(t.MentorMobile)
	t.TopicName = strings.TrimSpace(t.TopicName)
	for i := range t.Members {
		t.Members[i].Email = strings.ToLower(strings.TrimSpace(t.Members[i].Email))
	}
}

// Validate applies the rules the field tags cannot express.
func (t *TeamRegistration) Validate() error {
	n := t.ValidMembers()
	if n < 1 || n > 4 {
		return fmt.Errorf("team must have between 1-4 members excluding the leader, got %d", n)
	}
	if countries.ByName(t.Country) == countries.Unknown {
		return fmt.Errorf("unknown country: %s", t.Country)
	}
	return nil
}

// ValidMembers counts members whose full name is non-blank after trimming.
func (t *TeamRegistration) ValidMembers() int {
	n := 0
	for _, m := range t.Members {
		if strings.TrimSpace(m.FullName) != "" {
			n++
		}
	}
	return n
}

// TeamSize is the valid member count plus the leader.
func (t *TeamRegistration) TeamSize() int {
	return t.ValidMembers() + 1
}

// TeamCounts is the aggregate returned by the public count endpoint.
type TeamCounts struct {
	Total    int64 `json:"total"`
	Approved int64 `json:"approved"`
	Pending  int64 `json:"pending"`
	Rejected int64 `json:"rejected"`
}

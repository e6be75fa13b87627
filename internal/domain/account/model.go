package account

import (
	"strings"
	"time"
)

type Role string

const (
	RoleHusband Role = "husband"
	RoleWife    Role = "wife"
)

func ParseRole(value string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleHusband:
		return RoleHusband, nil
	case RoleWife:
		return RoleWife, nil
	}
	return "", ErrInvalidRole
}

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusRejected RequestStatus = "rejected"
)

type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

func ParseDecision(value string) (Decision, error) {
	switch Decision(strings.ToLower(strings.TrimSpace(value))) {
	case DecisionAccept:
		return DecisionAccept, nil
	case DecisionReject:
		return DecisionReject, nil
	}
	return "", ErrInvalidDecision
}

// Account is the stored record. Password never leaves the domain; callers
// receive a View instead.
type Account struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	FirstName string    `gorm:"not null"`
	LastName  string    `gorm:"not null"`
	Email     string    `gorm:"not null;uniqueIndex"`
	Password  string    `gorm:"not null"`
	Role      Role      `gorm:"type:varchar(16);not null"`
	PartnerID *string   `gorm:"type:uuid;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (a *Account) Linked() bool {
	return a.PartnerID != nil && *a.PartnerID != ""
}

func (a *Account) SameLastName(other *Account) bool {
	return strings.EqualFold(strings.TrimSpace(a.LastName), strings.TrimSpace(other.LastName))
}

type ConnectionRequest struct {
	ID         string        `gorm:"type:uuid;primaryKey"`
	SenderID   string        `gorm:"type:uuid;not null;index"`
	ReceiverID string        `gorm:"type:uuid;not null;index"`
	Status     RequestStatus `gorm:"type:varchar(16);not null"`
	CreatedAt  time.Time     `gorm:"autoCreateTime"`
	UpdatedAt  time.Time     `gorm:"autoUpdateTime"`
}

// AccountUpdate carries the profile fields to change; nil means unchanged.
type AccountUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
}

func (u AccountUpdate) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
}

type UpdateProfileInput struct {
	FirstName string
	LastName  string
	Email     string
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

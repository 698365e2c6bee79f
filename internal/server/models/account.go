package models

import (
	"fmt"
	"strings"
	"time"
)

// Role is the access class of an account.
type Role string

const (
	RoleMaster Role = "master"
	RoleSeller Role = "seller"
)

// IsValid reports whether r is one of the recognized roles.
func (r Role) IsValid() bool {
	return r == RoleMaster || r == RoleSeller
}

// ParseRole converts stored role text into a Role. Token claims keep the
// raw role so the gate can answer with ErrInvalidRole.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// SellerStatus is the lifecycle state of a seller account.
type SellerStatus string

const (
	StatusPending   SellerStatus = "pending"
	StatusActive    SellerStatus = "active"
	StatusSuspended SellerStatus = "suspended"
	StatusClosing   SellerStatus = "closing"
	StatusClosed    SellerStatus = "closed"
	StatusRejected  SellerStatus = "rejected"
)

var sellerStatuses = []SellerStatus{
	StatusPending, StatusActive, StatusSuspended, StatusClosing, StatusClosed, StatusRejected,
}

// SellerStatuses lists every status a seller may be in.
func SellerStatuses() []SellerStatus {
	out := make([]SellerStatus, len(sellerStatuses))
	copy(out, sellerStatuses)
	return out
}

// IsValid reports whether s is a known seller status.
func (s SellerStatus) IsValid() bool {
	for _, v := range sellerStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func ParseSellerStatus(s string) (SellerStatus, error) {
	st := SellerStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", fmt.Errorf("unknown seller status %q", s)
	}
	return st, nil
}

// Account is a row of the account directory.
type Account struct {
	AccountNo    int64        `json:"account_no"`
	LoginID      string       `json:"login_id"`
	Role         Role         `json:"role"`
	Status       SellerStatus `json:"status,omitempty"`
	PasswordHash string       `json:"-"`
	CreatedAt    time.Time    `json:"created_at"`
}

package models

import "time"

// Matching request statuses. Pending requests transition to accepted or
// rejected by the mentor. Cancelled is a display value reported when a mentee
// deletes a request; it is never stored.
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// MatchingRequest is a directed proposal from one mentee to one mentor. The
// composite unique index backs the one-outstanding-request-per-pair rule at
// the database level, so racing inserts cannot both land.
type MatchingRequest struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	MenteeID  string    `json:"mentee_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_matching_requests_pair"`
	MentorID  string    `json:"mentor_id" gorm:"index;type:varchar(36);not null;uniqueIndex:idx_matching_requests_pair"`
	Message   string    `json:"message,omitempty" gorm:"type:text"`
	Status    string    `json:"status" gorm:"type:varchar(16);default:'pending'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsDecidableStatus reports whether s is a status a mentor may set.
func IsDecidableStatus(s string) bool {
	return s == StatusAccepted || s == StatusRejected
}

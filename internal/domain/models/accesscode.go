package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccessCodeType enumerates the staff capability an invitation grants.
type AccessCodeType string

const (
	AccessCodeWorker AccessCodeType = "worker"
	AccessCodeVet    AccessCodeType = "vet"
)

// AccessCode is a single-use invitation token. Redeeming it stamps the new
// staff account with the capability flag and the RegisteredBy link back to
// the issuing farmer.
type AccessCode struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code        string             `bson:"code" json:"code"`
	Type        AccessCodeType     `bson:"type" json:"type"`
	Name        string             `bson:"name" json:"name"`
	GeneratedBy string             `bson:"generated_by" json:"generated_by"`
	Used        bool               `bson:"used" json:"used"`
	UsedBy      string             `bson:"used_by,omitempty" json:"used_by,omitempty"`
	UsedAt      time.Time          `bson:"used_at,omitempty" json:"used_at,omitempty"`
	ExpiresAt   time.Time          `bson:"expires_at" json:"expires_at"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// Expired reports whether the code lifetime has elapsed at the given instant.
func (c AccessCode) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

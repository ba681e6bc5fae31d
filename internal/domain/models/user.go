package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a farm account. Farmers own a farm; workers and vets are staff
// accounts attached to a farmer through a redeemed access code.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	IsWorker     bool               `bson:"is_worker" json:"is_worker"`
	IsVet        bool               `bson:"is_vet" json:"is_vet"`
	RegisteredBy string             `bson:"registered_by,omitempty" json:"registered_by,omitempty"`
	LastLogin    time.Time          `bson:"last_login,omitempty" json:"last_login,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// Actor is the authenticated identity attached to every request. It carries
// only the claims the access-scoping rules need.
type Actor struct {
	ID           string
	IsWorker     bool
	IsVet        bool
	RegisteredBy string
}

// IsFarmer reports whether the actor is a primary account owner rather than
// staff. The capability flags are authoritative, not the RegisteredBy link.
func (a Actor) IsFarmer() bool {
	return !a.IsWorker && !a.IsVet
}

// ActorFrom projects a stored user onto its request-scoped claims.
func ActorFrom(u User) Actor {
	return Actor{
		ID:           u.ID.Hex(),
		IsWorker:     u.IsWorker,
		IsVet:        u.IsVet,
		RegisteredBy: u.RegisteredBy,
	}
}

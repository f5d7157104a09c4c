package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	DonationCollection = "donations"
	AdoptionCollection = "adoptions"

	// FieldEmail is the adopter's address on an adoption request.
	FieldEmail = "email"
)

// InsertResult is the write acknowledgement returned for appended records.
type InsertResult struct {
	Acknowledged bool               `json:"acknowledged"`
	InsertedID   primitive.ObjectID `json:"insertedId"`
}

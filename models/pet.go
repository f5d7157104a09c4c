package models

import "go.mongodb.org/mongo-driver/bson"

// Pet documents are stored as-is; these are the fields the server owns.
const (
	PetCollection = "pets"

	FieldID           = "_id"
	FieldName         = "name"
	FieldCategory     = "category"
	FieldCreatorEmail = "creatorEmail"
	FieldAdopted      = "adopted"
	FieldCreatedAt    = "createdAt"
)

type PetPage struct {
	Pets    []bson.M `json:"pets"`
	HasMore bool     `json:"hasMore"`
}

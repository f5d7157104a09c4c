package models

import "go.mongodb.org/mongo-driver/bson"

const (
	CampaignCollection = "donation"

	// FieldDate is set by the server when a campaign or donation is created.
	FieldDate = "date"
)

type CampaignPage struct {
	Campaigns []bson.M `json:"campaigns"`
	HasMore   bool     `json:"hasMore"`
}

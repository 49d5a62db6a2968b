package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const RequestStatusPending = "pending"

type BloodRequest struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	RequesterName  string             `bson:"requesterName" json:"requesterName"`
	RequesterEmail string             `bson:"requesterEmail" json:"requesterEmail"`
	RecipientName  string             `bson:"recipientName,omitempty" json:"recipientName,omitempty"`
	District       string             `bson:"district" json:"district"`
	Upazila        string             `bson:"upazila" json:"upazila"`
	HospitalName   string             `bson:"hospitalName,omitempty" json:"hospitalName,omitempty"`
	FullAddress    string             `bson:"fullAddress,omitempty" json:"fullAddress,omitempty"`
	BloodGroup     string             `bson:"bloodGroup" json:"bloodGroup"`
	DonationDate   string             `bson:"donationDate,omitempty" json:"donationDate,omitempty"`
	DonationTime   string             `bson:"donationTime,omitempty" json:"donationTime,omitempty"`
	RequestMessage string             `bson:"requestMessage,omitempty" json:"requestMessage,omitempty"`
	Status         string             `bson:"status,omitempty" json:"status,omitempty"`
	DonorName      string             `bson:"donorName,omitempty" json:"donorName,omitempty"`
	DonorEmail     string             `bson:"donorEmail,omitempty" json:"donorEmail,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// RequestPatch carries the fields a request update may touch. Nil fields
// are left unchanged.
type RequestPatch struct {
	RequesterName  *string
	RecipientName  *string
	District       *string
	Upazila        *string
	HospitalName   *string
	FullAddress    *string
	BloodGroup     *string
	DonationDate   *string
	DonationTime   *string
	RequestMessage *string
	Status         *string
	DonorName      *string
	DonorEmail     *string
}

// RequestQuery filters the administrative request listing.
type RequestQuery struct {
	Search string
	Status string
	Page   int
	Limit  int
}

// SearchQuery filters the public search. Supplied filters are OR-combined.
type SearchQuery struct {
	BloodGroup string
	District   string
	Upazila    string
	Page       int
	Limit      int
}

type Activity struct {
	ID       primitive.ObjectID `json:"_id"`
	UserName string             `json:"userName"`
	Action   string             `json:"action"`
	Date     string             `json:"date"`
	Status   string             `json:"status"`
}

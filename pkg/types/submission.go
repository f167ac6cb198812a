package types

import (
	"strings"
	"time"
)

// Sentinel sent by the intake form when the browser could not resolve a position
const LocationNotRetrieved = "Location not retrieved"

// MaxPhotos is the most photos a single request may carry. Exceeding it
// rejects the request.
const MaxPhotos = 5

// ListDelimiter joins multi-valued columns (others_name, photo_urls)
const ListDelimiter = ","

type CitizenStatus string

const (
	CitizenStatusYes CitizenStatus = "Yes"
	CitizenStatusNo  CitizenStatus = "No"
)

func (c CitizenStatus) Valid() bool {
	return c == CitizenStatusYes || c == CitizenStatusNo
}

// Submission is a single row of the sos_requests table
type Submission struct {
	ID                  string        `db:"id" json:"id"`
	FirstName           string        `db:"first_name" json:"firstName"`
	LastName            string        `db:"last_name" json:"lastName"`
	OthersName          string        `db:"others_name" json:"othersName"`
	Email               *string       `db:"email" json:"email"`
	PhoneNumber         string        `db:"phone_number" json:"phoneNumber"`
	LocationDescription string        `db:"location_description" json:"locationDescription"`
	Need                string        `db:"need" json:"need"`
	OtherNeed           string        `db:"other_need" json:"otherNeed"`
	USCitizen           CitizenStatus `db:"us_citizen" json:"usCitizen"`
	Latitude            *string       `db:"latitude" json:"latitude"`
	Longitude           *string       `db:"longitude" json:"longitude"`
	PhotoURLs           string        `db:"photo_urls" json:"photoUrls"`
	CreatedAt           int64         `db:"created_at" json:"createdAt"`
}

// PhotoIDs splits PhotoURLs back into the blob identifiers, in upload order.
func (s *Submission) PhotoIDs() []string {
	return splitList(s.PhotoURLs)
}

// HasLocation reports whether both coordinates were captured.
func (s *Submission) HasLocation() bool {
	return s.Latitude != nil && s.Longitude != nil
}

func (s *Submission) CreatedTime() time.Time {
	return time.Unix(s.CreatedAt, 0).UTC()
}

func JoinList(values []string) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		out = append(out, v)
	}
	return strings.Join(out, ListDelimiter)
}

func splitList(joined string) []string {
	if joined == "" {
		return []string{}
	}
	return strings.Split(joined, ListDelimiter)
}

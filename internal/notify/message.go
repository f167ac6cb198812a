package notify

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"sosintake/internal/utils"
	"sosintake/pkg/types"
)

const (
	uploadsPath = "/uploads/"
	mapsURL     = "https://www.google.com/maps"
)

// FormatMessage renders the plain-text notification for an accepted request.
// The line order is fixed.
func FormatMessage(submission *types.Submission, publicBaseURL string) string {
	var b strings.Builder

	b.WriteString("New SOS request\n")
	fmt.Fprintf(&b, "Submitted: %s\n", submission.CreatedTime().Format(time.RFC3339))
	fmt.Fprintf(&b, "First name: %s\n", submission.FirstName)
	fmt.Fprintf(&b, "Last name: %s\n", submission.LastName)
	fmt.Fprintf(&b, "Other names: %s\n", submission.OthersName)
	fmt.Fprintf(&b, "Email: %s\n", utils.PtrString(submission.Email))
	fmt.Fprintf(&b, "Phone number: %s\n", submission.PhoneNumber)
	fmt.Fprintf(&b, "Location description: %s\n", submission.LocationDescription)
	fmt.Fprintf(&b, "Need: %s\n", submission.Need)
	fmt.Fprintf(&b, "Other need: %s\n", submission.OtherNeed)
	fmt.Fprintf(&b, "US citizen: %s\n", submission.USCitizen)
	fmt.Fprintf(&b, "Location: %s\n", locationLine(submission))
	fmt.Fprintf(&b, "Photos: %s", photosLine(submission, publicBaseURL))

	return b.String()
}

func locationLine(submission *types.Submission) string {
	if !submission.HasLocation() {
		return "None"
	}

	lat, lon := *submission.Latitude, *submission.Longitude

	// The separating comma stays literal. Each coordinate is escaped on its own
	// since both are passed through from the form unchanged.
	link := fmt.Sprintf("%s?q=%s,%s", mapsURL, url.QueryEscape(lat), url.QueryEscape(lon))

	return fmt.Sprintf("%s (latitude %s, longitude %s)", link, lat, lon)
}

func photosLine(submission *types.Submission, publicBaseURL string) string {
	ids := submission.PhotoIDs()
	if len(ids) == 0 {
		return "None"
	}

	links := PhotoLinks(publicBaseURL, ids)
	return strings.Join(links, ", ")
}

// PhotoLinks builds the public retrieval URL for each photo identifier.
func PhotoLinks(publicBaseURL string, ids []string) []string {
	base := strings.TrimRight(publicBaseURL, "/") + uploadsPath

	links := make([]string, 0, len(ids))
	for _, id := range ids {
		links = append(links, base+id)
	}
	return links
}

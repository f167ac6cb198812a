package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sosintake/internal/utils"
	"sosintake/pkg/types"
)

type SubmissionCreator interface {
	CreateSubmission(ctx context.Context, submission *types.Submission) error
}

type fakeSubmissionSeed struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Need      string
	Citizen   types.CitizenStatus
	Latitude  string
	Longitude string
}

var fakeSubmissions = []fakeSubmissionSeed{
	{ID: "seed000000000000000001", FirstName: "Ava", LastName: "Williams", Email: "ava.williams+seed1@example.com", Need: "Water", Citizen: types.CitizenStatusYes, Latitude: "18.4655", Longitude: "-66.1057"},
	{ID: "seed000000000000000002", FirstName: "Liam", LastName: "Johnson", Need: "Shelter", Citizen: types.CitizenStatusNo},
	{ID: "seed000000000000000003", FirstName: "Mia", LastName: "Davis", Email: "mia.davis+seed3@example.com", Need: "Medical", Citizen: types.CitizenStatusYes, Latitude: "29.9511", Longitude: "-90.0715"},
	{ID: "seed000000000000000004", FirstName: "Noah", LastName: "Brown", Need: "Food", Citizen: types.CitizenStatusNo, Latitude: types.LocationNotRetrieved, Longitude: types.LocationNotRetrieved},
}

// SeedSubmissions inserts a fixed set of demo requests for local development.
// Rows that already exist are skipped, so it is safe to run repeatedly.
func SeedSubmissions(ctx context.Context, repo SubmissionCreator) (int, error) {
	now := time.Now()
	seeded := 0

	for i, fake := range fakeSubmissions {
		submission := &types.Submission{
			ID:        fake.ID,
			FirstName: fake.FirstName,
			LastName:  fake.LastName,
			Email:     utils.NilIfEmpty(fake.Email),
			Need:      fake.Need,
			USCitizen: fake.Citizen,
			Latitude:  seedCoordinate(fake.Latitude),
			Longitude: seedCoordinate(fake.Longitude),
			CreatedAt: now.Add(-time.Duration(i) * time.Hour).Unix(),
		}

		err := repo.CreateSubmission(ctx, submission)
		if errors.Is(err, types.ErrSubmissionNotInserted) {
			continue
		}
		if err != nil {
			return seeded, fmt.Errorf("failed to create fake submission %s: %w", fake.ID, err)
		}
		seeded++
	}

	return seeded, nil
}

func seedCoordinate(v string) *string {
	if v == types.LocationNotRetrieved {
		return nil
	}
	return utils.NilIfEmpty(v)
}

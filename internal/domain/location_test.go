package domain

import (
	"errors"
	"testing"
)

func TestValidateLocations(t *testing.T) {
	valid := []Location{
		{ID: 1, Name: "Depot", Latitude: 17.45, Longitude: 78.47, IsDepot: true},
		{ID: 2, Name: "A", Latitude: 17.40, Longitude: 78.50, PackageCount: 3},
	}
	if err := ValidateLocations(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name  string
		field string
		locs  []Location
	}{
		{
			"latitude out of range", "latitude",
			[]Location{
				{ID: 1, Latitude: 91, Longitude: 0, IsDepot: true},
				{ID: 2, Latitude: 0, Longitude: 0},
			},
		},
		{
			"longitude out of range", "longitude",
			[]Location{
				{ID: 1, Latitude: 0, Longitude: -181, IsDepot: true},
				{ID: 2, Latitude: 0, Longitude: 0},
			},
		},
		{
			"duplicate id", "id",
			[]Location{
				{ID: 1, Latitude: 0, Longitude: 0, IsDepot: true},
				{ID: 1, Latitude: 1, Longitude: 1},
			},
		},
		{
			"no depot", "is_depot",
			[]Location{
				{ID: 1, Latitude: 0, Longitude: 0},
				{ID: 2, Latitude: 1, Longitude: 1},
			},
		},
		{
			"two depots", "is_depot",
			[]Location{
				{ID: 1, Latitude: 0, Longitude: 0, IsDepot: true},
				{ID: 2, Latitude: 1, Longitude: 1, IsDepot: true},
			},
		},
		{
			"negative package count", "package_count",
			[]Location{
				{ID: 1, Latitude: 0, Longitude: 0, IsDepot: true},
				{ID: 2, Latitude: 1, Longitude: 1, PackageCount: -1},
			},
		},
	}

	for _, tc := range cases {
		err := ValidateLocations(tc.locs)
		if err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
			continue
		}

		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%s: expected *ValidationError, got %T", tc.name, err)
			continue
		}
		if ve.Field != tc.field {
			t.Errorf("%s: field = %q, want %q", tc.name, ve.Field, tc.field)
		}
	}
}

package formbind

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	backend "veriadmin/internal/backend/models"
	"veriadmin/internal/location/models"
	id "veriadmin/pkg/domain"
	dErrors "veriadmin/pkg/domain-errors"
)

func fullSnapshot() models.Snapshot {
	fee := 5000.0
	sel := models.NewSelection()
	sel.Country = models.Dataset("NG", "Nigeria")
	sel.State = models.Dataset("LA", "Lagos")
	sel.LGA = models.FreeText("Ikeja")
	sel.City = models.Dataset("Ikeja", "Ikeja")
	sel.CityRegion = models.FreeText("Allen Avenue")
	sel.CityRegionFee = &fee
	return models.NewSnapshot(id.NewSelectionID(), models.StatusActive, sel, time.Now())
}

func ptr[T any](v T) *T {
	return &v
}

func TestValidateLocationRecord(t *testing.T) {
	p := LocationRecord()

	t.Run("complete form passes", func(t *testing.T) {
		f := Bind(p, fullSnapshot(), Details{HouseNumber: "12", Street: "Allen Avenue"})
		assert.NoError(t, Validate(p, f))
	})

	t.Run("missing city is reported on the city field", func(t *testing.T) {
		snap := fullSnapshot()
		snap.City = models.Empty()
		snap.CityRegion = models.Empty()
		snap.CityRegionFee = nil
		err := Validate(p, Bind(p, snap, Details{HouseNumber: "12", Street: "Allen Avenue"}))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Equal(t, map[string]string{"city": "City is required"}, dErrors.FieldsOf(err))
	})

	t.Run("whitespace does not satisfy a required field", func(t *testing.T) {
		err := Validate(p, Bind(p, fullSnapshot(), Details{HouseNumber: "  ", Street: "x"}))
		require.Error(t, err)
		assert.Equal(t, "House number is required", dErrors.FieldsOf(err)["houseNumber"])
	})

	t.Run("lga and city region are optional", func(t *testing.T) {
		snap := fullSnapshot()
		snap.LGA = models.Empty()
		snap.CityRegion = models.Empty()
		snap.CityRegionFee = nil
		assert.NoError(t, Validate(p, Bind(p, snap, Details{HouseNumber: "1", Street: "Broad St"})))
	})

	t.Run("optional fields are still range-checked", func(t *testing.T) {
		long := make([]byte, 201)
		for i := range long {
			long[i] = 'a'
		}
		err := Validate(p, Bind(p, fullSnapshot(), Details{HouseNumber: "1", Street: "s", Landmark: string(long)}))
		require.Error(t, err)
		assert.Contains(t, dErrors.FieldsOf(err), "landmark")
	})
}

func TestValidateCityRegionManagement(t *testing.T) {
	p := CityRegionManagement()
	snap := fullSnapshot()
	snap.CityRegion = models.Empty()
	snap.CityRegionFee = nil

	err := Validate(p, Bind(p, snap, Details{}))
	require.Error(t, err)
	fields := dErrors.FieldsOf(err)
	assert.Equal(t, "City region is required", fields["cityRegion"])
	assert.Equal(t, "City region fee is required", fields["cityRegionFee"])
}

func TestDefaultPricing(t *testing.T) {
	t.Run("state level sends country and state only", func(t *testing.T) {
		p := DefaultPricing(backend.PricingState)
		assert.Equal(t, []models.Level{models.LevelCountry, models.LevelState}, p.Levels)
		assert.ElementsMatch(t, []string{"defaultFee", "country", "state"}, p.Required)

		f := Bind(p, fullSnapshot(), Details{DefaultFee: ptr(1500.0), Description: "Lagos base"})
		require.NoError(t, Validate(p, f))
		rule := ToPricingRule(p, f, nil)
		assert.Equal(t, backend.PricingRule{
			Level:       backend.PricingState,
			Country:     "Nigeria",
			State:       "Lagos",
			DefaultFee:  1500,
			Description: "Lagos base",
			IsActive:    true,
		}, rule)
	})

	t.Run("lga required only at lga level", func(t *testing.T) {
		assert.NotContains(t, DefaultPricing(backend.PricingCity).Required, "lga")
		assert.Contains(t, DefaultPricing(backend.PricingLGA).Required, "lga")
	})

	t.Run("negative fee rejected", func(t *testing.T) {
		p := DefaultPricing(backend.PricingCountry)
		err := Validate(p, Bind(p, fullSnapshot(), Details{DefaultFee: ptr(-5.0)}))
		require.Error(t, err)
		assert.Equal(t, "Default fee must be 0 or greater", dErrors.FieldsOf(err)["defaultFee"])
	})

	t.Run("inactive flag honoured", func(t *testing.T) {
		p := DefaultPricing(backend.PricingCountry)
		f := Bind(p, fullSnapshot(), Details{DefaultFee: ptr(10.0)})
		assert.False(t, ToPricingRule(p, f, ptr(false)).IsActive)
	})
}

func TestProfileByName(t *testing.T) {
	p, err := ProfileByName("city-region", "")
	require.NoError(t, err)
	assert.Equal(t, ProfileNameCityRegion, p.Name)

	p, err = ProfileByName("pricing", "lga")
	require.NoError(t, err)
	assert.Equal(t, backend.PricingLGA, p.PricingLevel)

	_, err = ProfileByName("pricing", "planet")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = ProfileByName("invoice", "")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestRecords(t *testing.T) {
	t.Run("location record carries the address and gallery", func(t *testing.T) {
		p := LocationRecord()
		f := Bind(p, fullSnapshot(), Details{LocationType: "branch", BrandName: "Acme", HouseNumber: "12", Street: "Allen Avenue"})
		loc := ToLocation(f, "org-1", backend.Gallery{Images: []string{"https://cdn/a.png"}})
		assert.Equal(t, "Nigeria", loc.Country)
		assert.Equal(t, "Lagos", loc.State)
		assert.Equal(t, "Ikeja", loc.LGA)
		assert.Equal(t, "Allen Avenue", loc.CityRegion)
		assert.Equal(t, 5000.0, *loc.CityRegionFee)
		assert.Equal(t, []string{"https://cdn/a.png"}, loc.Gallery.Images)
		assert.NotNil(t, loc.Gallery.Videos)
	})

	t.Run("verification profile drops city region", func(t *testing.T) {
		f := Bind(VerificationData(), fullSnapshot(), Details{})
		assert.Empty(t, f.CityRegion)
		assert.Nil(t, f.CityRegionFee)
		assert.Equal(t, "Ikeja", f.City)
	})

	t.Run("city region set holds one region", func(t *testing.T) {
		f := Bind(CityRegionManagement(), fullSnapshot(), Details{})
		set := ToCityRegionSet(f)
		require.Len(t, set.Regions, 1)
		assert.Equal(t, "Allen Avenue", set.Regions[0].Name)
		assert.Equal(t, 5000.0, *set.Regions[0].Fee)
	})
}

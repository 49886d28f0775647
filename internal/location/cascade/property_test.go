package cascade

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veriadmin/internal/geography"
	"veriadmin/internal/location/models"
)

// Walks every country → state → city path of the embedded dataset and checks
// that re-selecting a country or state empties everything below it.
func TestCascadeClearsBelowForEveryDatasetPath(t *testing.T) {
	ctx := context.Background()
	src := geography.NewBundled()
	countries, err := src.Countries()
	require.NoError(t, err)

	ctrl := New(src)
	ctrl.Init(ctx)
	ctrl.Wait()

	for _, country := range countries {
		for _, state := range country.States {
			for _, city := range state.Cities {
				_, err := ctrl.SelectCountry(ctx, country.Code)
				require.NoError(t, err)
				ctrl.Wait()
				_, err = ctrl.SelectState(ctx, state.Code)
				require.NoError(t, err)
				ctrl.Wait()
				_, err = ctrl.SelectCity(city)
				require.NoError(t, err)
				_, err = ctrl.SetLGA("lga")
				require.NoError(t, err)
				_, err = ctrl.SetCityRegion("region", nil)
				require.NoError(t, err)

				_, err = ctrl.SelectState(ctx, state.Name)
				require.NoError(t, err)
				snap := ctrl.Snapshot()
				for _, l := range models.LevelState.Descendants() {
					assert.True(t, snap.Get(l).IsEmpty(), "%s/%s/%s: %s after state change", country.Code, state.Code, city, l)
				}
				ctrl.Wait()

				_, err = ctrl.SelectCountry(ctx, country.Name)
				require.NoError(t, err)
				snap = ctrl.Snapshot()
				for _, l := range models.LevelCountry.Descendants() {
					assert.True(t, snap.Get(l).IsEmpty(), "%s/%s/%s: %s after country change", country.Code, state.Code, city, l)
				}
				ctrl.Wait()
			}
		}
	}
}

func TestSearchEmptyReturnsDatasetOrder(t *testing.T) {
	ctx := context.Background()
	src := geography.NewBundled()
	ctrl := New(src)
	ctrl.Init(ctx)
	ctrl.Wait()

	want, err := src.ListCountries(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, ctrl.Search(models.LevelCountry, ""))

	_, err = ctrl.SelectCountry(ctx, "NG")
	require.NoError(t, err)
	ctrl.Wait()
	wantStates, err := src.ListStates(ctx, "NG")
	require.NoError(t, err)
	assert.Equal(t, wantStates, ctrl.Search(models.LevelState, ""))
}

package gallery

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	dErrors "veriadmin/pkg/domain-errors"
)

func TestEffectivePrice(t *testing.T) {
	cases := []struct {
		name     string
		price    float64
		discount float64
		want     float64
	}{
		{"no discount", 2500, 0, 2500},
		{"percent off", 2500, 10, 2250},
		{"rounds to cents", 19.99, 33, 13.39},
		{"full discount", 100, 100, 0},
		{"free item", 0, 50, 0},
		{"over discount never negative", 100, 150, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			it := Item{Price: tc.price, DiscountPercent: tc.discount}
			assert.InDelta(t, tc.want, it.EffectivePrice(), 1e-9)
		})
	}
}

type GallerySuite struct {
	suite.Suite
	g *Gallery
}

func TestGallerySuite(t *testing.T) {
	suite.Run(t, new(GallerySuite))
}

func (s *GallerySuite) SetupTest() {
	s.g = &Gallery{}
}

func (s *GallerySuite) fill(n int, public bool) []string {
	var ids []string
	for i := range n {
		it, err := s.g.Add(Item{
			ID:     fmt.Sprintf("item-%d", i),
			Kind:   KindImage,
			URL:    fmt.Sprintf("https://cdn.test/%d.jpg", i),
			Public: public,
		})
		s.Require().NoError(err)
		ids = append(ids, it.ID)
	}
	return ids
}

func (s *GallerySuite) TestAddAssignsID() {
	it, err := s.g.Add(Item{Kind: KindVideo, URL: "https://cdn.test/tour.mp4"})
	s.Require().NoError(err)
	s.NotEmpty(it.ID)
	got, ok := s.g.Get(it.ID)
	s.True(ok)
	s.Equal(it, got)
}

func (s *GallerySuite) TestAddRejectsInvalidItem() {
	_, err := s.g.Add(Item{Kind: "audio", Price: -1, DiscountPercent: 120})
	s.Require().True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Equal(map[string]string{
		"kind":            "Kind must be image or video",
		"url":             "URL is required",
		"price":           "Price must be 0 or greater",
		"discountPercent": "Discount must be between 0 and 100",
	}, dErrors.FieldsOf(err))
}

func (s *GallerySuite) TestAddRejectsDuplicateID() {
	s.fill(1, false)
	_, err := s.g.Add(Item{ID: "item-0", Kind: KindImage, URL: "x"})
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *GallerySuite) TestPromoteStopsAtCapacity() {
	ids := s.fill(MaxPublic+1, false)
	for _, id := range ids[:MaxPublic] {
		s.Require().NoError(s.g.Promote(id))
	}

	err := s.g.Promote(ids[MaxPublic])
	s.ErrorIs(err, ErrCapacityExceeded)
	s.Len(s.g.Public(), MaxPublic)

	s.NoError(s.g.Promote(ids[0]), "already public is a no-op")
	s.Require().NoError(s.g.Demote(ids[0]))
	s.NoError(s.g.Promote(ids[MaxPublic]))
	s.Len(s.g.Public(), MaxPublic)
}

func (s *GallerySuite) TestAddPublicAtCapacity() {
	s.fill(MaxPublic, true)
	_, err := s.g.Add(Item{Kind: KindImage, URL: "x", Public: true})
	s.ErrorIs(err, ErrCapacityExceeded)
	s.Len(s.g.Items(), MaxPublic)
}

func (s *GallerySuite) TestSwapAtCapacity() {
	ids := s.fill(MaxPublic, true)
	extra, err := s.g.Add(Item{Kind: KindImage, URL: "x"})
	s.Require().NoError(err)

	s.Require().NoError(s.g.Swap(extra.ID, ids[3]))

	got, _ := s.g.Get(ids[3])
	s.False(got.Public)
	got, _ = s.g.Get(extra.ID)
	s.True(got.Public)
	s.Len(s.g.Public(), MaxPublic)
}

func (s *GallerySuite) TestSwapLeavesGalleryUntouchedOnError() {
	ids := s.fill(MaxPublic, true)
	a, _ := s.g.Add(Item{Kind: KindImage, URL: "a"})
	b, _ := s.g.Add(Item{Kind: KindImage, URL: "b"})

	s.ErrorIs(s.g.Swap(a.ID, b.ID), ErrCapacityExceeded)
	s.ErrorIs(s.g.Swap(a.ID, "missing"), ErrItemNotFound)
	s.Len(s.g.Public(), MaxPublic)
	got, _ := s.g.Get(ids[0])
	s.True(got.Public)
}

func (s *GallerySuite) TestUpdateKeepsVisibility() {
	ids := s.fill(1, true)
	updated, err := s.g.Update(Item{ID: ids[0], Kind: KindImage, URL: "https://cdn.test/new.jpg", Price: 10})
	s.Require().NoError(err)
	s.True(updated.Public)
	s.Equal(10.0, updated.Price)

	_, err = s.g.Update(Item{ID: "missing", Kind: KindImage, URL: "x"})
	s.ErrorIs(err, ErrItemNotFound)
}

func (s *GallerySuite) TestRemove() {
	ids := s.fill(3, false)
	s.Require().NoError(s.g.Remove(ids[1]))
	s.ErrorIs(s.g.Remove(ids[1]), ErrItemNotFound)
	s.Len(s.g.Items(), 2)
}

func (s *GallerySuite) TestSplitKeepsOrder() {
	_, _ = s.g.Add(Item{Kind: KindImage, URL: "i1"})
	_, _ = s.g.Add(Item{Kind: KindVideo, URL: "v1"})
	_, _ = s.g.Add(Item{Kind: KindImage, URL: "i2"})

	images, videos := s.g.Split()
	s.Equal([]string{"i1", "i2"}, images)
	s.Equal([]string{"v1"}, videos)
}

func TestNewDropsPublicFlagsPastCap(t *testing.T) {
	var items []Item
	for i := range MaxPublic + 2 {
		items = append(items, Item{Kind: KindImage, URL: fmt.Sprint(i), Public: true})
	}

	g, err := New(items)
	require.NoError(t, err)
	assert.Len(t, g.Public(), MaxPublic)
	all := g.Items()
	assert.False(t, all[MaxPublic].Public)
	assert.False(t, all[MaxPublic+1].Public)
}

func TestSplitEmptyGallery(t *testing.T) {
	images, videos := (&Gallery{}).Split()
	assert.NotNil(t, images)
	assert.NotNil(t, videos)
}

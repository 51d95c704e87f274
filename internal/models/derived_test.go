package models_test

import (
	"encoding/json"
	"testing"

	"catalog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestDiscountedPrice(t *testing.T) {
	cases := []struct {
		name     string
		price    float64
		discount *float64
		want     float64
		ok       bool
	}{
		{"mouse", 20.0, ptr(10.0), 18.00, true},
		{"rounds down", 19.99, ptr(15.0), 16.99, true},
		{"rounds half up", 10.05, ptr(50.0), 5.03, true},
		{"full discount", 99.5, ptr(100.0), 0, true},
		{"zero discount", 42.42, ptr(0.0), 42.42, true},
		{"no discount", 20.0, nil, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := models.DiscountedPrice(models.Product{Price: tc.price, DiscountPercent: tc.discount})
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestVolume(t *testing.T) {
	assert.Equal(t, 12.38, models.Volume(models.Dimensions{Length: 1.5, Width: 2.5, Height: 3.3}))
	assert.Equal(t, 6000.0, models.Volume(models.Dimensions{Length: 10, Width: 20, Height: 30}))
	assert.Equal(t, 0.0, models.Volume(models.Dimensions{Length: 0, Width: 20, Height: 30}))
}

func TestView_IsDeterministic(t *testing.T) {
	p := models.Product{
		SKU:             "ABCD12345",
		Name:            "Mouse",
		Price:           20.0,
		DiscountPercent: ptr(10.0),
		Dimensions:      models.Dimensions{Length: 10, Width: 6, Height: 3.5},
	}

	first := models.View(p)
	second := models.View(p)

	require.NotNil(t, first.DiscountedPrice)
	assert.Equal(t, 18.0, *first.DiscountedPrice)
	assert.Equal(t, 210.0, first.VolumeCM3)
	assert.Equal(t, first, second)
	assert.Nil(t, p.Tags, "view must not mutate the stored record")
}

func TestView_OmitsDiscountedPriceWithoutDiscount(t *testing.T) {
	body, err := json.Marshal(models.View(models.Product{Price: 5}))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.NotContains(t, raw, "discounted_price")
	assert.Contains(t, raw, "volume_cm3")
	assert.Contains(t, raw, "dimensions_cm")
}

func TestTags_UnmarshalJSON(t *testing.T) {
	var payload struct {
		Tags models.Tags `json:"tags"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"tags":" wireless , mouse,,usb "}`), &payload))
	assert.Equal(t, models.Tags{"wireless", "mouse", "usb"}, payload.Tags)

	require.NoError(t, json.Unmarshal([]byte(`{"tags":["a","b"]}`), &payload))
	assert.Equal(t, models.Tags{"a", "b"}, payload.Tags)

	require.NoError(t, json.Unmarshal([]byte(`{"tags":null}`), &payload))
	assert.Nil(t, payload.Tags)

	assert.Error(t, json.Unmarshal([]byte(`{"tags":42}`), &payload))
}

func TestProduct_Clone(t *testing.T) {
	p := models.Product{Rating: ptr(4.0), DiscountPercent: ptr(5.0), Tags: models.Tags{"x"}}
	c := p.Clone()

	*c.Rating = 1
	*c.DiscountPercent = 50
	c.Tags[0] = "y"

	assert.Equal(t, 4.0, *p.Rating)
	assert.Equal(t, 5.0, *p.DiscountPercent)
	assert.Equal(t, "x", p.Tags[0])
}

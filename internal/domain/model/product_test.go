package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestDecodeVariants_Tolerant(t *testing.T) {
	t.Parallel()

	cases := map[string]*string{
		"nil":           nil,
		"empty":         strPtr(""),
		"json null":     strPtr("null"),
		"truncated":     strPtr(`[{"id":1,`),
		"wrong shape":   strPtr(`{"id":1}`),
		"not json":      strPtr("undefined"),
		"partially bad": strPtr(`[{"id":1,"title":"ok"},{"id":"not-a-number"}]`),
	}

	for name, raw := range cases {
		assert.Equal(t, []Variant{}, DecodeVariants(raw), name)
	}
}

func TestDecodeOptions_Tolerant(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []Option{}, DecodeOptions(nil))
	assert.Equal(t, []Option{}, DecodeOptions(strPtr("")))
	assert.Equal(t, []Option{}, DecodeOptions(strPtr("{broken")))
}

func TestVariantCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	variants := []Variant{
		{ID: 11, Title: "Small / Red", SKU: "SR-1", Price: "19.99", Available: true, Option1: strPtr("Small"), Option2: strPtr("Red")},
		{ID: 12, Title: "Large / Blue", SKU: "LB-1", Price: "24.99"},
	}

	raw := EncodeVariants(variants)
	require.NotNil(t, raw)

	decoded := DecodeVariants(raw)
	assert.Equal(t, variants, decoded, "order and field values must survive the round trip")
}

func TestOptionCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	options := []Option{
		{Name: "Size", Values: []string{"Small", "Large"}},
		{Name: "Color", Values: []string{"Red", "Blue"}},
	}

	raw := EncodeOptions(options)
	require.NotNil(t, raw)
	assert.Equal(t, options, DecodeOptions(raw))
}

func TestEncode_EmptyIsAbsent(t *testing.T) {
	t.Parallel()

	assert.Nil(t, EncodeVariants(nil))
	assert.Nil(t, EncodeVariants([]Variant{}))
	assert.Nil(t, EncodeOptions(nil))
}

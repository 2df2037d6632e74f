package typeschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCamelCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SentAt", "sentAt"},
		{"Id", "id"},
		{"ID", "id"},
		{"URLValue", "urlValue"},
		{"Lumens", "lumens"},
		{"alreadyCamel", "alreadyCamel"},
		{"", ""},
		{"X", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CamelCase(tt.in))
		})
	}
}

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SentAt", "sent_at"},
		{"ID", "id"},
		{"URLValue", "url_value"},
		{"lumens", "lumens"},
		{"Already_Snake", "already_snake"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SnakeCase(tt.in))
		})
	}
}

func TestParseNameTransform(t *testing.T) {
	camel, err := ParseNameTransform("camel")
	require.NoError(t, err)
	assert.Equal(t, "sentAt", camel("SentAt"))

	def, err := ParseNameTransform("")
	require.NoError(t, err)
	assert.Equal(t, "sentAt", def("SentAt"))

	identity, err := ParseNameTransform("identity")
	require.NoError(t, err)
	assert.Equal(t, "SentAt", identity("SentAt"))

	snake, err := ParseNameTransform("Snake")
	require.NoError(t, err)
	assert.Equal(t, "sent_at", snake("SentAt"))

	_, err = ParseNameTransform("kebab")
	assert.Error(t, err)
}

func TestDefaultSchemaName(t *testing.T) {
	tests := []struct {
		id   TypeIdentity
		want string
	}{
		{"StreetlightsAPI.LightMeasuredEvent", "LightMeasuredEvent"},
		{"pkg/models/User", "User"},
		{"Outer+Inner", "Inner"},
		{"Plain", "Plain"},
		{"sequence<int32>", "sequence<int32>"},
		{"Trailing.", "Trailing."},
	}
	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultSchemaName(tt.id))
		})
	}
}

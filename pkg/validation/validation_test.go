package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name     string `validate:"required"`
	Humidity int    `validate:"gte=0,lte=100"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(sample{Name: "Chennai", Humidity: 70}))

	err := Struct(sample{Humidity: 140})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sample.Name failed required")
	assert.Contains(t, err.Error(), "sample.Humidity failed lte")
}

func TestIsNotEmpty(t *testing.T) {
	assert.True(t, IsNotEmpty("Chennai"))
	assert.False(t, IsNotEmpty("   "))
	assert.False(t, IsNotEmpty(""))
}

func TestIsHTTPURL(t *testing.T) {
	assert.True(t, IsHTTPURL("https://api.openweathermap.org/data/2.5"))
	assert.True(t, IsHTTPURL("http://localhost:8080"))
	assert.False(t, IsHTTPURL("ftp://example.com"))
}

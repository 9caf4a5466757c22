package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPGateway(t *testing.T) {
	config := HTTPConfig{
		APIURL:   "https://relay.example.com/api/v1",
		Username: "testuser",
		Password: "testpass",
		Sender:   "no-reply@merchlink.fr",
	}

	gateway := NewHTTPGateway(config)

	assert.NotNil(t, gateway)
	assert.Equal(t, config.APIURL, gateway.apiURL)
	assert.Equal(t, config.Username, gateway.username)
	assert.Equal(t, config.Password, gateway.password)
	assert.Equal(t, config.Sender, gateway.sender)
	assert.NotNil(t, gateway.client)
}

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    string
		expectError bool
	}{
		{
			name:     "Plain address",
			input:    "worker@example.com",
			expected: "worker@example.com",
		},
		{
			name:     "Uppercase folded to lowercase",
			input:    "Worker@Example.COM",
			expected: "worker@example.com",
		},
		{
			name:     "Display name stripped",
			input:    "Jean Dupont <jean.dupont@example.com>",
			expected: "jean.dupont@example.com",
		},
		{
			name:     "Surrounding whitespace",
			input:    "  worker@example.com  ",
			expected: "worker@example.com",
		},
		{
			name:        "Missing at sign",
			input:       "not-an-address",
			expectError: true,
		},
		{
			name:        "Empty",
			input:       "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeAddress(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGatewayNames(t *testing.T) {
	assert.Equal(t, "HTTP Relay Gateway", NewHTTPGateway(HTTPConfig{}).GetName())
}

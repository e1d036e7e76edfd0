package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
http:
  address: ":9090"
database:
  host: localhost
  port: 5432
  user: booking
  password: secret
  name: agentbooking
  ssl_mode: disable
`))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Address)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "2 hours", cfg.Booking.DurationLabel)
	assert.Equal(t, 10.0, cfg.Booking.Tax)
	assert.Equal(t, 20.0, cfg.Booking.TravelFee)
	assert.Equal(t, "BK", cfg.Booking.BookingIDPrefix)
	assert.Equal(t, 30*time.Minute, cfg.Booking.SessionTTL())
	assert.Equal(t, 5*time.Minute, cfg.Booking.AgentCacheTTL())
	assert.Equal(t, "mock", cfg.Payment.Provider)
	assert.Equal(t, "host=localhost port=5432 user=booking password=secret dbname=agentbooking sslmode=disable", cfg.Database.DSN())
}

func TestParse_Validation(t *testing.T) {
	testCases := []struct {
		name        string
		body        string
		expectedErr string
	}{
		{
			name:        "Stripe without key",
			body:        "payment:\n  provider: stripe\n",
			expectedErr: "stripe_key is required",
		},
		{
			name:        "Unknown provider",
			body:        "payment:\n  provider: paypal\n",
			expectedErr: "unknown payment provider",
		},
		{
			name:        "Empty prefix",
			body:        "booking:\n  booking_id_prefix: \"\"\n",
			expectedErr: "booking_id_prefix",
		},
		{
			name:        "Negative tax",
			body:        "booking:\n  tax: -1\n",
			expectedErr: "must not be negative",
		},
		{
			name:        "Zero travel fee",
			body:        "booking:\n  travel_fee: 0\n",
			expectedErr: "travel_fee must be positive",
		},
		{
			name:        "Negative travel fee",
			body:        "booking:\n  travel_fee: -5\n",
			expectedErr: "travel_fee must be positive",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expectedErr)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("payment:\n  provider: stripe\n  stripe_key: sk_test_123\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "stripe", cfg.Payment.Provider)
	assert.Equal(t, "sk_test_123", cfg.Payment.StripeKey)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

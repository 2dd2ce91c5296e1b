package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		wantErr     bool
		wantPolicy  string
		wantAttempt int
	}{
		{
			name:        "Política vazia assume live",
			cfg:         Config{},
			wantPolicy:  PricingPolicyLive,
			wantAttempt: 1,
		},
		{
			name:        "Política frozen em maiúsculas é normalizada",
			cfg:         Config{Orders: Orders{PricingPolicy: " FROZEN ", TransactionMaxAttempts: 2}},
			wantPolicy:  PricingPolicyFrozen,
			wantAttempt: 2,
		},
		{
			name:    "Política desconhecida é rejeitada",
			cfg:     Config{Orders: Orders{PricingPolicy: "historical"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPolicy, tt.cfg.Orders.PricingPolicy)
			assert.Equal(t, tt.wantAttempt, tt.cfg.Orders.TransactionMaxAttempts)
			assert.Equal(t, 30*24*time.Hour, tt.cfg.Auth.TokenTTL)
		})
	}
}

func TestNewConfig_OperatorIDs(t *testing.T) {
	t.Setenv("OPERATOR_IDS", "7,9")
	t.Setenv("TOKEN_TTL", "2h")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, []int64{7, 9}, cfg.Auth.OperatorIDs)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
}

package ledger_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sahakar/coopbank/pkg/domain"
	"github.com/sahakar/coopbank/pkg/domain/ledger"
)

func TestNewID_PrefixAndUniqueness(t *testing.T) {
	t.Parallel()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := ledger.NewID()
		assert.True(t, strings.HasPrefix(id, "TXN"), id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestValidateAmount(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		amount  string
		wantErr bool
	}{
		{"minimum unit", "0.01", false},
		{"round amount", "2000", false},
		{"two decimals", "99.99", false},
		{"zero", "0", true},
		{"negative", "-5", true},
		{"below minimum", "0.001", true},
		{"excess precision", "1.005", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ledger.ValidateAmount(decimal.RequireFromString(tt.amount))
			if tt.wantErr {
				assert.Equal(t, domain.KindValidation, domain.KindOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDescription(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ledger.ValidateDescription(strings.Repeat("x", 255)))
	err := ledger.ValidateDescription(strings.Repeat("x", 256))
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

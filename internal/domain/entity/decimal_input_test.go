package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/vending-sync/internal/domain/error"
)

func TestParseBoundedDecimal(t *testing.T) {
	testCases := []struct {
		name        string
		raw         string
		expected    string
		expectedErr error
	}{
		{"price with cents", "2.50", "2.5", nil},
		{"eight fractional digits", "0.00000001", "0.00000001", nil},
		{"upper bound", "1000000", "1000000", nil},
		{"negative values pass through", "-3", "-3", nil},
		{"scientific notation inside bounds", "1.5e2", "150", nil},
		{"huge exponent", "1e10000000", "", errs.ErrDecimalOutOfRange},
		{"tiny exponent", "1e-10000000", "", errs.ErrDecimalOutOfRange},
		{"nine fractional digits", "0.000000001", "", errs.ErrDecimalOutOfRange},
		{"above magnitude cap", "1000000.01", "", errs.ErrDecimalOutOfRange},
		{"negative above magnitude cap", "-2000000", "", errs.ErrDecimalOutOfRange},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			value, err := ParseBoundedDecimal(tc.raw)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, value.String())
		})
	}

	t.Run("malformed input", func(t *testing.T) {
		_, err := ParseBoundedDecimal("abc")

		require.Error(t, err)
		assert.NotErrorIs(t, err, errs.ErrDecimalOutOfRange)
	})
}

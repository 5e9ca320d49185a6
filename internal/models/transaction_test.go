package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-core/pkg/common"
)

func amount(v float64) *float64 {
	return &v
}

func TestValidateAcceptsValidRecord(t *testing.T) {
	record := Transaction{Amount: amount(100), AccountID: "ACC-1", Status: StatusPending}
	assert.NoError(t, record.Validate())
}

func TestValidateRejectsMissingAmount(t *testing.T) {
	record := Transaction{AccountID: "ACC-1", Status: StatusPending}
	err := record.Validate()
	require.Error(t, err)

	ve, ok := err.(*common.ValidationError)
	require.True(t, ok)
	assert.Equal(t, "amount", ve.Field)
}

func TestValidateRejectsNonFiniteAmount(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		record := Transaction{Amount: amount(v), AccountID: "ACC-1", Status: StatusPending}
		err := record.Validate()
		require.Error(t, err)
		ve, ok := err.(*common.ValidationError)
		require.True(t, ok)
		assert.Equal(t, "amount", ve.Field)
	}
}

func TestValidateRejectsMissingAccount(t *testing.T) {
	record := Transaction{Amount: amount(100), Status: StatusPending}
	err := record.Validate()
	require.Error(t, err)

	ve, ok := err.(*common.ValidationError)
	require.True(t, ok)
	assert.Equal(t, "account_id", ve.Field)
}

func TestValidateRejectsUnknownStatus(t *testing.T) {
	record := Transaction{Amount: amount(100), AccountID: "ACC-1", Status: "SETTLED"}
	err := record.Validate()
	require.Error(t, err)

	ve, ok := err.(*common.ValidationError)
	require.True(t, ok)
	assert.Equal(t, "status", ve.Field)
}

// Error selection is deterministic: amount is reported before account,
// account before status, regardless of how many rules a record breaks.
func TestValidateErrorOrderIsDeterministic(t *testing.T) {
	record := Transaction{Status: "SETTLED"}
	err := record.Validate()
	require.Error(t, err)
	ve, ok := err.(*common.ValidationError)
	require.True(t, ok)
	assert.Equal(t, "amount", ve.Field)

	record = Transaction{Amount: amount(5), Status: "SETTLED"}
	err = record.Validate()
	require.Error(t, err)
	ve, ok = err.(*common.ValidationError)
	require.True(t, ok)
	assert.Equal(t, "account_id", ve.Field)
}

func TestSaved(t *testing.T) {
	record := Transaction{}
	assert.False(t, record.Saved())
	record.ID = 7
	assert.True(t, record.Saved())
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/domain"
)

func TestValidateReservationSlots(t *testing.T) {
	require.NoError(t, ValidateReservationSlots([]string{"13:00-13:30", "17:30-18:00"}))

	assert.Error(t, ValidateReservationSlots(nil))
	assert.Error(t, ValidateReservationSlots([]string{"12:00-12:30"}))
	assert.Error(t, ValidateReservationSlots([]string{"13:00-13:30", "13:00-13:30"}))
}

func TestValidateCapacityOverrides(t *testing.T) {
	require.NoError(t, ValidateCapacityOverrides([]*domain.CapacityOverride{
		{Date: "2025-07-23", Capacity: 0},
		{Date: "2025-07-24", Capacity: 3},
	}))

	assert.Error(t, ValidateCapacityOverrides(nil))
	assert.Error(t, ValidateCapacityOverrides([]*domain.CapacityOverride{
		{Date: "2025/07/23", Capacity: 1},
	}))

	err := ValidateCapacityOverrides([]*domain.CapacityOverride{
		{Date: "2025-07-23", Capacity: -1},
	})
	require.ErrorIs(t, err, domain.ErrInvalidCapacity)
}

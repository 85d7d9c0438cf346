package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"holidaily/internal/domain"
)

func TestHoliday_Activate(t *testing.T) {
	creator := int64(3)

	submitted := domain.Holiday{CreatorID: &creator}
	assert.True(t, submitted.Activate())
	assert.True(t, submitted.Active)
	assert.True(t, submitted.CreatorAwarded)
	assert.False(t, submitted.Activate())

	seeded := domain.Holiday{}
	assert.False(t, seeded.Activate())
	assert.True(t, seeded.Active)
	assert.False(t, seeded.CreatorAwarded)

	reactivated := domain.Holiday{CreatorID: &creator, CreatorAwarded: true}
	assert.False(t, reactivated.Activate())
}

package queuevalues

import (
	"testing"

	"leaguestats/pkg/apperrors"

	"github.com/stretchr/testify/assert"
)

func TestGameMode(t *testing.T) {
	name, err := GameMode(420)
	assert.NoError(t, err)
	assert.Equal(t, "Ranked Solo/Duo", name)

	name, err = GameMode(9999)
	assert.ErrorIs(t, err, apperrors.ErrUnknownLookupCode)
	assert.Equal(t, UnknownGameMode, name)
}

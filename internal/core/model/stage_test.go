package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStage_Valid(t *testing.T) {
	for _, s := range []string{"NEEDS_INIT", "NOT_READY", "GENERATING", "ACTIVE"} {
		stage, err := ParseStage(s)
		assert.NoError(t, err)
		assert.Equal(t, s, stage.String())
	}
}

func TestParseStage_Unknown(t *testing.T) {
	_, err := ParseStage("DELETED")
	assert.Error(t, err)

	_, err = ParseStage("")
	assert.Error(t, err)

	// Wire values are case sensitive.
	_, err = ParseStage("active")
	assert.Error(t, err)
}

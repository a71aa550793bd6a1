package services

import (
	"testing"

	"github.com/kiranraj/fundsphere/internal/app/models/dto"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "asha rao", normalizeName("  Asha Rao "))
	assert.Equal(t, "asha rao", normalizeName("ASHA RAO"))
	assert.Equal(t, "", normalizeName("   "))
}

func TestResolveSubmission(t *testing.T) {
	tests := []struct {
		name      string
		matchType MatchType
		action    string
		force     bool
		want      submissionOutcome
	}{
		{"no match creates", MatchNone, "", false, outcomeCreate},
		{"no match with force still creates", MatchNone, "", true, outcomeCreate},
		{"no match with explicit create", MatchNone, dto.ActionCreate, false, outcomeCreate},

		{"id match without action pauses", MatchID, "", false, outcomeConfirm},
		{"name match without action pauses", MatchName, "", false, outcomeConfirm},

		{"id match with force updates", MatchID, "", true, outcomeUpdate},
		{"name match with force updates", MatchName, "", true, outcomeUpdate},
		{"id match with explicit update", MatchID, dto.ActionUpdate, false, outcomeUpdate},
		{"name match with explicit update", MatchName, dto.ActionUpdate, false, outcomeUpdate},

		{"explicit create against id match conflicts", MatchID, dto.ActionCreate, false, outcomeConflict},
		{"explicit create against id match ignores force", MatchID, dto.ActionCreate, true, outcomeConflict},
		{"explicit create against name match allows duplicate", MatchName, dto.ActionCreate, false, outcomeCreate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveSubmission(tt.matchType, tt.action, tt.force))
		})
	}
}

package targeting

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccessor struct {
	players map[string]TargetPlayerInfo
	assets  map[string]TargetAssetInfo
}

func (f *fakeAccessor) FindPlayerForTarget(id string) (TargetPlayerInfo, bool) {
	p, ok := f.players[id]
	return p, ok
}

func (f *fakeAccessor) FindAssetForTarget(ownerID, assetID string) (TargetAssetInfo, bool) {
	a, ok := f.assets[assetID]
	if !ok || a.OwnerID != ownerID {
		return TargetAssetInfo{}, false
	}
	return a, true
}

func newFake() *fakeAccessor {
	return &fakeAccessor{
		players: map[string]TargetPlayerInfo{
			"p1": {PlayerID: "p1", Name: "You", Escaped: true},
			"p2": {PlayerID: "p2", Name: "Manabu"},
			"p3": {PlayerID: "p3", Name: "Hikari", Escaped: true},
			"p4": {PlayerID: "p4", Name: "Takumi"},
		},
		assets: map[string]TargetAssetInfo{
			"a1": {ID: "a1", Name: "Vending machine", OwnerID: "p1", Cost: 500, Cashflow: 100},
		},
	}
}

func TestValidateSupportRecipient(t *testing.T) {
	tv := NewTargetValidator(newFake())

	require.NoError(t, tv.ValidateTarget("p1", "p2", SupportRecipient))

	tests := []struct {
		name   string
		target string
	}{
		{"self", "p1"},
		{"missing", "p9"},
		{"investor track", "p3"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tv.ValidateTarget("p1", tt.target, SupportRecipient)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTarget))
		})
	}
}

func TestValidateOwnedAsset(t *testing.T) {
	tv := NewTargetValidator(newFake())

	require.NoError(t, tv.ValidateTarget("p1", "a1", OwnedAsset))

	err := tv.ValidateTarget("p2", "a1", OwnedAsset)
	assert.True(t, errors.Is(err, ErrInvalidTarget), "another player's asset")

	err = tv.ValidateTarget("p1", "a9", OwnedAsset)
	assert.True(t, errors.Is(err, ErrInvalidTarget), "missing asset")
}

func TestEligibleRecipients(t *testing.T) {
	tv := NewTargetValidator(newFake())
	got := tv.EligibleRecipients("p1", []string{"p1", "p2", "p3", "p4"})
	assert.Equal(t, []string{"p2", "p4"}, got)
}

func TestUninitialisedValidator(t *testing.T) {
	var tv *TargetValidator
	assert.Error(t, tv.ValidateTarget("p1", "p2", SupportRecipient))
}

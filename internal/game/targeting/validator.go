package targeting

import (
	"fmt"
)

// TargetValidator validates that selected targets are legal.
type TargetValidator struct {
	gameState TargetGameStateAccessor
}

// TargetGameStateAccessor provides access to game state needed for target validation.
type TargetGameStateAccessor interface {
	// FindPlayerForTarget finds player info by ID
	FindPlayerForTarget(playerID string) (TargetPlayerInfo, bool)
	// FindAssetForTarget finds an asset owned by ownerID
	FindAssetForTarget(ownerID, assetID string) (TargetAssetInfo, bool)
}

// TargetPlayerInfo provides information about a player for target validation.
type TargetPlayerInfo struct {
	PlayerID string
	Name     string
	Escaped  bool
}

// TargetAssetInfo provides information about an asset for target validation.
type TargetAssetInfo struct {
	ID       string
	Name     string
	OwnerID  string
	Cost     int
	Cashflow int
}

// NewTargetValidator creates a new target validator.
func NewTargetValidator(gameState TargetGameStateAccessor) *TargetValidator {
	return &TargetValidator{
		gameState: gameState,
	}
}

// ValidateTarget checks that targetID satisfies requirement for actorID.
// Every failure wraps ErrInvalidTarget.
func (tv *TargetValidator) ValidateTarget(actorID, targetID string, requirement TargetRequirement) error {
	if tv == nil || tv.gameState == nil {
		return fmt.Errorf("target validator not initialized")
	}
	if targetID == "" {
		return fmt.Errorf("%w: no target given for %s", ErrInvalidTarget, requirement.Type)
	}

	switch requirement.Type {
	case TargetTypeSupportRecipient:
		return tv.validateSupportRecipient(actorID, targetID)
	case TargetTypeOwnedAsset:
		return tv.validateOwnedAsset(actorID, targetID)
	default:
		return fmt.Errorf("%w: unsupported requirement %s", ErrInvalidTarget, requirement.Type)
	}
}

func (tv *TargetValidator) validateSupportRecipient(giverID, targetID string) error {
	if targetID == giverID {
		return fmt.Errorf("%w: a player cannot support themselves", ErrInvalidTarget)
	}
	player, ok := tv.gameState.FindPlayerForTarget(targetID)
	if !ok {
		return fmt.Errorf("%w: player %s not found", ErrInvalidTarget, targetID)
	}
	if player.Escaped {
		return fmt.Errorf("%w: %s is already on the investor track", ErrInvalidTarget, player.Name)
	}
	return nil
}

func (tv *TargetValidator) validateOwnedAsset(ownerID, assetID string) error {
	asset, ok := tv.gameState.FindAssetForTarget(ownerID, assetID)
	if !ok {
		return fmt.Errorf("%w: asset %s not owned by %s", ErrInvalidTarget, assetID, ownerID)
	}
	if asset.OwnerID != ownerID {
		return fmt.Errorf("%w: asset %s belongs to %s", ErrInvalidTarget, asset.Name, asset.OwnerID)
	}
	return nil
}

// EligibleRecipients filters candidate player IDs down to valid support recipients.
func (tv *TargetValidator) EligibleRecipients(giverID string, candidates []string) []string {
	var eligible []string
	for _, id := range candidates {
		if tv.ValidateTarget(giverID, id, SupportRecipient) == nil {
			eligible = append(eligible, id)
		}
	}
	return eligible
}

package targeting

import "errors"

// ErrInvalidTarget is returned when a command references a missing or ineligible target.
var ErrInvalidTarget = errors.New("invalid target")

// TargetType represents the kind of target a command can reference.
type TargetType string

const (
	// TargetTypeSupportRecipient targets an earner-track player other than the giver
	TargetTypeSupportRecipient TargetType = "SUPPORT_RECIPIENT"
	// TargetTypeOwnedAsset targets an asset owned by the acting player
	TargetTypeOwnedAsset TargetType = "OWNED_ASSET"
)

// TargetRequirement defines what a command's target must be.
type TargetRequirement struct {
	// Type specifies what kind of target is required
	Type TargetType
	// Description is a human-readable description of the target requirement
	Description string
}

// SupportRecipient is the requirement of OfferSupport and support requests.
var SupportRecipient = TargetRequirement{
	Type:        TargetTypeSupportRecipient,
	Description: "an earner-track player other than the giver",
}

// OwnedAsset is the requirement of SellAsset.
var OwnedAsset = TargetRequirement{
	Type:        TargetTypeOwnedAsset,
	Description: "an asset owned by the acting player",
}

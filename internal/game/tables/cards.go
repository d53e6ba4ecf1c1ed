package tables

// CardType discriminates game cards.
type CardType string

const (
	CardOpportunity CardType = "OPPORTUNITY"
	CardBusiness    CardType = "BUSINESS"
	CardDoodad      CardType = "DOODAD"
	CardAudit       CardType = "AUDIT"
	CardDream       CardType = "DREAM"
	CardCharity     CardType = "CHARITY"
	CardMarket      CardType = "MARKET"
	CardPaycheck    CardType = "PAYCHECK"
)

// IsInvestment reports whether the card can be bought as an asset or dream.
func (t CardType) IsInvestment() bool {
	return t == CardOpportunity || t == CardBusiness || t == CardDream
}

// IsPenalty reports whether the card must be paid.
func (t CardType) IsPenalty() bool {
	return t == CardDoodad || t == CardAudit
}

// Category tags the kind of holding an investment card turns into.
type Category string

const (
	CategoryRealEstate Category = "REAL_ESTATE"
	CategoryBusiness   Category = "BUSINESS"
	CategoryStock      Category = "STOCK"
)

// EffectKind enumerates the closed set of card effects.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectFlatCost
	EffectCashflowGrant
	EffectGoalUnlock
	EffectDonation
)

var effectNames = map[EffectKind]string{
	EffectNone:          "NONE",
	EffectFlatCost:      "FLAT_COST",
	EffectCashflowGrant: "CASHFLOW_GRANT",
	EffectGoalUnlock:    "GOAL_UNLOCK",
	EffectDonation:      "DONATION",
}

func (k EffectKind) String() string {
	if name, ok := effectNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Effect is the resolved effect of a card.
type Effect struct {
	Kind     EffectKind
	Cost     int
	Cashflow int
}

// Card is a static card record. Drawn cards are values, never shared state.
type Card struct {
	ID          string   `json:"id"`
	Type        CardType `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Cost        int      `json:"cost"`
	Cashflow    int      `json:"cashflow"`
	Category    Category `json:"category,omitempty"`
}

// Effect derives the card's effect from its type and amounts.
func (c Card) Effect() Effect {
	switch {
	case c.Type == CardDream:
		return Effect{Kind: EffectGoalUnlock, Cost: c.Cost}
	case c.Type.IsInvestment():
		return Effect{Kind: EffectCashflowGrant, Cost: c.Cost, Cashflow: c.Cashflow}
	case c.Type.IsPenalty():
		return Effect{Kind: EffectFlatCost, Cost: c.Cost}
	case c.Type == CardCharity:
		return Effect{Kind: EffectDonation, Cost: c.Cost}
	default:
		return Effect{Kind: EffectNone}
	}
}

// Intn is the subset of *rand.Rand used for draws.
type Intn interface {
	Intn(n int) int
}

// Deck is a fixed catalog. Drawing samples with replacement.
type Deck []Card

// Draw returns a uniformly chosen card. The deck is never depleted.
func (d Deck) Draw(rng Intn) (Card, bool) {
	if len(d) == 0 {
		return Card{}, false
	}
	return d[rng.Intn(len(d))], true
}

// Filter returns the cards of the given type.
func (d Deck) Filter(cardType CardType) Deck {
	var out Deck
	for _, c := range d {
		if c.Type == cardType {
			out = append(out, c)
		}
	}
	return out
}

var earnerOpportunities = Deck{
	{ID: "o1", Type: CardOpportunity, Title: "Small Apartment", Description: "A used three-room flat with steady rent.", Cost: 500, Cashflow: 100, Category: CategoryRealEstate},
	{ID: "o2", Type: CardOpportunity, Title: "Bargain House", Description: "Needs renovation, but the yield is high.", Cost: 300, Cashflow: 80, Category: CategoryRealEstate},
	{ID: "o3", Type: CardOpportunity, Title: "Tech Stock", Description: "Shares in a growing IT company. Small dividend, big future.", Cost: 100, Cashflow: 10, Category: CategoryStock},
	{ID: "o4", Type: CardOpportunity, Title: "Vending Machine", Description: "Put a vending machine next to the park.", Cost: 200, Cashflow: 40, Category: CategoryBusiness},
	{ID: "o5", Type: CardOpportunity, Title: "Laundromat", Description: "A neighbourhood laundromat. High start-up cost.", Cost: 1000, Cashflow: 250, Category: CategoryBusiness},
}

var earnerDoodads = Deck{
	{ID: "d1", Type: CardDoodad, Title: "New Game Console", Description: "You bought the console you wanted.", Cost: 50},
	{ID: "d2", Type: CardDoodad, Title: "Fancy Cafe", Description: "You ordered the expensive cake set with friends.", Cost: 20},
	{ID: "d3", Type: CardDoodad, Title: "Car Repair", Description: "Flat tyre! It needs fixing.", Cost: 200},
}

var investorOpportunities = Deck{
	{ID: "ft_o1", Type: CardBusiness, Title: "Burger Chain Buyout", Description: "Own a nationwide burger chain.", Cost: 50000, Cashflow: 10000, Category: CategoryBusiness},
	{ID: "ft_o2", Type: CardBusiness, Title: "Shopping Mall", Description: "Join a giant shopping mall project.", Cost: 100000, Cashflow: 25000, Category: CategoryRealEstate},
	{ID: "ft_o3", Type: CardBusiness, Title: "Film Studio", Description: "Invest in a studio that makes hits.", Cost: 30000, Cashflow: 8000, Category: CategoryBusiness},
	{ID: "ft_o4", Type: CardDream, Title: "Private Jet", Description: "Fly anywhere in the world.", Cost: 150000},
	{ID: "ft_o5", Type: CardDream, Title: "Island Villa", Description: "A luxury villa surrounded by clear sea.", Cost: 80000},
}

var investorAudits = Deck{
	{ID: "ft_d1", Type: CardAudit, Title: "Tax Audit", Description: "The tax office is checking your books. Accountant fees are due.", Cost: 5000},
	{ID: "ft_d2", Type: CardAudit, Title: "Divorce Lawsuit", Description: "Things went badly with your partner. Settlement due.", Cost: 10000},
	{ID: "ft_d3", Type: CardAudit, Title: "Defamation Suit", Description: "A post went viral for the wrong reasons. Lawyer fees are due.", Cost: 8000},
}

// Charity cards with zero cost donate a share of income instead.
var charityCards = Deck{
	{ID: "c1", Type: CardCharity, Title: "Food Bank", Description: "Give a tenth of your income to the local food bank.", Cost: 0},
	{ID: "c2", Type: CardCharity, Title: "School Library", Description: "Buy new books for the school library.", Cost: 300},
	{ID: "c3", Type: CardCharity, Title: "Animal Shelter", Description: "Give a tenth of your income to the animal shelter.", Cost: 0},
	{ID: "c4", Type: CardCharity, Title: "Disaster Relief", Description: "Help families rebuild after the flood.", Cost: 500},
}

// OpportunityDeck returns the opportunity deck for a track.
func OpportunityDeck(track Track) Deck {
	if track == TrackInvestor {
		return investorOpportunities
	}
	return earnerOpportunities
}

// PenaltyDeck returns the doodad or audit deck for a track.
func PenaltyDeck(track Track) Deck {
	if track == TrackInvestor {
		return investorAudits
	}
	return earnerDoodads
}

// CharityDeck returns the charity deck shared by both tracks.
func CharityDeck() Deck {
	return charityCards
}

// DreamDeck returns the generic dream cards of the investor track.
func DreamDeck() Deck {
	return investorOpportunities.Filter(CardDream)
}

// GoalCardID is the id of the synthesized goal-achievement card.
const GoalCardID = "goal_achievement"

// GoalCard synthesizes the one-off card that lets a player buy their goal.
func GoalCard(goal LifeGoal) Card {
	return Card{
		ID:          GoalCardID,
		Type:        CardDream,
		Title:       goal.Title,
		Description: "Achieve your life goal! " + goal.Description,
		Cost:        goal.RequiredCash,
	}
}

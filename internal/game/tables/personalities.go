package tables

// Personality names a computer player archetype.
type Personality string

const (
	PersonalityCautious   Personality = "cautious"
	PersonalityBalanced   Personality = "balanced"
	PersonalityAggressive Personality = "aggressive"
	PersonalityCharitable Personality = "charitable"
	PersonalityGambler    Personality = "gambler"
)

// BehaviorProfile defines the tunable parameters for a computer player.
type BehaviorProfile struct {
	Personality       Personality `json:"personality" mapstructure:"personality"`
	RiskTolerance     float64     `json:"risk_tolerance" mapstructure:"risk_tolerance"`         // 0.0–1.0: chance to buy above the threshold
	BuyThreshold      float64     `json:"buy_threshold" mapstructure:"buy_threshold"`           // fraction of cash spent without hesitation
	CharityPropensity float64     `json:"charity_propensity" mapstructure:"charity_propensity"` // 0.0–1.0: donate chance
	SupportPropensity float64     `json:"support_propensity" mapstructure:"support_propensity"` // 0.0–1.0: offer support chance
	RequestPropensity float64     `json:"request_propensity" mapstructure:"request_propensity"` // 0.0–1.0: ask for support chance
	Catchphrase       string      `json:"catchphrase" mapstructure:"catchphrase"`
}

var profiles = map[Personality]BehaviorProfile{
	PersonalityCautious: {
		Personality:       PersonalityCautious,
		RiskTolerance:     0.2,
		BuyThreshold:      0.3,
		CharityPropensity: 0.3,
		SupportPropensity: 0.3,
		RequestPropensity: 0.5,
		Catchphrase:       "Slow and steady wins the race.",
	},
	PersonalityBalanced: {
		Personality:       PersonalityBalanced,
		RiskTolerance:     0.5,
		BuyThreshold:      0.5,
		CharityPropensity: 0.4,
		SupportPropensity: 0.5,
		RequestPropensity: 0.3,
		Catchphrase:       "Let me run the numbers first.",
	},
	PersonalityAggressive: {
		Personality:       PersonalityAggressive,
		RiskTolerance:     0.8,
		BuyThreshold:      0.8,
		CharityPropensity: 0.2,
		SupportPropensity: 0.4,
		RequestPropensity: 0.2,
		Catchphrase:       "Fortune favours the bold!",
	},
	PersonalityCharitable: {
		Personality:       PersonalityCharitable,
		RiskTolerance:     0.4,
		BuyThreshold:      0.5,
		CharityPropensity: 0.9,
		SupportPropensity: 0.8,
		RequestPropensity: 0.3,
		Catchphrase:       "Sharing makes everyone richer.",
	},
	PersonalityGambler: {
		Personality:       PersonalityGambler,
		RiskTolerance:     0.95,
		BuyThreshold:      0.9,
		CharityPropensity: 0.1,
		SupportPropensity: 0.3,
		RequestPropensity: 0.4,
		Catchphrase:       "All in, baby!",
	},
}

// LookupProfile returns the built-in profile for a personality.
func LookupProfile(p Personality) (BehaviorProfile, bool) {
	profile, ok := profiles[p]
	return profile, ok
}

// Personalities lists the built-in personalities in a stable order.
func Personalities() []Personality {
	return []Personality{
		PersonalityCautious,
		PersonalityBalanced,
		PersonalityAggressive,
		PersonalityCharitable,
		PersonalityGambler,
	}
}

// DialogCategory groups computer player speech lines.
type DialogCategory string

const (
	DialogBuy            DialogCategory = "buy"
	DialogPass           DialogCategory = "pass"
	DialogDonate         DialogCategory = "donate"
	DialogSupport        DialogCategory = "support"
	DialogRequestSupport DialogCategory = "request_support"
	DialogAcceptSupport  DialogCategory = "accept_support"
)

var dialogs = map[DialogCategory][]string{
	DialogBuy:            {"This one will pay for itself!", "Sold! Passive income, here I come.", "A good asset works while I sleep."},
	DialogPass:           {"Not this time.", "I'll keep my cash for now.", "Too pricey for me."},
	DialogDonate:         {"Happy to help!", "Giving feels great.", "Good things come back around."},
	DialogSupport:        {"Let me give you a hand.", "Here's a little help from the fast lane.", "Let's grow together!"},
	DialogRequestSupport: {"Could you help me out?", "Any chance of a job offer?", "I could really use an investor..."},
	DialogAcceptSupport:  {"Thank you so much!", "I won't forget this!", "You're the best!"},
}

// Dialog returns the speech lines of a category.
func Dialog(category DialogCategory) []string {
	return dialogs[category]
}

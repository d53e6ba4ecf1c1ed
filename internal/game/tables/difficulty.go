package tables

import "strings"

// DifficultyLevel identifies an age/difficulty setting.
type DifficultyLevel string

const (
	DifficultyKids  DifficultyLevel = "kids"
	DifficultyTeen  DifficultyLevel = "teen"
	DifficultyAdult DifficultyLevel = "adult"
)

// DefaultDifficulty is used until a level is selected.
const DefaultDifficulty = DifficultyTeen

// DifficultySettings holds the three scaling factors as whole percentages.
// Scaling truncates: floor(value * percent / 100).
type DifficultySettings struct {
	ID                  DifficultyLevel `json:"id"`
	Name                string          `json:"name"`
	Description         string          `json:"description"`
	AgeRange            string          `json:"age_range"`
	StartingCashPercent int             `json:"starting_cash_percent"`
	ExpensePercent      int             `json:"expense_percent"`
	GoalPercent         int             `json:"goal_percent"`
}

var difficulties = []DifficultySettings{
	{
		ID:                  DifficultyKids,
		Name:                "Kids",
		Description:         "More starting cash, lower bills and closer goals.",
		AgeRange:            "6-9",
		StartingCashPercent: 150,
		ExpensePercent:      80,
		GoalPercent:         50,
	},
	{
		ID:                  DifficultyTeen,
		Name:                "Teen",
		Description:         "The standard game.",
		AgeRange:            "10-14",
		StartingCashPercent: 100,
		ExpensePercent:      100,
		GoalPercent:         100,
	},
	{
		ID:                  DifficultyAdult,
		Name:                "Adult",
		Description:         "Tighter budgets and bigger dreams.",
		AgeRange:            "15+",
		StartingCashPercent: 80,
		ExpensePercent:      120,
		GoalPercent:         150,
	},
}

// Difficulties returns every difficulty level in display order.
func Difficulties() []DifficultySettings {
	out := make([]DifficultySettings, len(difficulties))
	copy(out, difficulties)
	return out
}

// LookupDifficulty finds settings by level id (case-insensitive).
func LookupDifficulty(level DifficultyLevel) (DifficultySettings, bool) {
	want := strings.ToLower(strings.TrimSpace(string(level)))
	for _, d := range difficulties {
		if string(d.ID) == want {
			return d, true
		}
	}
	return DifficultySettings{}, false
}

// ScaleCash applies the starting cash factor.
func (d DifficultySettings) ScaleCash(cash int) int {
	return scale(cash, d.StartingCashPercent)
}

// ScaleExpenses applies the expense factor.
func (d DifficultySettings) ScaleExpenses(expenses int) int {
	return scale(expenses, d.ExpensePercent)
}

// ScaleGoal applies the goal requirement factor.
func (d DifficultySettings) ScaleGoal(required int) int {
	return scale(required, d.GoalPercent)
}

func scale(value, percent int) int {
	if value <= 0 || percent <= 0 {
		return 0
	}
	return value * percent / 100
}

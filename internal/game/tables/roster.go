package tables

// Controller says who makes a player's decisions.
type Controller string

const (
	ControllerHuman    Controller = "HUMAN"
	ControllerComputer Controller = "COMPUTER"
)

// Liability is a fixed recurring obligation. Read-only during play.
type Liability struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	TotalAmount    int    `json:"total_amount"`
	MonthlyPayment int    `json:"monthly_payment"`
}

// PlayerSeed is the starting sheet of one player before difficulty scaling.
type PlayerSeed struct {
	ID              string
	Name            string
	Controller      Controller
	Avatar          string
	JobTitle        string
	Cash            int
	Salary          int
	MonthlyExpenses int
	Liabilities     []Liability
	Personality     Personality
}

var defaultRoster = []PlayerSeed{
	{
		ID:              "p1",
		Name:            "You",
		Controller:      ControllerHuman,
		Avatar:          "astronaut",
		JobTitle:        "Office Worker",
		Cash:            1000,
		Salary:          2000,
		MonthlyExpenses: 1200,
		Liabilities: []Liability{
			{ID: "l1", Name: "Mortgage", TotalAmount: 5000, MonthlyPayment: 500},
			{ID: "l2", Name: "Car Loan", TotalAmount: 1000, MonthlyPayment: 100},
		},
	},
	{
		ID:              "p2",
		Name:            "Manabu",
		Controller:      ControllerComputer,
		Avatar:          "robot",
		JobTitle:        "Engineer",
		Cash:            800,
		Salary:          2500,
		MonthlyExpenses: 1500,
		Personality:     PersonalityBalanced,
	},
	{
		ID:              "p3",
		Name:            "Hikari",
		Controller:      ControllerComputer,
		Avatar:          "fox",
		JobTitle:        "Teacher",
		Cash:            1200,
		Salary:          1800,
		MonthlyExpenses: 1000,
		Personality:     PersonalityCharitable,
	},
	{
		ID:              "p4",
		Name:            "Takumi",
		Controller:      ControllerComputer,
		Avatar:          "lion",
		JobTitle:        "Designer",
		Cash:            500,
		Salary:          2200,
		MonthlyExpenses: 1600,
		Personality:     PersonalityAggressive,
	},
}

// DefaultRoster returns a deep copy of the standard four-player roster.
func DefaultRoster() []PlayerSeed {
	out := make([]PlayerSeed, len(defaultRoster))
	for i, seed := range defaultRoster {
		out[i] = seed
		out[i].Liabilities = append([]Liability(nil), seed.Liabilities...)
	}
	return out
}

package tables

// LifeGoal is a win condition chosen once before play.
type LifeGoal struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Icon         string `json:"icon"`
	RequiredCash int    `json:"required_cash"`
}

var lifeGoals = []LifeGoal{
	{ID: "world_trip", Title: "Trip Around the World", Description: "Visit every continent with your family.", Icon: "globe", RequiredCash: 120000},
	{ID: "sports_car", Title: "Dream Sports Car", Description: "Drive the car on your bedroom poster.", Icon: "car", RequiredCash: 130000},
	{ID: "open_cafe", Title: "Open a Cafe", Description: "Run the cosy cafe you always talked about.", Icon: "coffee", RequiredCash: 150000},
	{ID: "scholarship", Title: "Scholarship Fund", Description: "Pay for students who cannot afford school.", Icon: "book", RequiredCash: 180000},
	{ID: "dream_house", Title: "Dream House", Description: "A house by the sea with a big garden.", Icon: "house", RequiredCash: 200000},
	{ID: "space_travel", Title: "Trip to Space", Description: "See the Earth from orbit.", Icon: "rocket", RequiredCash: 300000},
}

// LifeGoals returns a copy of the base (unscaled) goal list.
func LifeGoals() []LifeGoal {
	out := make([]LifeGoal, len(lifeGoals))
	copy(out, lifeGoals)
	return out
}

// ScaledGoals returns the goal list with requirements scaled for a difficulty.
func ScaledGoals(d DifficultySettings) []LifeGoal {
	out := LifeGoals()
	for i := range out {
		out[i].RequiredCash = d.ScaleGoal(out[i].RequiredCash)
	}
	return out
}

// FindGoal looks up a goal by id in the provided list.
func FindGoal(goals []LifeGoal, id string) (LifeGoal, bool) {
	for _, g := range goals {
		if g.ID == id {
			return g, true
		}
	}
	return LifeGoal{}, false
}

package task

import "strings"

// Suggestion is a ready-made task proposal the client can turn into a real
// task with one tap.
type Suggestion struct {
	Name        string
	Description string
	Difficulty  Difficulty
	Weather     string // "sunny", "rainy", "cloudy", "snowy" or "any"
}

var suggestionCatalog = []Suggestion{
	{Name: "Morning run", Description: "Go for a 20 minute run outside", Difficulty: DifficultyEasy, Weather: "sunny"},
	{Name: "Walk in the park", Description: "Take a relaxed walk around the park", Difficulty: DifficultyVeryEasy, Weather: "sunny"},
	{Name: "Bike ride", Description: "Ride your bike for half an hour", Difficulty: DifficultyMedium, Weather: "sunny"},
	{Name: "Read a chapter", Description: "Read one full chapter of a book", Difficulty: DifficultyEasy, Weather: "rainy"},
	{Name: "Tidy the desk", Description: "Clear and organize your workspace", Difficulty: DifficultyVeryEasy, Weather: "rainy"},
	{Name: "Cook a new recipe", Description: "Try cooking a recipe you never made", Difficulty: DifficultyMedium, Weather: "rainy"},
	{Name: "Home workout", Description: "Do a 30 minute indoor workout", Difficulty: DifficultyMedium, Weather: "cloudy"},
	{Name: "Call a friend", Description: "Catch up with a friend on the phone", Difficulty: DifficultyVeryEasy, Weather: "cloudy"},
	{Name: "Build a snowman", Description: "Build a snowman in the yard", Difficulty: DifficultyEasy, Weather: "snowy"},
	{Name: "Hot drink break", Description: "Make a hot drink and unwind briefly", Difficulty: DifficultyVeryEasy, Weather: "snowy"},
	{Name: "Plan the week", Description: "Write down your goals for the week", Difficulty: DifficultyEasy, Weather: "any"},
	{Name: "Learn something", Description: "Spend 25 minutes on a new skill", Difficulty: DifficultyHard, Weather: "any"},
}

// RecommendedFor returns suggestions matching the given weather plus the
// weather-independent ones. An empty or unknown weather yields only the
// weather-independent suggestions.
func RecommendedFor(weather string) []Suggestion {
	weather = strings.ToLower(strings.TrimSpace(weather))
	out := make([]Suggestion, 0, len(suggestionCatalog))
	for _, s := range suggestionCatalog {
		if s.Weather == "any" || s.Weather == weather {
			out = append(out, s)
		}
	}
	return out
}

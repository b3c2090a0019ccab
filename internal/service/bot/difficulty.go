package bot

type BotDifficulty string

const (
	DifficultyEasy   BotDifficulty = "easy"
	DifficultyMedium BotDifficulty = "medium"
	DifficultyHard   BotDifficulty = "hard"
)

var botNames = map[BotDifficulty]string{
	DifficultyEasy:   "Alice",
	DifficultyMedium: "Bob",
	DifficultyHard:   "Charles",
}

var searchDepths = map[BotDifficulty]int{
	DifficultyEasy:   2,
	DifficultyMedium: 5,
	DifficultyHard:   8,
}

// ParseDifficulty validates and returns the bot difficulty
// Defaults to Medium if invalid or empty
func ParseDifficulty(difficulty string) BotDifficulty {
	switch difficulty {
	case "easy":
		return DifficultyEasy
	case "medium":
		return DifficultyMedium
	case "hard":
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// Depth is the search depth in plies used for this difficulty.
func (d BotDifficulty) Depth() int {
	if depth, ok := searchDepths[d]; ok {
		return depth
	}
	return searchDepths[DifficultyMedium]
}

func (d BotDifficulty) BotName() string {
	if name, ok := botNames[d]; ok {
		return name
	}
	return "BOT"
}

package display

// Terminal color codes
const (
	Reset   = "\033[0m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
)

// Enabled switches every helper below to plain text when false
var Enabled = true

// Colorize wraps text in a color code
func Colorize(color, text string) string {
	if !Enabled || color == "" {
		return text
	}
	return color + text + Reset
}

// Prompt returns a colored prompt string
func Prompt(text string) string {
	if !Enabled {
		return text + " > "
	}
	return Yellow + text + Yellow + " > " + Reset
}

// ColorForTurn returns colored turn indicator
func ColorForTurn(turn string) string {
	if turn == "w" {
		return Colorize(Blue, "White")
	}
	return Colorize(Red, "Black")
}

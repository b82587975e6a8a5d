package console

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/hacheck/hacheck/pkg/logger"
)

var confirmLog = logger.New("console:confirm")

// ConfirmAction asks a yes/no question on the terminal and returns the
// answer. The prompt falls back to plain line input in accessible mode.
func ConfirmAction(title, description, affirmative, negative string) (bool, error) {
	confirmLog.Printf("Asking for confirmation: %s", title)

	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative(affirmative).
				Negative(negative).
				Value(&confirmed),
		),
	).WithAccessible(IsAccessibleMode())

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("failed to get user input: %w", err)
	}
	confirmLog.Printf("Confirmation answer: %v", confirmed)
	return confirmed, nil
}

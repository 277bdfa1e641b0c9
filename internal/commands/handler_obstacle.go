package commands

import (
	"context"

	"github.com/pixil98/go-adventure/internal/display"
)

func (h *Handler) registerObstacles() {
	h.mustRegister([]string{"a", "answer"}, "answer <text>", true, h.answer)
	h.mustRegister([]string{"hint"}, "hint", false, func(ctx context.Context, _ string) (string, error) {
		return display.Wrap(h.engine.Hint()), nil
	})
}

func (h *Handler) answer(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", NewUserError("Answer what?")
	}
	room, err := h.currentRoom()
	if err != nil {
		return "", err
	}
	if room.ActivePuzzle() == nil {
		return "", NewUserError("There is nothing here to answer.")
	}
	if !h.engine.Answer(text) {
		return "", NewUserError("That didn't work.")
	}
	return "Puzzle solved!", nil
}

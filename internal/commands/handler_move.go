package commands

import (
	"context"
	"strings"

	"github.com/pixil98/go-adventure/internal/game"
)

func (h *Handler) registerMovement() {
	for i, d := range game.Directions {
		usage := ""
		if i == 0 {
			usage = "n | s | e | w"
		}
		h.mustRegister([]string{strings.ToLower(d.String()), d.Name()}, usage, true,
			func(ctx context.Context, _ string) (string, error) {
				return h.move(d)
			})
	}

	h.mustRegister([]string{"go"}, "go <direction>", true, func(ctx context.Context, args string) (string, error) {
		if args == "" {
			return "", NewUserError("Go where?")
		}
		d, err := game.ParseDirection(args)
		if err != nil {
			return message("You don't know how to go {{ .Direction }}.", messageData{Direction: args}, true)
		}
		return h.move(d)
	})
}

func (h *Handler) move(d game.Direction) (string, error) {
	if !h.engine.Move(d) {
		return message("You can't go {{ .Direction }}.", messageData{Direction: d.Name()}, true)
	}
	return h.look()
}

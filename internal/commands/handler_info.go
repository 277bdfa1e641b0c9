package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/pixil98/go-adventure/internal/display"
)

func (h *Handler) registerInfo() {
	h.mustRegister([]string{"l", "look"}, "look", true, func(ctx context.Context, _ string) (string, error) {
		return h.look()
	})
	h.mustRegister([]string{"status", "score"}, "status", false, func(ctx context.Context, _ string) (string, error) {
		return display.RenderStatus(h.engine.Player())
	})
	h.mustRegister([]string{"help", "?"}, "help", false, h.help)
}

func (h *Handler) help(ctx context.Context, _ string) (string, error) {
	var sb strings.Builder
	sb.WriteString("Commands:")
	for _, c := range h.ordered {
		if c.usage == "" {
			continue
		}
		fmt.Fprintf(&sb, "\n  %s", c.usage)
	}
	return sb.String(), nil
}

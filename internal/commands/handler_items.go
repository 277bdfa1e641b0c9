package commands

import (
	"context"

	"github.com/pixil98/go-adventure/internal/display"
	"github.com/pixil98/go-adventure/internal/engine"
)

func (h *Handler) registerItems() {
	h.mustRegister([]string{"t", "take", "get"}, "take <item>", true, h.take)
	h.mustRegister([]string{"d", "drop"}, "drop <item>", true, h.drop)
	h.mustRegister([]string{"u", "use"}, "use <item>", true, h.use)
	h.mustRegister([]string{"i", "inventory", "inv"}, "inventory", true, func(ctx context.Context, _ string) (string, error) {
		return display.RenderInventory(h.engine.Player())
	})
	h.mustRegister([]string{"x", "examine"}, "examine <name>", true, h.examine)
}

func (h *Handler) take(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", NewUserError("Take what?")
	}

	room, err := h.currentRoom()
	if err != nil {
		return "", err
	}
	item := room.FindItem(name)
	if item == nil {
		return message("There is no {{ .Name }} here.", messageData{Name: name}, true)
	}
	if !h.engine.PickItem(item.Name) {
		return message("The {{ .Name }} is too heavy to carry with everything else you have.", messageData{Name: item.Name}, true)
	}
	return message("You pick up the {{ .Name }}.", messageData{Name: item.Name}, false)
}

func (h *Handler) drop(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", NewUserError("Drop what?")
	}

	item := h.engine.Player().FindItem(name)
	if item == nil || !h.engine.DropItem(item.Name) {
		return message("You are not carrying {{ .Name }}.", messageData{Name: name}, true)
	}
	return message("You drop the {{ .Name }}.", messageData{Name: item.Name}, false)
}

func (h *Handler) use(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", NewUserError("Use what?")
	}

	msg := h.engine.UseOn(name)
	switch msg {
	case engine.MsgItemNotFound, engine.MsgItemExhausted:
		return "", NewUserError(msg)
	}
	return display.Wrap(msg), nil
}

func (h *Handler) examine(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", NewUserError("Examine what?")
	}
	return display.Wrap(h.engine.Examine(name)), nil
}

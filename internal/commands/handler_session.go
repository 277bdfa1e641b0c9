package commands

import "context"

func (h *Handler) registerSession() {
	h.mustRegister([]string{"save"}, "save <slot>", false, h.save)
	h.mustRegister([]string{"restore", "load"}, "restore <slot>", false, h.restore)
	h.mustRegister([]string{"q", "quit"}, "quit", false, func(ctx context.Context, _ string) (string, error) {
		return "", ErrQuit
	})
}

func (h *Handler) save(ctx context.Context, slot string) (string, error) {
	if slot == "" {
		return "", NewUserError("Save under what name?")
	}
	if !h.engine.Save(ctx, slot) {
		return message("Unable to save the game as {{ .Slot | quote }}.", messageData{Slot: slot}, true)
	}
	return message("Game saved as {{ .Slot | quote }}.", messageData{Slot: slot}, false)
}

func (h *Handler) restore(ctx context.Context, slot string) (string, error) {
	if slot == "" {
		return "", NewUserError("Restore which game?")
	}
	if !h.engine.Restore(ctx, slot) {
		return message("Unable to restore {{ .Slot | quote }}.", messageData{Slot: slot}, true)
	}

	msg, err := message("Game {{ .Slot | quote }} restored.", messageData{Slot: slot}, false)
	if err != nil {
		return "", err
	}
	room, err := h.look()
	if err != nil {
		return "", err
	}
	return joinLines(msg, room), nil
}

package game

import "errors"

var (
	ErrDuplicateRoom = errors.New("duplicate room")
	ErrRoomNotFound  = errors.New("room not found")
)

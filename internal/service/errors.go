package service

import "errors"

// カスタムエラー定義
var (
	ErrThemeNotFound      = errors.New("theme not found")
	ErrEmptyPlayerList    = errors.New("users must be a non-empty list")
	ErrGameNotFound       = errors.New("game not found")
	ErrAssignmentNotFound = errors.New("user assignment not found")
	ErrTimerNotFound      = errors.New("timer not found")
	ErrNoVotes            = errors.New("no votes found for this room")
	ErrNotAPlayer         = errors.New("voter and target must be players in this room")
	ErrUserExists         = errors.New("user already exists")
	ErrNotHost            = errors.New("forbidden: not the host")
	ErrInvalidAction      = errors.New("invalid action")
)

package handlers

import (
	"errors"
	"fmt"
)

// errVoterTargetRequired は投票リクエストの必須フィールド欠落エラーです
var errVoterTargetRequired = errors.New("roomId, voter, and target are required")

// validateRoomId はルームIDのバリデーションを行います
// ルームIDが空の場合はエラーを返します
func validateRoomId(roomId string) error {
	if normalizeID(roomId) == "" {
		return fmt.Errorf("roomId is required")
	}
	return nil
}

// validateUsername はユーザー名のバリデーションを行います
// ユーザー名が空の場合はエラーを返します
func validateUsername(username string) error {
	if normalizeID(username) == "" {
		return fmt.Errorf("username is required")
	}
	return nil
}

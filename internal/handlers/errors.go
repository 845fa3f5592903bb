package handlers

import (
	"errors"
	"net/http"

	"github.com/nyk9/shuwa-word-wolf-api/internal/service"
)

// writeServiceError はサービス層のエラーをHTTPステータスに変換します
// 分類: バリデーション→400、権限→403、未存在→404、その他→500
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrThemeNotFound),
		errors.Is(err, service.ErrEmptyPlayerList),
		errors.Is(err, service.ErrNotAPlayer),
		errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrInvalidAction):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotHost):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrGameNotFound),
		errors.Is(err, service.ErrAssignmentNotFound),
		errors.Is(err, service.ErrTimerNotFound),
		errors.Is(err, service.ErrNoVotes):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

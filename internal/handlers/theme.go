package handlers

import (
	"net/http"

	"github.com/nyk9/shuwa-word-wolf-api/internal/service"
	"github.com/rs/zerolog/log"
)

// ThemeHandler はお題の選択・使用済み管理・一覧APIを処理します
type ThemeHandler struct {
	svc *service.ThemeService
}

// NewThemeHandler は新しいThemeHandlerを作成します
func NewThemeHandler(s *service.ThemeService) *ThemeHandler { return &ThemeHandler{svc: s} }

type selectThemeRequest struct {
	RoomId   string `json:"roomId"`
	WordId   int    `json:"wordId"`
	Username string `json:"username"` // 任意。指定時はホスト権限を検証
}

type usedThemeRequest struct {
	ThemeId int `json:"themeId"`
}

// Select はお題の選択を全クライアントに通知します
// POST /api/game/select-theme
func (h *ThemeHandler) Select(w http.ResponseWriter, r *http.Request) {
	var in selectThemeRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := validateRoomId(in.RoomId); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Select(r.Context(), normalizeID(in.RoomId), in.WordId, normalizeID(in.Username)); err != nil {
		log.Warn().Err(err).Str("room_id", in.RoomId).Int("word_id", in.WordId).Msg("select theme failed")
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"message": "Theme selected successfully"})
}

// ListUsed は使用済みお題のID一覧を返します
// GET /api/game/used-themes
func (h *ThemeHandler) ListUsed(w http.ResponseWriter, r *http.Request) {
	used, err := h.svc.UsedThemes(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if used == nil {
		used = []int{}
	}
	respondJSON(w, http.StatusOK, used)
}

// MarkUsed はお題を使用済みとして記録します
// POST /api/game/used-themes
func (h *ThemeHandler) MarkUsed(w http.ResponseWriter, r *http.Request) {
	var in usedThemeRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	if in.ThemeId == 0 {
		respondError(w, http.StatusBadRequest, "themeId is required")
		return
	}

	used, err := h.svc.MarkUsed(r.Context(), in.ThemeId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":    "Theme marked as used successfully",
		"themeId":    in.ThemeId,
		"usedThemes": used,
	})
}

// ClearUsed は使用済みお題をすべてリセットします
// DELETE /api/game/used-themes
func (h *ThemeHandler) ClearUsed(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Reset(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":    "All used themes cleared successfully",
		"usedThemes": []int{},
	})
}

// WordList は使用済みフラグ付きのお題一覧をランダム順で返します
// GET /api/wordList
func (h *ThemeHandler) WordList(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.WordList(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

package handlers

import (
	"net/http"

	"github.com/nyk9/shuwa-word-wolf-api/internal/service"
	"github.com/rs/zerolog/log"
)

// UserHandler はユーザー登録APIを処理します
type UserHandler struct {
	svc *service.UserService
}

// NewUserHandler は新しいUserHandlerを作成します
func NewUserHandler(s *service.UserService) *UserHandler { return &UserHandler{svc: s} }

type registerUserRequest struct {
	Username string `json:"username"`
}

// Register はユーザー名を登録します（重複は400）
// POST /api/user
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in registerUserRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := validateUsername(in.Username); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	users, err := h.svc.Register(r.Context(), normalizeID(in.Username))
	if err != nil {
		log.Warn().Err(err).Str("username", in.Username).Msg("register user failed")
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message": "User added successfully",
		"users":   users,
	})
}

// List は登録済みユーザー名の一覧を返します
// GET /api/user
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if users == nil {
		users = []string{}
	}
	respondJSON(w, http.StatusOK, users)
}

package handlers

import (
	"net/http"

	"github.com/nyk9/shuwa-word-wolf-api/internal/service"
	"github.com/rs/zerolog/log"
)

// GameHandler は単語割り当てAPIを処理します
type GameHandler struct {
	svc *service.GameService
}

// NewGameHandler は新しいGameHandlerを作成します
func NewGameHandler(s *service.GameService) *GameHandler { return &GameHandler{svc: s} }

type assignWordsRequest struct {
	RoomId string   `json:"roomId"`
	Users  []string `json:"users"`
}

func (r assignWordsRequest) validate() error {
	return validateRoomId(r.RoomId)
}

// AssignWords はルームの全プレイヤーに単語を割り当てます
// POST /api/game/assign-words
func (h *GameHandler) AssignWords(w http.ResponseWriter, r *http.Request) {
	var in assignWordsRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := in.validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	assignments, err := h.svc.AssignWords(r.Context(), normalizeID(in.RoomId), in.Users)
	if err != nil {
		log.Warn().Err(err).Str("room_id", in.RoomId).Msg("assign words failed")
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":     "Words assigned successfully",
		"assignments": assignments,
	})
}

// GetAssignment は1人のプレイヤーの割り当てを返します
// GET /api/game/assign-words?roomId=&username=
func (h *GameHandler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	roomId := normalizeID(r.URL.Query().Get("roomId"))
	username := normalizeID(r.URL.Query().Get("username"))
	if err := validateRoomId(roomId); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateUsername(username); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.svc.GetAssignment(r.Context(), roomId, username)
	if err != nil {
		log.Warn().Err(err).Str("room_id", roomId).Str("username", username).Msg("get assignment failed")
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

package handlers

import (
	"net/http"

	"github.com/nyk9/shuwa-word-wolf-api/internal/service"
	"github.com/rs/zerolog/log"
)

// VoteHandler は投票APIを処理します
type VoteHandler struct {
	svc *service.VoteService
}

// NewVoteHandler は新しいVoteHandlerを作成します
func NewVoteHandler(s *service.VoteService) *VoteHandler { return &VoteHandler{svc: s} }

type voteRequest struct {
	RoomId string `json:"roomId"`
	Voter  string `json:"voter"`
	Target string `json:"target"`
}

func (r voteRequest) validate() error {
	if err := validateRoomId(r.RoomId); err != nil {
		return err
	}
	if normalizeID(r.Voter) == "" || normalizeID(r.Target) == "" {
		return errVoterTargetRequired
	}
	return nil
}

// Record は投票を記録します（同じ投票者の再投票は上書き）
// POST /api/game/vote
func (h *VoteHandler) Record(w http.ResponseWriter, r *http.Request) {
	var in voteRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := in.validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	count, err := h.svc.Record(r.Context(), normalizeID(in.RoomId), normalizeID(in.Voter), normalizeID(in.Target))
	if err != nil {
		log.Warn().Err(err).Str("room_id", in.RoomId).Str("voter", in.Voter).Msg("record vote failed")
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":   "Vote recorded successfully",
		"voteCount": count,
	})
}

// Tally はルームの投票集計を返します
// GET /api/game/vote?roomId=
func (h *VoteHandler) Tally(w http.ResponseWriter, r *http.Request) {
	roomId := normalizeID(r.URL.Query().Get("roomId"))
	if err := validateRoomId(roomId); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.Tally(r.Context(), roomId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

package handlers

import (
	"net/http"

	"github.com/nyk9/shuwa-word-wolf-api/internal/models"
	"github.com/nyk9/shuwa-word-wolf-api/internal/service"
	"github.com/rs/zerolog/log"
)

// TimerHandler はラウンドタイマーAPIを処理します
type TimerHandler struct {
	svc *service.TimerService
}

// NewTimerHandler は新しいTimerHandlerを作成します
func NewTimerHandler(s *service.TimerService) *TimerHandler { return &TimerHandler{svc: s} }

type startTimerRequest struct {
	RoomId string `json:"roomId"`
}

type timerActionRequest struct {
	RoomId   string `json:"roomId"`
	Action   string `json:"action"`
	Username string `json:"username"` // 任意。指定時はホスト権限を検証
}

// Start はルームのカウントダウンを開始します
// POST /api/game/timer
func (h *TimerHandler) Start(w http.ResponseWriter, r *http.Request) {
	var in startTimerRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := validateRoomId(in.RoomId); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	timer, err := h.svc.Start(r.Context(), normalizeID(in.RoomId))
	if err != nil {
		log.Error().Err(err).Str("room_id", in.RoomId).Msg("start timer failed")
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":   "Timer started successfully",
		"startTime": timer.StartTime,
		"duration":  timer.Duration,
	})
}

// Status はタイマーの残り時間とフェーズを返します
// GET /api/game/timer?roomId=
func (h *TimerHandler) Status(w http.ResponseWriter, r *http.Request) {
	roomId := normalizeID(r.URL.Query().Get("roomId"))
	if err := validateRoomId(roomId); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	st, err := h.svc.Status(r.Context(), roomId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"remaining":     st.Remaining,
		"isVotingPhase": st.Phase == models.PhaseVoting,
		"isResultPhase": st.Phase == models.PhaseResult,
		"startTime":     st.StartTime,
		"duration":      st.Duration,
	})
}

// Action はタイマーへの操作を処理します
// PUT /api/game/timer
// 対応アクション: "start-result-phase"（結果フェーズへの強制移行）
func (h *TimerHandler) Action(w http.ResponseWriter, r *http.Request) {
	var in timerActionRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := validateRoomId(in.RoomId); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.Action != "start-result-phase" {
		writeServiceError(w, service.ErrInvalidAction)
		return
	}

	timer, err := h.svc.AdvanceToResult(r.Context(), normalizeID(in.RoomId), normalizeID(in.Username))
	if err != nil {
		log.Warn().Err(err).Str("room_id", in.RoomId).Msg("start result phase failed")
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":       "Result phase started successfully",
		"isResultPhase": timer.Phase == models.PhaseResult,
		"isVotingPhase": timer.Phase == models.PhaseVoting,
	})
}

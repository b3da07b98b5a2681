package server

import (
	"net/http"

	"github.com/sjcallan/paperdesk/internal/common"
	"github.com/sjcallan/paperdesk/internal/models"
)

// handleChat handles POST /api/chat - dashboard assistant messages.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.ChatRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	userID := common.ResolveUserID(ctx)

	reply, err := s.app.AssistantService.Chat(ctx, userID, &req)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, reply)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/mailmahee/nifty/internal/logger"
	"github.com/mailmahee/nifty/internal/utils"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(h.opts.Version))
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("OK"))
}

func (h *Handler) getStatus(provider StatusProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := provider.Status()
		status.Version = h.opts.Version

		if _, err := utils.WriteJSON(w, status, http.StatusOK); err != nil {
			logger.FromRequest(r).Err(err).Msg("failed to write status")
		}
	}
}

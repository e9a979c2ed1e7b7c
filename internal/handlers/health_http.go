package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/amberbeaumont/IThelpdesklite/internal/utils"
)

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// Ready pings the backing store; a nil ping means nothing to check.
func Ready(ping func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				utils.Error(w, http.StatusServiceUnavailable, "database unavailable")
				return
			}
		}
		utils.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

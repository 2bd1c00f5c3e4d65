package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rami-mahdi647/Satoshi-mirror-blockchain/internal/engine"
	"github.com/rami-mahdi647/Satoshi-mirror-blockchain/internal/events"
)

// IdeasResponse is the body of GET /api/ideas.
type IdeasResponse struct {
	Generated int            `json:"generated"`
	Ideas     []engine.Event `json:"ideas"`
	Recent    []engine.Event `json:"recent"`
}

// RecentResponse is the body of GET /api/recent.
type RecentResponse struct {
	Recent []engine.Event `json:"recent"`
}

// handleStatus handles GET /api/status.
func (s *Server) handleStatus(c *gin.Context) {
	s.mu.Lock()
	status := s.engine.Status()
	s.mu.Unlock()

	c.JSON(http.StatusOK, status)
}

// handleIdeas handles GET /api/ideas. Each request advances the engine by
// exactly one tick.
//
// The batch envelope, batch id included, is built under the engine lock so
// batch ids follow tick order.
func (s *Server) handleIdeas(c *gin.Context) {
	s.mu.Lock()
	ideas := s.engine.Tick()
	recent := s.engine.Recent(engine.DefaultRecentLimit)
	var batch *events.IdeasGenerated
	if len(ideas) > 0 {
		ev := events.NewIdeasGenerated(s.tokens.Generate(), ideas, s.engine.TotalEvents())
		batch = &ev
	}
	s.mu.Unlock()

	if batch != nil {
		s.publish(c.Request.Context(), *batch)
	}

	c.JSON(http.StatusOK, IdeasResponse{
		Generated: len(ideas),
		Ideas:     ideas,
		Recent:    recent,
	})
}

// handleRecent handles GET /api/recent.
func (s *Server) handleRecent(c *gin.Context) {
	limit := engine.DefaultRecentLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(c, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	s.mu.Lock()
	recent := s.engine.Recent(limit)
	s.mu.Unlock()

	c.JSON(http.StatusOK, RecentResponse{Recent: recent})
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// publish emits a batch. Failures are logged and never surface to the HTTP
// client: the tick has already happened.
func (s *Server) publish(ctx context.Context, event events.IdeasGenerated) {
	if err := s.publisher.Publish(ctx, events.TopicIdeasGenerated, event); err != nil {
		s.logger.Error("publish ideas failed",
			"batch_id", event.BatchID,
			"generated", event.Generated,
			"error", err,
		)
	}
}

// writeError writes a JSON error response.
func writeError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

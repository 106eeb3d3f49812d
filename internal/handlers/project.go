package handlers

import (
	"errors"

	apperrors "realty-stream/internal/errors"
	"realty-stream/internal/middleware"
	"realty-stream/internal/services"
	"realty-stream/internal/stream"
	"realty-stream/internal/validators"
	"realty-stream/pkg/logger"
	"realty-stream/pkg/metrics"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	source    services.ProjectSource
	emitter   *stream.Emitter
	validator validators.CityValidator
}

func NewProjectHandler(source services.ProjectSource, emitter *stream.Emitter, validator validators.CityValidator) *ProjectHandler {
	return &ProjectHandler{
		source:    source,
		emitter:   emitter,
		validator: validator,
	}
}

// StreamProjects godoc
// @Summary Stream projects for a city
// @Description Streams one Server-Sent Event per project, paced by the configured frame delay
// @Tags Projects
// @Produce text/event-stream
// @Param cityName path string true "City name"
// @Success 200 {string} string "data: {\"project\": {...}}"
// @Failure 400 {object} models.StreamError
// @Failure 500 {object} models.StreamError
// @Router /api/scrape/{cityName} [get]
func (h *ProjectHandler) StreamProjects(c *gin.Context) {
	city, err := h.validator.ValidateCityName(c.Param("cityName"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	w, err := stream.NewWriter(c.Writer)
	if err != nil {
		_ = c.Error(err)
		return
	}

	ctx := c.Request.Context()
	id := middleware.StreamID(c)

	metrics.StreamsActive.Inc()
	defer metrics.StreamsActive.Dec()

	projects, err := h.source.ListProjects(ctx, city)
	if err != nil {
		if ctx.Err() != nil {
			logger.GlobalLogger.Debugf("stream %s: client left before projects were ready: city=%s", id, city)
			return
		}
		metrics.StreamErrorsTotal.WithLabelValues("source").Inc()
		_ = c.Error(apperrors.FetchFailed(err))
		return
	}

	sent, err := h.emitter.Emit(ctx, w, projects)
	switch {
	case err == nil:
		w.Start()
		logger.GlobalLogger.Debugf("stream %s: completed: city=%s, frames=%d", id, city, sent)
	case ctx.Err() != nil:
		metrics.StreamErrorsTotal.WithLabelValues("disconnect").Inc()
		logger.GlobalLogger.Printf("stream %s: client disconnected: city=%s, frames=%d/%d", id, city, sent, len(projects))
	case !w.Started():
		metrics.StreamErrorsTotal.WithLabelValues("encode").Inc()
		_ = c.Error(apperrors.FetchFailed(err))
	default:
		h.abortStream(w, id, city, sent, err)
	}
}

// abortStream ends a stream that already delivered frames. Encode failures
// are reported with an error event; a failed write means the connection is
// gone and nothing more can be sent.
func (h *ProjectHandler) abortStream(w *stream.Writer, id, city string, sent int, err error) {
	var ef *stream.EncodeFailure
	if !errors.As(err, &ef) {
		metrics.StreamErrorsTotal.WithLabelValues("write").Inc()
		logger.GlobalLogger.Errorf("stream %s: write failed: city=%s, frames=%d, error=%v", id, city, sent, err)
		return
	}

	metrics.StreamErrorsTotal.WithLabelValues("encode").Inc()
	logger.GlobalLogger.Errorf("stream %s: aborted after %d frames: city=%s, error=%v", id, sent, city, err)
	if werr := w.WriteFrame(stream.EncodeError(apperrors.MsgFetchFailed)); werr != nil {
		logger.GlobalLogger.Errorf("stream %s: error event not delivered: %v", id, werr)
	}
}

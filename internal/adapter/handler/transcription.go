package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/voice-transcriber/errors"
	"github.com/johnquangdev/voice-transcriber/internal/adapter/dto/transcription"
	"github.com/johnquangdev/voice-transcriber/internal/adapter/presenter"
	"github.com/johnquangdev/voice-transcriber/internal/usecase/ai"
	transcriptionUsecase "github.com/johnquangdev/voice-transcriber/internal/usecase/transcription"
	"github.com/johnquangdev/voice-transcriber/pkg/validator"
)

// audioField is the form field carrying the recording
const audioField = "audio"

// Transcription handles transcription-related HTTP requests
type Transcription struct {
	service transcriptionUsecase.Service
	logger  *zap.Logger
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(service transcriptionUsecase.Service, logger *zap.Logger) *Transcription {
	return &Transcription{
		service: service,
		logger:  logger,
	}
}

// CreateTranscription handles POST /transcriptions
// @Summary      Create a transcription
// @Description  Stores a transcript and, when content is present, generates its summary
// @Tags         Transcriptions
// @Accept       json
// @Produce      json
// @Param        request  body      transcription.CreateTranscriptionRequest  true  "Transcript content"
// @Success      200      {object}  transcription.TranscriptionResponse
// @Failure      400      {object}  transcription.ErrorResponse  "Malformed body"
// @Failure      422      {object}  transcription.ErrorResponse  "Validation failed"
// @Failure      500      {object}  transcription.ErrorResponse  "Summary generation failed"
// @Router       /transcriptions [post]
func (h *Transcription) CreateTranscription(c echo.Context) error {
	var req transcription.CreateTranscriptionRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(validator.Messages(err)))
	}

	t, err := h.service.Create(c.Request().Context(), transcriptionUsecase.CreateInput{
		Content: req.ContentValue(),
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToTranscriptionResponse(t))
}

// ListTranscriptions handles GET /transcriptions
// @Summary      List transcriptions
// @Description  Returns the newest transcriptions first
// @Tags         Transcriptions
// @Produce      json
// @Param        limit  query     int  false  "Number of records (default 10, max 100)"
// @Success      200    {object}  transcription.TranscriptionListResponse
// @Failure      400    {object}  transcription.ErrorResponse  "Invalid limit"
// @Router       /transcriptions [get]
func (h *Transcription) ListTranscriptions(c echo.Context) error {
	var req transcription.ListTranscriptionsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("limit must be an integer"))
	}

	items, err := h.service.List(c.Request().Context(), req.Limit)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToTranscriptionListResponse(items))
}

// GetTranscription handles GET /transcriptions/:id
// @Summary      Get a transcription
// @Tags         Transcriptions
// @Produce      json
// @Param        id   path      string  true  "Transcription ID (UUID)"
// @Success      200  {object}  transcription.TranscriptionDetailResponse
// @Failure      404  {object}  transcription.ErrorResponse  "Transcription not found"
// @Router       /transcriptions/{id} [get]
func (h *Transcription) GetTranscription(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrTranscriptionNotFound(c.Param("id")))
	}

	t, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToTranscriptionDetailResponse(t))
}

// GetSummary handles GET /transcriptions/:id/summary
// @Summary      Get or generate a summary
// @Description  Returns the stored summary, generating it first when it is blank
// @Tags         Transcriptions
// @Produce      json
// @Param        id   path      string  true  "Transcription ID (UUID)"
// @Success      200  {object}  transcription.SummaryResponse
// @Failure      404  {object}  transcription.ErrorResponse  "Transcription not found"
// @Failure      500  {object}  transcription.ErrorResponse  "Summary generation failed"
// @Router       /transcriptions/{id}/summary [get]
func (h *Transcription) GetSummary(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrTranscriptionNotFound(c.Param("id")))
	}

	t, err := h.service.Summary(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToSummaryResponse(t))
}

// UploadAudio handles POST /transcriptions/:id/upload_audio
// @Summary      Upload a recording
// @Description  Accepts a multipart file or base64 data URL in field "audio", or a raw audio body.
// @Description  The audio is transcribed, stored as content and summarized.
// @Tags         Transcriptions
// @Accept       multipart/form-data
// @Accept       json
// @Accept       octet-stream
// @Produce      json
// @Param        id     path      string  true   "Transcription ID (UUID)"
// @Param        audio  formData  file    false  "Recording (webm)"
// @Success      200    {object}  transcription.TranscriptionResponse
// @Failure      404    {object}  transcription.ErrorResponse  "Transcription not found"
// @Failure      422    {object}  transcription.ErrorResponse  "No audio data provided"
// @Failure      500    {object}  transcription.ErrorResponse  "Transcription or summary failed"
// @Router       /transcriptions/{id}/upload_audio [post]
func (h *Transcription) UploadAudio(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrTranscriptionNotFound(c.Param("id")))
	}

	payload, closeFn, err := audioPayload(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	defer closeFn()

	t, err := h.service.UploadAudio(c.Request().Context(), id, payload)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToTranscriptionResponse(t))
}

// GetAudioURL handles GET /transcriptions/:id/audio
// @Summary      Get the archived recording
// @Description  Returns a short-lived download URL when audio archiving is enabled
// @Tags         Transcriptions
// @Produce      json
// @Param        id   path      string  true  "Transcription ID (UUID)"
// @Success      200  {object}  transcription.AudioURLResponse
// @Failure      404  {object}  transcription.ErrorResponse  "Transcription or audio not found"
// @Router       /transcriptions/{id}/audio [get]
func (h *Transcription) GetAudioURL(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrTranscriptionNotFound(c.Param("id")))
	}

	url, err := h.service.AudioURL(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, &transcription.AudioURLResponse{ID: id.String(), URL: url})
}

// parseID reads the :id path parameter; malformed ids are treated as unknown records
func parseID(c echo.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// audioPayload extracts the recording from a multipart, form, JSON or raw request.
// The returned func releases any opened multipart file.
func audioPayload(c echo.Context) (ai.AudioPayload, func(), error) {
	noop := func() {}
	req := c.Request()
	contentType := strings.ToLower(req.Header.Get(echo.HeaderContentType))

	switch {
	case strings.HasPrefix(contentType, echo.MIMEMultipartForm):
		if fh, err := c.FormFile(audioField); err == nil {
			f, err := fh.Open()
			if err != nil {
				return ai.AudioPayload{}, noop, err
			}
			return ai.FromReader(f, fh.Filename), func() { f.Close() }, nil
		}
		return ai.FromDataURL(c.FormValue(audioField)), noop, nil

	case strings.HasPrefix(contentType, echo.MIMEApplicationForm):
		return ai.FromDataURL(c.FormValue(audioField)), noop, nil

	case strings.HasPrefix(contentType, echo.MIMEApplicationJSON):
		var body transcription.UploadAudioRequest
		if err := c.Bind(&body); err != nil {
			return ai.AudioPayload{}, noop, errors.ErrInvalidPayload()
		}
		return ai.FromDataURL(body.Audio), noop, nil

	case strings.HasPrefix(contentType, "audio/"), strings.HasPrefix(contentType, echo.MIMEOctetStream):
		if req.Body == nil || req.Body == http.NoBody {
			return ai.AudioPayload{}, noop, nil
		}
		return ai.FromReader(req.Body, ai.DefaultAudioFilename), noop, nil
	}

	return ai.AudioPayload{}, noop, nil
}

package handler

import (
	"context"
	stdErrors "errors"
	"io"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/video-digest/errors"
	dto "github.com/johnquangdev/video-digest/internal/adapter/dto/media"
	"github.com/johnquangdev/video-digest/internal/adapter/presenter"
	"github.com/johnquangdev/video-digest/internal/domain/entities"
	"github.com/johnquangdev/video-digest/internal/usecase/pipeline"
	"github.com/johnquangdev/video-digest/pkg/jobcontext"
)

// Pipeline is the set of pipeline operations exposed over HTTP
type Pipeline interface {
	Upload(ctx context.Context, originalName string, r io.Reader) (*entities.MediaFile, error)
	Process(ctx context.Context, in pipeline.ProcessInput) (*pipeline.ProcessResult, error)
	Summary(ctx context.Context, filename string, regenerate bool) (*entities.Summary, error)
	Videos(ctx context.Context) ([]*entities.ProcessingRecord, error)
	Video(ctx context.Context, filename string) (*entities.ProcessingRecord, error)
}

// Media handles upload, processing, summary and registry endpoints
type Media struct {
	pipeline  Pipeline
	bodyLimit string
	logger    *zap.Logger
}

// NewMediaHandler creates a new media handler. bodyLimit is reported on 413 responses.
func NewMediaHandler(p Pipeline, bodyLimit string, logger *zap.Logger) *Media {
	return &Media{pipeline: p, bodyLimit: bodyLimit, logger: logger}
}

// Upload stores a video file
// @Summary      Upload video
// @Description  Stores an uploaded video under a unique server-side filename. Accepted types: mp4, avi, mov, mkv
// @Tags         Media
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file                    true  "Video file"
// @Success      200   {object}  dto.UploadResponse      "Stored file"
// @Failure      400   {object}  map[string]interface{}  "No file provided or file type not allowed"
// @Failure      413   {object}  map[string]interface{}  "File too large"
// @Failure      500   {object}  map[string]interface{}  "Failed to store file"
// @Router       /upload [post]
func (h *Media) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		var he *echo.HTTPError
		if stdErrors.As(err, &he) && he.Code == http.StatusRequestEntityTooLarge {
			return HandleError(h.logger, c, errors.ErrPayloadTooLarge(h.bodyLimit))
		}
		return HandleError(h.logger, c, errors.ErrMissingFile())
	}
	if fh.Filename == "" {
		return HandleError(h.logger, c, errors.ErrMissingFile())
	}

	ext := filepath.Ext(fh.Filename)
	if !entities.IsAllowedVideoExtension(ext) {
		return HandleError(h.logger, c, errors.ErrUnsupportedFileType(ext))
	}

	src, err := fh.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrUploadFailed(err))
	}
	defer src.Close()

	file, err := h.pipeline.Upload(c.Request().Context(), fh.Filename, src)
	if err != nil {
		var he *echo.HTTPError
		if stdErrors.As(err, &he) && he.Code == http.StatusRequestEntityTooLarge {
			return HandleError(h.logger, c, errors.ErrPayloadTooLarge(h.bodyLimit))
		}
		return HandleError(h.logger, c, errors.ErrUploadFailed(err))
	}

	if h.logger != nil {
		h.logger.Info("📤 Video uploaded",
			zap.String("request_id", getRequestID(c)),
			zap.String("filename", file.Filename),
			zap.Int64("size", file.Size),
		)
	}
	return HandleSuccess(h.logger, c, presenter.ToUploadResponse(file))
}

// Process runs frame sampling and transcription on an uploaded video
// @Summary      Process video
// @Description  Samples frames every frame_gap frames (when given), transcribes the audio and marks the file processed. With summarize=true a summary is generated afterwards; a summary failure is reported in summary_error without failing the request
// @Tags         Media
// @Accept       json
// @Produce      json
// @Param        request  body      dto.ProcessRequest      true  "Process request"
// @Success      200      {object}  dto.ProcessResponse     "Transcript, frames and optional summary"
// @Failure      400      {object}  map[string]interface{}  "Invalid filename or frame_gap"
// @Failure      404      {object}  map[string]interface{}  "File not found"
// @Failure      409      {object}  map[string]interface{}  "File is already being processed"
// @Failure      500      {object}  map[string]interface{}  "Pipeline stage failed; details.stage names it"
// @Router       /process [post]
func (h *Media) Process(c echo.Context) error {
	var req dto.ProcessRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	ctx := jobcontext.Begin(c.Request().Context(), getRequestID(c), "process", req.Filename)
	res, err := h.pipeline.Process(ctx, pipeline.ProcessInput{
		Filename:  req.Filename,
		FrameGap:  req.FrameGap,
		Summarize: req.Summarize,
	})
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, req.Filename))
	}

	return HandleSuccess(h.logger, c, presenter.ToProcessResponse(req.Filename, res))
}

// Summary returns the cached summary or generates a new one
// @Summary      Get or generate summary
// @Description  Returns the cached summary of a processed video, generating it on first request or when regenerate=true
// @Tags         Media
// @Accept       json
// @Produce      json
// @Param        request  body      dto.SummaryRequest      true  "Summary request"
// @Success      200      {object}  dto.SummaryResponse     "Summary with source cached or new"
// @Failure      400      {object}  map[string]interface{}  "Invalid filename"
// @Failure      404      {object}  map[string]interface{}  "Video not processed"
// @Failure      409      {object}  map[string]interface{}  "File is already being processed"
// @Failure      500      {object}  map[string]interface{}  "Summary generation failed"
// @Router       /summary [post]
func (h *Media) Summary(c echo.Context) error {
	var req dto.SummaryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	ctx := jobcontext.Begin(c.Request().Context(), getRequestID(c), "summary", req.Filename)
	summary, err := h.pipeline.Summary(ctx, req.Filename, req.Regenerate)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, req.Filename))
	}

	return HandleSuccess(h.logger, c, presenter.ToSummaryResponse(summary))
}

// ListVideos lists processed videos
// @Summary      List videos
// @Description  Lists every registry record in insertion order
// @Tags         Media
// @Produce      json
// @Success      200  {array}   dto.VideoListItem       "Registry records"
// @Failure      500  {object}  map[string]interface{}  "Registry unavailable"
// @Router       /videos [get]
func (h *Media) ListVideos(c echo.Context) error {
	records, err := h.pipeline.Videos(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, ""))
	}
	return HandleSuccess(h.logger, c, presenter.ToVideoList(records))
}

// GetVideo returns one registry record
// @Summary      Get video
// @Description  Returns the full registry record of one file
// @Tags         Media
// @Produce      json
// @Param        filename  path      string                  true  "Stored filename"
// @Success      200       {object}  dto.VideoResponse       "Registry record"
// @Failure      400       {object}  map[string]interface{}  "Invalid filename"
// @Failure      404       {object}  map[string]interface{}  "No record for filename"
// @Router       /videos/{filename} [get]
func (h *Media) GetVideo(c echo.Context) error {
	var req dto.VideoPathParam
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	rec, err := h.pipeline.Video(c.Request().Context(), req.Filename)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, req.Filename))
	}
	return HandleSuccess(h.logger, c, presenter.ToVideoResponse(rec))
}

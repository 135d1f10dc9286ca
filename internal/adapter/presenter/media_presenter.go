package presenter

import (
	"path/filepath"

	dto "github.com/johnquangdev/video-digest/internal/adapter/dto/media"
	"github.com/johnquangdev/video-digest/internal/domain/entities"
	"github.com/johnquangdev/video-digest/internal/usecase/pipeline"
)

// ToUploadResponse converts a stored MediaFile to UploadResponse DTO
func ToUploadResponse(f *entities.MediaFile) *dto.UploadResponse {
	if f == nil {
		return nil
	}
	return &dto.UploadResponse{
		Filename:   f.Filename,
		Size:       f.Size,
		UploadTime: f.UploadTime,
	}
}

// ToVideoResponse converts a ProcessingRecord to the full VideoResponse DTO
func ToVideoResponse(r *entities.ProcessingRecord) *dto.VideoResponse {
	if r == nil {
		return nil
	}

	response := &dto.VideoResponse{
		Filename:            r.Filename,
		BaseName:            r.BaseName,
		State:               string(r.State()),
		Processed:           r.Processed,
		Summarized:          r.Summarized,
		UploadTime:          r.UploadTime,
		TranscriptFile:      slash(r.TranscriptFilePath),
		FrameCount:          r.FrameCount,
		TranscriptionEngine: r.TranscriptionEngine,
		UpdatedAt:           r.UpdatedAt,
	}
	if r.SummaryFilePath != nil {
		response.SummaryFile = slash(*r.SummaryFilePath)
	}
	if r.FramesDir != nil {
		response.FramesDir = slash(*r.FramesDir)
	}

	return response
}

// ToVideoList converts registry records to the listing view, keeping their order
func ToVideoList(records []*entities.ProcessingRecord) []dto.VideoListItem {
	items := make([]dto.VideoListItem, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		items = append(items, dto.VideoListItem{
			Filename:   r.Filename,
			BaseName:   r.BaseName,
			Processed:  r.Processed,
			Summarized: r.Summarized,
			UploadTime: r.UploadTime,
		})
	}
	return items
}

// ToSummaryResponse converts a Summary entity to SummaryResponse DTO
func ToSummaryResponse(s *entities.Summary) *dto.SummaryResponse {
	if s == nil {
		return nil
	}
	return &dto.SummaryResponse{
		Filename:    s.Filename,
		Summary:     s.Text,
		Source:      string(s.Source),
		SummaryFile: slash(s.FilePath),
	}
}

// ToProcessResponse converts a pipeline run to ProcessResponse DTO
func ToProcessResponse(filename string, res *pipeline.ProcessResult) *dto.ProcessResponse {
	if res == nil {
		return nil
	}

	response := &dto.ProcessResponse{
		Filename:     filename,
		Segments:     []dto.SegmentResponse{},
		FramesDir:    slash(res.FramesDir),
		Summary:      ToSummaryResponse(res.Summary),
		SummaryError: res.SummaryError,
		Record:       ToVideoResponse(res.Record),
	}

	if tr := res.Transcription; tr != nil {
		response.TranscriptText = tr.FullText
		response.TranscriptFile = slash(tr.TranscriptFile)
		response.Engine = tr.Engine
		response.Language = tr.Language
		for _, seg := range tr.Segments {
			response.Segments = append(response.Segments, dto.SegmentResponse{
				Start:        seg.Start,
				End:          seg.End,
				StartSeconds: seg.StartSeconds,
				EndSeconds:   seg.EndSeconds,
				Text:         seg.Text,
			})
		}
	}

	for _, f := range res.Frames {
		response.Frames = append(response.Frames, dto.FrameResponse{
			Path:      slash(f.Path),
			Timestamp: f.Timestamp,
			Seconds:   f.Seconds,
		})
	}

	return response
}

func slash(path string) string {
	if path == "" {
		return ""
	}
	return filepath.ToSlash(path)
}

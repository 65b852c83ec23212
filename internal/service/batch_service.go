package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"vision-batch-service/internal/domain/analysis"
	"vision-batch-service/internal/vision"
)

var ErrNoFiles = errors.New(`no images provided, send one or more files with field name "image"`)

// BatchService fans a batch of uploaded images out to the vision
// collaborator and assembles the response envelope.
type BatchService struct {
	analyzer vision.Analyzer
	log      zerolog.Logger
}

func NewBatchService(analyzer vision.Analyzer, log zerolog.Logger) *BatchService {
	return &BatchService{
		analyzer: analyzer,
		log:      log,
	}
}

// ProcessBatch analyzes every file concurrently and returns one envelope.
// A single failed image becomes an error outcome in its slot; only an
// empty batch makes the call itself fail.
func (s *BatchService) ProcessBatch(ctx context.Context, files []analysis.UploadedFile) (*analysis.Envelope, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	batchID := "batch_" + strings.SplitN(uuid.NewString(), "-", 2)[0]
	processedAt := time.Now().UTC()

	// Each goroutine writes only its own pre-sized slot, so results stay
	// in upload order no matter which call settles first.
	outcomes := make([]analysis.Outcome, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			outcomes[i] = s.analyzeOne(ctx, i, file)
			return nil
		})
	}
	// Every closure absorbs its own failure into an error outcome, so the
	// group itself never reports one.
	_ = g.Wait()

	summary := Summarize(outcomes)

	s.log.Info().
		Str("batch_id", batchID).
		Int("total_images", len(files)).
		Int("total_tickets", summary.TotalTickets).
		Int("vehicles_detected", summary.VehiclesDetected).
		Msg("processed image batch")

	return &analysis.Envelope{
		Meta: analysis.Meta{
			BatchID:     batchID,
			ProcessedAt: processedAt,
			TotalImages: len(files),
		},
		Results: outcomes,
		Summary: summary,
	}, nil
}

func (s *BatchService) analyzeOne(ctx context.Context, index int, file analysis.UploadedFile) analysis.Outcome {
	imageID := fmt.Sprintf("img_%d", index+1)

	raw, err := s.analyzer.Analyze(ctx, file.Content, file.MediaType)
	if err != nil {
		s.log.Error().
			Err(err).
			Str("image_id", imageID).
			Str("file", file.OriginalName).
			Msg("image analysis failed")
		return errorOutcome(imageID, err.Error())
	}

	outcome := analysis.Outcome{
		ImageID:    imageID,
		Confidence: raw.Confidence,
	}

	switch raw.Type {
	case string(analysis.TypeTicket):
		var data analysis.TicketData
		if err := json.Unmarshal(raw.Data, &data); err != nil {
			s.log.Error().Err(err).Str("image_id", imageID).Msg("unusable ticket data")
			return errorOutcome(imageID, "unusable ticket data: "+err.Error())
		}
		outcome.Type = analysis.TypeTicket
		outcome.Data = &data
	case string(analysis.TypeVehicle):
		var data analysis.VehicleData
		if err := json.Unmarshal(raw.Data, &data); err != nil {
			s.log.Error().Err(err).Str("image_id", imageID).Msg("unusable vehicle data")
			return errorOutcome(imageID, "unusable vehicle data: "+err.Error())
		}
		outcome.Type = analysis.TypeVehicle
		outcome.Data = &data
	default:
		outcome.Type = analysis.TypeUnknown
		var data analysis.GenericData
		if len(raw.Data) > 0 {
			// Best effort; an unknown payload without warnings stays empty.
			json.Unmarshal(raw.Data, &data)
		}
		outcome.Data = &data
	}

	return outcome
}

func errorOutcome(imageID, message string) analysis.Outcome {
	return analysis.Outcome{
		ImageID:    imageID,
		Type:       analysis.TypeError,
		Confidence: 0,
		Data:       &analysis.GenericData{Warnings: []string{message}},
	}
}

package web

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zainr27/MindAware/pkg/drone"
	"github.com/zainr27/MindAware/pkg/eeg"
)

// IngestRequest carries one raw headset reading.
type IngestRequest struct {
	Reading string `json:"reading"`
}

// IngestBatchRequest carries several raw readings, applied in order.
type IngestBatchRequest struct {
	Readings []string `json:"readings"`
}

// BatchItemResult reports one reading's fate within a batch.
type BatchItemResult struct {
	Accepted bool   `json:"accepted"`
	Error    string `json:"error,omitempty"`
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":     "ok",
		"calibrated": s.adapter.Calibrated(),
		"timestamp":  time.Now().UTC(),
	})
}

// handleIngest accepts one raw reading. A malformed reading is a 400 and
// touches nothing; the buffer and calibration are unaffected.
func (s *Server) handleIngest(c *fiber.Ctx) error {
	var req IngestRequest
	if err := c.BodyParser(&req); err != nil || req.Reading == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "body must be {\"reading\": \"<raw record>\"}",
		})
	}

	result, err := s.adapter.Ingest(req.Reading)
	if err != nil {
		var malformed *eeg.MalformedReadingError
		if errors.As(err, &malformed) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": malformed.Error(),
				"field": malformed.Field,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(result)
}

// handleIngestBatch applies readings in order. Malformed entries are
// rejected individually; the rest of the batch proceeds.
func (s *Server) handleIngestBatch(c *fiber.Ctx) error {
	var req IngestBatchRequest
	if err := c.BodyParser(&req); err != nil || len(req.Readings) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "body must be {\"readings\": [\"<raw record>\", ...]}",
		})
	}

	results := make([]BatchItemResult, len(req.Readings))
	accepted := 0
	for i, raw := range req.Readings {
		if _, err := s.adapter.Ingest(raw); err != nil {
			results[i] = BatchItemResult{Error: err.Error()}
			continue
		}
		results[i] = BatchItemResult{Accepted: true}
		accepted++
	}

	return c.JSON(fiber.Map{
		"accepted":    accepted,
		"rejected":    len(req.Readings) - accepted,
		"results":     results,
		"buffer_size": s.adapter.Len(),
		"calibrated":  s.adapter.Calibrated(),
	})
}

func (s *Server) handleEEGStatus(c *fiber.Ctx) error {
	return c.JSON(s.adapter.Status())
}

func (s *Server) handleEEGState(c *fiber.Ctx) error {
	return c.JSON(s.adapter.CognitiveState())
}

// handleCalibrate recomputes the baseline from the buffer. Idempotent:
// repeating it just recomputes from the same data.
func (s *Server) handleCalibrate(c *fiber.Ctx) error {
	if err := s.adapter.Calibrate(); err != nil {
		if errors.Is(err, eeg.ErrInsufficientSamples) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":       err.Error(),
				"buffer_size": s.adapter.Len(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(s.adapter.Baseline())
}

func (s *Server) handleReset(c *fiber.Ctx) error {
	s.adapter.Reset()
	return c.JSON(s.adapter.Status())
}

// handleCurrentCommand serves the command boundary. Before the first
// decision cycle it reports a hold at the machine's current state.
func (s *Server) handleCurrentCommand(c *fiber.Ctx) error {
	rec, ok := s.store.Current()
	if !ok {
		rec = drone.CommandRecord{
			Command:   drone.CommandHold,
			State:     s.machine.State(),
			Timestamp: time.Now().UTC(),
		}
	}
	return c.JSON(rec)
}

func (s *Server) handleTelemetry(c *fiber.Ctx) error {
	return c.JSON(s.telemetry.Snapshot())
}

func (s *Server) handleLogs(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	records, err := s.recorder.Recent(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"count": len(records), "records": records})
}

func (s *Server) handleClearLogs(c *fiber.Ctx) error {
	if err := s.recorder.Clear(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"cleared": true})
}

func (s *Server) handleMemory(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "0"))
	return c.JSON(s.memory.Recent(limit))
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"hybrid-dispatch/internal/analysis"
	"hybrid-dispatch/internal/api/models"
	"hybrid-dispatch/internal/config"
	"hybrid-dispatch/internal/data"
	"hybrid-dispatch/internal/logging"
	"hybrid-dispatch/internal/metrics"
	"hybrid-dispatch/internal/model"
	"hybrid-dispatch/internal/sim"
	"hybrid-dispatch/internal/telemetry"
)

// SimulateHandler runs simulations against inline or server-side input.
type SimulateHandler struct {
	cfg  *config.Config
	sink telemetry.Sink
	log  zerolog.Logger
}

func NewSimulateHandler(cfg *config.Config, sink telemetry.Sink) *SimulateHandler {
	if sink == nil {
		sink = telemetry.NopSink{}
	}
	return &SimulateHandler{cfg: cfg, sink: sink, log: logging.New("api-simulate")}
}

// RunSimulation handles POST /api/v1/simulate.
func (h *SimulateHandler) RunSimulation(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	records, err := h.loadRecords(req.Dataset, req.Records, req.StartDate, req.EndDate)
	if err != nil {
		badRequest(c, "INVALID_INPUT", err.Error())
		return
	}

	plant, simCfg, err := h.resolvePlant(req.PlantPreset, req.Plant)
	if err != nil {
		badRequest(c, "INVALID_CONFIG", err.Error())
		return
	}

	engine, err := sim.New(simCfg)
	if err != nil {
		badRequest(c, "INVALID_CONFIG", err.Error())
		return
	}
	res, err := engine.Run(records)
	if err != nil {
		metrics.SimulationsTotal.WithLabelValues("error").Inc()
		badRequest(c, "SIMULATION_ERROR", err.Error())
		return
	}
	metrics.SimulationsTotal.WithLabelValues("ok").Inc()
	metrics.HoursSimulated.Add(float64(len(res.Ledger)))

	runID := uuid.NewString()
	if err := h.sink.RecordRun(runID, plant.Name, res.Ledger); err != nil {
		// Telemetry is best-effort; the run itself succeeded.
		h.log.Warn().Err(err).Str("run_id", runID).Msg("telemetry write failed")
	}

	resp := models.SimulateResponse{
		ID:      runID,
		Status:  "completed",
		Plant:   plant.Name,
		Summary: res.Summary,
		Monthly: analysis.MonthlyReport(res.Ledger),
	}
	if req.IncludeLedger {
		resp.Ledger = res.Ledger
	}
	c.JSON(http.StatusOK, resp)
}

// RunSweep handles POST /api/v1/sweep: the same input under several
// parameter sets, executed in parallel, ranked by net revenue.
func (h *SimulateHandler) RunSweep(c *gin.Context) {
	var req models.SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	records, err := h.loadRecords(req.Dataset, nil, req.StartDate, req.EndDate)
	if err != nil {
		badRequest(c, "INVALID_INPUT", err.Error())
		return
	}

	plants := req.Plants
	if len(plants) == 0 {
		plants, err = config.ListPlants(h.cfg.Data.PlantDir)
		if err != nil {
			internalError(c, err.Error())
			return
		}
	}
	if len(plants) == 0 {
		badRequest(c, "INVALID_CONFIG", "no plant configurations to sweep")
		return
	}

	configs := make([]sim.NamedConfig, 0, len(plants))
	for _, p := range plants {
		merged := config.MergePlant(config.DefaultPlant(), p)
		simCfg, err := merged.ToSimulationConfig()
		if err != nil {
			badRequest(c, "INVALID_CONFIG", err.Error())
			return
		}
		configs = append(configs, sim.NamedConfig{Name: merged.Name, Config: simCfg})
	}

	results, err := sim.RunMany(c.Request.Context(), configs, records)
	if err != nil {
		metrics.SimulationsTotal.WithLabelValues("error").Inc()
		badRequest(c, "SIMULATION_ERROR", err.Error())
		return
	}
	for _, r := range results {
		metrics.SimulationsTotal.WithLabelValues("ok").Inc()
		metrics.HoursSimulated.Add(float64(len(r.Result.Ledger)))
	}

	c.JSON(http.StatusOK, models.SweepResponse{
		ID:       uuid.NewString(),
		Rankings: analysis.RankByNetRevenue(results),
	})
}

// loadRecords resolves input rows from a dataset name or inline records,
// applies the optional date filter, and validates the series.
func (h *SimulateHandler) loadRecords(dataset string, inline []models.InputRecord, startDate, endDate string) ([]model.HourRecord, error) {
	if dataset != "" && len(inline) > 0 {
		return nil, errors.New("set either dataset or records, not both")
	}

	var records []model.HourRecord
	switch {
	case dataset != "":
		path, err := data.ResolveDataset(h.cfg.Data.DatasetDir, dataset)
		if err != nil {
			return nil, err
		}
		records, err = data.ReadHourRecordsFile(path)
		if err != nil {
			return nil, err
		}
	case len(inline) > 0:
		records = make([]model.HourRecord, 0, len(inline))
		for i, r := range inline {
			ts, err := data.ParseTimestamp(r.Timestamp)
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
			records = append(records, model.HourRecord{
				Timestamp:       ts,
				SolarGeneration: r.SolarGeneration,
				WindGeneration:  r.WindGeneration,
				Price:           r.Price,
			})
		}
	default:
		return nil, errors.New("dataset or records is required")
	}

	start, end, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	if !start.IsZero() || !end.IsZero() {
		records = data.FilterDateRange(records, start, end)
	}
	if err := data.ValidateSeries(records); err != nil {
		return nil, err
	}
	return records, nil
}

// resolvePlant layers request overrides onto the named preset (or defaults).
func (h *SimulateHandler) resolvePlant(preset string, override config.PlantConfig) (config.PlantConfig, model.SimulationConfig, error) {
	base := config.DefaultPlant()
	if preset != "" {
		plants, err := config.ListPlants(h.cfg.Data.PlantDir)
		if err != nil {
			return config.PlantConfig{}, model.SimulationConfig{}, err
		}
		found := false
		for _, p := range plants {
			if p.Name == preset {
				base = p
				found = true
				break
			}
		}
		if !found {
			return config.PlantConfig{}, model.SimulationConfig{}, fmt.Errorf("plant preset %q not found", preset)
		}
	}
	plant := config.MergePlant(base, override)
	simCfg, err := plant.ToSimulationConfig()
	if err != nil {
		return config.PlantConfig{}, model.SimulationConfig{}, err
	}
	return plant, simCfg, nil
}

func parseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error
	if startDate != "" {
		start, err = time.Parse("2006-01-02", startDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date (expected YYYY-MM-DD): %w", err)
		}
	}
	if endDate != "" {
		end, err = time.Parse("2006-01-02", endDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date (expected YYYY-MM-DD): %w", err)
		}
	}
	return start, end, nil
}

func badRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{Code: code, Message: message},
	})
}

func internalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error: models.ErrorDetail{Code: "INTERNAL_ERROR", Message: message},
	})
}

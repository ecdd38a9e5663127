package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"edgestats/internal/dataprocessing"
	apierrors "edgestats/internal/errors"
	"edgestats/internal/exporter"
	"edgestats/internal/projections"
	"edgestats/pkg/contracts/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TableResponse is a table rendered with public column names.
type TableResponse struct {
	Columns []string        `json:"columns"`
	Rows    []domain.Record `json:"rows"`
	Count   int             `json:"count"`
}

func newTableResponse(records []domain.Record) TableResponse {
	resp := TableResponse{Columns: []string{}, Rows: records, Count: len(records)}
	if len(records) > 0 {
		resp.Columns = records[0].Columns()
	}
	if resp.Rows == nil {
		resp.Rows = []domain.Record{}
	}
	return resp
}

// GameResponse is one game with both rosters.
type GameResponse struct {
	Game        domain.Record   `json:"game"`
	HomePlayers []domain.Record `json:"home_players"`
	AwayPlayers []domain.Record `json:"away_players"`
}

// FeatureHandler serves the feature tables.
type FeatureHandler struct {
	service      FeatureServiceInterface
	validate     *validator.Validate
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewFeatureHandler creates a feature handler with RFC 7807 error handling
func NewFeatureHandler(service FeatureServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *FeatureHandler {
	return &FeatureHandler{
		service:      service,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		logger:       logger.With(slog.String("component", "feature_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the feature routes
func (h *FeatureHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/seasons", h.GetSeasons)
	r.Get("/games", h.GetGames)
	r.Get("/games/{gameID}", h.GetGame)
	r.Get("/teams", h.GetTeams)
	r.Get("/players", h.GetPlayers)
	r.Get("/export.xlsx", h.ExportWorkbook)
	r.Post("/refresh", h.Refresh)

	return r
}

// GetSeasons handles GET /api/features/seasons
func (h *FeatureHandler) GetSeasons(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.SeasonOptions(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, opts)
}

// GetGames handles GET /api/features/games
func (h *FeatureHandler) GetGames(w http.ResponseWriter, r *http.Request) {
	req, err := parseTableRequest(r, h.validate)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	rows, err := h.service.Games(r.Context(), req.TableQuery)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	records := make([]domain.Record, len(rows))
	for i, row := range rows {
		records[i] = dataprocessing.HomeAwayRecord(row)
	}
	h.writeTable(w, r, exporter.TableGames, req.Format, records)
}

// GetTeams handles GET /api/features/teams
func (h *FeatureHandler) GetTeams(w http.ResponseWriter, r *http.Request) {
	req, err := parseTableRequest(r, h.validate)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	rows, err := h.service.Teams(r.Context(), req.TableQuery)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	records := make([]domain.Record, len(rows))
	for i, row := range rows {
		records[i] = dataprocessing.FoldedRecord(row)
	}
	h.writeTable(w, r, exporter.TableTeams, req.Format, records)
}

// GetPlayers handles GET /api/features/players
func (h *FeatureHandler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	req, err := parseTableRequest(r, h.validate)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	view, err := h.service.Players(r.Context(), req.TableQuery)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.writeTable(w, r, exporter.TablePlayers, req.Format, view.Records())
}

// GetGame handles GET /api/features/games/{gameID}
func (h *FeatureHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	if gameID == "" || strings.Count(gameID, "_") != 3 {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("gameID", "game id must look like {season}_{week}_{away}_{home}"))
		return
	}

	detail, err := h.service.Game(r.Context(), gameID)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, GameResponse{
		Game:        dataprocessing.HomeAwayRecord(detail.Game),
		HomePlayers: projections.WeeklyRecords(detail.Players.Home),
		AwayPlayers: projections.WeeklyRecords(detail.Players.Away),
	})
}

// ExportWorkbook handles GET /api/features/export.xlsx
func (h *FeatureHandler) ExportWorkbook(w http.ResponseWriter, r *http.Request) {
	mode := domain.AggregationMode(strings.ToLower(r.URL.Query().Get("mode")))
	switch mode {
	case "":
		mode = domain.ModeWeekly
	case domain.ModeWeekly, domain.ModeSeason:
	default:
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("mode", "must be one of [weekly season]"))
		return
	}

	tables, err := h.service.LoadFeatureStore(r.Context(), nil)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="features_%s.xlsx"`, mode))
	if err := exporter.WriteWorkbook(w, exporter.FeatureTables(tables, mode)); err != nil {
		// Headers are gone once the body started; only log.
		h.logger.ErrorContext(r.Context(), "workbook export failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetReqID(r.Context())))
	}
}

// Refresh handles POST /api/features/refresh. Naming seasons drops every
// cached window that includes one of them.
func (h *FeatureHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	seasons, err := parseSeasons(r.URL.Query().Get("seasons"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	dropped := h.service.Refresh(r.Context(), seasons)
	h.logger.InfoContext(r.Context(), "feature cache refreshed",
		slog.Any("seasons", seasons),
		slog.Int("windows", dropped),
		slog.String("request_id", middleware.GetReqID(r.Context())))

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, map[string]interface{}{
		"refreshed": seasons,
		"windows":   dropped,
		"cache":     h.service.CacheStats(),
	})
}

func (h *FeatureHandler) writeTable(w http.ResponseWriter, r *http.Request, name, format string, records []domain.Record) {
	if format != FormatCSV {
		render.JSON(w, r, newTableResponse(records))
		return
	}

	table := exporter.NewTable(name, records)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, name))
	if err := exporter.EncodeCSV(w, table.Columns, table.StringRows(), false); err != nil {
		h.logger.ErrorContext(r.Context(), "csv export failed",
			slog.String("table", name),
			slog.String("error", err.Error()))
	}
}

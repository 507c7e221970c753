package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"nationsim/internal/app/action"
	"nationsim/internal/app/diplomacy"
	"nationsim/internal/app/epoch"
	"nationsim/internal/app/leaderboard"
	"nationsim/internal/app/nations"
	"nationsim/internal/app/observe"
	"nationsim/internal/app/ports"
	"nationsim/internal/app/status"
	"nationsim/internal/domain/nation"
)

const authorizationHeader = "Authorization"
const bearerPrefix = "Bearer "

var ErrMissingAPIKey = errors.New("missing bearer api key")

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

type feedServer interface {
	Serve(ctx context.Context, c *app.RequestContext) error
}

type Handler struct {
	RegisterUC    nations.RegisterUseCase
	ClaimUC       nations.ClaimUseCase
	VerifyUC      nations.VerifyUseCase
	ProfileUC     status.ProfileUseCase
	PublicUC      status.PublicUseCase
	ActionUC      action.UseCase
	HistoryUC     action.HistoryUseCase
	SnapshotUC    observe.SnapshotUseCase
	RegionsUC     observe.RegionsUseCase
	EventsUC      observe.EventsUseCase
	LeaderboardUC leaderboard.UseCase
	TreatiesUC    diplomacy.TreatiesUseCase
	WarsUC        diplomacy.WarsUseCase
	TickUC        epoch.TickUseCase
	Feed          feedServer
	KPI           kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	nationsGroup := s.Group("/api/nations")
	nationsGroup.POST("/register", h.register)
	nationsGroup.POST("/claim", h.claim)
	nationsGroup.GET("/me", h.me)
	nationsGroup.GET("", h.listNations)
	nationsGroup.GET("/:id", h.nationDetail)

	actionsGroup := s.Group("/api/actions")
	actionsGroup.POST("/submit", h.submitAction)
	actionsGroup.GET("/history", h.history)

	worldGroup := s.Group("/api/world")
	worldGroup.GET("", h.worldSnapshot)
	worldGroup.GET("/regions", h.regions)
	worldGroup.GET("/regions/unclaimed", h.unclaimedRegions)
	worldGroup.GET("/regions/:id", h.regionDetail)
	worldGroup.GET("/leaderboard", h.leaderboard)
	worldGroup.GET("/events", h.events)
	worldGroup.GET("/events/stream", h.eventStream)
	worldGroup.POST("/advance-epoch", h.advanceEpoch)

	diplomacyGroup := s.Group("/api/diplomacy")
	diplomacyGroup.GET("/treaties", h.treaties)
	diplomacyGroup.GET("/treaties/mine", h.myTreaties)
	diplomacyGroup.GET("/wars", h.wars)
	diplomacyGroup.GET("/wars/active", h.activeWars)

	s.GET("/ops/kpi", h.kpi)
}

type registerRequest struct {
	Name      string `json:"name"`
	FounderID string `json:"founder_id,omitempty"`
}

type claimRequest struct {
	ClaimCode string `json:"claim_code"`
}

type submitActionRequest struct {
	Action string              `json:"action"`
	Params nation.ActionParams `json:"params"`
}

func (h Handler) register(c context.Context, ctx *app.RequestContext) {
	var body registerRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.RegisterUC.Execute(c, nations.RegisterRequest{Name: body.Name, FounderID: body.FounderID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) claim(c context.Context, ctx *app.RequestContext) {
	nationID, err := h.requireNation(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body claimRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.ClaimUC.Execute(c, nations.ClaimRequest{NationID: nationID, ClaimCode: body.ClaimCode})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) me(c context.Context, ctx *app.RequestContext) {
	nationID, err := h.requireNation(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.ProfileUC.Execute(c, nationID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) listNations(c context.Context, ctx *app.RequestContext) {
	resp, err := h.PublicUC.List(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"nations": resp})
}

func (h Handler) nationDetail(c context.Context, ctx *app.RequestContext) {
	resp, err := h.PublicUC.Get(c, string(ctx.Param("id")))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) submitAction(c context.Context, ctx *app.RequestContext) {
	nationID, err := h.requireNation(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body submitActionRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.ActionUC.Execute(c, action.Request{
		NationID: nationID,
		Type:     nation.ActionType(body.Action),
		Params:   body.Params,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) history(c context.Context, ctx *app.RequestContext) {
	nationID, err := h.requireNation(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	resp, err := h.HistoryUC.Execute(c, action.HistoryRequest{NationID: nationID, Limit: limit})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"actions": resp})
}

func (h Handler) worldSnapshot(c context.Context, ctx *app.RequestContext) {
	resp, err := h.SnapshotUC.Execute(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) regions(c context.Context, ctx *app.RequestContext) {
	resp, err := h.RegionsUC.List(c, false)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"regions": resp})
}

func (h Handler) unclaimedRegions(c context.Context, ctx *app.RequestContext) {
	resp, err := h.RegionsUC.List(c, true)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"regions": resp})
}

func (h Handler) regionDetail(c context.Context, ctx *app.RequestContext) {
	resp, err := h.RegionsUC.Get(c, string(ctx.Param("id")))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) leaderboard(c context.Context, ctx *app.RequestContext) {
	resp, err := h.LeaderboardUC.Execute(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"leaderboard": resp})
}

func (h Handler) events(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	resp, err := h.EventsUC.Execute(c, observe.EventsRequest{Limit: limit})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) eventStream(c context.Context, ctx *app.RequestContext) {
	if h.Feed == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "event stream not configured")
		return
	}
	if err := h.Feed.Serve(c, ctx); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "upgrade_failed", err.Error())
	}
}

func (h Handler) advanceEpoch(c context.Context, ctx *app.RequestContext) {
	resp, err := h.TickUC.Execute(c, epoch.TickRequest{Force: true})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) treaties(c context.Context, ctx *app.RequestContext) {
	resp, err := h.TreatiesUC.List(c, string(ctx.Query("status")))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"treaties": resp})
}

func (h Handler) myTreaties(c context.Context, ctx *app.RequestContext) {
	nationID, err := h.requireNation(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.TreatiesUC.Mine(c, nationID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) wars(c context.Context, ctx *app.RequestContext) {
	resp, err := h.WarsUC.List(c, false)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"wars": resp})
}

func (h Handler) activeWars(c context.Context, ctx *app.RequestContext) {
	resp, err := h.WarsUC.List(c, true)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"wars": resp})
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func (h Handler) requireNation(c context.Context, ctx *app.RequestContext) (string, error) {
	header := strings.TrimSpace(string(ctx.GetHeader(authorizationHeader)))
	if header == "" || !strings.HasPrefix(header, bearerPrefix) {
		return "", ErrMissingAPIKey
	}
	apiKey := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if apiKey == "" {
		return "", ErrMissingAPIKey
	}
	return h.VerifyUC.Execute(c, apiKey)
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingAPIKey):
		writeErrorBody(ctx, consts.StatusUnauthorized, "missing_api_key", err.Error())
	case errors.Is(err, nations.ErrInvalidCredentials):
		writeErrorBody(ctx, consts.StatusUnauthorized, "invalid_api_key", err.Error())
	case errors.Is(err, nations.ErrAlreadyClaimed):
		writeErrorBody(ctx, consts.StatusConflict, "already_claimed", err.Error())
	case errors.Is(err, nations.ErrWorldFull):
		writeErrorBody(ctx, consts.StatusConflict, "world_full", err.Error())
	case errors.Is(err, action.ErrNationNotActive):
		writeErrorBody(ctx, consts.StatusForbidden, "nation_not_active", err.Error())
	case errors.Is(err, nations.ErrInvalidRequest),
		errors.Is(err, action.ErrInvalidRequest),
		errors.Is(err, observe.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest),
		errors.Is(err, diplomacy.ErrInvalidRequest),
		errors.Is(err, leaderboard.ErrInvalidRequest),
		errors.Is(err, epoch.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

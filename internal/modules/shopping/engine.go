package shopping

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/observability"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
	"github.com/yungbote/foodgram-backend/internal/report"
)

const (
	opAggregate = "shopping.aggregate"
	opDownload  = "shopping.download"
)

// CartStore lists the recipes a user has in the cart.
type CartStore interface {
	RecipeIDs(dbc dbctx.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// CompositionStore loads line items for many recipes in one query.
type CompositionStore interface {
	LineItemsFor(dbc dbctx.Context, recipeIDs []uuid.UUID) ([]*types.LineItemRow, error)
}

// Caller identifies who asked. Nothing is read from the request context.
type Caller struct {
	UserID    uuid.UUID
	RequestID string
}

// Line is one ingredient group. Ingredients that share a name but not an id
// stay separate lines.
type Line struct {
	IngredientID uuid.UUID `json:"ingredient_id"`
	Name         string    `json:"name"`
	Unit         string    `json:"measurement_unit"`
	Total        int64     `json:"amount"`
}

type Result struct {
	Lines []Line `json:"ingredients"`
}

func (r Result) ReportLines() []report.Line {
	out := make([]report.Line, 0, len(r.Lines))
	for _, l := range r.Lines {
		out = append(out, report.Line{Name: l.Name, Amount: l.Total, Unit: l.Unit})
	}
	return out
}

type EngineDeps struct {
	Log         *logger.Logger
	Cart        CartStore
	Composition CompositionStore
	Metrics     *observability.Metrics
	Reports     *report.Registry
}

type Engine struct {
	deps EngineDeps
}

func NewEngine(deps EngineDeps) *Engine {
	if deps.Log == nil {
		deps.Log = logger.NewNop()
	}
	deps.Log = deps.Log.With("module", "shopping")
	if deps.Reports == nil {
		deps.Reports = report.DefaultRegistry()
	}
	return &Engine{deps: deps}
}

// Aggregate sums the caller's cart by ingredient. It reads the cart once and
// the line items once, whatever the cart size.
func (e *Engine) Aggregate(ctx context.Context, caller Caller) (res Result, err error) {
	ctx, span := observability.Tracer().Start(ctx, opAggregate)
	start := time.Now()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.SetAttributes(attribute.Int("shopping.groups", len(res.Lines)))
		span.End()
	}()

	if caller.UserID == uuid.Nil {
		return Result{}, domainagg.NewError(domainagg.CodeUnauthorized, opAggregate, "authentication required", nil)
	}
	span.SetAttributes(attribute.String("request.id", caller.RequestID))

	dbc := dbctx.Context{Ctx: ctx}
	recipeIDs, err := e.deps.Cart.RecipeIDs(dbc, caller.UserID)
	if err != nil {
		return Result{}, fmt.Errorf("%s: load cart: %w", opAggregate, err)
	}
	span.SetAttributes(attribute.Int("shopping.recipes", len(recipeIDs)))
	if len(recipeIDs) == 0 {
		e.deps.Log.Debug("shopping cart empty", "request_id", caller.RequestID, "user_id", caller.UserID)
		e.deps.Metrics.ObserveShoppingGroups(0)
		return Result{Lines: []Line{}}, nil
	}

	rows, err := e.deps.Composition.LineItemsFor(dbc, recipeIDs)
	if err != nil {
		return Result{}, fmt.Errorf("%s: load line items: %w", opAggregate, err)
	}
	span.SetAttributes(attribute.Int("shopping.line_items", len(rows)))

	lines, err := groupLines(rows)
	if err != nil {
		return Result{}, err
	}
	e.deps.Metrics.ObserveShoppingGroups(len(lines))
	e.deps.Log.Debug("shopping list aggregated",
		"request_id", caller.RequestID,
		"user_id", caller.UserID,
		"recipes", len(recipeIDs),
		"line_items", len(rows),
		"groups", len(lines),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return Result{Lines: lines}, nil
}

// Download aggregates the cart and renders it in the requested format. An
// empty format means plain text.
func (e *Engine) Download(ctx context.Context, caller Caller, format string) (report.Document, error) {
	renderer, err := e.deps.Reports.Lookup(format)
	if err != nil {
		e.deps.Metrics.ObserveDownload(format, "rejected")
		return report.Document{}, err
	}
	res, err := e.Aggregate(ctx, caller)
	if err != nil {
		e.deps.Metrics.ObserveDownload(renderer.Format(), "error")
		return report.Document{}, err
	}
	doc, err := renderer.Render(res.ReportLines())
	if err != nil {
		e.deps.Metrics.ObserveDownload(renderer.Format(), "error")
		e.deps.Log.Error("render shopping list failed", "request_id", caller.RequestID, "format", renderer.Format(), "error", err)
		return report.Document{}, fmt.Errorf("%s: render %s: %w", opDownload, renderer.Format(), err)
	}
	e.deps.Metrics.ObserveDownload(renderer.Format(), "ok")
	return doc, nil
}

func groupLines(rows []*types.LineItemRow) ([]Line, error) {
	index := make(map[uuid.UUID]int, len(rows))
	lines := make([]Line, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		i, ok := index[row.IngredientID]
		if !ok {
			i = len(lines)
			index[row.IngredientID] = i
			lines = append(lines, Line{IngredientID: row.IngredientID, Name: row.Name, Unit: row.MeasurementUnit})
		}
		total, ok := addAmount(lines[i].Total, int64(row.Amount))
		if !ok {
			return nil, domainagg.Errorf(
				domainagg.CodeInvariantViolation,
				opAggregate,
				"total for ingredient %s overflows", row.IngredientID,
			)
		}
		lines[i].Total = total
	}
	sortLines(lines)
	return lines, nil
}

// sortLines orders by name, then unit, then id string. Names compare by bytes.
func sortLines(lines []Line) {
	sort.Slice(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.Unit != b.Unit {
			return a.Unit < b.Unit
		}
		return a.IngredientID.String() < b.IngredientID.String()
	})
}

package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/puckboard/puckboard/internal/service"
)

// statQuery reads the shared stat-query parameters. Season and from must be
// positive integers when present; anything else is a 400 before any storage
// call happens.
func statQuery(r *http.Request) (service.Query, error) {
	q := service.Query{
		Team:   r.URL.Query().Get("team"),
		Report: r.URL.Query().Get("report"),
		Sort:   r.URL.Query().Get("sort"),
	}
	var err error
	if q.Season, err = seasonParam(r, "season"); err != nil {
		return q, err
	}
	if q.From, err = seasonParam(r, "from"); err != nil {
		return q, err
	}
	return q, nil
}

func seasonParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, &service.Error{Status: http.StatusBadRequest, Message: "invalid " + name + " value"}
	}
	return n, nil
}

// GetSeasons returns the known seasons for a team and report category.
func (h *Handler) GetSeasons(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context) (interface{}, error) {
		q, err := statQuery(r)
		if err != nil {
			return nil, err
		}
		seasons, err := h.svc.Seasons(ctx, q)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"seasons": seasons}, nil
	})
}

// GetSkaters returns scored skater stats for one season.
func (h *Handler) GetSkaters(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context) (interface{}, error) {
		q, err := statQuery(r)
		if err != nil {
			return nil, err
		}
		return h.svc.Skaters(ctx, q)
	})
}

// GetSkatersAllTime returns cumulative skater stats across seasons.
func (h *Handler) GetSkatersAllTime(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context) (interface{}, error) {
		q, err := statQuery(r)
		if err != nil {
			return nil, err
		}
		return h.svc.SkatersAllTime(ctx, q)
	})
}

// GetGoalies returns scored goaltender stats for one season.
func (h *Handler) GetGoalies(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context) (interface{}, error) {
		q, err := statQuery(r)
		if err != nil {
			return nil, err
		}
		return h.svc.Goalies(ctx, q)
	})
}

// GetGoaliesAllTime returns cumulative goaltender stats across seasons.
func (h *Handler) GetGoaliesAllTime(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context) (interface{}, error) {
		q, err := statQuery(r)
		if err != nil {
			return nil, err
		}
		return h.svc.GoaliesAllTime(ctx, q)
	})
}

// GetTeams returns the static roster with data-availability flags.
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context) (interface{}, error) {
		return h.svc.Teams(ctx)
	})
}

// GetUpdated returns the data-freshness timestamp.
func (h *Handler) GetUpdated(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context) (interface{}, error) {
		return h.svc.Updated(ctx)
	})
}

// GetRegularLeaderboard returns the all-time regular-season record table.
func (h *Handler) GetRegularLeaderboard(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context) (interface{}, error) {
		return h.svc.RegularLeaderboard(ctx)
	})
}

// GetPlayoffLeaderboard returns the all-time playoff achievements table.
func (h *Handler) GetPlayoffLeaderboard(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context) (interface{}, error) {
		return h.svc.PlayoffLeaderboard(ctx)
	})
}

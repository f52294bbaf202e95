// Package api exposes the analytics layer over HTTP JSON and MCP. Both
// transports dispatch to the same endpoints, so a tool call and a GET route
// for the same operation always return the same document.
package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/hazyhaar/adei/pkg/analytics"
	"github.com/hazyhaar/adei/pkg/catalog"
)

// endpoint is a transport-agnostic action function. HTTP handlers and MCP
// tools both dispatch to endpoints.
type endpoint func(ctx context.Context, request any) (response any, err error)

// Shared request/response types used by both transports.

type countryReq struct {
	Name string
}

type compareReq struct {
	Names []string
}

type rankingReq struct {
	Pillar string
}

type extremesReq struct {
	Name string
	TopN int
}

type countriesResponse struct {
	Countries []string `json:"countries"`
}

type averagesResponse struct {
	Averages []analytics.PillarAverage `json:"averages"`
}

type pillarRankingResponse struct {
	Pillar  string                       `json:"pillar"`
	Ranking []analytics.PillarRankingRow `json:"ranking"`
}

type endpoints struct {
	leaderboard    endpoint
	pillarAverages endpoint
	countries      endpoint
	profile        endpoint
	compare        endpoint
	pillarRanking  endpoint
	correlations   endpoint
	stats          endpoint
	extremes       endpoint
	peers          endpoint
	regions        endpoint
	rankings       endpoint
	mapData        endpoint
}

func newEndpoints(a *analytics.Analytics) *endpoints {
	return &endpoints{
		leaderboard: func(_ context.Context, _ any) (any, error) {
			return a.Leaderboard()
		},
		pillarAverages: func(_ context.Context, _ any) (any, error) {
			avgs, err := a.AveragePillarScores()
			if err != nil {
				return nil, err
			}
			return averagesResponse{Averages: avgs}, nil
		},
		countries: func(_ context.Context, _ any) (any, error) {
			names, err := a.CountryList()
			if err != nil {
				return nil, err
			}
			return countriesResponse{Countries: names}, nil
		},
		profile: func(_ context.Context, request any) (any, error) {
			req := request.(*countryReq)
			return a.CountryProfile(req.Name)
		},
		compare: func(_ context.Context, request any) (any, error) {
			req := request.(*compareReq)
			if len(req.Names) > 20 {
				return nil, fmt.Errorf("too many countries (max 20, got %d)", len(req.Names))
			}
			return a.Compare(req.Names)
		},
		pillarRanking: func(_ context.Context, request any) (any, error) {
			req := request.(*rankingReq)
			full, err := resolvePillar(req.Pillar)
			if err != nil {
				return nil, err
			}
			rows, err := a.PillarRanking(full)
			if err != nil {
				return nil, err
			}
			return pillarRankingResponse{Pillar: catalog.DisplayName(full), Ranking: rows}, nil
		},
		correlations: func(_ context.Context, _ any) (any, error) {
			return a.Correlations()
		},
		stats: func(_ context.Context, _ any) (any, error) {
			stats, err := a.AggregateStats()
			if err != nil {
				return nil, err
			}
			return map[string]any{"pillars": stats}, nil
		},
		extremes: func(_ context.Context, request any) (any, error) {
			req := request.(*extremesReq)
			return a.StrengthsWeaknesses(req.Name, req.TopN)
		},
		peers: func(_ context.Context, request any) (any, error) {
			req := request.(*countryReq)
			return a.PeerComparison(req.Name)
		},
		regions: func(_ context.Context, _ any) (any, error) {
			return a.RegionalAggregation()
		},
		rankings: func(_ context.Context, _ any) (any, error) {
			return a.RankingsExplorer()
		},
		mapData: func(_ context.Context, _ any) (any, error) {
			rows, err := a.MapData()
			if err != nil {
				return nil, err
			}
			return map[string]any{"rows": rows}, nil
		},
	}
}

// resolvePillar accepts either a full stored pillar label or its cleaned
// display name, case-insensitively, and returns the stored label.
func resolvePillar(label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", fmt.Errorf("missing pillar")
	}
	for _, p := range catalog.Pillars() {
		if strings.EqualFold(label, p.Name) || strings.EqualFold(label, catalog.DisplayName(p.Name)) {
			return p.Name, nil
		}
	}
	return "", fmt.Errorf("unknown pillar %q", label)
}

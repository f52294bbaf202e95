package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hazyhaar/adei/pkg/analytics"
)

// NewMCPServer builds an MCP server exposing the analytics operations the
// agent collaborator consumes. Serve it over stdio with server.ServeStdio.
func NewMCPServer(a *analytics.Analytics) *server.MCPServer {
	srv := server.NewMCPServer("adei", "1.0.0")
	RegisterMCPTools(srv, a)
	return srv
}

// RegisterMCPTools registers the ADEI MCP tools on the server.
func RegisterMCPTools(srv *server.MCPServer, a *analytics.Analytics) {
	ep := newEndpoints(a)

	registerTool(srv, mcp.NewTool("adei_leaderboard",
		mcp.WithDescription("Top-10 and bottom-10 OIC countries by Digital Economy Index rank."),
	), ep.leaderboard, decodeNothing)

	registerTool(srv, mcp.NewTool("country_profile",
		mcp.WithDescription("Full profile of one country: ADEI score and rank, nine pillar scores, all sub-indicator scores."),
		mcp.WithString("country", mcp.Required(), mcp.Description("Country name as stored (e.g. Saudi Arabia)")),
	), ep.profile, func(req mcp.CallToolRequest) (any, error) {
		name, _ := req.GetArguments()["country"].(string)
		if name == "" {
			return nil, fmt.Errorf("country is required")
		}
		return &countryReq{Name: name}, nil
	})

	registerTool(srv, mcp.NewTool("compare_countries",
		mcp.WithDescription("Side-by-side ADEI and pillar scores for a set of countries."),
		mcp.WithString("countries", mcp.Required(), mcp.Description("Comma-separated country names")),
	), ep.compare, func(req mcp.CallToolRequest) (any, error) {
		v, _ := req.GetArguments()["countries"].(string)
		names := splitList(v)
		if len(names) == 0 {
			return nil, fmt.Errorf("countries is required")
		}
		return &compareReq{Names: names}, nil
	})

	registerTool(srv, mcp.NewTool("pillar_ranking",
		mcp.WithDescription("All countries ranked by one pillar's total score, with that pillar's sub-indicator scores."),
		mcp.WithString("pillar", mcp.Required(), mcp.Description("Pillar name, full or cleaned (e.g. Infrastructure)")),
	), ep.pillarRanking, func(req mcp.CallToolRequest) (any, error) {
		pillar, _ := req.GetArguments()["pillar"].(string)
		return &rankingReq{Pillar: pillar}, nil
	})

	registerTool(srv, mcp.NewTool("strengths_weaknesses",
		mcp.WithDescription("A country's strongest and weakest sub-indicators."),
		mcp.WithString("country", mcp.Required(), mcp.Description("Country name as stored")),
		mcp.WithString("top", mcp.Description("How many extremes per side (default 5)")),
	), ep.extremes, func(req mcp.CallToolRequest) (any, error) {
		args := req.GetArguments()
		name, _ := args["country"].(string)
		if name == "" {
			return nil, fmt.Errorf("country is required")
		}
		topN := 0
		if v, _ := args["top"].(string); v != "" {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("top must be an integer")
			}
			topN = n
		}
		return &extremesReq{Name: name, TopN: topN}, nil
	})

	registerTool(srv, mcp.NewTool("regional_stats",
		mcp.WithDescription("Per-region country counts, average ADEI scores and per-pillar averages."),
	), ep.regions, decodeNothing)

	registerTool(srv, mcp.NewTool("peer_comparison",
		mcp.WithDescription("One country's pillar scores against its regional peer averages."),
		mcp.WithString("country", mcp.Required(), mcp.Description("Country name as stored")),
	), ep.peers, func(req mcp.CallToolRequest) (any, error) {
		name, _ := req.GetArguments()["country"].(string)
		if name == "" {
			return nil, fmt.Errorf("country is required")
		}
		return &countryReq{Name: name}, nil
	})
}

func decodeNothing(_ mcp.CallToolRequest) (any, error) { return nil, nil }

// registerTool wires an endpoint as an MCP tool. The decode function extracts
// the typed request from the tool arguments; the endpoint response is
// serialized as a JSON text result.
func registerTool(srv *server.MCPServer, tool mcp.Tool, ep endpoint, decode func(mcp.CallToolRequest) (any, error)) {
	srv.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		request, err := decode(req)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		resp, err := ep(ctx, request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		data, err := json.Marshal(resp)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshal: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	})
}

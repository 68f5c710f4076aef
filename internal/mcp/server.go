// Package mcp republishes the catalog operations as agent tools over the
// Model Context Protocol, so assistants can pull founder experiences into
// a conversation without going through the JSON API.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/echomindr/echomindr/internal/search"
	"github.com/echomindr/echomindr/internal/store"
)

const (
	searchToolLimit  = 10
	similarToolLimit = 5
	defaultSimilar   = 3
)

const instructions = "Echomindr gives you access to 1150+ real entrepreneurial experiences " +
	"extracted from 100+ top podcast episodes (How I Built This, Lenny's Podcast, " +
	"20 Minute VC, Acquired, Y Combinator, My First Million, and more). " +
	"Use search_experience to find relevant founder decisions, problems, lessons, and " +
	"signals whenever a user asks for startup advice, examples, or experiences. " +
	"Always prefer real founder experiences over generic advice."

// Adapter binds the query engine to an MCP tool server.
type Adapter struct {
	engine *search.Engine
}

// NewServer builds the MCP server with the three catalog tools registered.
func NewServer(engine *search.Engine, version string) *server.MCPServer {
	a := &Adapter{engine: engine}

	s := server.NewMCPServer(
		"Echomindr",
		version,
		server.WithToolCapabilities(false),
		server.WithInstructions(instructions),
	)

	s.AddTool(mcp.NewTool(
		"search_experience",
		mcp.WithDescription(
			"Search for real entrepreneurial experiences from 1150+ podcast moments. "+
				"Use this when a user asks for advice, examples, or experiences related to "+
				"building a startup. Instead of generic advice, it returns real decisions, "+
				"problems, lessons, and signals from founders who faced similar situations."),
		mcp.WithString("situation",
			mcp.Required(),
			mcp.Description("Describe the user's situation or what they're looking for in natural language. "+
				`Example: "B2B SaaS founder struggling to find first paying customers after 6 months"`),
		),
		mcp.WithString("stage",
			mcp.Description(`Optional filter - the startup stage: "idea", "mvp", "traction", "scale", or "mature"`),
		),
		mcp.WithString("type",
			mcp.Description(`Optional filter - the type of moment: "decision", "problem", "lesson", "signal", or "advice"`),
		),
		mcp.WithNumber("limit",
			mcp.Description("Number of results to return (1-10, default 5)"),
		),
	), a.handleSearchExperience)

	s.AddTool(mcp.NewTool(
		"get_experience_detail",
		mcp.WithDescription(
			"Get the full details of a specific entrepreneurial experience/moment. "+
				"Use this after search_experience to dive deeper into one founder's experience."),
		mcp.WithString("moment_id",
			mcp.Required(),
			mcp.Description(`The unique ID of the moment (returned by search_experience, shown as "Moment ID:")`),
		),
	), a.handleExperienceDetail)

	s.AddTool(mcp.NewTool(
		"find_similar_experiences",
		mcp.WithDescription(
			"Find experiences similar to a given moment, based on shared themes and tags. "+
				"Use this when a user wants more examples like a specific experience."),
		mcp.WithString("moment_id",
			mcp.Required(),
			mcp.Description("The ID of the moment to find similar experiences for"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Number of similar moments to return (1-5, default 3)"),
		),
	), a.handleSimilarExperiences)

	return s
}

// handleSearchExperience routes on the type filter: with one, the situation
// text goes straight to full-text search; without, it runs through keyword
// extraction and situation matching.
func (a *Adapter) handleSearchExperience(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	situation, err := req.RequireString("situation")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	stage := req.GetString("stage", "")
	typ := req.GetString("type", "")
	limit := clamp(req.GetInt("limit", search.DefaultLimit), 1, searchToolLimit)

	var (
		header   string
		matched  int
		rendered string
	)

	if typ != "" {
		ms, err := a.engine.Search(ctx, search.DirectParams{
			Query: situation,
			Stage: stage,
			Type:  typ,
			Limit: limit,
		})
		if err != nil {
			return toolError(err), nil
		}
		matched = len(ms)
		rendered = formatMoments(ms)
	} else {
		res, err := a.engine.Situation(ctx, search.SituationParams{
			Situation: situation,
			Stage:     stage,
			Limit:     limit,
		})
		if err != nil {
			return toolError(err), nil
		}
		if len(res.Keywords) > 0 {
			header = fmt.Sprintf("Search keywords extracted: %s\n\n", strings.Join(res.Keywords, ", "))
		}
		matched = len(res.Moments)
		rendered = formatMoments(res.Moments)
	}

	slog.Info("mcp search_experience", "type_filter", typ, "results", matched)
	return mcp.NewToolResultText(header + rendered), nil
}

func (a *Adapter) handleExperienceDetail(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("moment_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	m, err := a.engine.Lookup(ctx, id)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(formatMoment(m)), nil
}

func (a *Adapter) handleSimilarExperiences(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("moment_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit := clamp(req.GetInt("limit", defaultSimilar), 1, similarToolLimit)

	res, err := a.engine.Similar(ctx, id, limit)
	if err != nil {
		return toolError(err), nil
	}

	header := ""
	if len(res.SourceTags) > 0 {
		header = fmt.Sprintf("Finding experiences similar to tags: %s\n\n", strings.Join(res.SourceTags, ", "))
	}
	return mcp.NewToolResultText(header + formatMoments(res.Moments)), nil
}

// toolError folds engine errors into tool results; agents get the detail as
// text instead of a protocol failure.
func toolError(err error) *mcp.CallToolResult {
	if errors.Is(err, store.ErrNotFound) {
		return mcp.NewToolResultError("Error: no moment with that ID")
	}
	return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err))
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

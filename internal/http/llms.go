package http

import "net/http"

// llmsTxt is the machine-readable service description served at /llms.txt
// for AI agents discovering the API.
const llmsTxt = `# Echomindr API

> Structured entrepreneurial experiences extracted from 100+ top podcasts. Real decisions, problems, lessons, and signals from founders, searchable by AI agents.

## What is Echomindr?

Echomindr extracts and structures real entrepreneurial experiences from podcast interviews. Each "moment" is a concrete decision, problem, lesson, or signal described by a founder, with context, outcome, and timestamp.

## Use Cases

- An AI agent helping a founder can search for real experiences from similar situations
- A startup advisor can find concrete examples to illustrate advice
- A researcher can analyze patterns across hundreds of founder decisions

## Quick Start

Search for moments about pricing:
GET /search?q=pricing&limit=5

Describe a situation and get matching experiences:
POST /situation
{"situation": "early stage SaaS struggling with first customers", "limit": 5}

Look up one moment or find similar ones:
GET /moments/{id}
GET /similar/{id}

## Data

- 1150+ structured moments from 100+ podcast episodes
- Sources: How I Built This, Lenny's Podcast, 20 Minute VC, Acquired, Y Combinator, My First Million, Indie Hackers
- Each moment includes: summary, verbatim quote, decision, outcome, lesson, context, tags, timestamp with source link
`

func (s *Server) handleLLMSTxt(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(llmsTxt))
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/llms.txt", http.StatusTemporaryRedirect)
}

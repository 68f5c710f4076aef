package search

import (
	"context"
	"sort"

	"github.com/echomindr/echomindr/internal/moments"
)

// SimilarResult is the outcome of a similarity lookup. SourceTags echoes the
// tag set the ranking was computed from.
type SimilarResult struct {
	SourceID   string
	SourceTags []string
	Moments    []moments.Moment
}

// Similar ranks other moments by tag overlap with the given one. Candidates
// sort by shared-tag count descending, then same-stage-as-source first;
// residual ties keep scan order. A source moment without tags yields an
// empty result immediately; no candidate is inspected. A missing ID is
// store.ErrNotFound.
func (e *Engine) Similar(ctx context.Context, id string, limit int) (*SimilarResult, error) {
	src, err := e.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	res := &SimilarResult{SourceID: id, SourceTags: src.Tags}
	if len(src.Tags) == 0 {
		return res, nil
	}

	candidates, err := e.store.TaggedExcept(ctx, id)
	if err != nil {
		return nil, err
	}

	srcTags := make(map[string]struct{}, len(src.Tags))
	for _, tag := range src.Tags {
		srcTags[tag] = struct{}{}
	}

	type scored struct {
		overlap   int
		sameStage bool
		moment    moments.Moment
	}
	var ranked []scored
	for _, c := range candidates {
		overlap := 0
		seen := make(map[string]struct{}, len(c.Tags))
		for _, tag := range c.Tags {
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			if _, shared := srcTags[tag]; shared {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}
		ranked = append(ranked, scored{
			overlap:   overlap,
			sameStage: c.Stage == src.Stage,
			moment:    c,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].overlap != ranked[j].overlap {
			return ranked[i].overlap > ranked[j].overlap
		}
		return ranked[i].sameStage && !ranked[j].sameStage
	})

	n := clampLimit(limit, MaxLimit)
	for _, r := range ranked {
		if len(res.Moments) == n {
			break
		}
		res.Moments = append(res.Moments, r.moment)
	}
	return res, nil
}

// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

package recommend

import (
	"sort"

	"github.com/tomtom215/novusfeed/internal/models"
)

// CollabItem is one collaborative contribution to the blend, reduced
// to an article key and a score. Items without a key carry no article
// and are skipped; similarity entries fall in that category, so today
// they rank users in the collaborative fallback but add nothing to the
// hybrid mix.
type CollabItem struct {
	Key     string
	Score   float64
	Article models.CandidateArticle
}

// DecodeCollabRecords normalizes loosely shaped collaborative records
// into CollabItems. The article key is taken from "url" or
// "article_url"; the score from "similarity" or "score". Records
// missing both key fields are dropped.
func DecodeCollabRecords(records []map[string]any) []CollabItem {
	items := make([]CollabItem, 0, len(records))
	for _, rec := range records {
		key, _ := rec["url"].(string)
		if key == "" {
			key, _ = rec["article_url"].(string)
		}
		if key == "" {
			continue
		}

		score, ok := rec["similarity"].(float64)
		if !ok || score == 0 {
			if s, sok := rec["score"].(float64); sok {
				score = s
			}
		}

		items = append(items, CollabItem{Key: key, Score: score})
	}
	return items
}

// Blender combines content and collaborative scores into one ranked
// list.
type Blender struct {
	cfg Config
}

// NewBlender builds a blender.
func NewBlender(cfg Config) *Blender {
	return &Blender{cfg: cfg}
}

// Blend merges content scores (weighted by ContentWeight) with
// collaborative items (weighted by CollabWeight). Scores for the same
// article key are summed. The result is sorted highest first with a
// deterministic key tie-break.
//
// Returns ErrNothingToBlend when the merge produces no entries; the
// caller must not cache that outcome.
func (b *Blender) Blend(content map[string]models.ScoredArticle, collab []CollabItem) ([]Recommendation, error) {
	merged := make(map[string]Recommendation, len(content)+len(collab))

	for url, sa := range content {
		merged[url] = Recommendation{
			Key:     url,
			Article: sa.Article,
			Score:   sa.Score * b.cfg.ContentWeight,
		}
	}

	for _, item := range collab {
		if item.Key == "" {
			continue
		}
		weighted := item.Score * b.cfg.CollabWeight
		if existing, ok := merged[item.Key]; ok {
			existing.Score += weighted
			merged[item.Key] = existing
		} else {
			merged[item.Key] = Recommendation{
				Key:     item.Key,
				Article: item.Article,
				Score:   weighted,
			}
		}
	}

	if len(merged) == 0 {
		return nil, ErrNothingToBlend
	}

	blended := make([]Recommendation, 0, len(merged))
	for _, rec := range merged {
		blended = append(blended, rec)
	}
	sort.SliceStable(blended, func(i, j int) bool {
		if blended[i].Score != blended[j].Score {
			return blended[i].Score > blended[j].Score
		}
		return blended[i].Key < blended[j].Key
	})

	return blended, nil
}

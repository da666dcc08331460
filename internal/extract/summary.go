// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

package extract

import (
	"sort"
	"strings"
)

// Summarize produces an extractive summary of up to maxSentences
// sentences, chosen by cumulative word frequency and emitted in
// original document order.
func Summarize(text string, maxSentences int) string {
	if maxSentences <= 0 {
		return ""
	}

	sentences := splitSentences(text)
	if len(sentences) <= maxSentences {
		return strings.Join(sentences, " ")
	}

	// Word frequency over the whole document, stopwords excluded.
	freq := make(map[string]float64)
	for _, token := range tokenize(text) {
		if _, stop := stopwords[token]; stop {
			continue
		}
		freq[token]++
	}

	type ranked struct {
		index int
		score float64
	}
	scores := make([]ranked, len(sentences))
	for i, sentence := range sentences {
		var score float64
		tokens := tokenize(sentence)
		for _, token := range tokens {
			score += freq[token]
		}
		if len(tokens) > 0 {
			score /= float64(len(tokens))
		}
		scores[i] = ranked{index: i, score: score}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})
	picked := scores[:maxSentences]
	sort.Slice(picked, func(i, j int) bool {
		return picked[i].index < picked[j].index
	})

	parts := make([]string, len(picked))
	for i, p := range picked {
		parts[i] = sentences[p.index]
	}
	return strings.Join(parts, " ")
}

// splitSentences breaks text on terminal punctuation. Good enough for
// news prose; not a linguistic segmenter.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

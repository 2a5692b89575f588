package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"chat-sentry/internal/storage"
)

// DailyStats summarizes one day of logged activity.
type DailyStats struct {
	Date           string                 `json:"date"`
	TotalMessages  int                    `json:"total_messages"`
	Suspicious     int                    `json:"suspicious"`
	UniqueAuthors  int                    `json:"unique_authors"`
	AuthorStats    map[string]AuthorStats `json:"author_stats"`
	ChannelCounts  map[string]int         `json:"channel_counts"`
}

// AuthorStats counts one author's activity.
type AuthorStats struct {
	Author     string `json:"author"`
	Messages   int    `json:"messages"`
	Suspicious int    `json:"suspicious"`
}

// Analyze reduces the record log to stats for the day containing
// targetDate. Pure: no clock, no I/O.
func Analyze(records []storage.Record, targetDate time.Time) *DailyStats {
	startOfDay := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, targetDate.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	stats := &DailyStats{
		Date:          startOfDay.Format("2006-01-02"),
		AuthorStats:   make(map[string]AuthorStats),
		ChannelCounts: make(map[string]int),
	}

	for _, rec := range records {
		if rec.Timestamp.Before(startOfDay) || !rec.Timestamp.Before(endOfDay) {
			continue
		}
		stats.TotalMessages++
		stats.ChannelCounts[rec.Channel]++

		as := stats.AuthorStats[rec.Author]
		as.Author = rec.Author
		as.Messages++
		if rec.IsSuspicious {
			stats.Suspicious++
			as.Suspicious++
		}
		stats.AuthorStats[rec.Author] = as
	}

	stats.UniqueAuthors = len(stats.AuthorStats)
	return stats
}

// Format renders the digest as plain text for the admin chat. Authors
// with suspicious messages come first, then by volume.
func Format(stats *DailyStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Activity digest for %s\n", stats.Date)
	fmt.Fprintf(&b, "Messages: %d (suspicious: %d), authors: %d\n", stats.TotalMessages, stats.Suspicious, stats.UniqueAuthors)

	authors := make([]AuthorStats, 0, len(stats.AuthorStats))
	for _, as := range stats.AuthorStats {
		authors = append(authors, as)
	}
	sort.Slice(authors, func(i, j int) bool {
		if authors[i].Suspicious != authors[j].Suspicious {
			return authors[i].Suspicious > authors[j].Suspicious
		}
		if authors[i].Messages != authors[j].Messages {
			return authors[i].Messages > authors[j].Messages
		}
		return authors[i].Author < authors[j].Author
	})
	for _, as := range authors {
		marker := ""
		if as.Suspicious > 0 {
			marker = " ⚠️"
		}
		fmt.Fprintf(&b, "- %s: %d messages, %d suspicious%s\n", as.Author, as.Messages, as.Suspicious, marker)
	}
	return b.String()
}

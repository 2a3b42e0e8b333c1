// Package reports aggregates a user's journal entries into trend
// reports: overall averages, weekly averages, mood trend points, and
// the sleep/mood correlation.
package reports

import (
	"math"
	"sort"
	"time"

	"github.com/wellpulse/wellpulse/internal/entries"
)

// Trend direction labels for metric movements.
const (
	TrendUp      = "up"
	TrendDown    = "down"
	TrendNeutral = "neutral"
)

// trendDeadBand is the minimum average movement considered a real trend.
const trendDeadBand = 0.5

// MetricAverages holds the per-metric mean, rounded to one decimal.
type MetricAverages struct {
	Sleep      float64 `json:"sleep"`
	Stress     float64 `json:"stress"`
	Symptoms   float64 `json:"symptoms"`
	Mood       float64 `json:"mood"`
	Engagement float64 `json:"engagement"`
}

// MetricTrends labels each metric's recent direction.
type MetricTrends struct {
	Sleep      string `json:"sleep"`
	Stress     string `json:"stress"`
	Symptoms   string `json:"symptoms"`
	Mood       string `json:"mood"`
	Engagement string `json:"engagement"`
}

// Summary is the dashboard stats overview.
type Summary struct {
	TotalEntries int            `json:"totalEntries"`
	Averages     MetricAverages `json:"averages"`
	Trends       MetricTrends   `json:"trends"`
}

// WeekAverages holds one week's metric means. Week is the Sunday the
// week starts on, as a calendar date.
type WeekAverages struct {
	Week       string  `json:"week"`
	Sleep      float64 `json:"sleep"`
	Stress     float64 `json:"stress"`
	Symptoms   float64 `json:"symptoms"`
	Mood       float64 `json:"mood"`
	Engagement float64 `json:"engagement"`
}

// TrendPoint is one day's mood alongside the metrics that drive it.
type TrendPoint struct {
	Date   time.Time `json:"date"`
	Mood   int       `json:"mood"`
	Sleep  float64   `json:"sleep"`
	Stress int       `json:"stress"`
}

// ScatterPoint pairs one entry's sleep with its mood.
type ScatterPoint struct {
	Sleep float64   `json:"sleep"`
	Mood  int       `json:"mood"`
	Date  time.Time `json:"date"`
}

// Correlation is the sleep/mood scatter plus its Pearson coefficient.
// Coefficient is 0 when fewer than two points exist or either series is
// constant.
type Correlation struct {
	Points      []ScatterPoint `json:"points"`
	Coefficient float64        `json:"coefficient"`
}

type metric struct {
	name string
	pick func(entries.Entry) float64
}

var metrics = []metric{
	{"sleep", func(e entries.Entry) float64 { return e.Sleep }},
	{"stress", func(e entries.Entry) float64 { return float64(e.Stress) }},
	{"symptoms", func(e entries.Entry) float64 { return float64(e.Symptoms) }},
	{"mood", func(e entries.Entry) float64 { return float64(e.Mood) }},
	{"engagement", func(e entries.Entry) float64 { return float64(e.Engagement) }},
}

// ComputeSummary aggregates averages and recent trend directions. The
// input is expected newest-first, as the persistence layer returns it.
func ComputeSummary(list []entries.Entry) Summary {
	summary := Summary{TotalEntries: len(list)}

	values := make(map[string]float64, len(metrics))
	trends := make(map[string]string, len(metrics))
	for _, m := range metrics {
		values[m.name] = average(list, m.pick)
		trends[m.name] = recentTrend(list, m.pick)
	}

	summary.Averages = MetricAverages{
		Sleep:      values["sleep"],
		Stress:     values["stress"],
		Symptoms:   values["symptoms"],
		Mood:       values["mood"],
		Engagement: values["engagement"],
	}
	summary.Trends = MetricTrends{
		Sleep:      trends["sleep"],
		Stress:     trends["stress"],
		Symptoms:   trends["symptoms"],
		Mood:       trends["mood"],
		Engagement: trends["engagement"],
	}
	return summary
}

// ComputeWeekly buckets entries into calendar weeks starting Sunday and
// averages each metric per week, oldest week first.
func ComputeWeekly(list []entries.Entry) []WeekAverages {
	buckets := make(map[string][]entries.Entry)
	for _, e := range list {
		key := weekStart(e.Date).Format("2006-01-02")
		buckets[key] = append(buckets[key], e)
	}

	weeks := make([]WeekAverages, 0, len(buckets))
	for key, group := range buckets {
		weeks = append(weeks, WeekAverages{
			Week:       key,
			Sleep:      average(group, func(e entries.Entry) float64 { return e.Sleep }),
			Stress:     average(group, func(e entries.Entry) float64 { return float64(e.Stress) }),
			Symptoms:   average(group, func(e entries.Entry) float64 { return float64(e.Symptoms) }),
			Mood:       average(group, func(e entries.Entry) float64 { return float64(e.Mood) }),
			Engagement: average(group, func(e entries.Entry) float64 { return float64(e.Engagement) }),
		})
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Week < weeks[j].Week })
	return weeks
}

// ComputeMoodTrend returns per-entry trend points in ascending date
// order.
func ComputeMoodTrend(list []entries.Entry) []TrendPoint {
	points := make([]TrendPoint, 0, len(list))
	for _, e := range list {
		points = append(points, TrendPoint{Date: e.Date, Mood: e.Mood, Sleep: e.Sleep, Stress: e.Stress})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}

// ComputeSleepMood pairs sleep with mood per entry and computes the
// Pearson correlation coefficient over the pairs.
func ComputeSleepMood(list []entries.Entry) Correlation {
	corr := Correlation{Points: make([]ScatterPoint, 0, len(list))}
	for _, e := range list {
		corr.Points = append(corr.Points, ScatterPoint{Sleep: e.Sleep, Mood: e.Mood, Date: e.Date})
	}
	corr.Coefficient = pearson(corr.Points)
	return corr
}

// average computes the mean of one metric, rounded to one decimal.
// Empty input averages to 0.
func average(list []entries.Entry, pick func(entries.Entry) float64) float64 {
	if len(list) == 0 {
		return 0
	}
	var sum float64
	for _, e := range list {
		sum += pick(e)
	}
	return round1(sum / float64(len(list)))
}

// recentTrend compares the mean of the three newest entries with the
// three before them; movement inside the dead band counts as neutral.
func recentTrend(list []entries.Entry, pick func(entries.Entry) float64) string {
	if len(list) < 2 {
		return TrendNeutral
	}
	recent := list[:min(3, len(list))]
	older := list[min(3, len(list)):min(6, len(list))]
	if len(older) == 0 {
		return TrendNeutral
	}

	diff := mean(recent, pick) - mean(older, pick)
	if math.Abs(diff) < trendDeadBand {
		return TrendNeutral
	}
	if diff > 0 {
		return TrendUp
	}
	return TrendDown
}

func mean(list []entries.Entry, pick func(entries.Entry) float64) float64 {
	var sum float64
	for _, e := range list {
		sum += pick(e)
	}
	return sum / float64(len(list))
}

// weekStart truncates to the Sunday the date's week begins on.
func weekStart(t time.Time) time.Time {
	t = t.UTC()
	start := t.AddDate(0, 0, -int(t.Weekday()))
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
}

func pearson(points []ScatterPoint) float64 {
	n := float64(len(points))
	if n < 2 {
		return 0
	}
	var sumX, sumY float64
	for _, p := range points {
		sumX += p.Sleep
		sumY += float64(p.Mood)
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for _, p := range points {
		dx := p.Sleep - meanX
		dy := float64(p.Mood) - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/uaclassify/uaclassify/internal/clslog"
)

type Summary struct {
	Total         int             `json:"total"`
	AgentMatched  int             `json:"agent_matched"`
	OSMatched     int             `json:"os_matched"`
	DeviceMatched int             `json:"device_matched"`
	Start         time.Time       `json:"start"`
	End           time.Time       `json:"end"`
	TopAgents     []CountItem     `json:"top_agents"`
	TopOS         []CountItem     `json:"top_os"`
	TopDevices    []CountItem     `json:"top_devices"`
	Duration      DurationSummary `json:"duration_us"`
}

type CountItem struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// DurationSummary holds parse duration percentiles in microseconds.
type DurationSummary struct {
	P50 float64 `json:"p50"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
}

type Reader struct {
	Since time.Time
}

func (r *Reader) Read(path string) ([]clslog.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var records []clslog.Record
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec clslog.Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, err
		}
		if !r.Since.IsZero() && rec.Timestamp.Before(r.Since) {
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func Summarize(records []clslog.Record) Summary {
	var summary Summary
	if len(records) == 0 {
		return summary
	}

	summary.Start = records[0].Timestamp
	summary.End = records[0].Timestamp

	agentCounts := map[string]int{}
	osCounts := map[string]int{}
	deviceCounts := map[string]int{}
	durations := make([]int64, 0, len(records))

	for _, rec := range records {
		summary.Total++
		if rec.Timestamp.Before(summary.Start) {
			summary.Start = rec.Timestamp
		}
		if rec.Timestamp.After(summary.End) {
			summary.End = rec.Timestamp
		}

		if rec.Agent.Matched {
			summary.AgentMatched++
			agentCounts[rec.Agent.Family]++
		}
		if rec.OS.Matched {
			summary.OSMatched++
			osCounts[rec.OS.Family]++
		}
		if rec.Device.Matched {
			summary.DeviceMatched++
			deviceCounts[rec.Device.Family]++
		}

		durations = append(durations, rec.DurationUS)
	}

	summary.TopAgents = topCounts(agentCounts, 5)
	summary.TopOS = topCounts(osCounts, 5)
	summary.TopDevices = topCounts(deviceCounts, 5)
	summary.Duration = durationSummary(durations)

	return summary
}

func topCounts(counts map[string]int, n int) []CountItem {
	items := make([]CountItem, 0, len(counts))
	for key, count := range counts {
		items = append(items, CountItem{Key: key, Count: count})
	}
	if len(items) == 0 {
		return nil
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Key < items[j].Key
		}
		return items[i].Count > items[j].Count
	})

	if len(items) > n {
		items = items[:n]
	}
	return items
}

func durationSummary(values []int64) DurationSummary {
	if len(values) == 0 {
		return DurationSummary{}
	}
	sorted := make([]int64, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return DurationSummary{
		P50: percentile(sorted, 0.50),
		P95: percentile(sorted, 0.95),
		P99: percentile(sorted, 0.99),
	}
}

func percentile(values []int64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	idx := int(float64(len(values)-1) * p)
	if idx < 0 {
		idx = 0
	}
	if idx >= len(values) {
		idx = len(values) - 1
	}
	return float64(values[idx])
}

func RenderText(summary Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total: %d\n", summary.Total)
	fmt.Fprintf(&b, "Agent matched: %d\n", summary.AgentMatched)
	fmt.Fprintf(&b, "OS matched: %d\n", summary.OSMatched)
	fmt.Fprintf(&b, "Device matched: %d\n", summary.DeviceMatched)
	fmt.Fprintf(&b, "Duration p50/p95/p99 (us): %.0f/%.0f/%.0f\n", summary.Duration.P50, summary.Duration.P95, summary.Duration.P99)

	writeCounts(&b, "Top agent families", summary.TopAgents)
	writeCounts(&b, "Top OS families", summary.TopOS)
	writeCounts(&b, "Top device families", summary.TopDevices)

	return b.String()
}

func RenderMarkdown(summary Summary) string {
	var b strings.Builder
	b.WriteString("# Classification Report\n\n")
	b.WriteString("## Totals\n\n")
	fmt.Fprintf(&b, "- Total: %d\n", summary.Total)
	fmt.Fprintf(&b, "- Agent matched: %d\n", summary.AgentMatched)
	fmt.Fprintf(&b, "- OS matched: %d\n", summary.OSMatched)
	fmt.Fprintf(&b, "- Device matched: %d\n", summary.DeviceMatched)
	fmt.Fprintf(&b, "- Duration p50/p95/p99 (us): %.0f/%.0f/%.0f\n\n", summary.Duration.P50, summary.Duration.P95, summary.Duration.P99)

	writeCountsMarkdown(&b, "Top agent families", summary.TopAgents)
	writeCountsMarkdown(&b, "Top OS families", summary.TopOS)
	writeCountsMarkdown(&b, "Top device families", summary.TopDevices)

	return b.String()
}

func RenderJSON(summary Summary) ([]byte, error) {
	return json.MarshalIndent(summary, "", "  ")
}

func writeCounts(b *strings.Builder, title string, items []CountItem) {
	if len(items) == 0 {
		fmt.Fprintf(b, "%s: none\n", title)
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s: %d\n", item.Key, item.Count)
	}
}

func writeCountsMarkdown(b *strings.Builder, title string, items []CountItem) {
	b.WriteString("## ")
	b.WriteString(title)
	b.WriteString("\n\n")
	if len(items) == 0 {
		b.WriteString("- none\n\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s: %d\n", item.Key, item.Count)
	}
	b.WriteString("\n")
}

func WriteOutput(path string, content []byte) error {
	if path == "" {
		_, err := io.Copy(os.Stdout, bytes.NewReader(content))
		return err
	}
	return os.WriteFile(path, content, 0o600)
}

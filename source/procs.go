package source

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/shirou/gopsutil/v3/process"
)

// Processes snapshots up to limit running processes, ordered by pid.
// Processes that vanish or deny access mid-scan keep whatever fields could
// be read.
func Processes(ctx context.Context, limit int) ([]Row, error) {
	if limit <= 0 {
		limit = DefaultCount
	}

	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}
	sort.Slice(procs, func(i, j int) bool { return procs[i].Pid < procs[j].Pid })
	if len(procs) > limit {
		procs = procs[:limit]
	}

	rows := make([]Row, 0, len(procs))
	for _, p := range procs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows = append(rows, processRow(ctx, p))
	}
	return rows, nil
}

func processRow(ctx context.Context, p *process.Process) Row {
	name, _ := p.NameWithContext(ctx)
	if name == "" {
		name = "?"
	}
	cmdline, _ := p.CmdlineWithContext(ctx)
	cpuPct, _ := p.CPUPercentWithContext(ctx)
	memInfo, _ := p.MemoryInfoWithContext(ctx)

	var rss uint64
	if memInfo != nil {
		rss = memInfo.RSS
	}

	body := fmt.Sprintf("cpu %.1f%% · rss %s", cpuPct, formatBytes(rss))
	if cmdline != "" {
		body = "`" + cmdline + "`\n\n" + body
	}

	pid := strconv.Itoa(int(p.Pid))
	return Row{
		Key:     pid,
		Heading: pid + " " + name,
		Body:    body,
	}
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

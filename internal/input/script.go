package input

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Scheduled is a command to push on a given tick of a scripted run.
type Scheduled struct {
	Tick    int
	Command Command
}

// ParseScript reads one command per line in the form "<tick> <kind> <a> <b>", e.g. "30 click 1200 360"
// or "0 resize 800 600". Blank lines and lines starting with '#' are skipped. The result is ordered by
// tick, keeping file order within a tick.
func ParseScript(r io.Reader) ([]Scheduled, error) {
	var out []Scheduled
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		out = append(out, s)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Tick < out[j].Tick })
	return out, nil
}

// ParseLine parses a single script line.
func ParseLine(line string) (Scheduled, error) {
	f := strings.Fields(line)
	if len(f) != 4 {
		return Scheduled{}, fmt.Errorf("want \"<tick> <kind> <a> <b>\", got %q", line)
	}
	tick, err := strconv.Atoi(f[0])
	if err != nil || tick < 0 {
		return Scheduled{}, fmt.Errorf("bad tick %q", f[0])
	}
	a, err := strconv.ParseFloat(f[2], 32)
	if err != nil {
		return Scheduled{}, fmt.Errorf("bad argument %q: %w", f[2], err)
	}
	b, err := strconv.ParseFloat(f[3], 32)
	if err != nil {
		return Scheduled{}, fmt.Errorf("bad argument %q: %w", f[3], err)
	}
	var cmd Command
	switch Kind(f[1]) {
	case KindClick:
		cmd = Click{X: float32(a), Y: float32(b)}
	case KindPointerMove:
		cmd = PointerMove{X: float32(a), Y: float32(b)}
	case KindResize:
		cmd = Resize{Width: int(a), Height: int(b)}
	default:
		return Scheduled{}, fmt.Errorf("unknown command: %s", f[1])
	}
	return Scheduled{Tick: tick, Command: cmd}, nil
}

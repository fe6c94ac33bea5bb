// Package state persists per-channel scan positions across invocations.
//
// The on-disk format is one line per channel that has produced a mark:
//
//	channelId lastPublishDate [displayName]
//
// where displayName is the remainder of the line and may contain spaces.
// Channels that have never produced a mark are omitted.
package state

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Channel holds the persisted position for one channel.
type Channel struct {
	ID            string
	LastPublished string // fixed-width ISO-8601 UTC, empty if never polled
	Name          string // cached display name, empty if never resolved
}

// Load reads the state file at path. A missing file is not an error and
// yields an empty map; any other read failure is fatal to the run.
func Load(path string) (map[string]Channel, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]Channel{}, nil
		}
		return nil, fmt.Errorf("read state: %w", err)
	}
	defer func() { _ = f.Close() }()

	channels := map[string]Channel{}

	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if line == "" {
			continue
		}

		fields := strings.SplitN(line, " ", 3)
		if len(fields) < 2 {
			return nil, fmt.Errorf("read state: line %d: want at least 2 fields, got %q", lineNo, line)
		}

		ch := Channel{ID: fields[0], LastPublished: fields[1]}
		if len(fields) == 3 {
			ch.Name = fields[2]
		}
		channels[ch.ID] = ch
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}

	return channels, nil
}

// Save rewrites the state file in full, one line per channel with a mark,
// in the given order. The file is written to a temp file in the same
// directory and renamed over the original so a crash mid-write cannot
// leave a truncated state behind.
func Save(path string, order []string, channels map[string]Channel) error {
	var b strings.Builder
	for _, id := range order {
		ch, ok := channels[id]
		if !ok || ch.LastPublished == "" {
			continue
		}
		b.WriteString(ch.ID)
		b.WriteByte(' ')
		b.WriteString(ch.LastPublished)
		if ch.Name != "" {
			b.WriteByte(' ')
			b.WriteString(ch.Name)
		}
		b.WriteByte('\n')
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(b.String()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write state: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

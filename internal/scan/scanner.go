// Package scan walks configured channels in order, emits one line per new
// activity item, and advances each channel's high-water mark.
package scan

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"tubewatch/internal/record"
	"tubewatch/internal/state"
	"tubewatch/internal/youtube"
)

// API is the slice of the YouTube client the scanner needs.
type API interface {
	Channels(ctx context.Context, ids []string, pageSize int) ([]youtube.ChannelInfo, error)
	Activities(ctx context.Context, channelID, publishedAfter string, pageSize int, each func(youtube.Activity) error) error
}

// Scanner drives one full scan pass over the configured channels.
type Scanner struct {
	Client   API
	Out      io.Writer
	PageSize int
}

// ResolveNames fills in missing display names with a single batched query
// for all unresolved ids. It is a no-op when every channel already has a
// cached name. A fetch failure here is fatal to the whole run.
func (s *Scanner) ResolveNames(ctx context.Context, channels map[string]state.Channel, order []string) error {
	var missing []string
	for _, id := range order {
		if channels[id].Name == "" {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	infos, err := s.Client.Channels(ctx, missing, s.PageSize)
	if err != nil {
		return fmt.Errorf("resolve channel names: %w", err)
	}

	resolved := make(map[string]bool, len(infos))
	for _, info := range infos {
		ch := channels[info.ID]
		ch.ID = info.ID
		ch.Name = info.Title
		channels[info.ID] = ch
		resolved[info.ID] = true
	}

	for _, id := range missing {
		if !resolved[id] {
			logrus.WithField("channel", id).Warn("display name not resolved, falling back to id")
		}
	}
	return nil
}

// Scan processes every channel in order and returns the number of emitted
// records. A channel whose pages cannot all be fetched stops early but keeps
// the items already gathered, and does not stop the remaining channels.
func (s *Scanner) Scan(ctx context.Context, channels map[string]state.Channel, order []string) int {
	total := 0
	for _, id := range order {
		ch := channels[id]
		ch.ID = id

		label := ch.Name
		if label == "" {
			label = id
		}

		emitted, newMark, err := s.scanChannel(ctx, id, label, ch.LastPublished)
		total += emitted
		ch.LastPublished = newMark
		channels[id] = ch

		if err != nil {
			logrus.WithFields(logrus.Fields{
				"channel": id,
				"emitted": emitted,
			}).Warnf("activity fetch failed, remaining pages skipped: %v", err)
		}
	}
	return total
}

// scanChannel emits every item newer than mark and returns the emitted
// count and the new mark. An item published exactly at mark was already
// reported by a previous run and is suppressed. The mark advances by
// max-comparison per item, so out-of-order pages converge to the same
// result. Lexicographic comparison is valid because the timestamps are
// fixed-width ISO-8601 UTC.
func (s *Scanner) scanChannel(ctx context.Context, id, label, mark string) (int, string, error) {
	// Marks are kept at second resolution. Item timestamps are reduced the
	// same way before any comparison so a fractional publishedAt from the
	// server still matches the persisted boundary mark.
	mark = record.NormalizeTimestamp(mark)
	newMark := mark
	emitted := 0

	err := s.Client.Activities(ctx, id, mark, s.PageSize, func(a youtube.Activity) error {
		ts := record.NormalizeTimestamp(a.PublishedAt)
		if ts == mark {
			return nil
		}

		rec := record.Record{
			Channel:   label,
			Published: ts,
			Type:      a.Type,
			Detail:    resourceDetail(a),
			Title:     a.Title,
		}
		fmt.Fprintln(s.Out, rec.Line())
		emitted++

		if ts > newMark {
			newMark = ts
		}
		return nil
	})

	return emitted, newMark, err
}

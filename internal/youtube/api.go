package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ChannelInfo is one resolved channel from channels.list.
type ChannelInfo struct {
	ID    string
	Title string
}

// Activity is one item from a channel's activity stream. Details holds the
// raw contentDetails entries keyed by their field name, which for known
// activity kinds matches the snippet type.
type Activity struct {
	ChannelID   string
	PublishedAt string
	Title       string
	Type        string
	Details     map[string]json.RawMessage
}

// ResourceRef is the shape shared by contentDetails entries: uploads carry a
// bare videoId, most other kinds carry a resourceId reference, and playlist
// items additionally carry the playlist id.
type ResourceRef struct {
	VideoID    string `json:"videoId"`
	PlaylistID string `json:"playlistId"`
	ResourceID struct {
		Kind    string `json:"kind"`
		VideoID string `json:"videoId"`
	} `json:"resourceId"`
}

// KindVideo is the resourceId kind identifying a video reference.
const KindVideo = "youtube#video"

type channelItem struct {
	ID      string `json:"id"`
	Snippet struct {
		Title string `json:"title"`
	} `json:"snippet"`
}

type activityItem struct {
	Snippet struct {
		ChannelID   string `json:"channelId"`
		PublishedAt string `json:"publishedAt"`
		Title       string `json:"title"`
		Type        string `json:"type"`
	} `json:"snippet"`
	ContentDetails map[string]json.RawMessage `json:"contentDetails"`
}

// Channels resolves metadata for all ids in one batched (paginated) query.
// Ids missing from the response are simply absent from the result.
func (c *Client) Channels(ctx context.Context, ids []string, pageSize int) ([]ChannelInfo, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("id", strings.Join(ids, ","))
	params.Set("maxResults", strconv.Itoa(pageSize))

	var infos []ChannelInfo
	err := c.fetchPages(ctx, "channels", params, func(items []json.RawMessage) error {
		for _, raw := range items {
			var it channelItem
			if err := json.Unmarshal(raw, &it); err != nil {
				return fmt.Errorf("decode channel item: %w", err)
			}
			infos = append(infos, ChannelInfo{ID: it.ID, Title: it.Snippet.Title})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return infos, nil
}

// Activities streams the activity items of one channel to each, in the
// order the server returns them. publishedAfter, when non-empty, asks the
// server to exclude older items; the boundary item itself may still come
// back and is the caller's concern. A page failure after delivering earlier
// pages returns that error; everything already passed to each stands.
func (c *Client) Activities(ctx context.Context, channelID, publishedAfter string, pageSize int, each func(Activity) error) error {
	params := url.Values{}
	params.Set("part", "snippet,contentDetails")
	params.Set("channelId", channelID)
	params.Set("maxResults", strconv.Itoa(pageSize))
	if publishedAfter != "" {
		params.Set("publishedAfter", publishedAfter)
	}

	return c.fetchPages(ctx, "activities", params, func(items []json.RawMessage) error {
		for _, raw := range items {
			var it activityItem
			if err := json.Unmarshal(raw, &it); err != nil {
				return fmt.Errorf("decode activity item: %w", err)
			}
			a := Activity{
				ChannelID:   it.Snippet.ChannelID,
				PublishedAt: it.Snippet.PublishedAt,
				Title:       it.Snippet.Title,
				Type:        it.Snippet.Type,
				Details:     it.ContentDetails,
			}
			if err := each(a); err != nil {
				return err
			}
		}
		return nil
	})
}

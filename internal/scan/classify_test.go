package scan

import (
	"encoding/json"
	"testing"

	"tubewatch/internal/youtube"
)

func activityWith(t *testing.T, typ string, details map[string]any) youtube.Activity {
	t.Helper()
	raw := map[string]json.RawMessage{}
	for k, v := range details {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal detail: %v", err)
		}
		raw[k] = b
	}
	return youtube.Activity{Type: typ, Details: raw}
}

func TestResourceDetailUpload(t *testing.T) {
	a := activityWith(t, "upload", map[string]any{
		"upload": map[string]any{"videoId": "abc123"},
	})
	got := resourceDetail(a)
	if got != "https://youtu.be/abc123" {
		t.Errorf("got %q, want URL ending in /abc123", got)
	}
}

func TestResourceDetailVideoBearingKinds(t *testing.T) {
	for _, typ := range []string{"bulletin", "like", "favorite", "comment", "recommendation", "social"} {
		t.Run(typ, func(t *testing.T) {
			a := activityWith(t, typ, map[string]any{
				typ: map[string]any{
					"resourceId": map[string]any{"kind": "youtube#video", "videoId": "xyz"},
				},
			})
			got := resourceDetail(a)
			if got != "https://youtu.be/xyz" {
				t.Errorf("got %q, want URL ending in /xyz", got)
			}
		})
	}
}

func TestResourceDetailPlaylistItem(t *testing.T) {
	a := activityWith(t, "playlistItem", map[string]any{
		"playlistItem": map[string]any{
			"resourceId": map[string]any{"kind": "youtube#video", "videoId": "v1"},
			"playlistId": "PL42",
		},
	})
	got := resourceDetail(a)
	if got != "https://www.youtube.com/playlist?list=PL42" {
		t.Errorf("got %q, want playlist URL", got)
	}
}

func TestResourceDetailNonVideoFallsBackToRaw(t *testing.T) {
	a := activityWith(t, "comment", map[string]any{
		"comment": map[string]any{
			"resourceId": map[string]any{"kind": "youtube#channel", "channelId": "UC9"},
		},
	})
	got := resourceDetail(a)

	// Raw serialized nested object, not a URL.
	var parsed map[string]any
	if err := json.Unmarshal([]byte(got), &parsed); err != nil {
		t.Fatalf("detail %q is not JSON: %v", got, err)
	}
	if _, ok := parsed["resourceId"]; !ok {
		t.Errorf("detail %q lost the nested resourceId", got)
	}
}

func TestResourceDetailUnknownType(t *testing.T) {
	a := activityWith(t, "channelItem", map[string]any{
		"channelItem": map[string]any{"resourceId": map[string]any{"kind": "youtube#channel"}},
	})
	got := resourceDetail(a)
	var parsed map[string]any
	if err := json.Unmarshal([]byte(got), &parsed); err != nil {
		t.Fatalf("detail %q is not JSON: %v", got, err)
	}
}

func TestResourceDetailNoContentDetails(t *testing.T) {
	a := youtube.Activity{Type: "upload"}
	if got := resourceDetail(a); got != "{}" {
		t.Errorf("got %q, want {}", got)
	}
}

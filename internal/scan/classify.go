package scan

import (
	"bytes"
	"encoding/json"

	"tubewatch/internal/youtube"
)

// Activity types whose contentDetails entry references a target resource by
// resourceId. Uploads and playlist items are handled separately.
var resourceKinds = map[string]bool{
	"bulletin":       true,
	"like":           true,
	"favorite":       true,
	"comment":        true,
	"recommendation": true,
	"social":         true,
}

// resourceDetail derives the human-usable representation of an activity's
// target: a video URL for video-bearing kinds, a playlist URL for playlist
// items, and otherwise the raw contentDetails entry as compact JSON.
// Unknown or unexpected shapes must still produce an inspectable detail
// rather than being dropped.
func resourceDetail(a youtube.Activity) string {
	var ref youtube.ResourceRef
	raw, ok := a.Details[a.Type]
	if ok {
		if err := json.Unmarshal(raw, &ref); err != nil {
			return rawDetail(a)
		}
	}

	switch {
	case a.Type == "upload" && ref.VideoID != "":
		return videoURL(ref.VideoID)
	case resourceKinds[a.Type] && ref.ResourceID.Kind == youtube.KindVideo:
		return videoURL(ref.ResourceID.VideoID)
	case a.Type == "playlistItem" && ref.ResourceID.Kind == youtube.KindVideo:
		return playlistURL(ref.PlaylistID)
	}
	return rawDetail(a)
}

// rawDetail serializes the contentDetails entry for the activity's type as
// compact JSON, or the whole contentDetails object when no entry matches.
func rawDetail(a youtube.Activity) string {
	raw, ok := a.Details[a.Type]
	if !ok {
		if len(a.Details) == 0 {
			return "{}"
		}
		b, err := json.Marshal(a.Details)
		if err != nil {
			return "{}"
		}
		return string(b)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

func videoURL(id string) string {
	return "https://youtu.be/" + id
}

func playlistURL(id string) string {
	return "https://www.youtube.com/playlist?list=" + id
}

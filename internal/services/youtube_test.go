package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

// offlineYouTube has no player client, so metadata never leaves the test
// server.
func offlineYouTube(t *testing.T, server *httptest.Server) *YouTubeService {
	t.Helper()
	s, err := NewYouTubeService(context.Background(), "", quietLogger())
	require.NoError(t, err)
	s.ytClient = nil
	s.httpClient = server.Client()
	s.oembedURL = server.URL + "/oembed"
	s.watchURL = server.URL + "/watch"
	return s
}

func TestExtractCaptionURL(t *testing.T) {
	page := `var ytInitialPlayerResponse = {"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[{"baseUrl":"https:\/\/www.youtube.com\/api\/timedtext?v=abc&lang=en","name":{"simpleText":"English"}}],"audioTracks":[]}}};`
	got, err := extractCaptionURL(page)
	require.NoError(t, err)
	assert.Equal(t, "https://www.youtube.com/api/timedtext?v=abc&lang=en", got)

	_, err = extractCaptionURL("<html>no captions</html>")
	assert.Error(t, err)

	_, err = extractCaptionURL(`"captionTracks":[{"name":"x"}],"`)
	assert.Error(t, err)
}

func TestParseCaptionsXML(t *testing.T) {
	data := []byte(`<?xml version="1.0" encoding="utf-8" ?><transcript>
<text start="0.5" dur="2">Hello   and
welcome</text>
<text start="2.5" dur="1"></text>
<text start="3.5" dur="2">it&amp;#39;s Ohm&amp;#39;s law</text>
</transcript>`)
	got, err := parseCaptionsXML(data)
	require.NoError(t, err)
	assert.Equal(t, "Hello and welcome it's Ohm's law", got)

	_, err = parseCaptionsXML([]byte(`<transcript></transcript>`))
	assert.Error(t, err)

	_, err = parseCaptionsXML([]byte(`not xml`))
	assert.Error(t, err)
}

func TestTranscriptViaTimedText(t *testing.T) {
	mux := http.NewServeMux()
	var server *httptest.Server
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "abc", r.URL.Query().Get("v"))
		fmt.Fprintf(w, `{"captionTracks":[{"baseUrl":"%s\/captions?v=abc&lang=en"}],"x":1}`, server.URL)
	})
	mux.HandleFunc("/captions", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "en", r.URL.Query().Get("lang"))
		fmt.Fprint(w, `<transcript><text start="0" dur="1">V = I R</text></transcript>`)
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	s := offlineYouTube(t, server)
	got, err := s.transcriptViaTimedText(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "V = I R", got)
}

func TestTranscriptFallsBackToTimedText(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/watch" {
			fmt.Fprintf(w, `{"captionTracks":[{"baseUrl":"%s\/captions?lang=en"}],"x":1}`, server.URL)
			return
		}
		fmt.Fprint(w, `<transcript><text start="0" dur="1">Ohm&#39;s   law</text></transcript>`)
	}))
	defer server.Close()

	s := offlineYouTube(t, server)
	s.transcriptAPI = nil
	assert.Equal(t, "Ohm's law", s.Transcript(context.Background(), "abc"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Empty(t, s.Transcript(ctx, "abc"))
}

func TestMetadataFromOEmbed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oembed", r.URL.Path)
		assert.Equal(t, "https://www.youtube.com/watch?v=abc", r.URL.Query().Get("url"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"title": "  Ohm's Law in 5 minutes ", "author_name": "Physics Today", "thumbnail_url": "https://i.ytimg.com/vi/abc/hqdefault.jpg"}`)
	}))
	defer server.Close()

	s := offlineYouTube(t, server)
	meta := s.Metadata(context.Background(), "abc")
	assert.Equal(t, "Ohm's Law in 5 minutes", meta.Title)
	assert.Equal(t, "Physics Today", meta.ChannelName)
	assert.Equal(t, "https://i.ytimg.com/vi/abc/hqdefault.jpg", meta.ThumbnailURL)
	assert.Equal(t, "Ohm's Law in 5 minutes", s.Title(context.Background(), "abc"))
}

func TestMetadataUnknownVideo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	}))
	defer server.Close()

	s := offlineYouTube(t, server)
	meta := s.Metadata(context.Background(), "abc")
	assert.Equal(t, UnknownTitle, meta.Title)
	assert.Equal(t, "https://img.youtube.com/vi/abc/maxresdefault.jpg", meta.ThumbnailURL)
}

func TestSearchWithoutKey(t *testing.T) {
	s, err := NewYouTubeService(context.Background(), "", quietLogger())
	require.NoError(t, err)

	assert.False(t, s.SearchConfigured())
	got, err := s.Search(context.Background(), "go tutorial", 4)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchDataAPI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/youtube/v3/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "go channels tutorial", q.Get("q"))
		assert.Equal(t, "video", q.Get("type"))
		assert.Equal(t, "2", q.Get("maxResults"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items": [
			{"id": {"kind": "youtube#video", "videoId": "vid00000001"}, "snippet": {"title": "Channels &amp; Goroutines", "channelTitle": "Gopher Academy", "thumbnails": {"default": {"url": "https://i.ytimg.com/d.jpg"}, "high": {"url": "https://i.ytimg.com/h.jpg"}}}},
			{"id": {"kind": "youtube#channel", "channelId": "UC123"}, "snippet": {"title": "A channel"}},
			{"id": {"kind": "youtube#video", "videoId": "vid00000002"}, "snippet": {"title": "Select", "channelTitle": "Go Dev"}},
			{"id": {"kind": "youtube#video", "videoId": "vid00000003"}, "snippet": {"title": "Extra", "channelTitle": "Go Dev"}}
		]}`)
	}))
	defer server.Close()

	s, err := NewYouTubeService(context.Background(), "test-key", quietLogger(),
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)
	assert.True(t, s.SearchConfigured())

	got, err := s.Search(context.Background(), "go channels tutorial", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Channels & Goroutines", got[0].Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=vid00000001", got[0].URL)
	assert.Equal(t, "https://i.ytimg.com/h.jpg", got[0].Thumbnail)
	assert.Equal(t, "Gopher Academy", got[0].Channel)
	assert.Equal(t, "vid00000002", got[1].URL[len(got[1].URL)-11:])
	assert.Empty(t, got[1].Thumbnail)
}

func TestSearchDataAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error": {"code": 403, "message": "quotaExceeded"}}`)
	}))
	defer server.Close()

	s, err := NewYouTubeService(context.Background(), "test-key", quietLogger(),
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)

	_, err = s.Search(context.Background(), "go", 4)
	assert.Error(t, err)
}

package services

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	urlpkg "net/url"
	"regexp"
	"strings"
	"time"

	ytapi "github.com/hightemp/youtube-transcript-api-go/api"
	yt "github.com/kkdai/youtube/v2"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"svl-backend/internal/models"
)

// UnknownTitle is used when no metadata source knows the video.
const UnknownTitle = "Educational Content"

// Every YouTube lookup runs under one of these deadlines, so LookupBudget
// bounds the time ProcessVideo spends before it starts generating.
const (
	requestTimeout    = 30 * time.Second
	metadataTimeout   = time.Minute
	transcriptTimeout = 2 * time.Minute
	searchTimeout     = 30 * time.Second

	LookupBudget = metadataTimeout + transcriptTimeout
)

const browserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var (
	captionTracksRe   = regexp.MustCompile(`"captionTracks"\s*:\s*\[(.*?)\],\s*"`)
	captionRendererRe = regexp.MustCompile(`"playerCaptionsTracklistRenderer"\s*:\s*\{(?:.*?,)?\s*"captionTracks"\s*:\s*\[(.*?)\],\s*"`)
	baseURLRe         = regexp.MustCompile(`"baseUrl"\s*:\s*"(.*?)"`)
)

// YouTubeService is the VideoSource backed by YouTube.
type YouTubeService struct {
	httpClient    *http.Client
	transcriptAPI *ytapi.YouTubeTranscriptApi
	ytClient      *yt.Client
	search        *youtube.Service
	logger        *slog.Logger

	oembedURL string
	watchURL  string
}

type timedTextXML struct {
	XMLName xml.Name  `xml:"transcript"`
	Texts   []textXML `xml:"text"`
}

type textXML struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",chardata"`
}

type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// NewYouTubeService builds the service. Video search needs apiKey; without
// it Search returns no results. opts are passed to the Data API client.
func NewYouTubeService(ctx context.Context, apiKey string, logger *slog.Logger, opts ...option.ClientOption) (*YouTubeService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	httpClient := &http.Client{Timeout: requestTimeout}
	s := &YouTubeService{
		httpClient:    httpClient,
		transcriptAPI: ytapi.NewYouTubeTranscriptApi(),
		ytClient:      &yt.Client{HTTPClient: httpClient},
		logger:        logger,
		oembedURL:     "https://www.youtube.com/oembed",
		watchURL:      "https://www.youtube.com/watch",
	}

	if apiKey != "" {
		svc, err := youtube.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
		if err != nil {
			return nil, fmt.Errorf("failed to create YouTube Data API client: %w", err)
		}
		s.search = svc
	}
	return s, nil
}

// Transcript returns the video's captions as one line of text, or "" when
// none can be fetched.
func (s *YouTubeService) Transcript(ctx context.Context, videoID string) string {
	ctx, cancel := context.WithTimeout(ctx, transcriptTimeout)
	defer cancel()
	text, err := s.fetchTranscript(ctx, videoID)
	if err != nil {
		s.logger.Warn("transcript unavailable", "video_id", videoID, "error", err)
		return ""
	}
	return text
}

func (s *YouTubeService) fetchTranscript(ctx context.Context, videoID string) (string, error) {
	transcript, err := s.libraryTranscript(ctx, videoID, []string{"en", "en-US", "en-GB"})
	if err != nil {
		// Any available language
		transcript, err = s.libraryTranscript(ctx, videoID, nil)
		if err != nil {
			legacy, legacyErr := s.transcriptViaTimedText(ctx, videoID)
			if legacyErr == nil {
				return legacy, nil
			}
			return "", fmt.Errorf("no subtitles via transcript API (%v) and timedtext fallback failed (%w)", err, legacyErr)
		}
	}

	parts := make([]string, 0, len(transcript.Entries))
	for _, entry := range transcript.Entries {
		parts = append(parts, entry.Text)
	}
	cleaned := collapseSpace(strings.Join(parts, " "))
	if cleaned == "" {
		return "", fmt.Errorf("subtitle track is empty")
	}
	return cleaned, nil
}

// libraryTranscript stops waiting on the transcript library when ctx ends.
// The library takes no context, so its request finishes in the background.
func (s *YouTubeService) libraryTranscript(ctx context.Context, videoID string, languages []string) (*ytapi.Transcript, error) {
	if s.transcriptAPI == nil {
		return nil, fmt.Errorf("transcript API not configured")
	}
	type result struct {
		transcript *ytapi.Transcript
		err        error
	}
	done := make(chan result, 1)
	go func() {
		t, err := s.transcriptAPI.GetTranscript(videoID, languages)
		done <- result{t, err}
	}()

	select {
	case r := <-done:
		return r.transcript, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (s *YouTubeService) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUA)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 8<<20))
}

func (s *YouTubeService) transcriptViaTimedText(ctx context.Context, videoID string) (string, error) {
	page, err := s.get(ctx, s.watchURL+"?v="+urlpkg.QueryEscape(videoID))
	if err != nil {
		return "", fmt.Errorf("failed to fetch YouTube page: %w", err)
	}

	captionURL, err := extractCaptionURL(string(page))
	if err != nil {
		return "", err
	}

	body, err := s.get(ctx, captionURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch captions: %w", err)
	}

	transcript, err := parseCaptionsXML(body)
	if err != nil {
		return "", fmt.Errorf("failed to parse captions XML: %w", err)
	}
	return transcript, nil
}

func extractCaptionURL(pageHTML string) (string, error) {
	matches := captionTracksRe.FindStringSubmatch(pageHTML)
	if len(matches) < 2 {
		matches = captionRendererRe.FindStringSubmatch(pageHTML)
		if len(matches) < 2 {
			return "", fmt.Errorf("no captions available for this video")
		}
	}

	urlMatches := baseURLRe.FindStringSubmatch(matches[1])
	if len(urlMatches) < 2 {
		return "", fmt.Errorf("caption track found but baseUrl missing")
	}

	u := urlMatches[1]
	u = strings.ReplaceAll(u, `\u0026`, "&")
	u = strings.ReplaceAll(u, `\/`, "/")
	return u, nil
}

func parseCaptionsXML(data []byte) (string, error) {
	var tt timedTextXML
	if err := xml.Unmarshal(data, &tt); err != nil {
		return "", err
	}

	parts := make([]string, 0, len(tt.Texts))
	for _, t := range tt.Texts {
		if text := collapseSpace(html.UnescapeString(t.Text)); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("captions XML empty")
	}
	return strings.Join(parts, " "), nil
}

// Metadata looks the video up through oEmbed, then the player API. A video
// neither knows gets UnknownTitle.
func (s *YouTubeService) Metadata(ctx context.Context, videoID string) models.YouTubeMetadata {
	ctx, cancel := context.WithTimeout(ctx, metadataTimeout)
	defer cancel()

	meta := models.YouTubeMetadata{
		VideoID:      videoID,
		Title:        UnknownTitle,
		ThumbnailURL: fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", videoID),
	}

	if o, err := s.oembed(ctx, videoID); err == nil && strings.TrimSpace(o.Title) != "" {
		meta.Title = strings.TrimSpace(o.Title)
		meta.ChannelName = o.AuthorName
		if o.ThumbnailURL != "" {
			meta.ThumbnailURL = o.ThumbnailURL
		}
		return meta
	} else if err != nil {
		s.logger.Debug("oembed lookup failed", "video_id", videoID, "error", err)
	}

	if s.ytClient == nil {
		return meta
	}
	video, err := s.ytClient.GetVideoContext(ctx, videoID)
	if err != nil {
		s.logger.Warn("video metadata unavailable", "video_id", videoID, "error", err)
		return meta
	}
	if t := strings.TrimSpace(video.Title); t != "" {
		meta.Title = t
	}
	meta.ChannelName = video.Author
	meta.Duration = int(video.Duration.Seconds())
	return meta
}

func (s *YouTubeService) Title(ctx context.Context, videoID string) string {
	return s.Metadata(ctx, videoID).Title
}

func (s *YouTubeService) oembed(ctx context.Context, videoID string) (*oembedResponse, error) {
	q := urlpkg.Values{}
	q.Set("url", "https://www.youtube.com/watch?v="+videoID)
	q.Set("format", "json")

	body, err := s.get(ctx, s.oembedURL+"?"+q.Encode())
	if err != nil {
		return nil, err
	}
	var out oembedResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode oembed: %w", err)
	}
	return &out, nil
}

// Search returns up to limit videos for query. Without an API key it
// returns nothing.
// SearchConfigured reports whether video search has a Data API key.
func (s *YouTubeService) SearchConfigured() bool {
	return s.search != nil
}

func (s *YouTubeService) Search(ctx context.Context, query string, limit int) ([]models.VideoResult, error) {
	if s.search == nil {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	resp, err := s.search.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(int64(limit)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube search %q: %w", query, err)
	}

	out := make([]models.VideoResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		out = append(out, models.VideoResult{
			Title:     html.UnescapeString(item.Snippet.Title),
			URL:       "https://www.youtube.com/watch?v=" + item.Id.VideoId,
			Thumbnail: thumbnailURL(item.Snippet.Thumbnails),
			Channel:   item.Snippet.ChannelTitle,
		})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func thumbnailURL(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, th := range []*youtube.Thumbnail{t.High, t.Medium, t.Default} {
		if th != nil && th.Url != "" {
			return th.Url
		}
	}
	return ""
}

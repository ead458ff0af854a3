package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svl-backend/internal/models"
	"svl-backend/internal/templates"
)

func searchResults(n int) []models.VideoResult {
	out := make([]models.VideoResult, n)
	for i := range out {
		out[i] = models.VideoResult{Title: fmt.Sprintf("Video %d", i), URL: fmt.Sprintf("https://www.youtube.com/watch?v=video%06d", i)}
	}
	return out
}

func TestRoadmap(t *testing.T) {
	ai := newScriptedAI("Sure! ['Basics', 'Loops', \"Functions\"]")
	videos := &fakeVideos{results: searchResults(6), failFor: map[string]bool{"Loops": true}}
	svc := NewLearnService(ai, videos, quietLogger())

	got := svc.Roadmap(context.Background(), "Python")
	require.Len(t, got, 3)

	for i, want := range []string{"Basics", "Loops", "Functions"} {
		assert.Equal(t, i, got[i].Index)
		assert.Equal(t, want, got[i].Topic)
	}
	assert.Len(t, got[0].Links, 4)
	assert.Equal(t, "https://www.youtube.com/watch?v=video000000", got[0].Links[0])
	assert.NotNil(t, got[1].Links)
	assert.Empty(t, got[1].Links)
	assert.Len(t, got[2].Links, 4)
	assert.ElementsMatch(t, []string{"Basics", "Loops", "Functions"}, videos.queries)
}

func TestRoadmapFallsBackToOutline(t *testing.T) {
	for name, reply := range map[string]string{
		"no answer":   "",
		"no list":     "I cannot help with that.",
		"empty names": `["", "  "]`,
	} {
		t.Run(name, func(t *testing.T) {
			svc := NewLearnService(newScriptedAI(reply), &fakeVideos{}, quietLogger())
			got := svc.Roadmap(context.Background(), "Rust")

			want := templates.RoadmapTopics("Rust")
			require.Len(t, got, len(want))
			for i := range want {
				assert.Equal(t, want[i], got[i].Topic)
				assert.Empty(t, got[i].Links)
			}
		})
	}
}

func TestLearnChat(t *testing.T) {
	ai := newScriptedAI("A loop repeats code.", "")
	svc := NewLearnService(ai, &fakeVideos{}, quietLogger())

	assert.Equal(t, "A loop repeats code.", svc.Chat(context.Background(), "What is a loop?", "Python basics"))
	assert.Contains(t, ai.calls()[0], "The student is studying: Python basics")

	assert.Equal(t, templates.LearnReply(), svc.Chat(context.Background(), "Again?", ""))
	assert.NotContains(t, ai.calls()[1], "studying")
}

func TestSummary(t *testing.T) {
	ctx := context.Background()

	svc := NewLearnService(newScriptedAI(), &fakeVideos{}, quietLogger())
	_, err := svc.Summary(ctx, "abc")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "No transcript available", nf.Message)

	ai := newScriptedAI("This video covers loops.", "")
	svc = NewLearnService(ai, &fakeVideos{transcript: "loops repeat code"}, quietLogger())

	got, err := svc.Summary(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "This video covers loops.", got)
	assert.Contains(t, ai.calls()[0], "loops repeat code")

	got, err = svc.Summary(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, templates.SummaryUnavailable, got)
}

func TestCodeTree(t *testing.T) {
	answer := `{"topics": [{"id": 1, "title": "Intro", "level": "beginner", "row": "0", "col": 0}, {"id": "2", "title": "Types", "level": "beginner", "row": 1, "col": 0}]}`
	svc := NewCodeService(newScriptedAI(answer), &fakeVideos{}, quietLogger())

	tree := svc.Tree(context.Background(), "Go")
	require.Len(t, tree.Topics, 2)
	assert.Equal(t, models.FlexID("1"), tree.Topics[0].ID)
	assert.Equal(t, models.FlexInt(1), tree.Topics[1].Row)
	assert.NotNil(t, tree.Connections)

	tree = svc.Tree(context.Background(), "Go")
	assert.Equal(t, templates.CodeTree("Go"), *tree)
}

func TestCodeResources(t *testing.T) {
	videos := &fakeVideos{results: searchResults(2)}
	answer := `{"practice": [{"name": "Exercism", "url": "https://exercism.org", "type": "Exercises", "description": "Mentored practice"}], "description": "Goroutines in depth"}`
	svc := NewCodeService(newScriptedAI(answer), videos, quietLogger())

	got := svc.Resources(context.Background(), "Go", "Goroutines")
	assert.Len(t, got.Videos, 2)
	require.Len(t, got.Practice, 1)
	assert.Equal(t, "Exercism", got.Practice[0].Name)
	assert.Equal(t, "Goroutines in depth", got.Description)
	assert.Equal(t, []string{"Go Goroutines tutorial"}, videos.queries)
}

func TestCodeResourcesKeepVideosWhenModelFails(t *testing.T) {
	videos := &fakeVideos{results: searchResults(3)}
	svc := NewCodeService(newScriptedAI("no json here"), videos, quietLogger())

	got := svc.Resources(context.Background(), "Go", "Channels")
	assert.Len(t, got.Videos, 3)
	assert.Empty(t, got.Practice)
	assert.NotNil(t, got.Practice)
	assert.Equal(t, templates.ResourcesUnavailable, got.Description)
}

func TestCodeResourcesSearchFailure(t *testing.T) {
	videos := &fakeVideos{failFor: map[string]bool{"Go Maps tutorial": true}}
	svc := NewCodeService(newScriptedAI(`{"practice": []}`), videos, quietLogger())

	got := svc.Resources(context.Background(), "Go", "Maps")
	assert.NotNil(t, got.Videos)
	assert.Empty(t, got.Videos)
	assert.Empty(t, got.Practice)
	assert.Empty(t, got.Description)
}

func TestCodeChat(t *testing.T) {
	ai := newScriptedAI("Use a buffered channel.", "")
	svc := NewCodeService(ai, &fakeVideos{}, quietLogger())

	assert.Equal(t, "Use a buffered channel.", svc.Chat(context.Background(), "Go", "Channels", "How do I avoid blocking?"))
	assert.Contains(t, ai.calls()[0], "coding tutor for Go")
	assert.Contains(t, ai.calls()[0], "Topic: Channels")
	assert.Equal(t, templates.CodeReply("Go"), svc.Chat(context.Background(), "Go", "", "?"))
}

func TestCustomRoadmap(t *testing.T) {
	answer := `{"topics": [{"id": "topic-1", "name": "Basics", "levels": [{"id": "level-1", "title": "Syntax", "videos": [], "practice": [], "learning": []}]}]}`
	svc := NewCodeService(newScriptedAI(answer), &fakeVideos{}, quietLogger())

	got := svc.CustomRoadmap(context.Background(), "  Go ")
	assert.Equal(t, "https://cdn.jsdelivr.net/gh/devicons/devicon@latest/icons/go/go-original.svg", got.IconURL)
	assert.Equal(t, RoadmapColor("Go"), got.Color)
	require.Len(t, got.Topics, 1)
	assert.Equal(t, "Syntax", got.Topics[0].Levels[0].Title)

	got = svc.CustomRoadmap(context.Background(), "Go")
	assert.Equal(t, templates.CustomRoadmapTopics("Go"), got.Topics)
	assert.Equal(t, RoadmapColor("Go"), got.Color)
}

func TestRoadmapColorIsStable(t *testing.T) {
	for _, lang := range []string{"Go", "Rust", "Python", "Kotlin", "Zig", ""} {
		c := RoadmapColor(lang)
		assert.Contains(t, roadmapColors, c)
		assert.Equal(t, c, RoadmapColor(lang))
	}
}

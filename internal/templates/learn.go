package templates

import (
	"fmt"
	"net/url"
	"strings"

	"svl-backend/internal/models"
)

// RoadmapTopics is a generic beginner-to-advanced outline for topic.
func RoadmapTopics(topic string) []string {
	return []string{
		fmt.Sprintf("Introduction to %s", topic),
		fmt.Sprintf("%s Fundamentals", topic),
		fmt.Sprintf("Core Concepts of %s", topic),
		fmt.Sprintf("%s in Practice", topic),
		fmt.Sprintf("Intermediate %s", topic),
		fmt.Sprintf("Advanced %s", topic),
		fmt.Sprintf("%s Projects and Applications", topic),
		fmt.Sprintf("Mastering %s", topic),
	}
}

var treeOutline = []struct {
	title string
	level string
}{
	{"Introduction to %s", "beginner"},
	{"Setup and Tooling", "beginner"},
	{"Variables and Data Types", "beginner"},
	{"Operators and Expressions", "beginner"},
	{"Control Flow", "beginner"},
	{"Functions", "intermediate"},
	{"Collections", "intermediate"},
	{"Error Handling", "intermediate"},
	{"Modules and Packages", "intermediate"},
	{"File I/O", "intermediate"},
	{"Object and Type Design", "advanced"},
	{"Concurrency", "advanced"},
	{"Testing", "advanced"},
	{"Performance", "advanced"},
	{"Building Real Projects in %s", "advanced"},
}

// CodeTree is a linear learning path through common language topics laid
// out three per row.
func CodeTree(language string) models.CodeTree {
	tree := models.CodeTree{
		Topics:      make([]models.CodeTopic, 0, len(treeOutline)),
		Connections: make([]models.CodeConnection, 0, len(treeOutline)-1),
	}
	for i, t := range treeOutline {
		title := t.title
		if strings.Contains(title, "%s") {
			title = fmt.Sprintf(title, language)
		}
		id := models.FlexID(fmt.Sprint(i + 1))
		tree.Topics = append(tree.Topics, models.CodeTopic{
			ID:    id,
			Title: title,
			Level: t.level,
			Row:   models.FlexInt(i / 3),
			Col:   models.FlexInt(i % 3),
		})
		if i > 0 {
			tree.Connections = append(tree.Connections, models.CodeConnection{
				From: models.FlexID(fmt.Sprint(i)),
				To:   id,
			})
		}
	}
	return tree
}

var roadmapOutline = []struct {
	name   string
	levels []string
}{
	{"Fundamentals", []string{"Syntax Basics", "Variables and Types", "Control Flow", "Functions", "Collections"}},
	{"Intermediate", []string{"Error Handling", "Modules", "File I/O", "Testing", "Standard Library"}},
	{"Advanced", []string{"Concurrency", "Performance", "Design Patterns", "Tooling", "Capstone Project"}},
}

// CustomRoadmapTopics is the fallback three-track roadmap for language.
func CustomRoadmapTopics(language string) []models.RoadmapTopic {
	topics := make([]models.RoadmapTopic, 0, len(roadmapOutline))
	for i, t := range roadmapOutline {
		topic := models.RoadmapTopic{
			ID:   models.FlexID(fmt.Sprintf("topic-%d", i+1)),
			Name: t.name,
		}
		for j, level := range t.levels {
			query := url.QueryEscape(fmt.Sprintf("%s %s tutorial", language, level))
			topic.Levels = append(topic.Levels, models.RoadmapLevel{
				ID:       models.FlexID(fmt.Sprintf("level-%d", j+1)),
				Title:    level,
				Videos:   []string{"https://www.youtube.com/results?search_query=" + query},
				Practice: []string{"https://www.hackerrank.com", "https://leetcode.com"},
				Learning: []string{"https://www.w3schools.com", "https://devdocs.io"},
			})
		}
		topics = append(topics, topic)
	}
	return topics
}

// ResourcesUnavailable is the description returned when practice sites
// could not be generated.
const ResourcesUnavailable = "Failed to load resources. Please try again."

// SummaryUnavailable is returned when no model summarised a transcript.
const SummaryUnavailable = "Summary generation failed. Please try again."

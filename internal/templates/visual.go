package templates

import (
	"fmt"

	"svl-backend/internal/models"
)

// MindMapColors is the palette offered to the model and used by the fallback.
var MindMapColors = []string{"#FF6B6B", "#4ECDC4", "#45B7D1", "#FFA07A", "#98D8C8", "#F7DC6F", "#BB8FCE"}

func MindMap(topic string) models.MindMap {
	return models.MindMap{
		CentralTopic: topic,
		MainBranches: []models.MindMapBranch{
			{
				ID:    "1",
				Label: "Fundamentals",
				Color: MindMapColors[0],
				SubNodes: []models.MindMapNode{
					{ID: "1.1", Label: "Core Definition", Description: fmt.Sprintf("Basic understanding of %s", topic)},
					{ID: "1.2", Label: "Key Principles", Description: fmt.Sprintf("Fundamental principles governing %s", topic)},
				},
			},
			{
				ID:    "2",
				Label: "Applications",
				Color: MindMapColors[1],
				SubNodes: []models.MindMapNode{
					{ID: "2.1", Label: "Real-World Uses", Description: fmt.Sprintf("Practical applications of %s", topic)},
					{ID: "2.2", Label: "Technology", Description: fmt.Sprintf("Modern technology using %s", topic)},
				},
			},
		},
	}
}

func Infographic(topic string) models.Infographic {
	return models.Infographic{
		Title: fmt.Sprintf("%s - Visual Summary", topic),
		KeyStatistics: []models.Statistic{
			{Label: "Core Concepts", Value: "5+", Description: fmt.Sprintf("Main ideas central to understanding %s", topic), Icon: "📊"},
			{Label: "Applications", Value: "Many", Description: fmt.Sprintf("Practical uses of %s across industries", topic), Icon: "⚡"},
			{Label: "Importance", Value: "High", Description: fmt.Sprintf("Impact and significance of %s in the modern world", topic), Icon: "🎯"},
		},
		ProcessFlow: []models.ProcessStep{
			{Step: 1, Title: "Foundation", Description: fmt.Sprintf("Understanding basic principles of %s", topic), Icon: "1️⃣"},
			{Step: 2, Title: "Mechanism", Description: fmt.Sprintf("How %s works in detail", topic), Icon: "2️⃣"},
			{Step: 3, Title: "Application", Description: fmt.Sprintf("Applying %s to solve problems", topic), Icon: "3️⃣"},
			{Step: 4, Title: "Mastery", Description: fmt.Sprintf("Advanced understanding and expertise in %s", topic), Icon: "4️⃣"},
		},
		KeyFacts: []string{
			fmt.Sprintf("%s is a fundamental concept in its field", topic),
			fmt.Sprintf("Understanding %s enables solving complex problems", topic),
			fmt.Sprintf("%s has numerous real-world applications", topic),
			fmt.Sprintf("Modern technology heavily relies on %s", topic),
			fmt.Sprintf("Mastering %s opens many opportunities", topic),
		},
		Timeline: []models.TimelineEvent{
			{Year: "Historical", Event: fmt.Sprintf("Early discoveries related to %s", topic)},
			{Year: "Modern", Event: fmt.Sprintf("Contemporary understanding of %s", topic)},
			{Year: "Future", Event: fmt.Sprintf("Emerging developments in %s", topic)},
		},
		Applications: []models.Application{
			{Area: "Technology", Usage: fmt.Sprintf("How %s powers modern technology and innovations", topic), Impact: "High", Icon: "💻"},
			{Area: "Industry", Usage: fmt.Sprintf("Industrial applications and commercial use of %s", topic), Impact: "High", Icon: "🏭"},
			{Area: "Research", Usage: fmt.Sprintf("Scientific research and academic study of %s", topic), Impact: "Medium", Icon: "🔬"},
		},
	}
}

package services

import (
	"fmt"
	"strings"

	"svl-backend/internal/templates"
)

// Context window sizes, in runes, for each prompt family.
const (
	transcriptStudyLimit   = 8000
	transcriptTopicLimit   = 2000
	transcriptChatLimit    = 2000
	transcriptBatchLimit   = 3000
	transcriptQuizLimit    = 4000
	transcriptVisualLimit  = 4000
	transcriptSummaryLimit = 5000
	minUsefulTranscript    = 100
)

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// contextOr returns the leading part of transcript, or a topic line when
// there is no transcript.
func contextOr(transcript string, limit int, topic string) string {
	if transcript != "" {
		return truncate(transcript, limit)
	}
	return "Topic: " + topic
}

func buildTopicPrompt(title, transcript string) string {
	var b strings.Builder
	b.WriteString("Extract the educational topic from this video. Return ONLY the topic name.\n\n")
	b.WriteString(fmt.Sprintf("Title: %s\n", title))
	if transcript != "" {
		b.WriteString(fmt.Sprintf("\nTranscript: %s\n", truncate(transcript, transcriptTopicLimit)))
	}
	b.WriteString("\nTopic:")
	return b.String()
}

func buildStudyPrompt(topic, title, transcript string) string {
	var b strings.Builder

	if len([]rune(transcript)) > minUsefulTranscript {
		b.WriteString("Based on the video transcript, create comprehensive study materials.\n\n")
		b.WriteString(fmt.Sprintf("Video: %s\n\nTranscript:\n%s\n\n", title, truncate(transcript, transcriptStudyLimit)))
	} else {
		b.WriteString(fmt.Sprintf("Based on your knowledge of %s, create comprehensive educational study materials. ", topic))
		b.WriteString(fmt.Sprintf("Use the video title '%s' for context. Include specific examples, formulas, principles and applications.\n\n", title))
		b.WriteString(fmt.Sprintf("Video: %s\nTopic: %s\n\n", title, topic))
	}

	b.WriteString(fmt.Sprintf("Create exceptional, in-depth study materials about %s.\n\n", topic))
	b.WriteString("CRITICAL: Return ONLY valid JSON with exactly these keys. No markdown outside the JSON.\n\n")
	b.WriteString(fmt.Sprintf(`{
  "video_summary": "300-400 words: what %[1]s is, the core concepts, why it matters, key applications and a closing takeaway.",
  "detailed_explanation": "2500-3000 words of plain text in 8-10 sections: Introduction, Fundamental Concepts, Detailed Mechanism, Mathematical Framework (if applicable), Real-World Examples, Practical Applications, Common Misconceptions, Advanced Insights, Problem-Solving Approaches, Conclusion. Write each section title followed by a colon.",
  "key_points": ["8 strings of 100-120 words each, each starting with an emoji: core concept, how it works, two real-world examples, applications, technical details, misconceptions, advanced insight"],
  "flashcards": [{"term": "What is %[1]s?", "definition": "50-60 words", "difficulty": "beginner|intermediate|advanced"}],
  "quiz_questions": [
    {"id": 1, "question": "...", "type": "multiple_choice", "options": ["A", "B", "C", "D"], "correct": 0, "explanation": "40-50 words", "difficulty": "easy|medium|hard"},
    {"id": 2, "question": "True or False: ...", "type": "true_false", "correct": false, "explanation": "40-50 words", "difficulty": "easy|medium|hard"}
  ]
}
`, topic))
	b.WriteString(`
Requirements:
1. key_points MUST be an array of 8 STRINGS (not objects)
2. flashcards: 12 cards with progressive difficulty (beginner to advanced)
3. quiz_questions: 10 questions mixing multiple_choice and true_false, easy to hard
4. Use specific examples with real numbers and data
5. Return ONLY valid JSON
`)
	return b.String()
}

func buildSimplifiedStudyPrompt(topic string) string {
	return fmt.Sprintf(`Create comprehensive JSON about %[1]s:
{
  "video_summary": "200 words detailed summary",
  "detailed_explanation": "1500+ words in 6-8 paragraphs: intro, core concepts, mechanism, examples, applications, misconceptions, insights, conclusion",
  "key_points": ["8 strings of about 80 words each"],
  "flashcards": [{"term": "x", "definition": "40-50 words"}],
  "quiz_questions": [{"id": 1, "question": "x", "type": "multiple_choice", "options": ["A","B","C","D"], "correct": 0, "explanation": "y"}]
}
key_points must be an array of strings. Generate 12 flashcards and 10 quiz questions. Return JSON only.`, topic)
}

func buildChatPrompt(topic, contextText, message string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("You are a helpful tutor explaining %q to a student.\n\n", topic))
	b.WriteString(fmt.Sprintf("Context about %s:\n%s\n\n", topic, contextText))
	b.WriteString(fmt.Sprintf("Student's question: %s\n\n", message))
	b.WriteString(`Answer following these rules:
- Keep it SHORT: 2-3 sentences (40-60 words maximum)
- Use simple language
- Give ONE clear, relatable example
- Be encouraging and friendly
- Use information from the context above

Your answer:`)
	return b.String()
}

func buildFlashcardsPrompt(topic, transcript string, count int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Generate EXACTLY %d NEW and UNIQUE flashcards about %s.\n\n", count, topic))
	b.WriteString(fmt.Sprintf("Context: %s\n\n", contextOr(transcript, transcriptBatchLimit, topic)))
	b.WriteString(`JSON format:
{"flashcards": [{"term": "specific term", "definition": "clear 25-word explanation"}]}

Rules:
`)
	b.WriteString(fmt.Sprintf("1. Generate EXACTLY %d flashcards\n", count))
	b.WriteString("2. Every term must be different (no duplicates)\n")
	b.WriteString(fmt.Sprintf("3. Every term must be specific to %s and cover a different aspect\n", topic))
	b.WriteString("4. Each definition must be 20-30 words\n")
	b.WriteString("5. Prefer advanced, detailed concepts over basic ones\n\n")
	b.WriteString("Return ONLY valid JSON.")
	return b.String()
}

func buildSimplifiedFlashcardsPrompt(topic string, count int) string {
	return fmt.Sprintf(`List %d flashcards about %s as JSON: {"flashcards": [{"term": "...", "definition": "..."}]}. Terms must all differ. Return JSON only.`, count, topic)
}

func buildQuizPrompt(topic, transcript string, count int, difficulty string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Generate EXACTLY %d NEW and UNIQUE quiz questions about %s.\n\n", count, topic))
	b.WriteString(fmt.Sprintf("Context: %s\n\n", contextOr(transcript, transcriptQuizLimit, topic)))
	b.WriteString(fmt.Sprintf(`Use this JSON format:
{
  "quiz_questions": [
    {"id": 1, "question": "What is the main concept of %[1]s?", "type": "multiple_choice", "options": ["Option A", "Option B", "Option C", "Option D"], "correct": 0, "explanation": "Explanation here", "difficulty": "%[2]s"},
    {"id": 2, "question": "True or false about %[1]s?", "type": "true_false", "correct": true, "explanation": "Explanation here", "difficulty": "%[2]s"}
  ]
}
`, topic, difficulty))
	b.WriteString("\nRules:\n")
	b.WriteString(fmt.Sprintf("1. Generate EXACTLY %d questions\n", count))
	b.WriteString("2. Every question must be different (no duplicates or near-duplicates)\n")
	b.WriteString("3. Mix multiple_choice (4 options) and true_false\n")
	b.WriteString("4. Each explanation: 20-30 words\n")
	b.WriteString(fmt.Sprintf("5. Difficulty level: %s\n", difficulty))
	switch difficulty {
	case "easy":
		b.WriteString("Easy = direct recall of the material.\n")
	case "medium":
		b.WriteString("Medium = application of concepts.\n")
	case "hard":
		b.WriteString("Hard = analysis, synthesis, or inference beyond what is explicitly stated.\n")
	}
	b.WriteString("\nReturn ONLY the JSON object.")
	return b.String()
}

func buildSimplifiedQuizPrompt(topic string, count int, difficulty string) string {
	return fmt.Sprintf(`Write %d %s quiz questions about %s as JSON: {"quiz_questions": [{"id": 1, "question": "...", "type": "multiple_choice", "options": ["A","B","C","D"], "correct": 0, "explanation": "..."}]}. Questions must all differ. "type" is multiple_choice or true_false (then "correct" is true or false). Return JSON only.`, count, difficulty, topic)
}

func buildExplainPrompt(term, definition, topic, contextText string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("You are an expert tutor explaining the concept %q to a student learning about %s.\n\n", term, topic))
	b.WriteString(fmt.Sprintf("Context from video:\n%s\n\n", contextText))
	b.WriteString(fmt.Sprintf("Flashcard Definition: %s\n\n", definition))
	b.WriteString(fmt.Sprintf(`Explain it using this structure:

## Detailed Explanation
Expand on the definition with more detail and context. (100-150 words)

## Real-World Examples
2-3 specific, relatable examples with concrete details. (100-150 words)

## Connections
How this concept relates to other concepts in %s. (80-100 words)

## Key Insights
What to remember, and any tricks for remembering it. (60-80 words)

## Further Learning
What to explore next. (60-80 words)

Use markdown with **bold** for emphasis.

Your explanation:`, topic))
	return b.String()
}

func buildMindMapPrompt(topic, transcript string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Create a comprehensive mind map structure for %s.\n\n", topic))
	b.WriteString(fmt.Sprintf("Context: %s\n\n", contextOr(transcript, transcriptVisualLimit, topic)))
	b.WriteString(fmt.Sprintf(`Return ONLY valid JSON in this structure:
{
  "central_topic": %q,
  "main_branches": [
    {"id": "1", "label": "Main Category", "color": "#FF6B6B", "sub_nodes": [
      {"id": "1.1", "label": "Sub-concept", "description": "20-30 words"}
    ]}
  ]
}

Create 5-7 main branches, each with 3-5 sub nodes, covering fundamentals, mechanisms, applications, mathematical framework (if applicable), real-world examples and advanced concepts.
`, topic))
	b.WriteString("Use these colors: " + strings.Join(templates.MindMapColors, ", ") + "\n")
	return b.String()
}

func buildSimplifiedMindMapPrompt(topic string) string {
	return fmt.Sprintf(`Return a JSON mind map for %[1]s: {"central_topic": %[1]q, "main_branches": [{"id": "1", "label": "...", "sub_nodes": [{"id": "1.1", "label": "...", "description": "..."}]}]}. At least 3 branches with 2 sub nodes each. JSON only.`, topic)
}

func buildInfographicPrompt(topic, transcript string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Create infographic data for %s.\n\n", topic))
	b.WriteString(fmt.Sprintf("Context: %s\n\n", contextOr(transcript, transcriptVisualLimit, topic)))
	b.WriteString(fmt.Sprintf(`Return ONLY valid JSON in this structure:
{
  "title": "%s - Visual Summary",
  "key_statistics": [{"label": "Key Metric", "value": "X%%", "description": "15-20 words", "icon": "📊"}],
  "process_flow": [{"step": 1, "title": "Step Name", "description": "25-30 words", "icon": "1️⃣"}],
  "key_facts": ["fact of 20-25 words"],
  "timeline": [{"year": "YYYY", "event": "20-25 words"}],
  "applications": [{"area": "Field", "usage": "30-40 words", "impact": "High|Medium", "icon": "🏭"}]
}

Give 3 statistics, 4 process steps, 5 facts, 3 timeline events and 3 applications. Use real numbers, dates and facts where possible.`, topic))
	return b.String()
}

func buildSimplifiedInfographicPrompt(topic string) string {
	return fmt.Sprintf(`Return JSON for an infographic about %s with keys "title" (string), "key_statistics" (list of {"label","value","description"}), "process_flow" (list of {"step","title","description"}), "key_facts" (list of strings). JSON only.`, topic)
}

func buildRoadmapPrompt(topic string) string {
	return fmt.Sprintf(`Create a learning roadmap for: %[1]s

Return ONLY a JSON list of 8-12 topic strings ordered from beginner to advanced.
Example: ["Introduction to %[1]s", "Basic Concepts", "Intermediate Topics", "Advanced Applications"]

Return only the list, nothing else:`, topic)
}

func buildLearnChatPrompt(message, hint string) string {
	var b strings.Builder
	b.WriteString("You are a helpful learning assistant.\n\n")
	if hint != "" {
		b.WriteString(fmt.Sprintf("The student is studying: %s\n\n", hint))
	}
	b.WriteString(fmt.Sprintf("Student's question: %s\n\n", message))
	b.WriteString("Provide a clear, concise answer (2-3 paragraphs). Use simple language and examples.\n\nYour answer:")
	return b.String()
}

func buildSummaryPrompt(transcript string) string {
	return fmt.Sprintf("Summarize this educational video transcript in 200-250 words. Make it clear and engaging.\n\nTranscript:\n%s\n\nSummary:", truncate(transcript, transcriptSummaryLimit))
}

func buildCodeTreePrompt(language string) string {
	return fmt.Sprintf(`Create a comprehensive learning tree for %[1]s programming.

Generate 15-20 topics organized from Beginner to Advanced level.
For each topic give: id, title, level (beginner/intermediate/advanced), row, col (for positioning).

Return ONLY valid JSON in this format:
{
  "topics": [
    {"id": "1", "title": "Introduction to %[1]s", "level": "beginner", "row": 0, "col": 0},
    {"id": "2", "title": "Variables and Data Types", "level": "beginner", "row": 1, "col": 0}
  ],
  "connections": [
    {"from": "1", "to": "2"}
  ]
}

Make it a proper learning path where topics build on each other.`, language)
}

func buildPracticePrompt(language, topic string) string {
	return fmt.Sprintf(`List 3-4 of the best practice websites for learning %s - %s.

Return ONLY valid JSON:
{
  "practice": [
    {"name": "Website Name", "url": "https://...", "type": "Interactive Coding", "description": "Brief description"}
  ],
  "description": "Brief overview of the topic"
}`, language, topic)
}

func buildCodeChatPrompt(language, topic, message string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("You are a helpful coding tutor for %s.\n\n", language))
	if topic != "" {
		b.WriteString(fmt.Sprintf("Topic: %s\n", topic))
	}
	b.WriteString(fmt.Sprintf("Student's question: %s\n\n", message))
	b.WriteString("Provide a clear, concise answer (2-3 paragraphs). Use simple language and examples.\n\nYour answer:")
	return b.String()
}

func buildCustomRoadmapPrompt(language string) string {
	return fmt.Sprintf(`Create a comprehensive learning roadmap for %[1]s programming.

Generate 3 main topics, each with 5-7 levels. Return ONLY valid JSON:

{
  "topics": [
    {
      "id": "topic-1",
      "name": "Topic Name",
      "levels": [
        {
          "id": "level-1",
          "title": "Level Title",
          "videos": ["https://www.youtube.com/results?search_query=%[1]s+topic+tutorial"],
          "practice": ["https://www.hackerrank.com", "https://leetcode.com"],
          "learning": ["https://docs.example.com", "https://www.w3schools.com"]
        }
      ]
    }
  ]
}

Return only JSON.`, language)
}

func buildSimplifiedCodeTreePrompt(language string) string {
	return fmt.Sprintf(`List 15 %s learning topics, beginner to advanced, as JSON: {"topics": [{"id": "1", "title": "...", "level": "beginner", "row": 0, "col": 0}], "connections": [{"from": "1", "to": "2"}]}. JSON only.`, language)
}

func buildSimplifiedCustomRoadmapPrompt(language string) string {
	return fmt.Sprintf(`Return JSON with 3 %s learning topics, each with 5 levels: {"topics": [{"id": "topic-1", "name": "...", "levels": [{"id": "level-1", "title": "...", "videos": [], "practice": [], "learning": []}]}]}. JSON only.`, language)
}

// Package templates builds the deterministic payloads served when no model
// produced usable output. Everything here is string interpolation around the
// topic name and has no external dependency.
package templates

import (
	"fmt"
	"strings"

	"svl-backend/internal/models"
)

type section struct {
	heading string
	body    string
}

var explanationSections = []section{
	{"Introduction to %[1]s", "%[1]s is an important concept that plays a significant role in its field. Understanding it requires both the theoretical foundations and the practical applications. This guide walks through its fundamental principles, mechanisms, applications and significance."},
	{"Core Concepts", "The fundamental principles underlying %[1]s are the foundation for everything that follows. Focus first on the basic definitions, the key terminology and the foundational theories that make up %[1]s, since later material builds directly on them."},
	{"How It Works", "The mechanism behind %[1]s involves several interconnected processes. Following how these elements work together step by step shows the cause and effect relationships that are central to the topic and explains why it behaves the way it does."},
	{"Real-World Applications", "%[1]s has practical applications across many domains, from technology and industry to everyday life. Seeing where it is used helps connect the abstract ideas to concrete problems and shows why mastering %[1]s is worthwhile."},
	{"Mathematical Framework", "Where applicable, %[1]s is described by mathematical relationships and equations. These tools allow precise analysis and prediction, and they are essential for advanced study and for solving quantitative problems."},
	{"Examples and Case Studies", "Concrete examples show how %[1]s works in practice. Working through specific scenarios bridges the gap between theory and implementation and makes the underlying principles easier to remember."},
	{"Common Misconceptions", "Many learners meet the same misunderstandings when studying %[1]s. Identifying them early, and understanding why they are wrong, is one of the fastest ways to build an accurate picture of the topic."},
	{"Advanced Insights", "Beyond the basics, %[1]s connects to other concepts and has deeper implications. Advanced understanding means recognising subtle relationships, exceptions and applications that go beyond introductory material."},
	{"Problem-Solving Approaches", "Applying %[1]s to problems calls for a systematic approach: identify what is known, choose the governing principle, apply it step by step and check the result. Regular practice turns this into a habit."},
	{"Key Takeaways", "Mastering %[1]s means understanding its principles, mechanisms, applications and problem-solving approaches. Build strong foundations first, then explore the advanced material and real-world uses."},
}

var keyPointTemplates = []string{
	"Core Definition: %[1]s represents a fundamental concept in its field. Understanding the basic definition and core principles is essential, because this concept forms the foundation for more advanced topics.",
	"Key Principles: The main principles governing %[1]s explain how and why it works. They rest on established theory validated through research and practical application.",
	"Mechanism: %[1]s operates through specific processes. Understanding the step-by-step workings clarifies how inputs are transformed into outputs.",
	"Real-World Example: %[1]s can be observed in everyday situations. Recognising these manifestations connects abstract ideas to tangible experience.",
	"Practical Applications: %[1]s is applied in technology, industry and research, which demonstrates its practical value.",
	"Mathematical Framework: Where applicable, %[1]s is described by equations that give precise ways to analyse and predict behaviour.",
	"Common Misconceptions: Learners often misunderstand parts of %[1]s. Recognising these errors early avoids pitfalls later.",
	"Advanced Insights: Beyond the basics, %[1]s connects to other concepts. Seeing those connections distinguishes mastery from familiarity.",
}

var studyFlashcards = []struct {
	term, definition, difficulty string
}{
	{"What is %[1]s?", "%[1]s is a fundamental concept built on specific principles and mechanisms, with an important role in its field and many practical applications.", "beginner"},
	{"Core Principles of %[1]s", "The main principles governing %[1]s explain its behaviour and characteristics and form the basis for its more complex aspects.", "beginner"},
	{"How %[1]s Works", "%[1]s operates through specific mechanisms; following them step by step clarifies how the components interact.", "intermediate"},
	{"Applications of %[1]s", "%[1]s is used in technology, industry and research, which shows its real-world value.", "intermediate"},
	{"Mathematical Framework of %[1]s", "Where applicable, equations describe the behaviour of %[1]s and allow precise analysis and prediction.", "intermediate"},
	{"Real-World Examples of %[1]s", "Everyday situations that demonstrate %[1]s help connect the abstract concept to tangible experience.", "intermediate"},
	{"Common Misconceptions about %[1]s", "Frequent misunderstandings of %[1]s, and why correcting them early matters for accurate understanding.", "intermediate"},
	{"Advanced Concepts in %[1]s", "Deeper insights and connections of %[1]s to other concepts that distinguish mastery from basic familiarity.", "advanced"},
	{"Problem-Solving with %[1]s", "Systematic strategies for applying %[1]s to problems, combining theory with practical skill.", "advanced"},
	{"Historical Context of %[1]s", "Key discoveries and breakthroughs that shaped how %[1]s is understood today.", "beginner"},
	{"Related Concepts to %[1]s", "How %[1]s connects to neighbouring ideas in its field, giving broader context.", "advanced"},
	{"Future Developments in %[1]s", "Recent research and emerging applications that build on the foundations of %[1]s.", "advanced"},
}

var studyQuiz = []struct {
	question    string
	options     []string
	correct     any
	explanation string
	difficulty  string
}{
	{"What is the primary focus of %[1]s?", []string{"Understanding fundamental principles and applications", "Memorizing random facts", "Avoiding practical use", "Ignoring theoretical foundations"}, 0, "The focus of %[1]s is its fundamental principles and how they apply in practice.", "easy"},
	{"%[1]s has practical real-world applications.", nil, true, "True. %[1]s is applied across technology, industry and research.", "easy"},
	{"Which aspect is most important for understanding %[1]s?", []string{"Grasping core principles and mechanisms", "Memorizing definitions only", "Skipping examples", "Avoiding practice"}, 0, "The core principles and mechanisms of %[1]s enable everything else.", "medium"},
	{"How does understanding %[1]s benefit students?", []string{"Enables problem-solving and connects theory to practice", "Has no practical value", "Only useful for tests", "Irrelevant to real world"}, 0, "Understanding %[1]s turns theory into a tool for solving problems.", "medium"},
	{"Learning %[1]s requires understanding both theory and practice.", nil, true, "True. Both the foundations and the applications of %[1]s are needed.", "medium"},
	{"What is a common misconception about %[1]s?", []string{"That it has no practical applications", "That it is well-understood", "That it is important", "That it requires study"}, 0, "Many assume %[1]s has no practical use, but it has many.", "hard"},
	{"Advanced understanding of %[1]s involves recognizing connections to other concepts.", nil, true, "True. Connections to related ideas deepen understanding of %[1]s.", "hard"},
	{"Which approach best supports learning %[1]s?", []string{"Combining theory, examples, and practice problems", "Only reading definitions", "Avoiding difficult concepts", "Skipping fundamentals"}, 0, "Theory, examples and practice together build real knowledge of %[1]s.", "hard"},
	{"What makes %[1]s relevant to modern applications?", []string{"Its principles apply to current technology and industry", "It is outdated", "It has no modern use", "It is purely theoretical"}, 0, "The principles of %[1]s underpin current technology and industry.", "hard"},
	{"Mastering %[1]s requires both foundational knowledge and advanced insights.", nil, true, "True. Expertise in %[1]s needs strong foundations and advanced study.", "medium"},
}

func f(format, topic string) string {
	if !strings.Contains(format, "%[1]s") {
		return format
	}
	return fmt.Sprintf(format, topic)
}

// StudyContent is the complete fallback bundle for topic.
func StudyContent(topic string) models.StudyContent {
	var explanation strings.Builder
	for i, s := range explanationSections {
		if i > 0 {
			explanation.WriteString("\n\n")
		}
		explanation.WriteString(f(s.heading, topic))
		explanation.WriteString("\n\n")
		explanation.WriteString(f(s.body, topic))
	}

	content := models.StudyContent{
		VideoSummary: f("%[1]s is a fundamental concept in its field of study. Understanding %[1]s is essential for grasping more advanced concepts and applications. "+
			"This topic covers the basic principles, mechanisms, and practical applications that make it relevant in both theoretical and real-world contexts. "+
			"Students studying %[1]s will learn how it works, why it matters, and where it is applied in various domains.", topic),
		DetailedExplanation: explanation.String(),
		KeyPoints:           make([]string, 0, len(keyPointTemplates)),
		Flashcards:          make([]models.Flashcard, 0, len(studyFlashcards)),
		QuizQuestions:       make([]models.QuizQuestion, 0, len(studyQuiz)),
	}
	for _, kp := range keyPointTemplates {
		content.KeyPoints = append(content.KeyPoints, f(kp, topic))
	}
	for _, c := range studyFlashcards {
		content.Flashcards = append(content.Flashcards, models.Flashcard{
			Term:       f(c.term, topic),
			Definition: f(c.definition, topic),
			Difficulty: c.difficulty,
		})
	}
	for i, q := range studyQuiz {
		item := models.QuizQuestion{
			ID:          models.FlexInt(i + 1),
			Question:    f(q.question, topic),
			Type:        models.QuizMultipleChoice,
			Options:     q.options,
			Correct:     q.correct,
			Explanation: f(q.explanation, topic),
			Difficulty:  q.difficulty,
		}
		if q.options == nil {
			item.Type = models.QuizTrueFalse
		}
		content.QuizQuestions = append(content.QuizQuestions, item)
	}
	return content
}

var flashcardAspects = []string{"Definition", "Application", "Example", "Principle", "Theory", "Practice", "Concept", "Method", "Process", "Technique"}

// Flashcards returns exactly count cards with distinct terms.
func Flashcards(topic string, count int) []models.Flashcard {
	out := make([]models.Flashcard, 0, max(count, 0))
	for i := 0; i < count; i++ {
		aspect := flashcardAspects[i%len(flashcardAspects)]
		out = append(out, models.Flashcard{
			Term:       fmt.Sprintf("%s - %s %d", topic, aspect, i+1),
			Definition: fmt.Sprintf("Important %s related to %s that helps understand the topic better from a different perspective.", strings.ToLower(aspect), topic),
		})
	}
	return out
}

// Quiz returns exactly count questions, alternating multiple choice and
// true/false.
func Quiz(topic string, count int, difficulty string) []models.QuizQuestion {
	out := make([]models.QuizQuestion, 0, max(count, 0))
	for i := 0; i < count; i++ {
		if i%2 == 0 {
			out = append(out, models.QuizQuestion{
				ID:       models.FlexInt(i + 1),
				Question: fmt.Sprintf("Which statement best describes %s?", topic),
				Type:     models.QuizMultipleChoice,
				Options: []string{
					"It is a fundamental concept in the field",
					"It has no practical applications",
					"It contradicts established theories",
					"It is only theoretical",
				},
				Correct:     0,
				Explanation: fmt.Sprintf("%s is an important concept with real-world applications and theoretical foundations.", topic),
				Difficulty:  difficulty,
			})
			continue
		}
		out = append(out, models.QuizQuestion{
			ID:          models.FlexInt(i + 1),
			Question:    fmt.Sprintf("%s has practical applications in real-world scenarios.", topic),
			Type:        models.QuizTrueFalse,
			Correct:     true,
			Explanation: fmt.Sprintf("True. %s is widely used and has many practical applications.", topic),
			Difficulty:  difficulty,
		})
	}
	return out
}

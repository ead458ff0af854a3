package templates

import "fmt"

func TutorReply(topic string) string {
	return fmt.Sprintf("Great question about %s! %s is an important concept, and the key is understanding the basics first. Would you like me to explain a specific part?", topic, topic)
}

func LearnReply() string {
	return "I'm here to help you learn! Could you rephrase your question?"
}

func CodeReply(language string) string {
	return fmt.Sprintf("I'm here to help with %s! Could you rephrase your question?", language)
}

func FlashcardExplanation(term, definition, topic string) string {
	return fmt.Sprintf("**%s**: %s\n\nThis concept is fundamental to understanding %s. Let me know if you'd like more specific details!", term, definition, topic)
}

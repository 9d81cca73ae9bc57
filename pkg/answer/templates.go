package answer

import "strings"

const (
	greetingReply = "Hi! I'm ready when you are. Ask me a technical, coding, system design, or behavioral interview question and I'll help you shape an interview-ready answer."
	thanksReply   = "You're welcome! Happy to keep going whenever you want to practice another interview question."
	partingReply  = "Good luck with your interview preparation! Come back any time you want to practice."

	offTopicReply = "That's an interesting question, but let's focus on interview preparation. " +
		"I can help with:\n\n" +
		"- Technical concepts (data structures, databases, networking, concurrency)\n" +
		"- Coding problems and their complexity\n" +
		"- System design and architecture trade-offs\n" +
		"- Behavioral questions using the STAR method\n\n" +
		"Which of these would you like to work on?"

	ambiguousReply = "Could you clarify what specific aspect you'd like to discuss? For example:\n\n" +
		"- A definition or explanation of a concept\n" +
		"- A coding solution with complexity analysis\n" +
		"- A system design walkthrough\n" +
		"- A behavioral answer based on your experience\n\n" +
		"Adding the technology, problem, or scenario you have in mind will help me give a precise answer."
)

var (
	thanksWords  = []string{"thank", "thanks", "thx", "ty"}
	partingWords = []string{"bye", "goodbye", "see you", "see ya", "cya", "take care", "gn"}
)

// Template returns the canned reply for a bypass kind. It returns "" for
// KindNormal.
func Template(kind Kind, question string) string {
	switch kind {
	case KindGreeting:
		q := strings.ToLower(strings.TrimSpace(question))
		for _, w := range thanksWords {
			if strings.HasPrefix(q, w) {
				return thanksReply
			}
		}
		for _, w := range partingWords {
			if strings.HasPrefix(q, w) {
				return partingReply
			}
		}
		return greetingReply
	case KindOffTopic:
		return offTopicReply
	case KindAmbiguous:
		return ambiguousReply
	default:
		return ""
	}
}

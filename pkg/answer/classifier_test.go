package answer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(DefaultRules())

	tests := []struct {
		name     string
		question string
		want     Kind
	}{
		{name: "bare greeting", question: "hello", want: KindGreeting},
		{name: "greeting with punctuation", question: "Hi!", want: KindGreeting},
		{name: "greeting prefix", question: "Hello there, how are you", want: KindGreeting},
		{name: "thanks", question: "thanks a lot", want: KindGreeting},
		{name: "parting", question: "Goodbye.", want: KindGreeting},
		{name: "hi prefix needs a word boundary", question: "history of the tcp protocol in networks", want: KindNormal},
		{name: "weather is off topic", question: "What's the weather like today?", want: KindOffTopic},
		{name: "movie is off topic", question: "Can you recommend a good movie?", want: KindOffTopic},
		{name: "plural keyword", question: "Who won the games yesterday evening?", want: KindOffTopic},
		{name: "off topic phrase", question: "What's your opinion on the new phone?", want: KindOffTopic},
		{name: "technical term wins over off topic", question: "Design a cache for a music streaming service", want: KindNormal},
		{name: "short without technical term", question: "why?", want: KindAmbiguous},
		{name: "short technical term", question: "api", want: KindNormal},
		{name: "vague and short", question: "What is it about?", want: KindAmbiguous},
		{name: "vague without technical term", question: "what about that thing over there again", want: KindAmbiguous},
		{name: "vague with technical term", question: "How do you reverse a linked list in Python?", want: KindNormal},
		{name: "normal behavioral", question: "Describe a conflict you resolved on your team", want: KindNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.question))
		})
	}
}

func TestBypass(t *testing.T) {
	assert.True(t, KindGreeting.Bypass())
	assert.True(t, KindOffTopic.Bypass())
	assert.True(t, KindAmbiguous.Bypass())
	assert.False(t, KindNormal.Bypass())
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		text, term string
		want       bool
	}{
		{"the news today", "news", true},
		{"newsletter signup", "news", false},
		{"board games night", "game", true},
		{"gamer tag", "game", false},
		{"a book", "book", true},
		{"facebook login", "book", false},
		{"anything", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text+"/"+tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, containsWord(tt.text, tt.term))
		})
	}
}

func TestTemplate(t *testing.T) {
	assert.Equal(t, greetingReply, Template(KindGreeting, "hey"))
	assert.Equal(t, thanksReply, Template(KindGreeting, "Thanks!"))
	assert.Equal(t, partingReply, Template(KindGreeting, "bye"))
	assert.Equal(t, offTopicReply, Template(KindOffTopic, "weather?"))
	assert.Equal(t, ambiguousReply, Template(KindAmbiguous, "why?"))
	assert.Empty(t, Template(KindNormal, "What is a mutex?"))
}

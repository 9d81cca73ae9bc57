package answer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules holds every keyword list and threshold used to classify questions and
// size answers. Fields left empty in a rules file keep their default.
type Rules struct {
	Greetings        []string `yaml:"greetings"`
	GreetingPrefixes []string `yaml:"greeting_prefixes"`

	OffTopicKeywords []string `yaml:"off_topic_keywords"`
	OffTopicPhrases  []string `yaml:"off_topic_phrases"`

	VaguePatterns  []string `yaml:"vague_patterns"`
	TechnicalTerms []string `yaml:"technical_terms"`

	MinQuestionLength int `yaml:"min_question_length"`
	MinVagueWords     int `yaml:"min_vague_words"`

	SimpleIndicators  []string `yaml:"simple_indicators"`
	CodeIndicators    []string `yaml:"code_indicators"`
	ComplexIndicators []string `yaml:"complex_indicators"`
	LongQuestionWords int      `yaml:"long_question_words"`

	ComparisonKeywords []string `yaml:"comparison_keywords"`
}

func DefaultRules() Rules {
	return Rules{
		Greetings: []string{
			"hi", "hello", "hey", "yo", "hiya", "heya",
			"good morning", "good afternoon", "good evening", "gm", "gn",
			"thank you", "thanks", "thx", "ty",
			"bye", "goodbye", "see you", "see ya", "cya", "take care",
		},
		GreetingPrefixes: []string{
			"hi ", "hello ", "hey ",
			"thank you", "thanks", "thx", "ty ",
			"good morning", "good afternoon", "good evening",
			"bye", "goodbye", "see you", "see ya",
		},
		OffTopicKeywords: []string{
			"weather", "news", "politics", "sports", "entertainment",
			"personal advice", "relationship", "health", "medical",
			"cooking", "travel", "shopping", "finance", "investment",
			"current events", "celebrity", "movie", "music", "book",
			"game", "gaming", "social media", "dating", "family",
		},
		OffTopicPhrases: []string{
			"what's happening", "what's new", "how's your day",
			"tell me about yourself personally", "what do you think about",
			"do you know about", "have you heard about", "what's your opinion",
		},
		VaguePatterns: []string{
			"how do you", "what about", "tell me about", "explain",
			"what is", "how does", "why", "when", "where",
		},
		TechnicalTerms: []string{
			"algorithm", "data structure", "database", "api", "framework",
			"language", "coding", "programming", "system", "design",
			"interview", "technical", "behavioral", "experience",
			"code", "sql", "architecture", "complexity", "hash", "tree",
			"graph", "cache", "queue", "stack", "thread", "concurrency",
			"memory", "network", "http", "rest api", "microservice", "docker",
			"kubernetes", "cloud", "python", "java", "javascript", "golang",
			"react", "closure", "recursion", "project", "team",
		},
		MinQuestionLength: 10,
		MinVagueWords:     5,
		SimpleIndicators:  []string{"what is", "define", "explain briefly", "simple", "basic"},
		CodeIndicators:    []string{"code", "implement", "write", "function", "class", "algorithm"},
		ComplexIndicators: []string{
			"architecture", "design", "system", "compare",
			"advantages", "disadvantages", "best practices",
		},
		LongQuestionWords: 40,
		ComparisonKeywords: []string{
			"compare", "versus", "vs ", "difference between", "differences between",
		},
	}
}

// LoadRules returns the default rules overlaid with the YAML file at path.
// An empty path returns the defaults.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("read rules file: %w", err)
	}

	var override Rules
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return rules, fmt.Errorf("parse rules file %s: %w", path, err)
	}

	rules.merge(override)
	return rules, nil
}

func (r *Rules) merge(o Rules) {
	mergeList(&r.Greetings, o.Greetings)
	mergeList(&r.GreetingPrefixes, o.GreetingPrefixes)
	mergeList(&r.OffTopicKeywords, o.OffTopicKeywords)
	mergeList(&r.OffTopicPhrases, o.OffTopicPhrases)
	mergeList(&r.VaguePatterns, o.VaguePatterns)
	mergeList(&r.TechnicalTerms, o.TechnicalTerms)
	mergeList(&r.SimpleIndicators, o.SimpleIndicators)
	mergeList(&r.CodeIndicators, o.CodeIndicators)
	mergeList(&r.ComplexIndicators, o.ComplexIndicators)
	mergeList(&r.ComparisonKeywords, o.ComparisonKeywords)
	if o.MinQuestionLength > 0 {
		r.MinQuestionLength = o.MinQuestionLength
	}
	if o.MinVagueWords > 0 {
		r.MinVagueWords = o.MinVagueWords
	}
	if o.LongQuestionWords > 0 {
		r.LongQuestionWords = o.LongQuestionWords
	}
}

func mergeList(dst *[]string, src []string) {
	if len(src) > 0 {
		*dst = src
	}
}

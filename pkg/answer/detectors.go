package answer

var (
	personalIndicators = []string{
		"yourself", "myself", "about you", "about me",
		"your background", "my background", "your experience", "my experience",
		"your skills", "my skills", "your strengths", "my strengths",
		"your weaknesses", "my weaknesses", "your projects", "my projects",
		"your career", "my career", "your goals", "my goals",
		"hire you", "interested in", "motivates you", "motivates me",
		"introduce", "tell me about", "describe yourself",
	}
	personalReferences = []string{
		"you are", "you have", "you did", "you worked", "you developed",
		"you created", "you built", "you designed", "you implemented",
	}
	strategyIndicators = []string{
		"optimize", "improve", "reduce", "increase", "solve", "handle",
		"implement", "approach", "strategy", "method", "technique",
		"performance", "efficiency", "scalability", "reliability",
	}
	strategyQuestionWords    = []string{"how", "what", "which", "describe", "explain"}
	strategyPersonalOverride = []string{
		"tell me about yourself", "your experience", "your background",
		"your skills", "your strengths", "your weaknesses", "your projects",
		"why should we hire you", "what motivates you", "introduce yourself",
	}

	systemDesignExclusions = []string{
		"front page", "user interface", "ui design", "mobile app interface",
		"database schema", "er diagram", "entity relationship",
		"algorithm", "data structure", "sorting", "searching",
		"frontend", "ui/ux", "user experience", "wireframe",
		"mockup", "prototype", "visual design", "layout design",
	}
	systemDesignKeywords = []string{
		"system design", "how would you design", "architecture", "architect",
		"high-level design", "low-level design", "scale to",
		"million users", "billions", "throughput", "latency",
		"load balancer", "cache", "queue", "kafka", "replication",
		"microservices", "distributed system", "scalable", "scalability",
		"api design", "service design", "component design",
		"url shortener", "chat system", "e-commerce", "video streaming",
		"file storage", "search engine", "recommendation system",
		"notification system", "payment system", "booking system", "messaging system",
		"design a", "design an", "build a system", "how would you build",
		"infrastructure", "deployment", "cloud architecture", "kubernetes",
		"high availability", "fault tolerance", "disaster recovery",
		"data pipeline", "data warehouse", "stream processing",
		"event-driven", "cqrs", "event sourcing", "saga pattern", "serverless",
	}
	databaseSchemaKeywords = []string{
		"database schema", "er diagram", "entity relationship", "database design",
		"show the database", "database structure", "table design", "schema design",
		"relational model", "database model", "data model",
	}
	uiDesignKeywords = []string{
		"front page", "user interface", "ui design", "mobile app interface",
		"frontend design", "ui/ux", "user experience", "wireframe",
		"mockup", "prototype", "visual design", "layout design",
		"design the front", "design the interface", "design the page",
	}
	algorithmKeywords = []string{
		"algorithm", "data structure", "sorting", "searching",
		"build a recommendation", "implement authentication",
	}
	contextPronouns   = []string{"this", "that", "it", "these", "those", "them"}
	contextReferences = []string{"previous", "earlier", "above", "before", "last"}
	followUpWords     = []string{"also", "additionally", "furthermore", "more", "another"}
)

func needsFirstPerson(q string) bool {
	if isTechnicalStrategy(q) {
		return false
	}
	return containsAny(q, personalIndicators) || containsAny(q, personalReferences)
}

func isTechnicalStrategy(q string) bool {
	return containsAny(q, strategyIndicators) &&
		containsAny(q, strategyQuestionWords) &&
		!containsAny(q, strategyPersonalOverride)
}

func isSystemDesign(q string) bool {
	if containsAny(q, systemDesignExclusions) {
		return false
	}
	return containsAny(q, systemDesignKeywords)
}

// hasSufficientContext reports whether the question refers back to earlier
// turns that exist.
func hasSufficientContext(q string, hasHistory bool) bool {
	if !hasHistory {
		return false
	}
	for _, list := range [][]string{contextPronouns, contextReferences, followUpWords} {
		for _, w := range list {
			if containsWord(q, w) {
				return true
			}
		}
	}
	return false
}

const personaOverrides = `Interview Persona Overrides (apply only to first-person questions):
- Answer strictly in first person as the candidate (use 'I', 'my').
- Use the provided Candidate Profile Context as the factual source.
- Keep tone conversational and professional, as in a live interview.
- Prefer a 45-60 second spoken-length response.
- Do NOT include contact links, headers, tables, or bullet lists unless requested.`

const comparisonOverrides = `Comparison Format Overrides (apply only to comparison questions):
- Produce ONE concise markdown table with headers: | Feature | A | B |.
- Keep cells short (1-2 lines).
- After the table, add an 'In short:' section with 2 bullet points summarizing A vs B.
- No extra headings, no duplicate sections, no verbose paragraphs.`

const contextFallbackOverrides = `Context Fallback Overrides (apply when context is insufficient):
- If no past context is available, proceed with a fresh, standalone answer.
- For pronouns without clear referents, ask for clarification or give a general answer.
- When context is unclear: 'Based on general interview practices...'.`

const systemDesignOverrides = `System Design Overrides (apply only to system/architecture questions):
- Structure: ### **Key Highlights** (4-6 bullets), then ### **Detailed Explanation** covering Requirements Analysis, High-Level Architecture, Component Design, Capacity Planning, Scalability & Trade-offs, Reliability & Failure Handling, Interview Takeaways.
- Include a 'Visual Architecture Diagram' section with a Mermaid flowchart code block (` + "```mermaid" + `).
- Use subgraphs for layers, solid arrows (-->), and classDef styling.
- Include back-of-envelope capacity math for scale questions (DAU -> QPS -> storage -> bandwidth).
- Justify technology choices briefly and vary stacks to fit the domain.`

const databaseSchemaOverrides = `Database Schema Overrides (apply only to database schema questions):
- Include a 'Database Schema' section with an ER diagram using Mermaid erDiagram syntax.
- Show entities, relationships, primary and foreign keys.`

const uiDesignOverrides = `UI Design Overrides (apply only to UI/UX design questions):
- Include a 'UI Design' section with a layout diagram using a Mermaid flowchart.
- Show component hierarchy (header, navigation, main content, footer).`

const algorithmOverrides = `Algorithm Overrides (apply only to algorithm questions):
- Include an 'Algorithm Flow' section with a Mermaid flowchart of the steps and decision points.
- State time and space complexity with a short justification.`

const technicalStrategyOverrides = `Technical Strategy Overrides (apply only to technical strategy questions):
- Provide GENERAL strategies any candidate can adapt to their experience.
- Use 'you can', 'one approach is', 'a common strategy' instead of first-person stories.
- Structure as: general approach -> key techniques -> implementation considerations -> expected outcomes.`

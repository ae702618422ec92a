package llm

import "strings"

const simulatedRoadmap = `## Study Roadmap Generated!

**Day 1-2: Foundation Building**
- Core concepts and definitions
- Basic problem-solving techniques
- Practice problems (Easy level)

**Day 3-4: Intermediate Concepts**
- Advanced topics and applications
- Formula derivations and proofs
- Practice problems (Medium level)

**Day 5-6: Advanced Topics**
- Complex problem-solving
- Real-world applications
- Practice problems (Hard level)

**Day 7: Revision & Assessment**
- Complete chapter review
- Mock test and evaluation
- Doubt clarification session`

const simulatedExplanation = `Let me break this down for you in simple terms:

**Key Concept:** This topic is fundamental to understanding the broader subject area.

**Real-world Connection:** You can see this concept in action when you observe everyday phenomena around you.

**Remember This:** The most important thing to remember is the underlying principle that governs this concept.

Ready for the next part?`

const simulatedQuiz = `## Quick Quiz Time!

**Question:** Which of the following best describes the concept we just learned?

A) Option A - Basic understanding
B) Option B - Intermediate application
C) Option C - Advanced concept
D) Option D - All of the above

Take your time and think about what we've covered!`

const simulatedGeneric = `Great question! Let me help you understand this better.

This concept is important because it forms the foundation for more advanced topics. Think of it as building blocks - each piece helps you understand the bigger picture.

Would you like me to explain this in a different way or shall we move forward?`

// Simulate returns a canned reply chosen by keywords in the last message.
// Keywords are matched case-sensitively in a fixed order: roadmap,
// explanation, quiz, then a generic reply. "Explain ..." and "Concepts"
// therefore do not count as explanation requests.
func Simulate(req Request) string {
	last := req.LastMessage()

	switch {
	case containsAny(last, "roadmap", "chapter"):
		return simulatedRoadmap
	case containsAny(last, "explain", "concept"):
		return simulatedExplanation
	case containsAny(last, "quiz", "question"):
		return simulatedQuiz
	default:
		return simulatedGeneric
	}
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

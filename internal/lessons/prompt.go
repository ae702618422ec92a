package lessons

import (
	"fmt"

	"github.com/abhisek/studymate/internal/profile"
)

func roadmapSystemPrompt(p profile.Profile) string {
	return fmt.Sprintf("You are an expert educational AI tutor specializing in %s preparation for %dth class students. Create detailed, day-wise study roadmaps that are engaging and effective.",
		p.ExamType, p.GradeLevel)
}

func buildRoadmapUserMessage(subject, chapter string, days int, p profile.Profile) string {
	return fmt.Sprintf("Create a %d-day study roadmap for %s - %s.\n%s\nMake it structured with daily goals, topics to cover, and practice recommendations.",
		days, subject, chapter, studentLine(p))
}

const contentSystemPrompt = `You are a friendly, engaging AI tutor. Break down complex topics into digestible chunks. Use simple language, examples, and encourage interaction. Keep each chunk to 2-3 paragraphs maximum.`

func buildContentUserMessage(topic string, chunkIndex int, p profile.Profile) string {
	return fmt.Sprintf("Explain %s in an engaging way (chunk %d).\n%s\nMake it conversational and ask a question at the end to check understanding.",
		topic, chunkIndex+1, studentLine(p))
}

const flashcardSystemPrompt = `Create engaging flashcards with clear questions and comprehensive answers. Make them memorable and fun.`

func buildFlashcardUserMessage(topic, concept string) string {
	return fmt.Sprintf(`Create a flashcard for %s focusing on %s. Format as "FRONT: question" and "BACK: answer"`, topic, concept)
}

const quizSystemPrompt = `Create multiple choice questions with 4 options and explanations. Make them challenging but fair.`

func buildQuizUserMessage(topic, difficulty string) string {
	return fmt.Sprintf(`Create a %s level quiz question about %s. Include 4 options (A, B, C, D) and the correct answer with explanation.

Respond with a JSON object with the fields "question", "options" (four strings), "correct_index" (0-3) and "explanation".`,
		difficulty, topic)
}

func studentLine(p profile.Profile) string {
	return fmt.Sprintf("Student profile: Class %d, Target: %s, Learning style: %s.", p.GradeLevel, p.ExamType, p.LearningStyle)
}

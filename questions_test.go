/*
Copyright © 2025 Daanish <daanish04@gmail.com>
*/

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cleanResponse = `[
  {
    "question": "Which planet is known as the 'Red Planet'?",
    "options": ["A) Venus", "B) Mars", "C) Jupiter", "D) Saturn"],
    "correctAnswer": "B"
  },
  {
    "question": "What is the capital of France?",
    "options": ["A) Lyon", "B) Marseille", "C) Paris", "D) Nice"],
    "correctAnswer": "C"
  }
]`

func TestParseQuestionsClean(t *testing.T) {
	questions, err := parseQuestions(cleanResponse)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "Which planet is known as the 'Red Planet'?", questions[0].Text)
	assert.Equal(t, AnswerB, questions[0].CorrectAnswer)
	assert.Equal(t, AnswerC, questions[1].CorrectAnswer)
}

func TestParseQuestionsFencedFallback(t *testing.T) {
	// Models sometimes wrap the array in prose and code fences despite the
	// prompt asking them not to.
	wrapped := "Sure! Here are your questions:\n```json\n" + cleanResponse + "\n```\nEnjoy the quiz!"

	questions, err := parseQuestions(wrapped)
	require.NoError(t, err)
	assert.Len(t, questions, 2)
}

func TestParseQuestionsGarbage(t *testing.T) {
	_, err := parseQuestions("I'm sorry, I can't help with that.")
	assert.ErrorIs(t, err, ErrUnparsableQuestions)

	_, err = parseQuestions("[]")
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestQuestionValidate(t *testing.T) {
	good := Question{
		Text:          "2 + 2?",
		Options:       []string{"A) 3", "B) 4", "C) 5", "D) 6"},
		CorrectAnswer: AnswerB,
	}
	assert.NoError(t, good.validate())

	short := good
	short.Options = []string{"A) 3", "B) 4"}
	assert.Error(t, short.validate())

	dup := good
	dup.Options = []string{"A) 3", "B) 4", "B) 4", "D) 6"}
	assert.Error(t, dup.validate())

	badKey := good
	badKey.CorrectAnswer = "E"
	assert.Error(t, badKey.validate())

	empty := good
	empty.Text = ""
	assert.Error(t, empty.validate())
}

func TestParseQuestionsRejectsInvalidEntry(t *testing.T) {
	malformed := strings.Replace(cleanResponse, `"correctAnswer": "B"`, `"correctAnswer": "Z"`, 1)

	_, err := parseQuestions(malformed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "question 1")
}

func TestParseDifficulty(t *testing.T) {
	for raw, want := range map[string]Difficulty{
		"EASY":   DifficultyEasy,
		"MEDIUM": DifficultyMedium,
		"HARD":   DifficultyHard,
	} {
		got, err := parseDifficulty(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := parseDifficulty("easy")
	assert.Error(t, err)

	_, err = parseDifficulty("")
	assert.Error(t, err)
}

func TestBuildPromptMentionsParameters(t *testing.T) {
	prompt := buildPrompt("World Geography", DifficultyHard)

	assert.Contains(t, prompt, "World Geography")
	assert.Contains(t, prompt, "HARD")
	assert.Contains(t, prompt, "60 seconds per question")
}

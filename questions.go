/*
Copyright © 2025 Daanish <daanish04@gmail.com>
*/

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"google.golang.org/genai"
)

type AnswerKey string

const (
	AnswerA AnswerKey = "A"
	AnswerB AnswerKey = "B"
	AnswerC AnswerKey = "C"
	AnswerD AnswerKey = "D"
)

func (k AnswerKey) valid() bool {
	switch k {
	case AnswerA, AnswerB, AnswerC, AnswerD:
		return true
	}
	return false
}

// Question is one multiple-choice question. JSON keys match what the
// generation prompt asks the model for, so a response array unmarshals
// directly.
type Question struct {
	Text          string    `json:"question"`
	Options       []string  `json:"options"`
	CorrectAnswer AnswerKey `json:"correctAnswer"`
}

var (
	ErrNoQuestions         = errors.New("no questions in response")
	ErrUnparsableQuestions = errors.New("could not parse questions from AI response")
)

func (q Question) validate() error {
	if q.Text == "" {
		return errors.New("empty question text")
	}
	if len(q.Options) != 4 {
		return fmt.Errorf("expected 4 options, got %d", len(q.Options))
	}
	seen := make(map[string]struct{}, 4)
	for _, opt := range q.Options {
		if opt == "" {
			return errors.New("empty option")
		}
		if _, dup := seen[opt]; dup {
			return fmt.Errorf("duplicate option: %q", opt)
		}
		seen[opt] = struct{}{}
	}
	if !q.CorrectAnswer.valid() {
		return fmt.Errorf("invalid correct answer: %q", q.CorrectAnswer)
	}
	return nil
}

// QuestionGenerator produces an ordered question list for a topic and
// difficulty. Implementations may take a while and must honor ctx.
type QuestionGenerator interface {
	Generate(ctx context.Context, topic string, difficulty Difficulty) ([]Question, error)
}

const questionCount = 10

func buildPrompt(topic string, difficulty Difficulty) string {
	return fmt.Sprintf(`Generate %d multiple-choice questions for a quiz.
The topic is: %s
The difficulty is: %s (among the game choices of 'easy', 'medium', 'hard').

Each question should have:
1. A unique question text.
2. Exactly four (4) distinct options (A, B, C, D).
3. Only one correct answer among the options.

Provide the output as a JSON array of objects, where each object represents a question.
Each question object should have the following keys:
- 'question': (string) The text of the question.
- 'options': (array of strings) An array containing the four options.
- 'correctAnswer': (string) The correct option (e.g., "A", "B", "C", "D").

Example format for a sample question:
{
  "question": "Which planet is known as the 'Red Planet'?",
  "options": ["A) Venus", "B) Mars", "C) Jupiter", "D) Saturn"],
  "correctAnswer": "B"
}

Players get %.0f seconds per question at this difficulty, so keep the questions and answers short enough that a player has time to read the question, understand it, think about it and answer.
Options should not be very verbose. Short answers so players feel its an MCQ. Also, the options should be distinct and not too similar to avoid confusion.
Have the correct answer diverse and not always a particular option; distribute it evenly among A, B, C, and D.
Ensure the questions are challenging but fair for the specified difficulty level. Avoid ambiguity in questions or options. Do not write any introductory or concluding words. Just the JSON array of objects, otherwise the backend will fail.`,
		questionCount, topic, difficulty, difficulty.perQuestion().Seconds())
}

var jsonArrayPattern = regexp.MustCompile(`\[[\s\S]*\]`)

// parseQuestions decodes a model response. Models occasionally wrap the JSON
// array in prose or code fences despite the prompt, so a failed decode falls
// back to extracting the outermost array.
func parseQuestions(text string) ([]Question, error) {
	var questions []Question

	if err := json.Unmarshal([]byte(text), &questions); err != nil {
		match := jsonArrayPattern.FindString(text)
		if match == "" {
			return nil, ErrUnparsableQuestions
		}
		if err := json.Unmarshal([]byte(match), &questions); err != nil {
			return nil, ErrUnparsableQuestions
		}
	}

	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	for i, q := range questions {
		if err := q.validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
	}

	return questions, nil
}

type geminiGenerator struct {
	client *genai.Client
	model  string
}

func newGeminiGenerator(ctx context.Context, apiKey, model string) (*geminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return &geminiGenerator{client: client, model: model}, nil
}

func (g *geminiGenerator) Generate(ctx context.Context, topic string, difficulty Difficulty) ([]Question, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(buildPrompt(topic, difficulty)),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return nil, err
	}

	return parseQuestions(resp.Text())
}

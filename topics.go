/*
Copyright © 2025 Daanish <daanish04@gmail.com>
*/

package main

import (
	"math/rand/v2"
)

type Topic struct {
	Name string `json:"name"`
}

// The static topic catalogue. New rooms get a random entry until the host
// picks something else.
var topics = []Topic{
	{Name: "History of Artificial Intelligence"},
	{Name: "Basic Calculus"},
	{Name: "World Geography"},
	{Name: "Cooking Techniques"},
	{Name: "Modern Art"},
	{Name: "Quantum Physics"},
	{Name: "Classic Literature"},
	{Name: "Computer Programming"},
}

func randomTopic() string {
	return topics[rand.IntN(len(topics))].Name
}

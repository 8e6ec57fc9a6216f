package service

import (
	"fmt"

	"github.com/aalkhodiry/ikhtibar/internal/model"
)

// standardCatalog is the fixed per-specialization question set used by the
// Standard exam mode. Catalog questions are manually authored, so
// IsGenerated stays false and ids are stable across runs.
var standardCatalog = buildStandardCatalog(map[model.Specialization][]model.Question{
	model.SoftwareEngineering: {
		{
			Text: "What is the primary purpose of a constructor in object-oriented programming?",
			Type: model.MultipleChoice,
			Options: []string{
				"To destroy an object",
				"To initialize the object's initial state",
				"To perform a deep copy",
				"To define an interface",
			},
			Answer: "To initialize the object's initial state",
		},
		{
			Text:   "The \"git clone\" command is used to create a new branch in a repository.",
			Type:   model.TrueFalse,
			Answer: "False",
		},
		{
			Text:   "In Agile software development, what is a \"sprint\"?",
			Type:   model.ShortAnswer,
			Answer: "A short, fixed period of time during which a set amount of work is completed.",
		},
		{
			Text: "Which of the following is not one of the core SOLID design principles?",
			Type: model.MultipleChoice,
			Options: []string{
				"Single responsibility principle",
				"Open/closed principle",
				"Liskov substitution principle",
				"Component reusability principle",
			},
			Answer: "Component reusability principle",
		},
	},
	model.NetworkEngineering: {
		{
			Text:    "Which layer of the OSI model is responsible for routing packets between networks?",
			Type:    model.MultipleChoice,
			Options: []string{"Data link layer", "Transport layer", "Network layer", "Physical layer"},
			Answer:  "Network layer",
		},
		{
			Text:   "What is the default subnet mask for a class C IP address?",
			Type:   model.ShortAnswer,
			Answer: "255.255.255.0",
		},
		{
			Text:   "The Transmission Control Protocol (TCP) is a connectionless protocol.",
			Type:   model.TrueFalse,
			Answer: "False",
		},
	},
	model.ArtificialIntelligence: {
		{
			Text:    "Which type of machine learning algorithm is used to predict a continuous value, such as a house price?",
			Type:    model.MultipleChoice,
			Options: []string{"Classification", "Clustering", "Regression", "Reinforcement learning"},
			Answer:  "Regression",
		},
		{
			Text:   "In a neural network, what is the role of the activation function?",
			Type:   model.ShortAnswer,
			Answer: "To introduce non-linearity into the neuron's output.",
		},
		{
			Text:   "Overfitting occurs when a model performs well on training data but poorly on unseen test data.",
			Type:   model.TrueFalse,
			Answer: "True",
		},
	},
	model.General: {
		{
			Text:   "What does the acronym CPU stand for?",
			Type:   model.ShortAnswer,
			Answer: "Central Processing Unit",
		},
		{
			Text:    "Which data structure operates on a \"last in, first out\" (LIFO) basis?",
			Type:    model.MultipleChoice,
			Options: []string{"Queue", "Stack", "Linked list", "Tree"},
			Answer:  "Stack",
		},
	},
})

// buildStandardCatalog stamps stable ids and the specialization tag onto
// the raw catalog entries.
func buildStandardCatalog(raw map[model.Specialization][]model.Question) map[model.Specialization][]model.Question {
	catalog := make(map[model.Specialization][]model.Question, len(raw))
	for spec, questions := range raw {
		stamped := make([]model.Question, len(questions))
		for i, q := range questions {
			q.ID = fmt.Sprintf("std-%s-%d", spec, i)
			q.Specialization = spec
			q.IsGenerated = false
			stamped[i] = q
		}
		catalog[spec] = stamped
	}
	return catalog
}

package service

import "career-compass/internal/domain"

// TerminalTurn es el turno que produce el finale.
const TerminalTurn = 9

// Fallback devuelve un turno generico para n. Es pura: solo depende de n.
// Nunca devuelve finale antes de TerminalTurn.
func Fallback(turn int) domain.PromptEntry {
	switch {
	case turn <= 2:
		return domain.PromptEntry{
			Turn:         turn,
			Narrative:    "The fair is busy tonight and every stall is calling your name. Which kind of stall would you visit first?",
			QuestionType: domain.QuestionSingleChoice,
			Options: []string{
				"One where things are built and repaired",
				"One full of books, maps and puzzles",
				"One where people are cared for and helped",
				"One where art, music or stories are made",
			},
		}
	case turn <= 4:
		return domain.PromptEntry{
			Turn:         turn,
			Narrative:    "A problem has stopped the fair and a group is waiting for someone to act. How do you usually work on something like this?",
			QuestionType: domain.QuestionSingleChoice,
			Options: []string{
				"I plan carefully before doing anything",
				"I jump in and figure it out as I go",
				"I bring people together and share the work",
				"I look for a creative way nobody has tried",
			},
		}
	case turn < TerminalTurn:
		return domain.PromptEntry{
			Turn:         turn,
			Narrative:    "The night is nearly over and you think about what made it worthwhile. What matters most to you in the work you do?",
			QuestionType: domain.QuestionSingleChoice,
			Options: []string{
				"Making a real difference for people",
				"Understanding how things truly work",
				"Creating something new and original",
				"Earning independence and building something of my own",
			},
		}
	default:
		return domain.PromptEntry{
			Turn:         turn,
			Narrative:    "The compass settles and the fair fades into the night. Your journey is complete.",
			QuestionType: domain.QuestionFinale,
			Options:      []string{},
		}
	}
}

// fallbackProfile es el perfil generico cuando el oraculo no entrega los campos esenciales.
func fallbackProfile() domain.TraitProfile {
	return domain.TraitProfile{
		CoreMotivators:       []string{"Curiosity", "Helping Others"},
		ProblemSolvingStyle:  "Practical Explorer",
		PreferredEnvironment: "Collaborative and Flexible",
		KeyAptitudes:         []string{"Adaptability", "Communication", "Logical Thinking"},
		Interests:            []string{"Technology", "People and Communities"},
		PersonalitySummary:   "You are a curious and adaptable person who enjoys learning how things work and using what you learn to help the people around you. You are comfortable switching between thinking on your own and working with others, and you tend to look for practical ways to turn ideas into results.",
	}
}

// fallbackCareerAdvice cumple la misma validacion de cinco caminos que las respuestas del oraculo.
func fallbackCareerAdvice() domain.CareerAdvice {
	return domain.CareerAdvice{
		Direction: "You thrive where curiosity meets purpose: roles that let you understand complex systems and use that understanding to make life better for others.",
		Paths: []domain.CareerPath{
			{
				Title:       "Community Systems Designer",
				Description: "Designs the everyday services a neighbourhood relies on, from clinic queues to bus routes, by listening to residents and testing small improvements.",
			},
			{
				Title:       "Learning Experience Builder",
				Description: "Creates hands-on lessons, games and tools that help students understand difficult ideas, blending storytelling with clear explanations.",
			},
			{
				Title:       "Health Data Translator",
				Description: "Turns numbers from hospitals and health programmes into simple stories that doctors, families and decision makers can act on.",
			},
			{
				Title:       "Sustainable Product Tinkerer",
				Description: "Prototypes and repairs everyday products so they last longer and waste less, working closely with the people who use them.",
			},
			{
				Title:       "Small Business Problem Solver",
				Description: "Helps local shops and start-ups untangle their biggest operational problems, from pricing to planning, and sets them up to grow.",
			},
		},
	}
}

package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"lizard-economy/internal/store"

	"github.com/rs/zerolog/log"
)

type seedQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  int      `json:"correct"`
}

var defaultQuestions = []seedQuestion{
	{Question: "Which lizard can change colour to signal mood?", Options: []string{"Chameleon", "Gecko", "Skink", "Monitor"}, Correct: 0},
	{Question: "What is the largest living lizard?", Options: []string{"Green iguana", "Komodo dragon", "Gila monster", "Tegu"}, Correct: 1},
	{Question: "How do many geckos climb glass?", Options: []string{"Suction cups", "Glue glands", "Microscopic hairs on their toes", "Claws"}, Correct: 2},
	{Question: "What do many lizards drop to escape predators?", Options: []string{"Scales", "Eggs", "Teeth", "Their tail"}, Correct: 3},
	{Question: "Which lizard is venomous?", Options: []string{"Gila monster", "Anole", "Bearded dragon", "Leopard gecko"}, Correct: 0},
	{Question: "Lizards are...", Options: []string{"Amphibians", "Reptiles", "Mammals", "Birds"}, Correct: 1},
	{Question: "Which sense organ do lizards flick their tongue for?", Options: []string{"Hearing", "Sight", "Jacobson's organ (smell)", "Balance"}, Correct: 2},
	{Question: "Where does the thorny devil live?", Options: []string{"Brazil", "Madagascar", "India", "Australia"}, Correct: 3},
	{Question: "The basilisk lizard is famous for...", Options: []string{"Running on water", "Flying", "Glowing", "Singing"}, Correct: 0},
	{Question: "What do most iguanas eat?", Options: []string{"Insects", "Plants", "Fish", "Other lizards"}, Correct: 1},
}

func (q seedQuestion) validate() error {
	if strings.TrimSpace(q.Question) == "" || len(q.Options) < 2 || q.Correct < 0 || q.Correct >= len(q.Options) {
		return fmt.Errorf("%w: %q", ErrInvalidQuestion, q.Question)
	}
	return nil
}

// LoadQuestions reads a JSON array of {question, options, correct}.
func LoadQuestions(path string) ([]store.QuizQuestion, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw []seedQuestion
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return toStore(raw)
}

func DefaultQuestions() []store.QuizQuestion {
	out, _ := toStore(defaultQuestions)
	return out
}

func toStore(raw []seedQuestion) ([]store.QuizQuestion, error) {
	out := make([]store.QuizQuestion, 0, len(raw))
	for _, q := range raw {
		if err := q.validate(); err != nil {
			return nil, err
		}
		out = append(out, store.QuizQuestion{Question: strings.TrimSpace(q.Question), Options: q.Options, Correct: q.Correct})
	}
	return out, nil
}

// Seed upserts questions by text so reseeding on every boot is safe.
func Seed(ctx context.Context, st *store.Store, questions []store.QuizQuestion) error {
	err := st.InTx(ctx, func(q *store.Queries) error {
		for _, qq := range questions {
			if err := q.UpsertQuizQuestion(ctx, qq); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Info().Int("count", len(questions)).Msg("quiz questions seeded")
	return nil
}

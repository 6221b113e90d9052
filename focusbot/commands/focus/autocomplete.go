package focus

import (
	"context"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/sahilm/fuzzy"
)

const maxChoices = 25

var commonActivities = []string{
	"Coding",
	"Studying",
	"Reading",
	"Writing",
	"Research",
	"Design",
	"Language Learning",
	"Music Practice",
	"Homework",
	"Planning",
}

func (h *Handler) HandleActivityAutocomplete(e *handler.AutocompleteEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var known []string
	if stats, err := h.bot.StatsRepository.Get(ctx, e.User().ID.String()); err == nil && stats != nil {
		known = stats.ActivityTypes
	}

	suggestions := suggestActivities(e.Data.String("activity"), known, maxChoices)
	choices := make([]discord.AutocompleteChoice, 0, len(suggestions))
	for _, s := range suggestions {
		choices = append(choices, discord.AutocompleteChoiceString{Name: s, Value: s})
	}
	return e.AutocompleteResult(choices)
}

// suggestActivities ranks the user's past activities ahead of the common list
// and fuzzy-filters both by query. A non-empty query is always offered first.
func suggestActivities(query string, known []string, limit int) []string {
	query = strings.TrimSpace(query)

	seen := make(map[string]struct{}, len(known)+len(commonActivities))
	candidates := make([]string, 0, len(known)+len(commonActivities))
	for _, list := range [][]string{known, commonActivities} {
		for _, a := range list {
			key := strings.ToLower(a)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			candidates = append(candidates, a)
		}
	}

	var out []string
	if query == "" {
		out = candidates
	} else {
		if _, ok := seen[strings.ToLower(query)]; !ok {
			out = append(out, query)
		}
		for _, m := range fuzzy.Find(query, candidates) {
			out = append(out, m.Str)
		}
	}

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

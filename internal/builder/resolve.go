package builder

import (
	"context"

	"github.com/specialistvlad/contentgrid/internal/content"
	"github.com/specialistvlad/contentgrid/internal/ctxlog"
)

// Resolve keeps a single entry per (source, category, name) reference. The
// entry with the greatest priority wins; on equal priority the later entry
// wins. The winner takes the slot of the reference's first appearance. The
// second return value is the number of discarded entries.
func Resolve(ctx context.Context, entries []content.Entry) ([]content.Entry, int) {
	logger := ctxlog.FromContext(ctx)

	index := make(map[content.Ref]int, len(entries))
	out := make([]content.Entry, 0, len(entries))
	dropped := 0

	for _, e := range entries {
		ref := e.Identity.Ref()
		pos, seen := index[ref]
		if !seen {
			index[ref] = len(out)
			out = append(out, e)
			continue
		}

		dropped++
		current := out[pos]
		if e.Identity.Priority >= current.Identity.Priority {
			logger.Debug("Resolver: Entry overridden.",
				"ref", ref.String(),
				"winner", e.Origin, "winner_priority", e.Identity.Priority,
				"loser", current.Origin, "loser_priority", current.Identity.Priority,
			)
			out[pos] = e
			continue
		}
		logger.Debug("Resolver: Entry discarded.",
			"ref", ref.String(),
			"winner", current.Origin, "winner_priority", current.Identity.Priority,
			"loser", e.Origin, "loser_priority", e.Identity.Priority,
		)
	}
	return out, dropped
}

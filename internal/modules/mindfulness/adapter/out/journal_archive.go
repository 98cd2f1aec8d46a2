package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"healthquest/internal/modules/mindfulness/domain"
	mindfulnessout "healthquest/internal/modules/mindfulness/port/out"
	"healthquest/internal/platform/markdown"
	"healthquest/internal/platform/slug"
)

// JournalArchive writes one markdown note per finished session into the
// journal dir, named <date>-<title-slug>.md with YAML frontmatter.
type JournalArchive struct {
	dir string
}

func NewJournalArchive(dir string) mindfulnessout.SessionArchive {
	return &JournalArchive{dir: dir}
}

func (a *JournalArchive) Archive(_ context.Context, session domain.Session) error {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return fmt.Errorf("create journal dir: %w", err)
	}
	meta := map[string]any{
		"title":            session.Title,
		"type":             string(session.Type),
		"challenge_id":     session.ChallengeID,
		"started_at":       session.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
		"duration_minutes": session.DurationSec / 60,
	}
	body := fmt.Sprintf("Completed a %d-minute %s session.\n", session.DurationSec/60, session.Type)
	content, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return fmt.Errorf("render journal note: %w", err)
	}
	name := fmt.Sprintf("%s-%s.md", session.StartedAt.Format("2006-01-02"), slug.Make(session.Title))
	if err := os.WriteFile(filepath.Join(a.dir, name), []byte(content), 0o644); err != nil {
		return fmt.Errorf("write journal note: %w", err)
	}
	return nil
}

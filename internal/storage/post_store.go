package storage

import (
	"database/sql"
	"fmt"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
)

// PostAdd appends one post to a stored graph, after every post already there.
func (s *SQLiteStore) PostAdd(graphID string, rec model.PostRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var seq int
	if err := tx.QueryRow("SELECT COALESCE(MAX(seq), -1) + 1 FROM posts WHERE graph_id = ?", graphID).Scan(&seq); err != nil {
		return fmt.Errorf("failed to get next post position: %w", err)
	}

	if err := s.touch(tx, graphID); err != nil {
		return err
	}
	if _, err := tx.Exec(insertPost, graphID, seq, rec.ID, nullable(rec.Parent), nullable(rec.Destination),
		rec.Text, rec.Score, int(rec.Auxiliary), rec.Author, unixOrZero(rec.Timestamp)); err != nil {
		return fmt.Errorf("failed to insert post %s: %w", rec.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// PostScoreUpdate stores a new score for one post.
func (s *SQLiteStore) PostScoreUpdate(graphID, postID string, score int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec("UPDATE posts SET score = ? WHERE graph_id = ? AND id = ?", score, graphID, postID)
	if err != nil {
		return fmt.Errorf("failed to update score: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("post %s of graph %s not stored", postID, graphID)
	}
	if err := s.touch(tx, graphID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// touch marks the graph as updated now.
func (s *SQLiteStore) touch(tx *sql.Tx, graphID string) error {
	result, err := tx.Exec("UPDATE graphs SET updated = ? WHERE id = ?", s.now().Unix(), graphID)
	if err != nil {
		return fmt.Errorf("failed to update graph: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("graph id %s: %w", graphID, ErrGraphNotFound)
	}
	return nil
}

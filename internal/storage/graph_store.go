package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/graph"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
)

const insertPost = `
	INSERT INTO posts (graph_id, seq, id, parent_id, destination_id, text, score, auxiliary, author, timestamp)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// GraphSave writes every post of g under name, replacing what was stored
// before. A graph saved for the first time gets a fresh id.
func (s *SQLiteStore) GraphSave(name string, g *graph.Graph) (model.GraphInfo, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return model.GraphInfo{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := s.now().Unix()
	info := model.GraphInfo{Name: name, PostCount: g.Len()}

	var created int64
	err = tx.QueryRow("SELECT id, created FROM graphs WHERE name = ?", name).Scan(&info.ID, &created)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		info.ID = uuid.New().String()
		created = now
		if _, err := tx.Exec("INSERT INTO graphs (id, name, created, updated) VALUES (?, ?, ?, ?)",
			info.ID, name, created, now); err != nil {
			return model.GraphInfo{}, fmt.Errorf("failed to add graph: %w", err)
		}
	case err != nil:
		return model.GraphInfo{}, fmt.Errorf("failed to look up graph '%s': %w", name, err)
	default:
		if _, err := tx.Exec("UPDATE graphs SET updated = ? WHERE id = ?", now, info.ID); err != nil {
			return model.GraphInfo{}, fmt.Errorf("failed to update graph: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM posts WHERE graph_id = ?", info.ID); err != nil {
			return model.GraphInfo{}, fmt.Errorf("failed to clear posts: %w", err)
		}
	}

	stmt, err := tx.Prepare(insertPost)
	if err != nil {
		return model.GraphInfo{}, fmt.Errorf("failed to prepare post insert: %w", err)
	}
	defer stmt.Close()

	for seq, rec := range g.Records() {
		if _, err := stmt.Exec(info.ID, seq, rec.ID, nullable(rec.Parent), nullable(rec.Destination),
			rec.Text, rec.Score, int(rec.Auxiliary), rec.Author, unixOrZero(rec.Timestamp)); err != nil {
			return model.GraphInfo{}, fmt.Errorf("failed to insert post %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return model.GraphInfo{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	info.Created = timeOrZero(created)
	info.Updated = timeOrZero(now)
	return info, nil
}

// GraphLoad rebuilds the named graph by replaying its posts in creation
// order, which also recomputes the moderation counters.
func (s *SQLiteStore) GraphLoad(name string) (*graph.Graph, model.GraphInfo, error) {
	info, err := s.graphInfo(name)
	if err != nil {
		return nil, model.GraphInfo{}, err
	}

	rows, err := s.db.Query(`
		SELECT id, parent_id, destination_id, text, score, auxiliary, author, timestamp
		FROM posts
		WHERE graph_id = ?
		ORDER BY seq
	`, info.ID)
	if err != nil {
		return nil, model.GraphInfo{}, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	g := graph.Empty()
	for rows.Next() {
		var (
			rec          model.PostRecord
			parent, dest sql.NullString
			aux          int
			ts           int64
		)
		if err := rows.Scan(&rec.ID, &parent, &dest, &rec.Text, &rec.Score, &aux, &rec.Author, &ts); err != nil {
			return nil, model.GraphInfo{}, fmt.Errorf("failed to scan post row: %w", err)
		}
		rec.Parent = parent.String
		rec.Destination = dest.String
		rec.Auxiliary = model.Auxiliary(aux)
		rec.Timestamp = timeOrZero(ts)

		if err := g.Validate(rec); err != nil {
			return nil, model.GraphInfo{}, fmt.Errorf("graph '%s': %w", name, err)
		}
		g.Insert(rec)
	}
	if err := rows.Err(); err != nil {
		return nil, model.GraphInfo{}, fmt.Errorf("error iterating post rows: %w", err)
	}
	if g.Len() == 0 {
		return nil, model.GraphInfo{}, fmt.Errorf("graph '%s': %w", name, ErrEmptyGraph)
	}

	info.PostCount = g.Len()
	return g, info, nil
}

func (s *SQLiteStore) graphInfo(name string) (model.GraphInfo, error) {
	var (
		info             model.GraphInfo
		created, updated int64
	)
	err := s.db.QueryRow(`
		SELECT g.id, g.name, g.created, g.updated, COUNT(p.id)
		FROM graphs g
		LEFT JOIN posts p ON p.graph_id = g.id
		WHERE g.name = ?
		GROUP BY g.id
	`, name).Scan(&info.ID, &info.Name, &created, &updated, &info.PostCount)
	if errors.Is(err, sql.ErrNoRows) {
		return model.GraphInfo{}, fmt.Errorf("graph '%s': %w", name, ErrGraphNotFound)
	}
	if err != nil {
		return model.GraphInfo{}, fmt.Errorf("failed to get graph '%s': %w", name, err)
	}
	info.Created = timeOrZero(created)
	info.Updated = timeOrZero(updated)
	return info, nil
}

// GraphList returns every stored graph ordered by name.
func (s *SQLiteStore) GraphList() ([]model.GraphInfo, error) {
	rows, err := s.db.Query(`
		SELECT g.id, g.name, g.created, g.updated, COUNT(p.id)
		FROM graphs g
		LEFT JOIN posts p ON p.graph_id = g.id
		GROUP BY g.id
		ORDER BY g.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query graphs: %w", err)
	}
	defer rows.Close()

	var graphs []model.GraphInfo
	for rows.Next() {
		var (
			info             model.GraphInfo
			created, updated int64
		)
		if err := rows.Scan(&info.ID, &info.Name, &created, &updated, &info.PostCount); err != nil {
			return nil, fmt.Errorf("failed to scan graph row: %w", err)
		}
		info.Created = timeOrZero(created)
		info.Updated = timeOrZero(updated)
		graphs = append(graphs, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating graph rows: %w", err)
	}
	return graphs, nil
}

// GraphDelete removes the named graph and its posts.
func (s *SQLiteStore) GraphDelete(name string) error {
	result, err := s.db.Exec("DELETE FROM graphs WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete graph: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("graph '%s': %w", name, ErrGraphNotFound)
	}
	return nil
}

// GraphExists reports whether a graph with the given name is stored.
func (s *SQLiteStore) GraphExists(name string) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM graphs WHERE name = ?", name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check graph existence: %w", err)
	}
	return count > 0, nil
}

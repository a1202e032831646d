package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
)

// AuthorAdd registers a new author. An empty password leaves the author
// unprotected; anyone may post under that name.
func (s *SQLiteStore) AuthorAdd(name, password string) error {
	exists, err := s.AuthorExists(name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("author '%s': %w", name, ErrAuthorExists)
	}

	var hash []byte
	if password != "" {
		hash, err = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
	}

	_, err = s.db.Exec("INSERT INTO authors (name, password_hash, created) VALUES (?, ?, ?)",
		name, hash, s.now().Unix())
	if err != nil {
		return fmt.Errorf("failed to add author: %w", err)
	}
	return nil
}

// AuthorExists checks if an author with the given name exists.
func (s *SQLiteStore) AuthorExists(name string) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM authors WHERE name = ?", name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check author existence: %w", err)
	}
	return count > 0, nil
}

// AuthorGet retrieves an author by name.
func (s *SQLiteStore) AuthorGet(name string) (*model.Author, error) {
	var (
		author  model.Author
		created int64
	)
	err := s.db.QueryRow("SELECT name, password_hash, created FROM authors WHERE name = ?", name).
		Scan(&author.Name, &author.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("author '%s': %w", name, ErrAuthorNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get author: %w", err)
	}
	author.Created = timeOrZero(created)
	return &author, nil
}

// AuthorList returns all registered authors ordered by name.
func (s *SQLiteStore) AuthorList() ([]model.AuthorInfo, error) {
	rows, err := s.db.Query("SELECT name, password_hash IS NOT NULL AND length(password_hash) > 0, created FROM authors ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	var authors []model.AuthorInfo
	for rows.Next() {
		var (
			info    model.AuthorInfo
			created int64
		)
		if err := rows.Scan(&info.Name, &info.Protected, &created); err != nil {
			return nil, fmt.Errorf("failed to scan author row: %w", err)
		}
		info.Created = timeOrZero(created)
		authors = append(authors, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating author rows: %w", err)
	}
	return authors, nil
}

// AuthorAuthenticate verifies an author's password. Unprotected authors
// accept any password.
func (s *SQLiteStore) AuthorAuthenticate(name, password string) (bool, error) {
	author, err := s.AuthorGet(name)
	if errors.Is(err, ErrAuthorNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(author.PasswordHash) == 0 {
		return true, nil
	}

	err = bcrypt.CompareHashAndPassword(author.PasswordHash, []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to compare passwords: %w", err)
	}
	return true, nil
}

package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/log"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
)

// PostDetails is the result of 'post info'.
type PostDetails struct {
	Post      *model.Post
	Role      string
	Formality model.Auxiliary
	Line      int
}

// initPostCommandHandlers initializes post command handlers
func initPostCommandHandlers() map[string]CommandHandler {
	return map[string]CommandHandler{
		"reply":  handlePostReply,
		"link":   handlePostLink,
		"clear":  handlePostClear,
		"submit": handlePostSubmit,
		"score":  handlePostScore,
		"info":   handlePostInfo,
		"list":   handlePostList,
		"find":   handlePostFind,
	}
}

// handlePostReply handles the post reply command
func handlePostReply(s *Session, cmd model.Command) (interface{}, error) {
	if err := s.DraftReply(); err != nil {
		return nil, err
	}
	return s.Draft, nil
}

// handlePostLink handles the post link command
func handlePostLink(s *Session, cmd model.Command) (interface{}, error) {
	if err := s.DraftLink(); err != nil {
		return nil, err
	}
	return s.Draft, nil
}

// handlePostClear handles the post clear command
func handlePostClear(s *Session, cmd model.Command) (interface{}, error) {
	s.DraftClear()
	return nil, nil
}

// handlePostSubmit handles the post submit command
func handlePostSubmit(s *Session, cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	text := strings.Join(cmd.Args, " ")

	post, err := s.DraftSubmit(text)
	if err != nil {
		return nil, fmt.Errorf("failed to submit post: %w", err)
	}

	s.logger.Info(ctx, "Post added", log.Fields{"post": post.ID, "parent": post.Parent.ID, "author": post.Author})
	return post, nil
}

// handlePostScore handles the post score command
func handlePostScore(s *Session, cmd model.Command) (interface{}, error) {
	var delta int
	switch cmd.Args[0] {
	case "+", "+1", "1":
		delta = 1
	case "-", "-1":
		delta = -1
	default:
		return nil, fmt.Errorf("%w: score change must be +1 or -1, got '%s'", ErrInvalidArgument, cmd.Args[0])
	}
	n, err := s.SelectedNode()
	if err != nil {
		return nil, err
	}
	post := n.Post
	if err := s.AdjustSelected(delta); err != nil {
		return nil, err
	}
	return post.Score, nil
}

// handlePostInfo handles the post info command
func handlePostInfo(s *Session, cmd model.Command) (interface{}, error) {
	n, err := s.SelectedNode()
	if err != nil {
		return nil, err
	}
	return PostDetails{
		Post:      n.Post,
		Role:      n.Role.String(),
		Formality: n.Post.Formality(),
		Line:      s.Selected,
	}, nil
}

// handlePostList handles the post list command
func handlePostList(s *Session, cmd model.Command) (interface{}, error) {
	return s.Graph.Posts(), nil
}

// handlePostFind handles the post find command
func handlePostFind(s *Session, cmd model.Command) (interface{}, error) {
	query := strings.ToLower(strings.Join(cmd.Args, " "))
	var found []*model.Post
	for _, p := range s.Graph.Posts() {
		if strings.Contains(strings.ToLower(p.Text), query) || strings.EqualFold(p.ID, query) {
			found = append(found, p)
		}
	}
	s.logger.Debug(context.Background(), "Posts found", log.Fields{"query": query, "count": len(found)})
	return found, nil
}

package model

import "time"

// GraphInfo contains basic information about a stored graph.
type GraphInfo struct {
	ID        string
	Name      string
	PostCount int
	Created   time.Time
	Updated   time.Time
}

package entities

import (
	gitforgeEntities "github.com/rios0rios0/gitforge/domain/entities"
)

// Repository is re-exported from gitforge.
type Repository = gitforgeEntities.Repository

// Head is the tip of a hosted branch at the moment it was read.
type Head struct {
	Branch    string
	CommitSHA string
	TreeSHA   string
}

package service

import (
	"go.uber.org/zap"

	"github.com/bibliotek/library-api/internal/export"
	"github.com/bibliotek/library-api/internal/repository"
	"github.com/bibliotek/library-api/pkg/auth"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type Service struct {
	repo     repository.Repository
	events   Events
	exporter *export.Writer
	tokens   *auth.Manager
	log      *zap.Logger
}

func NewService(repo repository.Repository, events Events, exporter *export.Writer, tokens *auth.Manager, log *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		events:   events,
		exporter: exporter,
		tokens:   tokens,
		log:      log,
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

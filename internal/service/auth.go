package service

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/bibliotek/library-api/internal/errs"
	"github.com/bibliotek/library-api/internal/model"
	"github.com/bibliotek/library-api/pkg/auth"
)

func (s *Service) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.AuthResponse{}, err
	}
	user, err := s.repo.CreateUser(ctx, req.Name, req.Email, string(hash))
	if err != nil {
		return model.AuthResponse{}, err
	}
	token, err := s.tokens.IssueToken(user.ID, user.Email)
	if err != nil {
		return model.AuthResponse{}, err
	}
	return model.AuthResponse{Token: token, User: user}, nil
}

func (s *Service) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.AuthResponse{}, errors.Wrap(errs.ErrUnauthorized, "invalid email or password")
		}
		return model.AuthResponse{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return model.AuthResponse{}, errors.Wrap(errs.ErrUnauthorized, "invalid email or password")
	}
	token, err := s.tokens.IssueToken(user.ID, user.Email)
	if err != nil {
		return model.AuthResponse{}, err
	}
	return model.AuthResponse{Token: token, User: user}, nil
}

func (s *Service) CurrentUser(ctx context.Context) (model.User, error) {
	claims, ok := auth.FromContext(ctx)
	if !ok {
		return model.User{}, errors.Wrap(errs.ErrUnauthorized, "no credentials in context")
	}
	return s.repo.GetUser(ctx, claims.UserID)
}

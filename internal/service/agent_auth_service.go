package service

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"inmovisitas/internal/repository"
)

type AgentAuthService interface {
	Login(email, password string) (string, error)
	CreateAgent(email, password string) error
}

type agentAuthService struct {
	repo repository.AgentAuthRepository
}

func NewAgentAuthService(repo repository.AgentAuthRepository) AgentAuthService {
	return &agentAuthService{repo: repo}
}

func (s *agentAuthService) Login(email, password string) (string, error) {
	agent, err := s.repo.GetByEmail(email)
	if err != nil {
		return "", err
	}
	if agent == nil {
		return "", errors.New("invalid credentials")
	}

	err = bcrypt.CompareHashAndPassword([]byte(agent.PasswordHash), []byte(password))
	if err != nil {
		return "", errors.New("invalid credentials")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}

	claims := jwt.MapClaims{
		"agent_id": agent.ID,
		"email":    agent.Email,
		"exp":      time.Now().Add(time.Hour * 1).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (s *agentAuthService) CreateAgent(email, password string) error {
	if email == "" || password == "" {
		return errors.New("email and password cannot be empty")
	}
	return s.repo.CreateAgent(email, password)
}

package repository

import (
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

type Agent struct {
	ID           int
	Email        string
	PasswordHash string
}

type AgentAuthRepository interface {
	GetByEmail(email string) (*Agent, error)
	CreateAgent(email, password string) error
}

type agentAuthRepository struct {
	db *sql.DB
}

func NewAgentAuthRepository(db *sql.DB) AgentAuthRepository {
	return &agentAuthRepository{db: db}
}

func (r *agentAuthRepository) GetByEmail(email string) (*Agent, error) {
	var agent Agent
	err := r.db.QueryRow("SELECT id, email, password_hash FROM agents WHERE email = $1", email).
		Scan(&agent.ID, &agent.Email, &agent.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &agent, nil
}

func (r *agentAuthRepository) CreateAgent(email, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	query := "INSERT INTO agents (email, password_hash) VALUES ($1, $2)"
	_, err = r.db.Exec(query, email, hashedPassword)
	if err != nil {
		return err
	}

	return nil
}

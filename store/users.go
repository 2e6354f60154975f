package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"starwarsApi/models"
)

// Signup creates a user. The email must not be registered yet.
func (s *Store) Signup(ctx context.Context, email, password, name string) (*models.User, error) {
	db := s.db.WithContext(ctx)

	_, err := userByEmail(db, email)

	if err == nil {
		return nil, conflict("User already exists")
	} else if CodeOf(err) != CodeUnauthorized {
		return nil, err
	}

	hash, err := hashPassword(password, s.params)

	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := models.User{
		Email:    email,
		Password: hash,
		Name:     name,
	}

	tx := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&u)

	if errors.Is(tx.Error, gorm.ErrDuplicatedKey) || (tx.Error == nil && tx.RowsAffected == 0) {
		return nil, conflict("User already exists")
	} else if tx.Error != nil {
		return nil, fmt.Errorf("create user: %w", tx.Error)
	}

	return &u, nil
}

// Login checks the email/password pair. Users still carrying a plaintext or
// bcrypt password get it replaced with an argon2id hash on success.
func (s *Store) Login(ctx context.Context, email, password string) (*models.User, error) {
	var u models.User

	db := s.db.WithContext(ctx)
	tx := db.Where("email = ?", email).First(&u)

	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, notFound("Email doesn't exist")
	} else if tx.Error != nil {
		return nil, fmt.Errorf("find user: %w", tx.Error)
	}

	match, legacy, err := comparePassword(password, u.Password)

	if err != nil {
		return nil, fmt.Errorf("compare password: %w", err)
	}

	if !match {
		return nil, unauthorized("Bad username or password")
	}

	if legacy {
		s.upgradePassword(db, &u, password)
	}

	return &u, nil
}

func (s *Store) upgradePassword(db *gorm.DB, u *models.User, password string) {
	hash, err := hashPassword(password, s.params)

	if err != nil {
		s.log.Warn().Err(err).Uint("user_id", u.ID).Msg("failed to hash legacy password")
		return
	}

	if err := db.Model(u).Update("password", hash).Error; err != nil {
		s.log.Warn().Err(err).Uint("user_id", u.ID).Msg("failed to upgrade legacy password")
		return
	}

	s.log.Info().Uint("user_id", u.ID).Msg("upgraded legacy password hash")
}

// UserByEmail resolves a token identity to its user. A miss is reported as
// Unauthorized since tokens are only issued for registered emails.
func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return userByEmail(s.db.WithContext(ctx), email)
}

func userByEmail(db *gorm.DB, email string) (*models.User, error) {
	var u models.User

	tx := db.Where("email = ?", email).First(&u)

	if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, unauthorized("User not found")
	} else if tx.Error != nil {
		return nil, fmt.Errorf("find user: %w", tx.Error)
	}

	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User

	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	if len(users) == 0 {
		return nil, errEmpty
	}

	return users, nil
}

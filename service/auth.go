package service

import (
	"context"
	"errors"
	"fmt"

	"restaurant_pos/helper"
	"restaurant_pos/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthService struct {
	db     *gorm.DB
	secret string
	log    *zap.Logger
}

func NewAuthService(db *gorm.DB, secret string, log *zap.Logger) *AuthService {
	return &AuthService{db: db, secret: secret, log: log.With(zap.String("component", "auth"))}
}

// Login checks the credentials and issues an access token. Unknown user,
// wrong password and inactive account all answer ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, input model.LoginInput) (*model.TokenData, error) {
	var user model.User
	err := s.db.WithContext(ctx).Preload("Restaurant").Where("username = ?", input.Username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: unknown user", ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if !helper.CheckPasswordHash(input.Password, user.PasswordHash) {
		s.log.Info("login rejected", zap.String("username", input.Username))
		return nil, fmt.Errorf("%w: bad password", ErrUnauthorized)
	}
	if !user.Active {
		return nil, fmt.Errorf("%w: user inactive", ErrUnauthorized)
	}

	token, err := helper.GenerateAccessToken(s.secret, model.TokenClaim{
		UserID:       user.ID,
		RestaurantID: user.RestaurantID,
		Username:     user.Username,
		Role:         user.Role,
	})
	if err != nil {
		return nil, err
	}
	return &model.TokenData{
		AccessToken: token,
		ExpiresIn:   int64(helper.AccessTokenTTL.Seconds()),
		User:        &user,
	}, nil
}

func (s *AuthService) ParseToken(token string) (model.TokenClaim, error) {
	claims, err := helper.ParseToken(s.secret, token)
	if err != nil {
		return model.TokenClaim{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return claims, nil
}

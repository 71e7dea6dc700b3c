package helper

import (
	"fmt"
	"time"

	"restaurant_pos/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const AccessTokenTTL = 12 * time.Hour

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func GenerateAccessToken(secret string, tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = tokenClaim.UserID.String()
	claims["restaurant_id"] = tokenClaim.RestaurantID.String()
	claims["username"] = tokenClaim.Username
	claims["role"] = tokenClaim.Role
	claims["exp"] = time.Now().Add(AccessTokenTTL).Unix()

	return token.SignedString([]byte(secret))
}

// ParseToken verifies an HS256 token and extracts the staff claims.
func ParseToken(secret, tokenString string) (model.TokenClaim, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return model.TokenClaim{}, err
	}
	if !token.Valid {
		return model.TokenClaim{}, fmt.Errorf("token not valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.TokenClaim{}, fmt.Errorf("unexpected claims type")
	}
	userID, err := uuid.Parse(fmt.Sprint(claims["user_id"]))
	if err != nil {
		return model.TokenClaim{}, fmt.Errorf("user_id claim: %w", err)
	}
	restaurantID, err := uuid.Parse(fmt.Sprint(claims["restaurant_id"]))
	if err != nil {
		return model.TokenClaim{}, fmt.Errorf("restaurant_id claim: %w", err)
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return model.TokenClaim{
		UserID:       userID,
		RestaurantID: restaurantID,
		Username:     username,
		Role:         role,
	}, nil
}

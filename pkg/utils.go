package pkg

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/DedS3t/monopoly-auction/app/models"
	jwt "github.com/form3tech-oss/jwt-go"
)

const letters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

var ErrBadToken = errors.New("bad participant token")

var (
	srcMu sync.Mutex
	src   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandString returns a room code.
func RandString(n int) string {
	srcMu.Lock()
	defer srcMu.Unlock()
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[src.Intn(len(letters))]
	}
	return string(b)
}

// NewToken signs a participant identity for one game room.
func NewToken(secret string, p models.Participant) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = p.User_id
	claims["game_id"] = p.Game_id
	claims["name"] = p.Name
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, raw string) (models.Participant, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return models.Participant{}, fmt.Errorf("%w: %v", ErrBadToken, err)
	}
	return FromClaims(token.Claims.(jwt.MapClaims))
}

// FromClaims reads the participant back out of verified token claims.
func FromClaims(claims jwt.MapClaims) (models.Participant, error) {
	var p models.Participant
	var ok bool
	if p.User_id, ok = claims["user_id"].(string); !ok {
		return p, fmt.Errorf("%w: missing user_id", ErrBadToken)
	}
	if p.Game_id, ok = claims["game_id"].(string); !ok {
		return p, fmt.Errorf("%w: missing game_id", ErrBadToken)
	}
	if p.Name, ok = claims["name"].(string); !ok {
		return p, fmt.Errorf("%w: missing name", ErrBadToken)
	}
	return p, nil
}

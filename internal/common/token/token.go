package token

import (
	"crypto/rand"
	"math/big"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_token.go github.com/davemolk/countryguessr/internal/common/token Generator

// Generator produces short session identifiers
type Generator interface {
	NewToken() string
}

const (
	alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	length   = 6
)

// Default implements Generator using crypto/rand
type Default struct{}

func New() *Default {
	return &Default{}
}

// NewToken returns a 6 character lowercase alphanumeric token
func (d *Default) NewToken() string {
	max := big.NewInt(int64(len(alphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken
			panic(err)
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf)
}

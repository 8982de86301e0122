package utils

import (
	"math/rand"
	"strings"
	"time"

	"github.com/speps/go-hashids/v2"
)

// ReferenceGenerator produces short, human-friendly order references
// that are safe to read out over support calls. Uniqueness is enforced
// by the database, the generator only makes collisions unlikely.
type ReferenceGenerator struct {
	codec *hashids.HashID
}

func NewReferenceGenerator(salt string) (*ReferenceGenerator, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 12
	hd.Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	codec, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, err
	}

	return &ReferenceGenerator{codec: codec}, nil
}

// NewOrderReference encodes the current time plus a random component,
// e.g. "SK-M8Q2TPN4WXYZ".
func (g *ReferenceGenerator) NewOrderReference() (string, error) {
	ref, err := g.codec.EncodeInt64([]int64{time.Now().UnixMilli(), rand.Int63n(1 << 20)})
	if err != nil {
		return "", err
	}
	return "SK-" + strings.ToUpper(ref), nil
}

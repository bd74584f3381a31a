package domain

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// idLength is the number of hex characters in an identifier token.
const idLength = 32

// Id is an opaque identifier used for publishers, sites, zones, users,
// campaigns, banners, impressions and tracking tokens. It is a validated
// 32-character hexadecimal string, stored lowercase, compared by value.
type Id struct {
	value string
}

// NewId validates and canonicalises an identifier token.
func NewId(value string) (Id, error) {
	if value == "" {
		return Id{}, invariantf("id cannot be empty")
	}
	if len(value) != idLength {
		return Id{}, invariantf("id `%s` must be %d hexadecimal characters", value, idLength)
	}
	if _, err := hex.DecodeString(value); err != nil {
		return Id{}, invariantf("id `%s` must be %d hexadecimal characters", value, idLength)
	}
	return Id{value: strings.ToLower(value)}, nil
}

// NewUniqueId mints a fresh random identifier.
func NewUniqueId() Id {
	u := uuid.New()
	return Id{value: hex.EncodeToString(u[:])}
}

func (id Id) String() string {
	return id.value
}

// IsZero reports whether the id is the uninitialised zero value.
func (id Id) IsZero() bool {
	return id.value == ""
}

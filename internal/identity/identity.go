// Package identity implements the mock Aadhaar verification flow. No UIDAI
// integration exists; a well-formed number is accepted and marked verified.
package identity

import (
	"context"
	"regexp"

	"github.com/rotisserie/eris"

	"github.com/suraksha-app/suraksha/internal/model"
	"github.com/suraksha-app/suraksha/internal/store"
)

// ErrInvalidNumber is returned for anything other than a 12-digit number.
var ErrInvalidNumber = eris.New("identity: invalid aadhaar number")

var aadhaarPattern = regexp.MustCompile(`^\d{12}$`)

// Service verifies identity documents against the stored profile.
type Service struct {
	store store.Store
}

// NewService creates an identity service.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// VerifyAadhaar validates the number format and marks the profile verified.
// Only the masked form of the number is persisted.
func (s *Service) VerifyAadhaar(ctx context.Context, number string) (*model.Profile, error) {
	if !aadhaarPattern.MatchString(number) {
		return nil, ErrInvalidNumber
	}

	p, err := s.store.GetProfile(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "identity: get profile")
	}

	p.AadhaarVerified = true
	p.AadhaarNumber = Mask(number)

	updated, err := s.store.UpdateProfile(ctx, *p)
	if err != nil {
		return nil, eris.Wrap(err, "identity: update profile")
	}
	return updated, nil
}

// Mask hides all but the last four digits of an Aadhaar number.
func Mask(number string) string {
	if len(number) != 12 {
		return ""
	}
	return "XXXX-XXXX-" + number[8:]
}

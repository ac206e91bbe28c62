package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pdstore/internal/common"
)

// domainErrors pass through the service layer unchanged.
var domainErrors = []error{
	common.ErrInvalidInput,
	common.ErrNoChallenges,
	common.ErrUnknownChallenge,
	common.ErrUserNotFound,
	common.ErrEmailInUse,
	common.ErrStoreUnavailable,
	context.Canceled,
	context.DeadlineExceeded,
}

// storeError marks err as a collaborator failure unless it already carries
// a domain meaning or comes from the caller's context.
func storeError(op string, err error) error {
	for _, d := range domainErrors {
		if errors.Is(err, d) {
			return err
		}
	}
	return fmt.Errorf("%s: %w: %w", op, common.ErrStoreUnavailable, err)
}

package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"recruit_messaging/internal/domain"
	"recruit_messaging/internal/repository"
	apperrors "recruit_messaging/pkg/errors"
)

// resolveSide returns the id that represents the actor's side of a room.
// Company users act on behalf of their company group.
func resolveSide(ctx context.Context, companies repository.CompanyRepository, actor domain.Actor) (uuid.UUID, error) {
	switch actor.Type {
	case domain.ActorTypeCandidate:
		return actor.ID, nil
	case domain.ActorTypeCompanyUser:
		user, err := companies.GetUser(ctx, actor.ID)
		if err != nil {
			return uuid.Nil, err
		}
		return user.CompanyGroupID, nil
	default:
		return uuid.Nil, fmt.Errorf("%w: %s actors have no room side", apperrors.ErrForbidden, actor.Type)
	}
}

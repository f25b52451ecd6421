package usecase

import (
	"context"
	"fmt"

	"effettobot/internal/domain/entity"
	"effettobot/internal/domain/repository"
	"effettobot/internal/domain/service"
	"effettobot/pkg/errors"
	"effettobot/pkg/logger"
)

type AuthorizationUseCase struct {
	authRepo repository.AuthorizationRepository
	configUC *ConfigUseCase
	platform service.ChatPlatform
}

func NewAuthorizationUseCase(
	authRepo repository.AuthorizationRepository,
	configUC *ConfigUseCase,
	platform service.ChatPlatform,
) *AuthorizationUseCase {
	return &AuthorizationUseCase{
		authRepo: authRepo,
		configUC: configUC,
		platform: platform,
	}
}

// Authorize records the allow-list entry and grants the configured review
// role. The role grant is best-effort: a platform failure there is logged,
// the authorization itself stands.
func (uc *AuthorizationUseCase) Authorize(ctx context.Context, userID, authorizedBy string) error {
	authorized, err := uc.authRepo.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if authorized {
		return errors.Conflict(fmt.Sprintf("<@%s> is already authorized to leave reviews!", userID))
	}

	roleID, err := uc.configUC.Get(ctx, entity.ConfigReviewRole)
	if err != nil {
		return err
	}
	if roleID == "" {
		return errors.BadRequest("Review role is not configured. Please run `/setup` first.", nil)
	}

	if err := uc.authRepo.Upsert(ctx, &entity.ReviewAuthorization{
		UserID:       userID,
		AuthorizedBy: authorizedBy,
	}); err != nil {
		return err
	}

	if err := uc.platform.GrantRole(ctx, userID, roleID); err != nil {
		logger.LogDeliveryError(userID, "grant_review_role", err)
	}

	return nil
}

func (uc *AuthorizationUseCase) Deauthorize(ctx context.Context, userID string) error {
	authorized, err := uc.authRepo.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !authorized {
		return errors.Conflict(fmt.Sprintf("<@%s> is not authorized to leave reviews!", userID))
	}

	if err := uc.authRepo.Delete(ctx, userID); err != nil {
		return err
	}

	roleID, err := uc.configUC.Get(ctx, entity.ConfigReviewRole)
	if err == nil && roleID != "" {
		if err := uc.platform.RevokeRole(ctx, userID, roleID); err != nil {
			logger.LogDeliveryError(userID, "revoke_review_role", err)
		}
	}

	return nil
}

func (uc *AuthorizationUseCase) IsAuthorized(ctx context.Context, userID string) (bool, error) {
	return uc.authRepo.Exists(ctx, userID)
}

package usecase

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"time"

	"effettobot/internal/domain/entity"
	"effettobot/internal/domain/repository"
	"effettobot/internal/domain/service"
	"effettobot/pkg/errors"
	"effettobot/pkg/logger"
)

var reactionEmojis = []string{"🔥", "❤️", "🔝"}

type ReviewUseCase struct {
	reviewRepo repository.ReviewRepository
	catalog    *CatalogUseCase
	authUC     *AuthorizationUseCase
	configUC   *ConfigUseCase
	sessions   *SessionStore
	platform   service.ChatPlatform
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	catalog *CatalogUseCase,
	authUC *AuthorizationUseCase,
	configUC *ConfigUseCase,
	sessions *SessionStore,
	platform service.ChatPlatform,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo: reviewRepo,
		catalog:    catalog,
		authUC:     authUC,
		configUC:   configUC,
		sessions:   sessions,
		platform:   platform,
	}
}

// StartSubmission gates the flow on the authorization registry and returns
// the catalog for the product-selection step. The gate is advisory: it is
// checked here and not re-verified by the later phases.
func (uc *ReviewUseCase) StartSubmission(ctx context.Context, userID string) ([]*entity.Product, error) {
	authorized, err := uc.authUC.IsAuthorized(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !authorized {
		return nil, errors.Forbidden("You are not authorized to leave reviews. Contact an administrator for authorization.", nil)
	}

	products, err := uc.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, errors.NotFoundMsg("No products available for review.")
	}

	return products, nil
}

// SelectProduct validates the typed or picked name against the catalog,
// case-insensitively, and seeds the session with the canonical name and
// emoji. Any prior session for the user is discarded.
func (uc *ReviewUseCase) SelectProduct(ctx context.Context, userID, productName string) (*ReviewSession, error) {
	product, err := uc.catalog.GetByName(ctx, productName)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, errors.NotFoundMsg(fmt.Sprintf("Product %q not found. Please check the spelling and try again.", productName))
		}
		return nil, err
	}

	session := &ReviewSession{
		UserID:       userID,
		ProductName:  product.Name,
		ProductEmoji: product.DisplayEmoji(),
		StartedAt:    time.Now(),
	}
	uc.sessions.Put(session)

	return session, nil
}

// SubmitRating validates first and only then consults the session, so
// malformed input never costs the submitter their in-progress session.
func (uc *ReviewUseCase) SubmitRating(ctx context.Context, userID, raw string) (*ReviewSession, error) {
	rating, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.BadRequest("Invalid rating. Please enter a number between 0.5 and 5.0 (e.g., 4.5).", nil)
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}

	session, ok := uc.sessions.Get(userID)
	if !ok {
		return nil, errors.Conflict("Session expired. Please start the review process again with `/review`.")
	}

	session.Rating = rating
	session.RatingSet = true
	uc.sessions.Put(session)

	return session, nil
}

type SubmitDescriptionInput struct {
	Description string `validate:"required,max=1000"`
}

// SubmitDescription completes the flow: it persists the pending review,
// clears the session and posts the approval request when an approval
// channel is configured. The submitter is acknowledged by the caller
// whether or not that channel exists.
func (uc *ReviewUseCase) SubmitDescription(ctx context.Context, userID, username, description string) (*entity.Review, *ReviewSession, error) {
	input := SubmitDescriptionInput{Description: description}
	if err := validate.Struct(&input); err != nil {
		return nil, nil, errors.BadRequest(fmt.Sprintf("The description must be between 1 and %d characters.", entity.ReviewDescriptionMaxLen), err)
	}

	session, ok := uc.sessions.Get(userID)
	if !ok || !session.RatingSet {
		return nil, nil, errors.Conflict("Session expired. Please start the review process again with `/review`.")
	}

	review := &entity.Review{
		UserID:      userID,
		Username:    username,
		ProductName: session.ProductName,
		Rating:      session.Rating,
		Description: description,
	}
	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, nil, err
	}

	uc.sessions.Delete(userID)
	uc.postApprovalRequest(ctx, review, session.ProductEmoji)

	return review, session, nil
}

// Approve flips the review to approved and publishes the public summary.
// Publication failure is logged and never reverses the approval.
func (uc *ReviewUseCase) Approve(ctx context.Context, reviewID, adminID string) (*entity.Review, error) {
	review, err := uc.reviewRepo.Decide(ctx, reviewID, entity.ReviewApproved, adminID)
	if err != nil {
		return nil, err
	}

	uc.publishReview(ctx, review)
	return review, nil
}

func (uc *ReviewUseCase) Reject(ctx context.Context, reviewID, adminID string) (*entity.Review, error) {
	return uc.reviewRepo.Decide(ctx, reviewID, entity.ReviewRejected, adminID)
}

func (uc *ReviewUseCase) ListByStatus(ctx context.Context, status entity.ReviewStatus) ([]*entity.Review, error) {
	return uc.reviewRepo.ListByStatus(ctx, status)
}

func (uc *ReviewUseCase) ListApprovedByProduct(ctx context.Context, productName string) ([]*entity.Review, error) {
	return uc.reviewRepo.ListApprovedByProduct(ctx, productName)
}

func validateRating(rating float64) error {
	if rating < entity.ReviewRatingMin || rating > entity.ReviewRatingMax {
		return errors.BadRequest("Invalid rating. Please enter a number between 0.5 and 5.0 (e.g., 4.5).", nil)
	}
	if steps := rating / entity.ReviewRatingStep; steps != math.Trunc(steps) {
		return errors.BadRequest("Ratings move in half-star steps. Please enter a value like 3.5 or 4.0.", nil)
	}
	return nil
}

func (uc *ReviewUseCase) postApprovalRequest(ctx context.Context, review *entity.Review, emoji string) {
	approvalChannelID, err := uc.configUC.Get(ctx, entity.ConfigReviewApprovalChannel)
	if err != nil || approvalChannelID == "" {
		if err != nil {
			logger.LogDeliveryError(review.ID, "approval_channel_lookup", err)
		}
		return
	}

	now := time.Now()
	msg := service.OutboundMessage{
		Embeds: []service.Embed{{
			Title:       "📋 Review Pending Approval",
			Color:       0x0099ff,
			Description: fmt.Sprintf("**%s** submitted a review for **%s %s**", review.Username, emoji, review.ProductName),
			Fields: []service.EmbedField{
				{Name: "Rating", Value: fmt.Sprintf("%s (%.1f/5)", review.Stars(), review.Rating), Inline: true},
				{Name: "Product", Value: review.ProductName, Inline: true},
				{Name: "Review", Value: review.Description, Inline: false},
			},
			FooterText: fmt.Sprintf("Review ID: %s", review.ID),
			Timestamp:  &now,
		}},
		Rows: []service.ActionRow{{
			Buttons: []service.Button{
				{CustomID: "approve_review:" + review.ID, Label: "Approve", Style: service.ButtonSuccess, Emoji: "✅"},
				{CustomID: "reject_review:" + review.ID, Label: "Reject", Style: service.ButtonDanger, Emoji: "❌"},
			},
		}},
	}

	if _, err := uc.platform.Send(ctx, approvalChannelID, msg); err != nil {
		logger.LogDeliveryError(approvalChannelID, "approval_request_send", err)
	}
}

func (uc *ReviewUseCase) publishReview(ctx context.Context, review *entity.Review) {
	reviewChannelID, err := uc.configUC.Get(ctx, entity.ConfigReviewChannel)
	if err != nil || reviewChannelID == "" {
		if err != nil {
			logger.LogDeliveryError(review.ID, "review_channel_lookup", err)
		}
		return
	}

	fields := []service.EmbedField{
		{Name: "Rating", Value: fmt.Sprintf("%s (%.1f/5)", review.Stars(), review.Rating), Inline: true},
		{Name: "Product", Value: review.ProductName, Inline: true},
	}
	if product, err := uc.catalog.GetByName(ctx, review.ProductName); err == nil && product.Price > 0 {
		fields = append(fields, service.EmbedField{
			Name: "Price", Value: fmt.Sprintf("€%.2f", product.Price), Inline: true,
		})
	}
	fields = append(fields, service.EmbedField{Name: "Review", Value: review.Description, Inline: false})

	now := time.Now()
	msg := service.OutboundMessage{
		Embeds: []service.Embed{{
			Title:       "⭐ New Review",
			Color:       0xffd700,
			Description: fmt.Sprintf("**%s** left a review for **%s**", review.Username, review.ProductName),
			Fields:      fields,
			FooterText:  fmt.Sprintf("Review ID: %s", review.ID),
			Timestamp:   &now,
		}},
	}

	messageID, err := uc.platform.Send(ctx, reviewChannelID, msg)
	if err != nil {
		logger.LogDeliveryError(reviewChannelID, "review_publish", err)
		return
	}

	emoji := reactionEmojis[rand.Intn(len(reactionEmojis))]
	if err := uc.platform.React(ctx, reviewChannelID, messageID, emoji); err != nil {
		logger.LogDeliveryError(reviewChannelID, "review_reaction", err)
	}
}

package dispatch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"effettobot/internal/domain/entity"
	"effettobot/internal/domain/service"
	"effettobot/pkg/errors"
)

func (d *Dispatcher) handleReviewCommand(ctx context.Context, ic *Interaction, r service.InteractionResponder) error {
	products, err := d.reviewUC.StartSubmission(ctx, ic.User.ID)
	if err != nil {
		return err
	}

	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, fmt.Sprintf("%s %s", p.DisplayEmoji(), p.Name))
	}

	return r.ShowModal(ctx, service.Modal{
		CustomID: "review_phase1_modal",
		Title:    "⭐ Phase 1: Select Product",
		Fields: []service.ModalField{
			{
				CustomID:  "product_selection",
				Label:     "Available Products:",
				Value:     strings.Join(lines, "\n"),
				Paragraph: true,
				MaxLength: 1000,
			},
			{
				CustomID:    "selected_product",
				Label:       "Product name:",
				Placeholder: "e.g., Logo Design",
				Required:    true,
				MaxLength:   100,
			},
		},
	})
}

func (d *Dispatcher) handleReviewsCommand(ctx context.Context, ic *Interaction, r service.InteractionResponder) error {
	products, err := d.reviewUC.StartSubmission(ctx, ic.User.ID)
	if err != nil {
		return err
	}

	options := make([]service.SelectOption, 0, len(products))
	for _, p := range products {
		options = append(options, service.SelectOption{
			Label:       p.Name,
			Value:       p.Name,
			Description: fmt.Sprintf("Review %s", p.Name),
		})
	}

	msg := embedMessage("⭐ Leave a Review",
		"Please select a product to review from the dropdown below.", 0x0099ff)
	msg.Embeds[0].FooterText = "You can only review products you have purchased"
	msg.Rows = []service.ActionRow{{
		Menu: &service.SelectMenu{
			CustomID:    "select_product",
			Placeholder: "Choose a product to review",
			Options:     options,
		},
	}}
	return r.Reply(ctx, msg, true)
}

func (d *Dispatcher) handleProductSelection(ctx context.Context, ic *Interaction, r service.InteractionResponder) error {
	if len(ic.Values) == 0 {
		return errors.BadRequest("No product selected.", nil)
	}

	session, err := d.reviewUC.SelectProduct(ctx, ic.User.ID, ic.Values[0])
	if err != nil {
		return err
	}

	msg := embedMessage("⭐ Rate Your Experience",
		fmt.Sprintf("You selected: **%s %s**\n\nPlease rate your experience with this product.", session.ProductEmoji, session.ProductName), 0x770380)
	msg.Embeds[0].FooterText = "Your rating will be saved and may be reviewed by staff"
	msg.Rows = []service.ActionRow{{
		Menu: &service.SelectMenu{
			CustomID:    "select_rating",
			Placeholder: "Choose a rating (1-5 stars)",
			Options: []service.SelectOption{
				{Label: "⭐ 1 Star", Value: "1", Description: "Poor"},
				{Label: "⭐⭐ 2 Stars", Value: "2", Description: "Fair"},
				{Label: "⭐⭐⭐ 3 Stars", Value: "3", Description: "Good"},
				{Label: "⭐⭐⭐⭐ 4 Stars", Value: "4", Description: "Very Good"},
				{Label: "⭐⭐⭐⭐⭐ 5 Stars", Value: "5", Description: "Excellent"},
			},
		},
	}}
	return r.Update(ctx, msg)
}

// handleRatingSelection funnels the menu entry point into the same modal
// phase 3 the /review flow uses; there is exactly one description capture
// mechanism.
func (d *Dispatcher) handleRatingSelection(ctx context.Context, ic *Interaction, r service.InteractionResponder) error {
	if len(ic.Values) == 0 {
		return errors.BadRequest("No rating selected.", nil)
	}

	if _, err := d.reviewUC.SubmitRating(ctx, ic.User.ID, ic.Values[0]); err != nil {
		return err
	}

	return r.ShowModal(ctx, descriptionModal())
}

func (d *Dispatcher) handleReviewPhase1(ctx context.Context, ic *Interaction, r service.InteractionResponder) error {
	if _, err := d.reviewUC.SelectProduct(ctx, ic.User.ID, ic.Fields["selected_product"]); err != nil {
		return err
	}

	return r.ShowModal(ctx, service.Modal{
		CustomID: "review_phase2_modal",
		Title:    "⭐ Phase 2: Rate Your Experience",
		Fields: []service.ModalField{{
			CustomID:    "star_rating",
			Label:       "Rating (0.5-5.0 stars):",
			Placeholder: "e.g., 4.5 (for 4.5 stars)",
			Required:    true,
			MaxLength:   3,
		}},
	})
}

func (d *Dispatcher) handleReviewPhase2(ctx context.Context, ic *Interaction, r service.InteractionResponder) error {
	if _, err := d.reviewUC.SubmitRating(ctx, ic.User.ID, ic.Fields["star_rating"]); err != nil {
		return err
	}

	return r.ShowModal(ctx, descriptionModal())
}

func (d *Dispatcher) handleReviewPhase3(ctx context.Context, ic *Interaction, r service.InteractionResponder) error {
	review, session, err := d.reviewUC.SubmitDescription(ctx, ic.User.ID, ic.User.Username, ic.Fields["review_description"])
	if err != nil {
		return err
	}

	description := review.Description
	if len(description) > 200 {
		description = description[:200] + "..."
	}

	msg := embedMessage("✅ Review Submitted Successfully!", "Thank you for your review!", 0x00ff00)
	msg.Embeds[0].Fields = []service.EmbedField{
		{Name: "Product", Value: fmt.Sprintf("%s %s", session.ProductEmoji, review.ProductName), Inline: true},
		{Name: "Rating", Value: fmt.Sprintf("%s (%.1f/5)", review.Stars(), review.Rating), Inline: true},
		{Name: "Description", Value: description, Inline: false},
	}
	msg.Embeds[0].FooterText = "Your review is pending approval by staff"
	return r.Reply(ctx, msg, true)
}

func (d *Dispatcher) handleApproveReview(ctx context.Context, ic *Interaction, r service.InteractionResponder) error {
	if !ic.Perms.Elevated() {
		return errors.Forbidden("You do not have permission to decide reviews.", nil)
	}

	_, reviewID := customIDKey(ic.CustomID)
	review, err := d.reviewUC.Approve(ctx, reviewID, ic.User.ID)
	if err != nil {
		return err
	}

	return r.Update(ctx, decisionMessage(review))
}

func (d *Dispatcher) handleRejectReview(ctx context.Context, ic *Interaction, r service.InteractionResponder) error {
	if !ic.Perms.Elevated() {
		return errors.Forbidden("You do not have permission to decide reviews.", nil)
	}

	_, reviewID := customIDKey(ic.CustomID)
	review, err := d.reviewUC.Reject(ctx, reviewID, ic.User.ID)
	if err != nil {
		return err
	}

	return r.Update(ctx, decisionMessage(review))
}

// decisionMessage rewrites the approval request to reflect the decision and
// strips the approve/reject buttons.
func decisionMessage(review *entity.Review) service.OutboundMessage {
	title := "✅ Review Approved"
	color := 0x00ff00
	if review.Status == entity.ReviewRejected {
		title = "❌ Review Rejected"
		color = 0xff6b6b
	}

	now := time.Now()
	return service.OutboundMessage{
		Embeds: []service.Embed{{
			Title:       title,
			Color:       color,
			Description: fmt.Sprintf("**%s**'s review of **%s** was decided by <@%s>.", review.Username, review.ProductName, review.DecidedBy),
			Fields: []service.EmbedField{
				{Name: "Rating", Value: fmt.Sprintf("%s (%.1f/5)", review.Stars(), review.Rating), Inline: true},
				{Name: "Product", Value: review.ProductName, Inline: true},
				{Name: "Review", Value: review.Description, Inline: false},
			},
			FooterText: fmt.Sprintf("Review ID: %s", review.ID),
			Timestamp:  &now,
		}},
	}
}

func descriptionModal() service.Modal {
	return service.Modal{
		CustomID: "review_phase3_modal",
		Title:    "⭐ Phase 3: Describe Your Experience",
		Fields: []service.ModalField{{
			CustomID:    "review_description",
			Label:       "Describe your experience:",
			Placeholder: "Share your thoughts about the product...",
			Paragraph:   true,
			Required:    true,
			MaxLength:   1000,
		}},
	}
}

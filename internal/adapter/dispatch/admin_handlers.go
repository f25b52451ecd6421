package dispatch

import (
	"context"
	"fmt"
	"strings"

	"effettobot/internal/domain/entity"
	"effettobot/internal/domain/service"
	"effettobot/pkg/errors"
	"effettobot/pkg/logger"
)

func (d *Dispatcher) handleSetup(ctx context.Context, ic *Interaction, r service.InteractionResponder) error {
	if !ic.Perms.Administrator {
		return errors.Forbidden("You do not have permission to run setup.", nil)
	}

	for _, required := range []string{"transcript_channel", "ticket_channel", "review_role"} {
		if ic.Options[required] == "" {
			return errors.BadRequest(fmt.Sprintf("Missing required option `%s`.", required), nil)
		}
	}

	values := map[string]string{
		entity.ConfigTranscriptChannel:     ic.Options["transcript_channel"],
		entity.ConfigTicketChannel:         ic.Options["ticket_channel"],
		entity.ConfigTicketCategory:        ic.Options["ticket_category"],
		entity.ConfigReviewChannel:         ic.Options["review_channel"],
		entity.ConfigReviewApprovalChannel: ic.Options["review_approval_channel"],
		entity.ConfigReviewRole:            ic.Options["review_role"],
		entity.ConfigPaypalLink:            ic.Options["paypal_link"],
	}
	if err := d.configUC.SetMany(ctx, values); err != nil {
		return err
	}

	d.postTicketPanel(ctx, ic.Options["ticket_channel"])

	var b strings.Builder
	b.WriteString(fmt.Sprintf("**Transcript channel:** <#%s>\n", ic.Options["transcript_channel"]))
	b.WriteString(fmt.Sprintf("**Ticket channel:** <#%s>\n", ic.Options["ticket_channel"]))
	b.WriteString(fmt.Sprintf("**Review role:** <@&%s>\n", ic.Options["review_role"]))
	if v := ic.Options["ticket_category"]; v != "" {
		b.WriteString(fmt.Sprintf("**Ticket category:** %s\n", v))
	}
	if v := ic.Options["review_channel"]; v != "" {
		b.WriteString(fmt.Sprintf("**Review channel:** <#%s>\n", v))
	}
	if v := ic.Options["review_approval_channel"]; v != "" {
		b.WriteString(fmt.Sprintf("**Review approval channel:** <#%s>\n", v))
	}

	msg := embedMessage("✅ Setup Complete", b.String(), 0x00ff00)
	return r.Reply(ctx, msg, true)
}

// postTicketPanel drops the persistent open-ticket entry point into the
// configured ticket channel. Failure is logged; the configuration write
// already succeeded.
func (d *Dispatcher) postTicketPanel(ctx context.Context, channelID string) {
	msg := embedMessage("🎫 Support Tickets",
		"Need help? Click the button below to open a private support ticket with our staff.", 0x770380)
	msg.Embeds[0].FooterText = "One open ticket per user"
	msg.Rows = []service.ActionRow{{
		Buttons: []service.Button{{
			CustomID: "open_ticket",
			Label:    "Open Ticket",
			Style:    service.ButtonPrimary,
			Emoji:    "🎫",
		}},
	}}

	if _, err := d.platform.Send(ctx, channelID, msg); err != nil {
		logger.LogDeliveryError(channelID, "ticket_panel_post", err)
	}
}

func (d *Dispatcher) handleAuthorizeReview(ctx context.Context, ic *Interaction, r service.InteractionResponder) error {
	if !ic.Perms.Administrator {
		return errors.Forbidden("You do not have permission to manage review authorizations.", nil)
	}

	userID := ic.Options["user"]
	if userID == "" {
		return errors.BadRequest("Missing required option `user`.", nil)
	}

	if err := d.authUC.Authorize(ctx, userID, ic.User.ID); err != nil {
		return err
	}

	msg := embedMessage("✅ Review Authorization Granted",
		fmt.Sprintf("<@%s> can now leave reviews with `/review`.", userID), 0x00ff00)
	return r.Reply(ctx, msg, true)
}

func (d *Dispatcher) handleDeauthorizeReview(ctx context.Context, ic *Interaction, r service.InteractionResponder) error {
	if !ic.Perms.Administrator {
		return errors.Forbidden("You do not have permission to manage review authorizations.", nil)
	}

	userID := ic.Options["user"]
	if userID == "" {
		return errors.BadRequest("Missing required option `user`.", nil)
	}

	if err := d.authUC.Deauthorize(ctx, userID); err != nil {
		return err
	}

	msg := embedMessage("🚫 Review Authorization Revoked",
		fmt.Sprintf("<@%s> can no longer leave reviews.", userID), 0xff6b6b)
	return r.Reply(ctx, msg, true)
}

func (d *Dispatcher) handlePaypal(ctx context.Context, ic *Interaction, r service.InteractionResponder) error {
	if !ic.Perms.Elevated() {
		return errors.Forbidden("You do not have permission to post the payment link.", nil)
	}

	link, err := d.configUC.Get(ctx, entity.ConfigPaypalLink)
	if err != nil {
		return err
	}
	if link == "" {
		return errors.NotFoundMsg("No PayPal link is configured. Please run `/setup` first.")
	}

	msg := embedMessage("💰 PayPal",
		fmt.Sprintf("%s\n\n⚠️ Send the payment as **Friends & Family** and do not leave a note.", link), 0x0099ff)
	if _, err := d.platform.Send(ctx, ic.ChannelID, msg); err != nil {
		return errors.Internal("Failed to post the payment link.", err)
	}

	return r.Reply(ctx, service.OutboundMessage{Content: "✅ Payment link posted."}, true)
}

func (d *Dispatcher) handleHelp(ctx context.Context, ic *Interaction, r service.InteractionResponder) error {
	msg := embedMessage("📖 Help", "Here is everything this bot can do.", 0x770380)
	msg.Embeds[0].Fields = []service.EmbedField{
		{Name: "🎫 Tickets", Value: "`/ticket` open a support ticket\n`/claim` claim the current ticket\n`/close` close it and archive the transcript\n`/reopen` reopen a closed ticket"},
		{Name: "⭐ Reviews", Value: "`/review` leave a review (guided form)\n`/reviews` leave a review (dropdown)"},
		{Name: "🛠️ Administration", Value: "`/setup` configure channels and roles\n`/addproduct` `/removeproduct` `/listproducts` manage the catalog\n`/authorizereview` `/deauthorizereview` manage who may review\n`/paypal` post the payment link"},
	}
	return r.Reply(ctx, msg, true)
}

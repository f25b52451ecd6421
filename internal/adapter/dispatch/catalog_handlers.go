package dispatch

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"effettobot/internal/domain/service"
	"effettobot/internal/usecase"
	"effettobot/pkg/errors"
)

func (d *Dispatcher) handleAddProduct(ctx context.Context, ic *Interaction, r service.InteractionResponder) error {
	if !ic.Perms.Administrator {
		return errors.Forbidden("You do not have permission to manage products.", nil)
	}

	input := usecase.AddProductInput{
		Name:  ic.Options["name"],
		Emoji: ic.Options["emoji"],
	}
	if raw := ic.Options["price"]; raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return errors.BadRequest("Invalid price. Please enter a number (e.g., 29.99).", nil)
		}
		input.Price = price
	}

	product, err := d.catalogUC.AddProduct(ctx, input)
	if err != nil {
		return err
	}

	msg := embedMessage("✅ Product Added",
		fmt.Sprintf("**%s %s** has been added to the catalog.", product.DisplayEmoji(), product.Name), 0x00ff00)
	if product.Price > 0 {
		msg.Embeds[0].Fields = []service.EmbedField{
			{Name: "Price", Value: fmt.Sprintf("€%.2f", product.Price), Inline: true},
		}
	}
	return r.Reply(ctx, msg, true)
}

func (d *Dispatcher) handleRemoveProduct(ctx context.Context, ic *Interaction, r service.InteractionResponder) error {
	if !ic.Perms.Administrator {
		return errors.Forbidden("You do not have permission to manage products.", nil)
	}

	name := ic.Options["name"]
	if err := d.catalogUC.RemoveProduct(ctx, name); err != nil {
		return err
	}

	msg := embedMessage("🗑️ Product Removed",
		fmt.Sprintf("**%s** has been removed from the catalog.", name), 0xff6b6b)
	return r.Reply(ctx, msg, true)
}

func (d *Dispatcher) handleListProducts(ctx context.Context, ic *Interaction, r service.InteractionResponder) error {
	products, err := d.catalogUC.List(ctx)
	if err != nil {
		return err
	}

	if len(products) == 0 {
		msg := embedMessage("📦 Product Catalog", "No products have been added yet.", 0x770380)
		return r.Reply(ctx, msg, true)
	}

	var b strings.Builder
	for _, p := range products {
		if p.Price > 0 {
			fmt.Fprintf(&b, "%s **%s** - €%.2f\n", p.DisplayEmoji(), p.Name, p.Price)
		} else {
			fmt.Fprintf(&b, "%s **%s**\n", p.DisplayEmoji(), p.Name)
		}
	}

	msg := embedMessage("📦 Product Catalog", b.String(), 0x770380)
	msg.Embeds[0].FooterText = fmt.Sprintf("%d products", len(products))
	return r.Reply(ctx, msg, true)
}

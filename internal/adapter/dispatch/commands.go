package dispatch

// Slash-command option types, as the platform numbers them.
const (
	OptionString  = 3
	OptionUser    = 6
	OptionChannel = 7
	OptionRole    = 8
	OptionNumber  = 10
)

// Permission bitfields for default command visibility.
const (
	PermAdministrator  = "8"
	PermManageChannels = "16"
)

type CommandOption struct {
	Name        string
	Description string
	Type        int
	Required    bool
}

// CommandSpec declares one slash command for registration. The Name must
// match a key in the dispatcher's command table.
type CommandSpec struct {
	Name               string
	Description        string
	Options            []CommandOption
	DefaultPermissions string
}

// Commands is the full slash-command surface the bot registers at startup.
func Commands() []CommandSpec {
	return []CommandSpec{
		{
			Name:               "setup",
			Description:        "Configure the bot's channels and roles",
			DefaultPermissions: PermAdministrator,
			Options: []CommandOption{
				{Name: "transcript_channel", Description: "Channel that receives ticket transcripts", Type: OptionChannel, Required: true},
				{Name: "ticket_channel", Description: "Channel where users open tickets", Type: OptionChannel, Required: true},
				{Name: "review_role", Description: "Role granted to authorized reviewers", Type: OptionRole, Required: true},
				{Name: "ticket_category", Description: "Category new ticket channels are created under", Type: OptionChannel},
				{Name: "review_channel", Description: "Channel where approved reviews are published", Type: OptionChannel},
				{Name: "review_approval_channel", Description: "Channel where staff approve pending reviews", Type: OptionChannel},
				{Name: "paypal_link", Description: "PayPal payment link for /paypal", Type: OptionString},
			},
		},
		{
			Name:        "ticket",
			Description: "Open a private support ticket",
		},
		{
			Name:               "claim",
			Description:        "Claim the current ticket",
			DefaultPermissions: PermManageChannels,
		},
		{
			Name:               "close",
			Description:        "Close the current ticket and archive its transcript",
			DefaultPermissions: PermManageChannels,
		},
		{
			Name:               "reopen",
			Description:        "Reopen a closed ticket",
			DefaultPermissions: PermManageChannels,
		},
		{
			Name:        "review",
			Description: "Leave a product review (guided form)",
		},
		{
			Name:        "reviews",
			Description: "Leave a product review (dropdown selection)",
		},
		{
			Name:               "addproduct",
			Description:        "Add a product to the review catalog",
			DefaultPermissions: PermAdministrator,
			Options: []CommandOption{
				{Name: "name", Description: "Product name", Type: OptionString, Required: true},
				{Name: "price", Description: "Price in euros", Type: OptionNumber},
				{Name: "emoji", Description: "Emoji shown next to the product", Type: OptionString},
			},
		},
		{
			Name:               "removeproduct",
			Description:        "Remove a product from the review catalog",
			DefaultPermissions: PermAdministrator,
			Options: []CommandOption{
				{Name: "name", Description: "Product name", Type: OptionString, Required: true},
			},
		},
		{
			Name:        "listproducts",
			Description: "List the products in the review catalog",
		},
		{
			Name:               "authorizereview",
			Description:        "Authorize a user to leave reviews",
			DefaultPermissions: PermAdministrator,
			Options: []CommandOption{
				{Name: "user", Description: "User to authorize", Type: OptionUser, Required: true},
			},
		},
		{
			Name:               "deauthorizereview",
			Description:        "Revoke a user's review authorization",
			DefaultPermissions: PermAdministrator,
			Options: []CommandOption{
				{Name: "user", Description: "User to deauthorize", Type: OptionUser, Required: true},
			},
		},
		{
			Name:               "paypal",
			Description:        "Post the configured PayPal payment link",
			DefaultPermissions: PermManageChannels,
		},
		{
			Name:        "help",
			Description: "Show what this bot can do",
		},
	}
}

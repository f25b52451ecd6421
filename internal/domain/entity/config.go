package entity

// Recognized bot_config keys. Values are channel/role ids or plain strings;
// no validation is applied beyond the key being known, last write wins.
const (
	ConfigTranscriptChannel     = "transcript_channel"
	ConfigTicketChannel         = "ticket_channel"
	ConfigTicketCategory        = "ticket_category"
	ConfigReviewChannel         = "review_channel"
	ConfigReviewApprovalChannel = "review_approval_channel"
	ConfigReviewRole            = "review_role"
	ConfigPaypalLink            = "paypal_link"
)

type ConfigEntry struct {
	Key   string `json:"key" firestore:"key"`
	Value string `json:"value" firestore:"value"`
}

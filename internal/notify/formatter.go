package notify

import "lizard-economy/internal/notify/platforms"

var kindColors = map[Kind]int{
	KindPetDied:          0xe74c3c,
	KindProposalReceived: 0xe91e63,
	KindProposalAccepted: 0xe91e63,
	KindTopUpCredited:    0x2ecc71,
	KindPurchase:         0xf1c40f,
	KindAdminGrant:       0x3498db,
}

// Format turns a notice into the platform-neutral message.
func Format(n Notice) platforms.Message {
	title := n.Title
	if title == "" {
		title = string(n.Kind)
	}
	fields := make([]platforms.Field, len(n.Fields))
	copy(fields, n.Fields)
	if n.Audience == AudienceAdmins && n.UserID != 0 {
		fields = append([]platforms.Field{IntField("user_id", n.UserID)}, fields...)
	}
	return platforms.Message{
		Title:  title,
		Text:   n.Text,
		Color:  kindColors[n.Kind],
		Fields: fields,
	}
}

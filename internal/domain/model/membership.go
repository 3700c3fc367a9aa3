package model

// MembershipOutcome classifies one channel's membership check.
// Only Active grants the gate; Inactive and CheckError both count as
// "not subscribed to this channel" when the results are folded down.
type MembershipOutcome int

const (
	MembershipActive MembershipOutcome = iota
	MembershipInactive
	MembershipCheckError
)

func (o MembershipOutcome) String() string {
	switch o {
	case MembershipActive:
		return "active"
	case MembershipInactive:
		return "inactive"
	default:
		return "error"
	}
}

// ChannelCheck is the tagged per-channel result kept for logging and
// metrics. The user-visible verdict is always the plain OR over Active.
type ChannelCheck struct {
	Channel ChannelRef
	Outcome MembershipOutcome
	Status  string // raw platform status when the lookup succeeded
	Err     error  // lookup failure when Outcome is MembershipCheckError
}

// ClassifyMemberStatus maps a raw chat-member status onto an outcome.
// Member, administrator and creator hold the gate open; everything
// else, including unknown statuses, does not.
func ClassifyMemberStatus(status string) MembershipOutcome {
	switch status {
	case "member", "administrator", "creator":
		return MembershipActive
	default:
		return MembershipInactive
	}
}

package model

// BroadcastPayload carries exactly one of text, photo or document.
// Photo and document reference already-uploaded platform assets by
// file id; Text doubles as the caption for media payloads.
type BroadcastPayload struct {
	Text       string
	PhotoID    string
	DocumentID string
}

func (p BroadcastPayload) IsEmpty() bool {
	return p.Text == "" && p.PhotoID == "" && p.DocumentID == ""
}

// BroadcastReport tallies one completed broadcast run.
type BroadcastReport struct {
	Total  int
	Sent   int
	Failed int
	Pruned int
}

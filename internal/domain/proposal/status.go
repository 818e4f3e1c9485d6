package proposal

// ===============================
// Proposal Status
// ===============================

type Status string

const (
	StatusProposed  Status = "proposed"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

func InitialStatus() Status {
	return StatusProposed
}

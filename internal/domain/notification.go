package domain

import "time"

// NotificationType enumerates app notification kinds.
type NotificationType string

// All notification types.
const (
	NotifInfo                   NotificationType = "Info"
	NotifKYCApproved            NotificationType = "KYC Approved"
	NotifKYCRejected            NotificationType = "KYC Rejected"
	NotifWithdrawalApproved     NotificationType = "Withdrawal Approved"
	NotifWithdrawalRejected     NotificationType = "Withdrawal Rejected"
	NotifNewKYCSubmission       NotificationType = "New KYC Submission"
	NotifNewWithdrawalRequest   NotificationType = "New Withdrawal Request"
	NotifTransferSent           NotificationType = "Transfer Sent"
	NotifTransferReceived       NotificationType = "Transfer Received"
	NotifBalanceDeducted        NotificationType = "Balance Deducted"
	NotifBalanceFunded          NotificationType = "Balance Funded"
	NotifAccountCurrencyChanged NotificationType = "Account Currency Changed"
)

// AppNotification is one entry in the append-only notification log.
// An empty AccountID with AdminOnly set addresses all administrators.
// Only the Read flag may change after creation.
type AppNotification struct {
	ID        string           `json:"id"`
	AccountID string           `json:"account_id,omitempty"`
	AdminOnly bool             `json:"admin_only"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
	LinkTo    string           `json:"link_to,omitempty"`
}

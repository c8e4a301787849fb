package domain

import "github.com/shopspring/decimal"

// FeeWalletNetwork types for fee collection.
const (
	FeeTypeFixed      = "fixed"
	FeeTypePercentage = "percentage"
)

// FeeWallet is an administrator-configured external address for
// collecting network fees.
type FeeWallet struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	NetworkProtocol string `json:"network_protocol"`
	Symbol          string `json:"symbol"`
	Address         string `json:"address"`
}

// AppSettings is the process-wide configuration consulted by the ledger
// and withdrawal services. It is loaded at start and mutated only by
// administrative action.
type AppSettings struct {
	SupportedCurrencies []string        `json:"supported_currencies"`
	DefaultNetworkFee   decimal.Decimal `json:"default_network_fee"`
	NetworkFeeType      string          `json:"network_fee_type"` // FeeTypeFixed or FeeTypePercentage
	FeeWallets          []FeeWallet     `json:"fee_wallets"`
	MaintenanceMode     bool            `json:"maintenance_mode"`
	DefaultCurrency     string          `json:"default_currency"`
}

// SettingsPatch is the whitelisted partial update for AppSettings. Nil
// fields are left untouched; set fields replace the current value as a
// whole. No value validation is performed, the admin caller is trusted.
type SettingsPatch struct {
	SupportedCurrencies *[]string        `json:"supported_currencies,omitempty"`
	DefaultNetworkFee   *decimal.Decimal `json:"default_network_fee,omitempty"`
	NetworkFeeType      *string          `json:"network_fee_type,omitempty"`
	FeeWallets          *[]FeeWallet     `json:"fee_wallets,omitempty"`
	MaintenanceMode     *bool            `json:"maintenance_mode,omitempty"`
	DefaultCurrency     *string          `json:"default_currency,omitempty"`
}

// Apply merges the patch over s field by field.
func (p SettingsPatch) Apply(s AppSettings) AppSettings {
	if p.SupportedCurrencies != nil {
		s.SupportedCurrencies = *p.SupportedCurrencies
	}

	if p.DefaultNetworkFee != nil {
		s.DefaultNetworkFee = *p.DefaultNetworkFee
	}

	if p.NetworkFeeType != nil {
		s.NetworkFeeType = *p.NetworkFeeType
	}

	if p.FeeWallets != nil {
		s.FeeWallets = *p.FeeWallets
	}

	if p.MaintenanceMode != nil {
		s.MaintenanceMode = *p.MaintenanceMode
	}

	if p.DefaultCurrency != nil {
		s.DefaultCurrency = *p.DefaultCurrency
	}

	return s
}

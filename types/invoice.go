package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type Invoice struct {
	ID            string          `json:"id"`
	OrderID       string          `json:"order_id"`
	UserID        string          `json:"user_id"`
	StoreID       string          `json:"store_id"`
	InvoiceNumber string          `json:"invoice_number"`
	Amount        decimal.Decimal `json:"amount"`
	FilePath      string          `json:"-"`
	MimeType      string          `json:"mime_type"`
	FileSize      int64           `json:"file_size"`
	IssuedAt      time.Time       `json:"issued_at"`
	DownloadURL   string          `json:"download_url,omitempty"`
}

package postgres

import (
	"context"

	"github.com/binna/binna-backend/internal/store"
	"github.com/binna/binna-backend/types"
)

var _ store.InvoiceStore = (*InvoiceStore)(nil)

const invoiceColumns = `id, order_id, user_id, store_id, invoice_number, amount, file_path,
	mime_type, file_size, issued_at`

type InvoiceStore struct {
	db DBTX
}

func NewInvoiceStore(db DBTX) *InvoiceStore {
	return &InvoiceStore{db: db}
}

func invoiceScanTargets(inv *types.Invoice) []any {
	return []any{&inv.ID, &inv.OrderID, &inv.UserID, &inv.StoreID, &inv.InvoiceNumber, &inv.Amount,
		&inv.FilePath, &inv.MimeType, &inv.FileSize, &inv.IssuedAt}
}

// CreateInvoice relies on unique(order_id) and unique(invoice_number).
func (s *InvoiceStore) CreateInvoice(ctx context.Context, inv *types.Invoice) (*types.Invoice, error) {
	out := &types.Invoice{}
	err := s.db.QueryRow(ctx, `
		INSERT INTO invoices (order_id, user_id, store_id, invoice_number, amount, file_path, mime_type, file_size, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+invoiceColumns,
		inv.OrderID, inv.UserID, inv.StoreID, inv.InvoiceNumber, inv.Amount, inv.FilePath,
		inv.MimeType, inv.FileSize, inv.IssuedAt,
	).Scan(invoiceScanTargets(out)...)
	if err != nil {
		return nil, mapError(err, "Invoice", inv.OrderID)
	}
	return out, nil
}

func (s *InvoiceStore) GetInvoice(ctx context.Context, id string) (*types.Invoice, error) {
	inv := &types.Invoice{}
	if err := s.db.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id).Scan(invoiceScanTargets(inv)...); err != nil {
		return nil, mapError(err, "Invoice", id)
	}
	return inv, nil
}

func (s *InvoiceStore) GetInvoiceByOrder(ctx context.Context, orderID string) (*types.Invoice, error) {
	inv := &types.Invoice{}
	if err := s.db.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE order_id = $1`, orderID).Scan(invoiceScanTargets(inv)...); err != nil {
		return nil, mapError(err, "Invoice", orderID)
	}
	return inv, nil
}

func (s *InvoiceStore) ListUserInvoices(ctx context.Context, userID string, page types.Page) ([]*types.Invoice, int, error) {
	page = page.Normalize()
	rows, err := s.db.Query(ctx, `
		SELECT `+invoiceColumns+`, COUNT(*) OVER ()
		FROM invoices
		WHERE user_id = $1
		ORDER BY issued_at DESC
		LIMIT $2 OFFSET $3`, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, mapError(err, "Invoice", userID)
	}
	defer rows.Close()

	invoices := make([]*types.Invoice, 0)
	total := 0
	for rows.Next() {
		inv := &types.Invoice{}
		if err := rows.Scan(append(invoiceScanTargets(inv), &total)...); err != nil {
			return nil, 0, mapError(err, "Invoice", userID)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError(err, "Invoice", userID)
	}
	return invoices, total, nil
}

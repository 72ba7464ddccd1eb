package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	apperrors "github.com/binna/binna-backend/errors"
	"github.com/binna/binna-backend/internal/storage"
	"github.com/binna/binna-backend/internal/store"
	"github.com/binna/binna-backend/logger"
	"github.com/binna/binna-backend/types"
	"github.com/gabriel-vasile/mimetype"
)

const invoiceMimeType = "application/pdf"

// InvoiceUpload is a PDF received from a store.
type InvoiceUpload struct {
	Filename string
	Body     io.Reader
}

// InvoiceViewer identifies who reads an invoice. StoreID is empty for
// accounts that do not operate a store.
type InvoiceViewer struct {
	UserID  string
	StoreID string
}

type InvoiceService struct {
	invoices store.InvoiceStore
	orders   store.OrderStore
	files    storage.FileStorage
	maxBytes int64
	now      func() time.Time
}

// NewInvoiceService wires the invoice flow. files may be nil when object
// storage is not configured; uploads then fail with 503.
func NewInvoiceService(invoices store.InvoiceStore, orders store.OrderStore, files storage.FileStorage, maxBytes int64) *InvoiceService {
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	return &InvoiceService{
		invoices: invoices,
		orders:   orders,
		files:    files,
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

// InvoiceNumber is INV-<yyyymmdd>-<first 8 characters of the order id>.
func InvoiceNumber(orderID string, at time.Time) string {
	short := orderID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("INV-%s-%s", at.UTC().Format("20060102"), short)
}

// Upload attaches the store's PDF invoice to one of its orders. Each order
// has at most one invoice.
func (s *InvoiceService) Upload(ctx context.Context, storeID, orderID string, upload InvoiceUpload) (*types.Invoice, error) {
	if s.files == nil {
		return nil, apperrors.ServiceUnavailable("File storage")
	}
	log := logger.GetLogger()

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.StoreID != storeID {
		return nil, apperrors.Forbidden("Order belongs to another store", "")
	}
	existing, err := s.invoices.GetInvoiceByOrder(ctx, orderID)
	switch {
	case err == nil && existing != nil:
		return nil, apperrors.NewConflictError("Invoice already exists for this order", existing.InvoiceNumber)
	case err != nil && !apperrors.IsType(err, apperrors.NotFoundError):
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(upload.Body, s.maxBytes+1))
	if err != nil {
		return nil, apperrors.ValidationFailed("failed to read upload", err.Error())
	}
	if int64(len(data)) > s.maxBytes {
		return nil, apperrors.ValidationFailed("file too large", fmt.Sprintf("maximum is %d bytes", s.maxBytes))
	}
	if len(data) == 0 {
		return nil, apperrors.ValidationFailed("file is empty", "")
	}
	if mt := mimetype.Detect(data); !mt.Is(invoiceMimeType) {
		return nil, apperrors.ValidationFailed("invoice must be a PDF", mt.String())
	}

	now := s.now().UTC()
	key := storage.InvoiceKey(storeID, orderID, upload.Filename, now)
	if err := s.files.Save(ctx, key, bytes.NewReader(data), int64(len(data)), invoiceMimeType); err != nil {
		log.Errorw("Invoice upload failed", "orderID", orderID, "error", err)
		return nil, apperrors.Wrap(err, apperrors.ServerError, "Failed to store invoice")
	}

	invoice, err := s.invoices.CreateInvoice(ctx, &types.Invoice{
		OrderID:       order.ID,
		UserID:        order.UserID,
		StoreID:       storeID,
		InvoiceNumber: InvoiceNumber(order.ID, now),
		Amount:        order.Total,
		FilePath:      key,
		MimeType:      invoiceMimeType,
		FileSize:      int64(len(data)),
		IssuedAt:      now,
	})
	if err != nil {
		if delErr := s.files.Delete(ctx, key); delErr != nil {
			log.Warnw("Failed to remove orphaned invoice file", "key", key, "error", delErr)
		}
		return nil, err
	}

	log.Infow("Invoice issued", "invoice", invoice.InvoiceNumber, "orderID", orderID, "storeID", storeID)
	return invoice, nil
}

func (s *InvoiceService) ListUserInvoices(ctx context.Context, userID string, page types.Page) ([]*types.Invoice, int, error) {
	list, total, err := s.invoices.ListUserInvoices(ctx, userID, page.Normalize())
	if err != nil {
		return nil, 0, err
	}
	for _, inv := range list {
		s.attachDownloadURL(ctx, inv)
	}
	return list, total, nil
}

// GetInvoice is visible to the buyer and to the issuing store.
func (s *InvoiceService) GetInvoice(ctx context.Context, viewer InvoiceViewer, id string) (*types.Invoice, error) {
	inv, err := s.invoices.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.UserID != viewer.UserID && (viewer.StoreID == "" || inv.StoreID != viewer.StoreID) {
		return nil, apperrors.NotFound("Invoice", id)
	}
	s.attachDownloadURL(ctx, inv)
	return inv, nil
}

func (s *InvoiceService) attachDownloadURL(ctx context.Context, inv *types.Invoice) {
	if s.files == nil || inv.FilePath == "" {
		return
	}
	url, err := s.files.PresignedURL(ctx, inv.FilePath)
	if err != nil {
		logger.GetLogger().Warnw("Failed to presign invoice", "invoiceID", inv.ID, "error", err)
		return
	}
	inv.DownloadURL = url
}

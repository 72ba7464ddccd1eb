package services

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	apperrors "github.com/binna/binna-backend/errors"
	"github.com/binna/binna-backend/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")

type invoiceFixture struct {
	svc      *InvoiceService
	invoices *mockInvoiceStore
	orders   *mockOrderStore
	files    *mockFileStorage
	now      time.Time
}

func newInvoiceFixture(maxBytes int64) *invoiceFixture {
	f := &invoiceFixture{
		invoices: &mockInvoiceStore{},
		orders:   &mockOrderStore{},
		files:    &mockFileStorage{},
		now:      time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
	}
	f.svc = NewInvoiceService(f.invoices, f.orders, f.files, maxBytes)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func invoiceOrder() *types.Order {
	return &types.Order{ID: "0a1b2c3d-4e5f-6789-abcd-ef0123456789", UserID: "u-1", StoreID: "s-1", Total: decimal.RequireFromString("1150.00")}
}

func TestInvoiceNumber(t *testing.T) {
	at := time.Date(2025, 3, 14, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "INV-20250314-0a1b2c3d", InvoiceNumber("0a1b2c3d-4e5f-6789-abcd-ef0123456789", at))
	assert.Equal(t, "INV-20250314-short", InvoiceNumber("short", at))
}

func TestInvoiceService_Upload(t *testing.T) {
	f := newInvoiceFixture(0)
	order := invoiceOrder()
	wantKey := "invoices/s-1/" + order.ID + "/" + "1741942800000000000_March_invoice.pdf"

	f.orders.On("GetOrder", mock.Anything, order.ID).Return(order, nil)
	f.invoices.On("GetInvoiceByOrder", mock.Anything, order.ID).Return(nil, apperrors.NotFound("Invoice", order.ID))
	f.files.On("Save", mock.Anything, wantKey, mock.Anything, int64(len(pdfBytes)), "application/pdf").Return(nil)
	f.invoices.On("CreateInvoice", mock.Anything, mock.MatchedBy(func(inv *types.Invoice) bool {
		return inv.InvoiceNumber == "INV-20250314-0a1b2c3d" &&
			inv.Amount.Equal(order.Total) &&
			inv.FilePath == wantKey &&
			inv.UserID == "u-1" &&
			inv.FileSize == int64(len(pdfBytes))
	})).Return(&types.Invoice{ID: "inv-1", InvoiceNumber: "INV-20250314-0a1b2c3d"}, nil)

	inv, err := f.svc.Upload(context.Background(), "s-1", order.ID, InvoiceUpload{Filename: "March invoice.pdf", Body: bytes.NewReader(pdfBytes)})
	require.NoError(t, err)
	assert.Equal(t, "inv-1", inv.ID)
	f.files.AssertExpectations(t)
	f.invoices.AssertExpectations(t)
}

func TestInvoiceService_UploadRejects(t *testing.T) {
	order := invoiceOrder()

	t.Run("storage disabled", func(t *testing.T) {
		svc := NewInvoiceService(&mockInvoiceStore{}, &mockOrderStore{}, nil, 0)
		_, err := svc.Upload(context.Background(), "s-1", order.ID, InvoiceUpload{Body: bytes.NewReader(pdfBytes)})
		requireAppError(t, err, http.StatusServiceUnavailable, "")
	})

	t.Run("other store", func(t *testing.T) {
		f := newInvoiceFixture(0)
		f.orders.On("GetOrder", mock.Anything, order.ID).Return(order, nil)
		_, err := f.svc.Upload(context.Background(), "s-2", order.ID, InvoiceUpload{Body: bytes.NewReader(pdfBytes)})
		requireAppError(t, err, http.StatusForbidden, "")
	})

	t.Run("already invoiced", func(t *testing.T) {
		f := newInvoiceFixture(0)
		f.orders.On("GetOrder", mock.Anything, order.ID).Return(order, nil)
		f.invoices.On("GetInvoiceByOrder", mock.Anything, order.ID).Return(&types.Invoice{ID: "inv-0"}, nil)
		_, err := f.svc.Upload(context.Background(), "s-1", order.ID, InvoiceUpload{Body: bytes.NewReader(pdfBytes)})
		requireAppError(t, err, http.StatusConflict, "")
	})

	t.Run("not a pdf", func(t *testing.T) {
		f := newInvoiceFixture(0)
		f.orders.On("GetOrder", mock.Anything, order.ID).Return(order, nil)
		f.invoices.On("GetInvoiceByOrder", mock.Anything, order.ID).Return(nil, apperrors.NotFound("Invoice", order.ID))
		_, err := f.svc.Upload(context.Background(), "s-1", order.ID, InvoiceUpload{Filename: "x.pdf", Body: strings.NewReader("plain text pretending")})
		requireAppError(t, err, http.StatusBadRequest, "")
		f.files.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("too large", func(t *testing.T) {
		f := newInvoiceFixture(16)
		f.orders.On("GetOrder", mock.Anything, order.ID).Return(order, nil)
		f.invoices.On("GetInvoiceByOrder", mock.Anything, order.ID).Return(nil, apperrors.NotFound("Invoice", order.ID))
		_, err := f.svc.Upload(context.Background(), "s-1", order.ID, InvoiceUpload{Body: bytes.NewReader(pdfBytes)})
		requireAppError(t, err, http.StatusBadRequest, "")
	})
}

func TestInvoiceService_UploadRemovesFileWhenInsertFails(t *testing.T) {
	f := newInvoiceFixture(0)
	order := invoiceOrder()
	f.orders.On("GetOrder", mock.Anything, order.ID).Return(order, nil)
	f.invoices.On("GetInvoiceByOrder", mock.Anything, order.ID).Return(nil, apperrors.NotFound("Invoice", order.ID))
	f.files.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.invoices.On("CreateInvoice", mock.Anything, mock.Anything).Return(nil, apperrors.NewConflictError("Invoice already exists", ""))
	f.files.On("Delete", mock.Anything, mock.AnythingOfType("string")).Return(nil).Once()

	_, err := f.svc.Upload(context.Background(), "s-1", order.ID, InvoiceUpload{Filename: "a.pdf", Body: bytes.NewReader(pdfBytes)})
	requireAppError(t, err, http.StatusConflict, "")
	f.files.AssertExpectations(t)
}

func TestInvoiceService_GetInvoiceVisibility(t *testing.T) {
	f := newInvoiceFixture(0)
	f.invoices.On("GetInvoice", mock.Anything, "inv-1").
		Return(&types.Invoice{ID: "inv-1", UserID: "u-1", StoreID: "s-1", FilePath: "invoices/s-1/o-1/1_a.pdf"}, nil)
	f.files.On("PresignedURL", mock.Anything, "invoices/s-1/o-1/1_a.pdf").Return("https://r2.example/a.pdf?sig", nil)

	inv, err := f.svc.GetInvoice(context.Background(), InvoiceViewer{UserID: "u-1"}, "inv-1")
	require.NoError(t, err)
	assert.Equal(t, "https://r2.example/a.pdf?sig", inv.DownloadURL)

	_, err = f.svc.GetInvoice(context.Background(), InvoiceViewer{UserID: "store-owner", StoreID: "s-1"}, "inv-1")
	require.NoError(t, err)

	_, err = f.svc.GetInvoice(context.Background(), InvoiceViewer{UserID: "u-2"}, "inv-1")
	requireAppError(t, err, http.StatusNotFound, "")
}

func TestInvoiceService_ListSurvivesPresignFailure(t *testing.T) {
	f := newInvoiceFixture(0)
	f.invoices.On("ListUserInvoices", mock.Anything, "u-1", types.Page{Limit: 20}).
		Return([]*types.Invoice{{ID: "inv-1", FilePath: "invoices/k"}}, 1, nil)
	f.files.On("PresignedURL", mock.Anything, "invoices/k").Return("", errors.New("signer offline"))

	list, total, err := f.svc.ListUserInvoices(context.Background(), "u-1", types.Page{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Empty(t, list[0].DownloadURL)
}

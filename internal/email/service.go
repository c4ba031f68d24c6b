package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/serahk/pantrylane/internal/domain"
	"github.com/serahk/pantrylane/internal/export"
	"github.com/shopspring/decimal"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Service delivers finalized orders and wishlists to the back office over
// email, with the details attached as a spreadsheet. It implements
// domain.SubmissionSink: failures never escape as errors, they collapse
// into an unsuccessful result with a human-readable message.
type Service struct {
	sender Sender
	from   string
	to     string
	logger *slog.Logger
}

// NewService creates a new email submission service.
func NewService(sender Sender, from, to string, logger *slog.Logger) *Service {
	return &Service{
		sender: sender,
		from:   from,
		to:     to,
		logger: logger,
	}
}

// SubmitOrder emails the order to the back office.
func (s *Service) SubmitOrder(ctx context.Context, order domain.OrderSubmission) domain.SubmissionResult {
	if err := s.sendOrder(ctx, order); err != nil {
		s.logger.Error("order submission failed", "error", err)
		return domain.SubmissionResult{Success: false, Message: fmt.Sprintf("Failed to submit order: %v", err)}
	}
	return domain.SubmissionResult{Success: true, Message: "Order submitted successfully!"}
}

// SubmitWishlist emails the wishlist to the back office.
func (s *Service) SubmitWishlist(ctx context.Context, wishlist domain.WishlistSubmission) domain.SubmissionResult {
	if err := s.sendWishlist(ctx, wishlist); err != nil {
		s.logger.Error("wishlist submission failed", "error", err)
		return domain.SubmissionResult{Success: false, Message: fmt.Sprintf("Failed to submit wishlist: %v", err)}
	}
	return domain.SubmissionResult{Success: true, Message: "Wishlist submitted successfully!"}
}

func (s *Service) sendOrder(ctx context.Context, order domain.OrderSubmission) error {
	workbook, err := export.OrderWorkbook(order)
	if err != nil {
		return fmt.Errorf("failed to build order spreadsheet: %w", err)
	}

	// The relay is verified up front so a misconfigured or unreachable
	// server is reported before anything is composed and sent.
	if err := s.sender.Verify(ctx); err != nil {
		return fmt.Errorf("SMTP verification failed: %v", err)
	}

	return s.sender.Send(ctx, &Email{
		To:       []string{s.to},
		From:     s.from,
		Subject:  "New Order Submission",
		TextBody: orderText(order),
		Attachments: []Attachment{{
			Filename:    export.OrderFilename,
			ContentType: xlsxContentType,
			Content:     workbook,
		}},
	})
}

func (s *Service) sendWishlist(ctx context.Context, wishlist domain.WishlistSubmission) error {
	workbook, err := export.WishlistWorkbook(wishlist)
	if err != nil {
		return fmt.Errorf("failed to build wishlist spreadsheet: %w", err)
	}

	if err := s.sender.Verify(ctx); err != nil {
		return fmt.Errorf("SMTP verification failed: %v", err)
	}

	return s.sender.Send(ctx, &Email{
		To:       []string{s.to},
		From:     s.from,
		Subject:  "New Wishlist Submission",
		TextBody: wishlistText(wishlist),
		Attachments: []Attachment{{
			Filename:    export.WishlistFilename,
			ContentType: xlsxContentType,
			Content:     workbook,
		}},
	})
}

func orderText(order domain.OrderSubmission) string {
	total := decimal.Zero
	for _, line := range order.Cart {
		total = total.Add(line.Subtotal())
	}

	var b strings.Builder
	b.WriteString("A new order has been submitted with the following details:\n\n")
	b.WriteString("Customer Information:\n")
	b.WriteString("-------------------\n")
	fmt.Fprintf(&b, "Name: %s\n", order.Name)
	fmt.Fprintf(&b, "Email: %s\n", order.Email)
	fmt.Fprintf(&b, "Phone: %s\n", order.Phone)
	fmt.Fprintf(&b, "Delivery Address: %s\n", order.Address)
	fmt.Fprintf(&b, "Preferred Contact Method: %s\n", order.PreferredContact)
	fmt.Fprintf(&b, "Order Date: %s\n\n", order.OrderDate.Format("1/2/2006, 3:04:05 PM"))
	b.WriteString("Order Summary:\n")
	b.WriteString("-------------\n")
	fmt.Fprintf(&b, "Total Items: %d\n", len(order.Cart))
	fmt.Fprintf(&b, "Total Amount: $%s\n", total.StringFixed(2))
	if order.Feedback != "" {
		b.WriteString("\nCustomer Feedback:\n")
		b.WriteString("----------------\n")
		fmt.Fprintf(&b, "%s\n", order.Feedback)
	}
	b.WriteString("\nPlease find the complete order details attached as an Excel file.\n")
	return b.String()
}

func wishlistText(wishlist domain.WishlistSubmission) string {
	var b strings.Builder
	b.WriteString("A new wishlist has been submitted with the following details:\n\n")
	b.WriteString("User Information:\n")
	b.WriteString("----------------\n")
	fmt.Fprintf(&b, "Name: %s\n", wishlist.UserDetails.Name)
	fmt.Fprintf(&b, "Email: %s\n", wishlist.UserDetails.Email)
	fmt.Fprintf(&b, "Phone: %s\n", wishlist.UserDetails.Phone)
	fmt.Fprintf(&b, "Address: %s\n\n", wishlist.UserDetails.Address)
	fmt.Fprintf(&b, "Number of items in wishlist: %d\n", len(wishlist.Items))
	if wishlist.UserDetails.Feedback != "" {
		b.WriteString("\nCustomer Feedback:\n")
		b.WriteString("----------------\n")
		fmt.Fprintf(&b, "%s\n", wishlist.UserDetails.Feedback)
	}
	b.WriteString("\nPlease find the complete wishlist attached as an Excel file.\n")
	return b.String()
}

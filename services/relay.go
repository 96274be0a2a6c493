package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"sparkmeals/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrMissingFields is returned when phone or orderDetails is absent.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidOrder is returned when orderDetails lacks a meal or a positive quantity.
	ErrInvalidOrder = errors.New("invalid order details")
)

const defaultStaffNotifyTimeout = 10 * time.Second

// UpstreamError is a non-OK answer from the messaging API.
type UpstreamError struct {
	Status  int
	Details json.RawMessage
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("whatsapp api returned status %d", e.Status)
}

// MessageSender delivers a WhatsApp message. *WhatsAppClient implements it.
type MessageSender interface {
	Send(ctx context.Context, msg WhatsAppMessage) (*UpstreamResponse, error)
}

// StaffNotifier pushes a card for a placed order to the kitchen.
type StaffNotifier interface {
	NotifyOrder(ctx context.Context, card OrderCardContent) error
}

type SendRequest struct {
	Phone        string               `json:"phone"`
	OrderDetails *models.OrderDetails `json:"orderDetails"`
}

type SendResult struct {
	Reference string
	Data      json.RawMessage
}

type Relay struct {
	sender MessageSender
	staff  StaffNotifier
	fee    decimal.Decimal
	newRef func() string

	staffTimeout time.Duration
	pending      sync.WaitGroup
}

// NewRelay builds the relay; staff may be nil.
func NewRelay(sender MessageSender, staff StaffNotifier, fee decimal.Decimal) *Relay {
	return &Relay{
		sender: sender,
		staff:  staff,
		fee:    fee,
		newRef: uuid.NewString,

		staffTimeout: defaultStaffNotifyTimeout,
	}
}

// Wait blocks until in-flight staff notifications finish.
func (r *Relay) Wait() {
	r.pending.Wait()
}

// Fee returns the delivery fee used when an order carries no total.
func (r *Relay) Fee() decimal.Decimal {
	return r.fee
}

// Send forwards one order confirmation to the messaging API.
func (r *Relay) Send(ctx context.Context, req SendRequest) (*SendResult, error) {
	phone := strings.TrimSpace(req.Phone)
	if phone == "" || req.OrderDetails == nil {
		return nil, ErrMissingFields
	}
	details := req.OrderDetails
	if err := checkOrderDetails(details); err != nil {
		return nil, err
	}
	total := OrderTotal(details, r.fee)
	ref := r.newRef()

	rec := models.NotificationRecord{
		Reference: ref,
		Phone:     phone,
		MealID:    details.Meal.ID,
		MealName:  details.Meal.Name,
		Quantity:  details.Quantity,
		Total:     total.Round(2),
	}

	resp, err := r.sender.Send(ctx, BuildConfirmation(phone, details, total))
	if err != nil {
		log.Printf("whatsapp send ref=%s: %v", ref, err)
		rec.Error = err.Error()
		r.record(ctx, rec)
		return nil, fmt.Errorf("send whatsapp message: %w", err)
	}
	rec.UpstreamStatus = resp.Status
	if !resp.OK() {
		log.Printf("whatsapp api error ref=%s status=%d body=%s", ref, resp.Status, resp.Body)
		rec.Error = string(resp.Body)
		r.record(ctx, rec)
		return nil, &UpstreamError{Status: resp.Status, Details: resp.Body}
	}
	r.record(ctx, rec)

	if r.staff != nil {
		r.notifyStaff(ctx, ref, BuildStaffCard(ref, phone, details, total))
	}
	return &SendResult{Reference: ref, Data: resp.Body}, nil
}

func checkOrderDetails(d *models.OrderDetails) error {
	switch {
	case d.Meal.ID == 0 || strings.TrimSpace(d.Meal.Name) == "":
		return fmt.Errorf("%w: meal is required", ErrInvalidOrder)
	case d.Quantity < 1:
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidOrder)
	}
	return nil
}

// notifyStaff runs in the background with its own deadline; the customer response never waits on it.
func (r *Relay) notifyStaff(ctx context.Context, ref string, card OrderCardContent) {
	r.pending.Add(1)
	go func() {
		defer r.pending.Done()
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.staffTimeout)
		defer cancel()
		if err := r.staff.NotifyOrder(nctx, card); err != nil {
			log.Printf("staff notify ref=%s: %v", ref, err)
		}
	}()
}

func (r *Relay) record(ctx context.Context, rec models.NotificationRecord) {
	if err := SaveOrderNotification(context.WithoutCancel(ctx), rec); err != nil {
		log.Printf("save order notification ref=%s: %v", rec.Reference, err)
	}
}

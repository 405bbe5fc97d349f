package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

/* =========================================================
   Midtrans Clients
========================================================= */

var (
	SnapClient snap.Client
	CoreClient coreapi.Client
)

// InitMidtrans must be called during app bootstrap.
// useProduction=true for Production, false for Sandbox.
func InitMidtrans(serverKey string, useProduction bool) {
	env := midtrans.Sandbox
	if useProduction {
		env = midtrans.Production
	}
	SnapClient.New(serverKey, env)
	CoreClient.New(serverKey, env)
}

/* =========================================================
   Input helper for customer data
========================================================= */

type CustomerInput struct {
	FirstName string
	Email     string
	Phone     string
}

// NewOrderID builds the gateway order id for a subscription charge.
func NewOrderID(subscriptionID string) string {
	short := strings.ReplaceAll(subscriptionID, "-", "")
	if len(short) > 12 {
		short = short[:12]
	}
	return fmt.Sprintf("SUB-%s-%d", short, time.Now().Unix())
}

/* =========================================================
   Generate Snap Token (initial checkout)
========================================================= */

func GenerateSnapToken(orderID string, amountCents int, title string, cust CustomerInput) (string, string, error) {
	if amountCents <= 0 {
		return "", "", errors.New("invalid amount")
	}
	if orderID == "" {
		return "", "", errors.New("order id is required")
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: int64(amountCents),
		},
		CreditCard: &snap.CreditCardDetails{
			Secure:   true,
			SaveCard: true,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: cust.FirstName,
			Email: cust.Email,
			Phone: cust.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       orderID,
				Price:    int64(amountCents),
				Qty:      1,
				Name:     truncate(title, 50),
				Category: "subscription",
			},
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}

/* =========================================================
   Charge saved card (auto renewal)
========================================================= */

func ChargeSavedCard(orderID string, amountCents int, cardToken string) (string, error) {
	if cardToken == "" {
		return "", errors.New("card token is required")
	}
	req := &coreapi.ChargeReq{
		PaymentType: coreapi.PaymentTypeCreditCard,
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: int64(amountCents),
		},
		CreditCard: &coreapi.CreditCardDetails{
			TokenID: cardToken,
		},
	}
	resp, err := CoreClient.ChargeTransaction(req)
	if err != nil {
		return "", err
	}
	switch resp.TransactionStatus {
	case "capture", "settlement":
		return resp.TransactionID, nil
	default:
		return "", fmt.Errorf("charge not accepted: %s", resp.TransactionStatus)
	}
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}

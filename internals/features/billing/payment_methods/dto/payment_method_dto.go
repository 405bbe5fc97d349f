package dto

import (
	"strings"

	"qodwa_backend/internals/features/billing/payment_methods/model"
)

//
// ========== CREATE ==========
//
// The card is tokenized client-side by the payment gateway; we only ever
// see the resulting token plus display data.

type CreatePaymentMethodRequest struct {
	GatewayToken string `json:"gateway_token" validate:"required,max=128"`
	Brand        string `json:"brand" validate:"required,max=20"`
	Last4        string `json:"last4" validate:"required,len=4,numeric"`
	ExpMonth     int    `json:"exp_month" validate:"required,gte=1,lte=12"`
	ExpYear      int    `json:"exp_year" validate:"required,gte=2020,lte=2100"`
	SetDefault   bool   `json:"set_default"`
}

func (r CreatePaymentMethodRequest) ToModel() model.PaymentMethodModel {
	return model.PaymentMethodModel{
		PaymentMethodGatewayToken: strings.TrimSpace(r.GatewayToken),
		PaymentMethodBrand:        strings.ToLower(strings.TrimSpace(r.Brand)),
		PaymentMethodLast4:        r.Last4,
		PaymentMethodExpMonth:     r.ExpMonth,
		PaymentMethodExpYear:      r.ExpYear,
		PaymentMethodIsActive:     true,
	}
}

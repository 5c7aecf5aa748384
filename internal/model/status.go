package model

import (
	"fmt"
	"strings"
)

// Status values arrive from storage as free-form strings (historic rows mix
// case). Each subsystem parses them into a closed type at the boundary;
// unrecognized values are an error, never silently coerced.

type WarrantyStatus string

const (
	WarrantyPending   WarrantyStatus = "PENDING"
	WarrantyNotified  WarrantyStatus = "NOTIFIED"
	WarrantyResolved  WarrantyStatus = "RESOLVED"
	WarrantyCancelled WarrantyStatus = "CANCELLED"
)

func ParseWarrantyStatus(s string) (WarrantyStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PENDING":
		return WarrantyPending, nil
	case "NOTIFIED":
		return WarrantyNotified, nil
	case "RESOLVED":
		return WarrantyResolved, nil
	case "CANCELLED", "CANCELED":
		return WarrantyCancelled, nil
	default:
		return "", fmt.Errorf("unrecognized warranty status %q", s)
	}
}

type ReplacementStatus string

const (
	ReplacementProcessing        ReplacementStatus = "PROCESSING"
	ReplacementVerified          ReplacementStatus = "VERIFIED"
	ReplacementRejected          ReplacementStatus = "REJECTED"
	ReplacementNeedsResubmission ReplacementStatus = "NEEDS_RESUBMISSION"
)

func ParseReplacementStatus(s string) (ReplacementStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PROCESSING":
		return ReplacementProcessing, nil
	case "VERIFIED":
		return ReplacementVerified, nil
	case "REJECTED":
		return ReplacementRejected, nil
	case "NEEDS_RESUBMISSION", "NEEDS-RESUBMISSION":
		return ReplacementNeedsResubmission, nil
	default:
		return "", fmt.Errorf("unrecognized replacement status %q", s)
	}
}

type CheckoutStatus string

const (
	CheckoutCreated   CheckoutStatus = "CREATED"
	CheckoutPaid      CheckoutStatus = "PAID"
	CheckoutDelivered CheckoutStatus = "DELIVERED"
)

func ParseCheckoutStatus(s string) (CheckoutStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CREATED":
		return CheckoutCreated, nil
	case "PAID":
		return CheckoutPaid, nil
	case "DELIVERED":
		return CheckoutDelivered, nil
	default:
		return "", fmt.Errorf("unrecognized checkout status %q", s)
	}
}

type FulfillmentType string

const (
	FulfillmentDigital FulfillmentType = "amazon_digital"
	FulfillmentFBA     FulfillmentType = "amazon_fba"
)

func ParseFulfillmentType(s string) (FulfillmentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "amazon_digital":
		return FulfillmentDigital, nil
	case "amazon_fba":
		return FulfillmentFBA, nil
	default:
		return "", fmt.Errorf("unrecognized fulfillment type %q", s)
	}
}

const SyncStatusSuccess = "SUCCESS"
const SyncStatusFailed = "FAILED"

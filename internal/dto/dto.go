package dto

type ManualOrderRequest struct {
	AmazonOrderID string `json:"orderId"`
	SecretCode    string `json:"secretCode"`
	FSN           string `json:"fsn"`
	State         string `json:"state"`
	LicenseKeyID  string `json:"licenseKeyId"`
}

type BulkOrderRequest struct {
	Count int    `json:"count"`
	FSN   string `json:"fsn"`
}

type BulkOrderResponse struct {
	Created int      `json:"created"`
	Codes   []string `json:"codes"`
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}

type StateDelayRequest struct {
	StateName string `json:"stateName"`
	Value     int    `json:"value"`
	Unit      string `json:"unit"` // hours or days
}

type StateDelayResponse struct {
	ID           string `json:"id"`
	StateName    string `json:"stateName"`
	DelayHours   int    `json:"delayHours"`
	DisplayValue int    `json:"displayValue"`
	DisplayUnit  string `json:"displayUnit"`
}

type ActivateRequest struct {
	SecretCode string `json:"secretCode"`
}

type SellerAccountRequest struct {
	Name          string `json:"name"`
	ClientID      string `json:"clientId"`
	ClientSecret  string `json:"clientSecret"`
	RefreshToken  string `json:"refreshToken"`
	MerchantToken string `json:"merchantToken"`
	MarketplaceID string `json:"marketplaceId"`
	Priority      *int   `json:"priority"`
}

type SellerAccountUpdateRequest struct {
	Name          *string `json:"name"`
	ClientID      *string `json:"clientId"`
	ClientSecret  *string `json:"clientSecret"`
	RefreshToken  *string `json:"refreshToken"`
	MerchantToken *string `json:"merchantToken"`
	MarketplaceID *string `json:"marketplaceId"`
	Priority      *int    `json:"priority"`
	IsActive      *bool   `json:"isActive"`
}

type PriorityNudgeRequest struct {
	Direction string `json:"direction"` // up or down
}

type CredentialTestRequest struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	RefreshToken string `json:"refreshToken"`
}

type CheckoutItem struct {
	FSN      string `json:"fsn"`
	Quantity int32  `json:"quantity"`
}

type CheckoutRequest struct {
	Email string         `json:"email"`
	Items []CheckoutItem `json:"items"`
}

type PaymentVerifyRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

type WarrantyRequest struct {
	OrderID string `json:"orderId"`
	Email   string `json:"email"`
}

type ReplacementRequest struct {
	OrderID string `json:"orderId"`
	Reason  string `json:"reason"`
}

type ReplacementDecisionRequest struct {
	Reason string `json:"reason"`
}

type AddLicenseKeysRequest struct {
	FSN  string   `json:"fsn"`
	Keys []string `json:"keys"`
}

type DeleteLicenseKeysRequest struct {
	IDs []string `json:"ids"`
}

type ProductRequest struct {
	FSN             string `json:"fsn"`
	Title           string `json:"title"`
	PricePaise      int64  `json:"pricePaise"`
	Currency        string `json:"currency"`
	DownloadLink    string `json:"downloadLink"`
	InstallationDoc string `json:"installationDoc"`
	ProductImage    string `json:"productImage"`
}

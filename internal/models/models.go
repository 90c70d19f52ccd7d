package models

import "time"

// ChannelEfficiency es el histórico por canal usado para puntuar.
type ChannelEfficiency struct {
	CostPerLead    float64 `json:"costPerLead" yaml:"cost_per_lead"`
	ConversionRate float64 `json:"conversionRate" yaml:"conversion_rate"`
	QualityScore   float64 `json:"qualityScore" yaml:"quality_score"`
}

type Targets struct {
	Leads       float64 `json:"leads"`
	Conversion  float64 `json:"conversion"`
	CostPerLead float64 `json:"costPerLead"`
}

type Constraints struct {
	MinBudgetPerChannel float64 `json:"minBudgetPerChannel"`
	MaxBudgetPerChannel float64 `json:"maxBudgetPerChannel"`
}

type OptimizationInput struct {
	Channels    []string    `json:"channels"`
	Budgets     []float64   `json:"budgets"`
	Targets     Targets     `json:"targets"`
	Constraints Constraints `json:"constraints"`
}

type OptimizationResult struct {
	Channel             string  `json:"channel"`
	RecommendedBudget   int64   `json:"recommendedBudget"`
	ExpectedLeads       int64   `json:"expectedLeads"`
	ExpectedCostPerLead int64   `json:"expectedCostPerLead"`
	EfficiencyScore     float64 `json:"efficiencyScore"`
	Confidence          float64 `json:"confidence"`
}

type ROIInput struct {
	Investment      float64 `json:"investment"`
	Leads           int     `json:"leads"`
	Conversions     int     `json:"conversions"`
	AvgProjectValue float64 `json:"avgProjectValue"`
}

type ROIResult struct {
	Revenue            float64 `json:"revenue"`
	ROI                float64 `json:"roi"`
	CostPerLead        float64 `json:"costPerLead"`
	CostPerAcquisition float64 `json:"costPerAcquisition"`
	ConversionRate     float64 `json:"conversionRate"`
}

// Tier es un paquete de servicio con precio base fijo.
type Tier struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	BasePrice float64  `json:"basePrice" yaml:"base_price"`
	Features  []string `json:"features" yaml:"features"`
}

type Customization struct {
	ID   string  `json:"id" yaml:"id"`
	Name string  `json:"name" yaml:"name"`
	Cost float64 `json:"cost" yaml:"cost"`
}

type QuoteRequest struct {
	TierID         string   `json:"tierId"`
	Customizations []string `json:"customizations"`
	ProjectSize    float64  `json:"projectSize"`
	Urgency        string   `json:"urgency"`
}

type Quote struct {
	BasePrice         float64 `json:"basePrice"`
	CustomizationCost float64 `json:"customizationCost"`
	SizePremium       float64 `json:"sizePremium"`
	UrgencyPremium    float64 `json:"urgencyPremium"`
	TotalPrice        int64   `json:"totalPrice"`
	Tier              *Tier   `json:"tier"`
}

type DiscountConditions struct {
	IsReturnClient bool   `json:"isReturnClient"`
	ProjectCount   int    `json:"projectCount"`
	PaymentTerms   string `json:"paymentTerms"`
	Season         string `json:"season"`
}

type DiscountRequest struct {
	BasePrice  float64            `json:"basePrice"`
	Conditions DiscountConditions `json:"conditions"`
}

type Discount struct {
	OriginalPrice    float64  `json:"originalPrice"`
	DiscountPercent  float64  `json:"discountPercent"`
	DiscountAmount   int64    `json:"discountAmount"`
	FinalPrice       int64    `json:"finalPrice"`
	AppliedDiscounts []string `json:"appliedDiscounts"`
}

type AuditEntry struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	TenantID  string         `json:"tenantId,omitempty"`
	Actor     string         `json:"actor,omitempty"`
	Action    string         `json:"action"`
	Resource  string         `json:"resource,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	IP        string         `json:"ip,omitempty"`
}

type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName,omitempty"`
}

type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    int    `json:"expiresIn"`
	User         User   `json:"user"`
}

type Membership struct {
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
	FirmName string `json:"firm_name,omitempty"`
}

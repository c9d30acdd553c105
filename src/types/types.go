package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type Metadata map[string]any

type PropertyType string

const (
	PROPERTY_VILLA    PropertyType = "villa"
	PROPERTY_RESORT   PropertyType = "resort"
	PROPERTY_HOTEL    PropertyType = "hotel"
	PROPERTY_HOSTEL   PropertyType = "hostel"
	PROPERTY_PG       PropertyType = "pg"
	PROPERTY_HOMESTAY PropertyType = "homestay"
)

type InventoryUnit string

const (
	UNIT_ROOM   InventoryUnit = "room"
	UNIT_BED    InventoryUnit = "bed"
	UNIT_ENTIRE InventoryUnit = "entire"
)

// UnitForPropertyType is the inventory-unit rule a RoomType must follow
// under its parent property's type.
func UnitForPropertyType(p PropertyType) InventoryUnit {
	switch p {
	case PROPERTY_VILLA, PROPERTY_HOMESTAY:
		return UNIT_ENTIRE
	case PROPERTY_HOSTEL, PROPERTY_PG:
		return UNIT_BED
	default:
		return UNIT_ROOM
	}
}

type BookingStatus string

const (
	BOOKING_PENDING     BookingStatus = "pending"
	BOOKING_CONFIRMED   BookingStatus = "confirmed"
	BOOKING_CHECKED_IN  BookingStatus = "checked_in"
	BOOKING_CHECKED_OUT BookingStatus = "checked_out"
	BOOKING_COMPLETED   BookingStatus = "completed"
	BOOKING_CANCELLED   BookingStatus = "cancelled"
	BOOKING_REJECTED    BookingStatus = "rejected"
)

type PaymentStatus string

const (
	PAYMENT_PENDING    PaymentStatus = "pending"
	PAYMENT_PROCESSING PaymentStatus = "processing"
	PAYMENT_PAID       PaymentStatus = "paid"
	PAYMENT_FAILED     PaymentStatus = "failed"
	PAYMENT_REFUNDED   PaymentStatus = "refunded"
	PAYMENT_PARTIAL    PaymentStatus = "partial"
)

type PaymentMethod string

const (
	PAY_ONLINE   PaymentMethod = "online"
	PAY_AT_HOTEL PaymentMethod = "pay_at_hotel"
)

type HoldSource string

const (
	HOLD_PLATFORM     HoldSource = "platform"
	HOLD_EXTERNAL     HoldSource = "external"
	HOLD_CANCELLATION HoldSource = "cancellation"
)

type TransactionStatus string

const (
	TRANSACTION_PENDING   TransactionStatus = "pending"
	TRANSACTION_COMPLETED TransactionStatus = "completed"
	TRANSACTION_FAILED    TransactionStatus = "failed"
)

// TransactionCategory values are consumed by downstream reporting and
// must not be renamed.
type TransactionCategory string

const (
	TXN_BOOKING_PAYMENT      TransactionCategory = "booking_payment"
	TXN_COMMISSION_DEDUCTION TransactionCategory = "commission_deduction"
	TXN_COMMISSION_TAX       TransactionCategory = "commission_tax"
	TXN_COMMISSION_REFUND    TransactionCategory = "commission_refund"
	TXN_REFUND               TransactionCategory = "refund"
	TXN_REFUND_DEDUCTION     TransactionCategory = "refund_deduction"
	TXN_WITHDRAWAL           TransactionCategory = "withdrawal"
	TXN_REFERRAL_BONUS       TransactionCategory = "referral_bonus"
	TXN_TOPUP                TransactionCategory = "topup"
	TXN_ADJUSTMENT           TransactionCategory = "adjustment"
)

type WithdrawalStatus string

const (
	WITHDRAWAL_PENDING   WithdrawalStatus = "pending"
	WITHDRAWAL_COMPLETED WithdrawalStatus = "completed"
	WITHDRAWAL_REJECTED  WithdrawalStatus = "rejected"
	WITHDRAWAL_FAILED    WithdrawalStatus = "failed"
)

type OfferKind string

const (
	OFFER_PERCENTAGE OfferKind = "percentage"
	OFFER_FLAT       OfferKind = "flat"
)

type PropertyStatus string

const (
	PROPERTY_DRAFT    PropertyStatus = "draft"
	PROPERTY_LIVE     PropertyStatus = "live"
	PROPERTY_DISABLED PropertyStatus = "disabled"
)

type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type CreatePropertyRequestBody struct {
	Name    string `json:"name" binding:"required"`
	Type    string `json:"type" binding:"required,oneof=villa resort hotel hostel pg homestay"`
	About   string `json:"about,omitempty"`
	City    string `json:"city" binding:"required"`
	Address string `json:"address,omitempty"`
}

type CreateRoomTypeRequestBody struct {
	PropertyID      uint    `json:"property" binding:"required"`
	Name            string  `json:"name" binding:"required"`
	PricePerNight   float64 `json:"price_per_night" binding:"required,gt=0"`
	ExtraAdultPrice float64 `json:"extra_adult_price,omitempty" binding:"omitempty,gte=0"`
	ExtraChildPrice float64 `json:"extra_child_price,omitempty" binding:"omitempty,gte=0"`
	MaxAdults       uint    `json:"max_adults" binding:"required,gt=0"`
	MaxChildren     uint    `json:"max_children,omitempty"`
	TotalInventory  uint    `json:"total_inventory" binding:"required,gt=0"`
}

type CreateBookingRequestBody struct {
	PropertyID    uint   `json:"property" binding:"required"`
	RoomTypeID    uint   `json:"room_type" binding:"required"`
	CheckIn       string `json:"check_in" binding:"required,bookabledate"`
	CheckOut      string `json:"check_out" binding:"required,gtdate=CheckIn"`
	Adults        uint   `json:"adults" binding:"required,gt=0"`
	Children      uint   `json:"children,omitempty"`
	PaymentMethod string `json:"payment_method" binding:"required,oneof=online pay_at_hotel"`
	OfferCode     string `json:"offer_code,omitempty"`
}

type CancelBookingRequestBody struct {
	Reason string `json:"reason" binding:"required"`
}

type PaymentCallbackRequestBody struct {
	OrderID   string `json:"order_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

type WithdrawalRequestBody struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type ActionWithdrawalRequestBody struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
	Remark string `json:"remark,omitempty"`
}

type CreateOfferRequestBody struct {
	Code             string  `json:"code" binding:"required"`
	Kind             string  `json:"kind" binding:"required,oneof=percentage flat"`
	Value            float64 `json:"value" binding:"required,gt=0"`
	MaxDiscount      float64 `json:"max_discount,omitempty"`
	MinBookingAmount float64 `json:"min_booking_amount,omitempty"`
	UsageLimit       uint    `json:"usage_limit,omitempty"`
	PerUserLimit     uint    `json:"per_user_limit,omitempty"`
	StartsAt         string  `json:"starts_at" binding:"required"`
	EndsAt           string  `json:"ends_at" binding:"required,gtdate=StartsAt"`
}

type OverrideBookingRequestBody struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed checked_in checked_out completed cancelled rejected"`
	Reason string `json:"reason,omitempty"`
}

type UpdateSettingRequestBody struct {
	Key   string `json:"key" binding:"required"`
	Value any    `json:"value" binding:"required"`
}

type TopupRequestBody struct {
	Actor  string  `json:"actor" binding:"required,oneof=guest partner admin"`
	ID     uint    `json:"id" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Remark string  `json:"remark,omitempty"`
}

type AvailabilityQueryParams struct {
	CheckIn  string `form:"check_in" binding:"required"`
	CheckOut string `form:"check_out" binding:"required"`
}

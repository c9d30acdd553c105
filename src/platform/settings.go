package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"hbs/src/models"
	"hbs/src/types"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	KeyPlatformOpen     = "platform_open"
	KeyCommissionPct    = "admin_commission_percent"
	KeyTaxPct           = "tax_percent"
	KeyMinWithdrawal    = "min_withdrawal_amount"
	KeyBookingHoldTTL   = "booking_hold_ttl_minutes"
	KeyReferralBonus    = "referral_bonus_amount"
	settingsCachePrefix = "settings:"
	cacheTTL            = 5 * time.Minute
)

var defaults = map[string]any{
	KeyPlatformOpen:   true,
	KeyCommissionPct:  float64(10),
	KeyTaxPct:         float64(0),
	KeyMinWithdrawal:  float64(500),
	KeyBookingHoldTTL: float64(30),
	KeyReferralBonus:  float64(0),
}

// Settings reads platform configuration rows through a redis cache. It
// is constructed once and injected; there is no lazily created global.
type Settings struct {
	db *gorm.DB
	rd *redis.Client
}

func NewSettings(db *gorm.DB, rd *redis.Client) *Settings {
	return &Settings{db: db, rd: rd}
}

// Seed writes default rows for any missing setting key.
func (s *Settings) Seed() error {
	for key, value := range defaults {
		row := models.Setting{
			SettingKey:   key,
			SettingValue: types.JSONB{"value": value},
		}
		if err := s.db.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "setting_key"}},
				DoNothing: true,
			}).
			Create(&row).
			Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Settings) get(key string) (any, error) {
	if s.rd != nil {
		cached, err := s.rd.Get(context.Background(), settingsCachePrefix+key).Result()
		if err == nil {
			var v any
			if err := json.Unmarshal([]byte(cached), &v); err == nil {
				return v, nil
			}
		} else if err != redis.Nil {
			log.Printf("[settings] cache read for %s failed: %s\n", key, err.Error())
		}
	}
	var row models.Setting
	if err := s.db.Where(&models.Setting{SettingKey: key}).First(&row).Error; err != nil {
		if v, ok := defaults[key]; ok {
			return v, nil
		}
		return nil, err
	}
	v := row.SettingValue["value"]
	if s.rd != nil {
		if b, err := json.Marshal(v); err == nil {
			s.rd.Set(context.Background(), settingsCachePrefix+key, string(b), cacheTTL)
		}
	}
	return v, nil
}

func (s *Settings) number(key string) float64 {
	v, err := s.get(key)
	if err != nil {
		log.Printf("[settings] falling back to default for %s: %s\n", key, err.Error())
		if d, ok := defaults[key].(float64); ok {
			return d
		}
		return 0
	}
	if f, ok := v.(float64); ok {
		return f
	}
	if d, ok := defaults[key].(float64); ok {
		return d
	}
	return 0
}

// IsOpen is the platform kill switch; checked before any booking
// mutation.
func (s *Settings) IsOpen() bool {
	v, err := s.get(KeyPlatformOpen)
	if err != nil {
		return true
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

func (s *Settings) CommissionPercent() float64 { return s.number(KeyCommissionPct) }
func (s *Settings) TaxPercent() float64        { return s.number(KeyTaxPct) }
func (s *Settings) MinWithdrawalAmount() float64 {
	return s.number(KeyMinWithdrawal)
}
func (s *Settings) BookingHoldTTL() time.Duration {
	return time.Duration(s.number(KeyBookingHoldTTL)) * time.Minute
}
func (s *Settings) ReferralBonusAmount() float64 { return s.number(KeyReferralBonus) }

// Update writes a setting and drops its cache entry so the next read
// observes the new value.
func (s *Settings) Update(key string, value any) error {
	row := models.Setting{
		SettingKey:   key,
		SettingValue: types.JSONB{"value": value},
	}
	if err := s.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "setting_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"setting_value"}),
		}).
		Create(&row).
		Error; err != nil {
		return err
	}
	return s.Refresh(key)
}

// Refresh invalidates the cached value for key, or every key when key
// is empty.
func (s *Settings) Refresh(key string) error {
	if s.rd == nil {
		return nil
	}
	if key != "" {
		return s.rd.Del(context.Background(), settingsCachePrefix+key).Err()
	}
	for k := range defaults {
		if err := s.rd.Del(context.Background(), settingsCachePrefix+k).Err(); err != nil {
			return fmt.Errorf("refresh %s: %w", k, err)
		}
	}
	return nil
}

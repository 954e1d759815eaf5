package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

type BedType string

const (
	BedSingle BedType = "single"
	BedDouble BedType = "double"
	BedKing   BedType = "king"
	BedTwin   BedType = "twin"
)

func (b BedType) Valid() bool {
	switch b {
	case BedSingle, BedDouble, BedKing, BedTwin:
		return true
	}
	return false
}

// Price is a non-negative nightly amount. The hotel API serialises decimals
// as strings ("120.500"), older payloads use plain numbers; both decode.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if strings.HasPrefix(raw, `"`) {
		if len(raw) < 2 || !strings.HasSuffix(raw, `"`) {
			return fmt.Errorf("price %s: unterminated string", raw)
		}
		raw = strings.TrimSpace(raw[1 : len(raw)-1])
	}
	if raw == "" || raw == "null" {
		*p = 0
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("price %q: %w", raw, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("price %q: not a finite amount", raw)
	}
	if v < 0 {
		return fmt.Errorf("price %q: negative amount", raw)
	}
	*p = Price(v)
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(p), 'f', -1, 64)), nil
}

type Room struct {
	ID               uint      `json:"id"`
	Slug             string    `json:"room_slug"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	ShortDescription string    `json:"short_description,omitempty"`
	CoverImage       string    `json:"cover_image"`
	CategoryName     string    `json:"category_name"`
	Amenities        []string  `json:"amenities"`
	PricePerNight    Price     `json:"price_per_night"`
	DiscountPrice    *Price    `json:"discount_price,omitempty"`
	Capacity         int       `json:"capacity"`
	GuestsCount      int       `json:"guests_count"`
	BedCount         int       `json:"bed_count"`
	BedType          BedType   `json:"bed_type"`
	Floor            int       `json:"floor"`
	RoomSize         string    `json:"room_size"`
	RoomCode         string    `json:"room_code,omitempty"`
	IsBooked         bool      `json:"is_booked"`
	Active           bool      `json:"active"`
	Featured         bool      `json:"featured"`
	Pets             bool      `json:"pets"`
	Breakfast        bool      `json:"breakfast"`
	Rating           float64   `json:"rating"`
	Views            int       `json:"views"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// EffectivePrice is the discount price when one is set, otherwise the nightly price.
func (r Room) EffectivePrice() Price {
	if r.DiscountPrice != nil && *r.DiscountPrice > 0 {
		return *r.DiscountPrice
	}
	return r.PricePerNight
}

// Size parses RoomSize ("32", "32m") into whole square metres.
func (r Room) Size() (int, bool) {
	s := strings.TrimSpace(r.RoomSize)
	s = strings.TrimRightFunc(s, func(c rune) bool { return c < '0' || c > '9' })
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
